package board

import "sort"

// CapacityMultiset is a multiset of housing capacities: capacity value to
// how many housings of that capacity the player has.
type CapacityMultiset map[int]int

// Weight is the total capacity across the multiset.
func (m CapacityMultiset) Weight() int {
	total := 0
	for value, count := range m {
		total += value * count
	}
	return total
}

func (m CapacityMultiset) subtract(sub CapacityMultiset) CapacityMultiset {
	out := make(CapacityMultiset, len(m))
	for value, count := range m {
		left := count - sub[value]
		if left < 0 {
			left = 0
		}
		out[value] = left
	}
	return out
}

// Satisfy decides whether the capacity multiset can be partitioned into
// disjoint parts covering every requirement: one part per requirement, each
// part's total weight at least its requirement, every capacity used at most
// once. Parts may be matched to requirements in any order.
//
// The search enumerates, for each distinct capacity value, every usage count
// from 0 to its multiplicity, takes each sub-multiset heavy enough for the
// first requirement, and recurses on the rest. Exponential in distinct
// values, which is fine here: a board has at most a handful of stables and
// pastures. Requirements should be sorted ascending so the cheapest
// constraint prunes first.
func Satisfy(requirements []int, capacities CapacityMultiset) bool {
	if len(requirements) == 0 {
		return true
	}
	if len(requirements) == 1 {
		return capacities.Weight() >= requirements[0]
	}

	total := 0
	for _, r := range requirements {
		total += r
	}
	if capacities.Weight() < total {
		return false
	}

	values := make([]int, 0, len(capacities))
	for v := range capacities {
		values = append(values, v)
	}
	sort.Ints(values)

	// Odometer over per-value usage counts, 0..multiplicity each.
	usage := make([]int, len(values))
	for {
		sub := make(CapacityMultiset, len(values))
		weight := 0
		for i, v := range values {
			sub[v] = usage[i]
			weight += v * usage[i]
		}
		if weight >= requirements[0] {
			if Satisfy(requirements[1:], capacities.subtract(sub)) {
				return true
			}
		}

		i := 0
		for i < len(values) {
			usage[i]++
			if usage[i] <= capacities[values[i]] {
				break
			}
			usage[i] = 0
			i++
		}
		if i == len(values) {
			return false
		}
	}
}
