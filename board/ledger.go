package board

import "fmt"

// Resource identifies a countable quantity on a player board. Stored
// resources live in the Ledger; derived quantities are computed from the
// region registry and ledger on demand and can only appear in transaction
// preconditions, never in deltas.
type Resource int

const (
	// Stored goods.
	Food Resource = iota
	Wood
	Clay
	Stone
	Reed
	Grain
	Veg
	// Stored animals.
	Sheep
	Boar
	Cattle
	// Stored counters consumed by construction.
	People
	PeopleAvail
	FencesAvail
	StablesAvail

	numStored
)

// Derived quantities, computed from the registry and ledger on demand.
const (
	Rooms Resource = iota + 100
	Fields
	GrainFields
	VegFields
	EmptyFields
	Pastures
	Fences
	Stables
	FencedStables
	FreeStables
	UsedSpaces
	EmptySpaces
)

var resourceNames = map[Resource]string{
	Food:          "food",
	Wood:          "wood",
	Clay:          "clay",
	Stone:         "stone",
	Reed:          "reed",
	Grain:         "grain",
	Veg:           "veg",
	Sheep:         "sheep",
	Boar:          "boar",
	Cattle:        "cattle",
	People:        "people",
	PeopleAvail:   "people_avail",
	FencesAvail:   "fences_avail",
	StablesAvail:  "stables_avail",
	Rooms:         "rooms",
	Fields:        "fields",
	GrainFields:   "grain_fields",
	VegFields:     "veg_fields",
	EmptyFields:   "empty_fields",
	Pastures:      "pastures",
	Fences:        "fences",
	Stables:       "stables",
	FencedStables: "fenced_stables",
	FreeStables:   "free_stables",
	UsedSpaces:    "used_spaces",
	EmptySpaces:   "empty_spaces",
}

func (r Resource) String() string {
	if name, ok := resourceNames[r]; ok {
		return name
	}
	return fmt.Sprintf("resource(%d)", int(r))
}

// Stored reports whether r lives in the ledger (as opposed to being derived).
func (r Resource) Stored() bool {
	return r >= 0 && r < numStored
}

// Animal reports whether r is one of the three livestock resources.
func (r Resource) Animal() bool {
	return r == Sheep || r == Boar || r == Cattle
}

// Good reports whether r is a tradeable good (food, building materials,
// crops).
func (r Resource) Good() bool {
	return r >= Food && r <= Veg
}

// ParseResource maps a resource name to its identifier. Unknown names are a
// malformed request.
func ParseResource(name string) (Resource, error) {
	for r, n := range resourceNames {
		if n == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a resource", ErrMalformedRequest, name)
}

// Ledger stores every countable resource a player owns. No operation may
// take a value below zero; the transaction engine rejects any change that
// would, so the ledger itself never clamps.
type Ledger [numStored]int

// Get returns the stored amount of r. Asking for a derived quantity is a
// programming error.
func (l *Ledger) Get(r Resource) int {
	if !r.Stored() {
		panic(fmt.Sprintf("ledger lookup for derived quantity %v", r))
	}
	return l[r]
}

// Add applies a delta to r. The transaction engine has already checked the
// result stays non-negative.
func (l *Ledger) Add(r Resource, delta int) {
	if !r.Stored() {
		panic(fmt.Sprintf("ledger delta for derived quantity %v", r))
	}
	l[r] += delta
}
