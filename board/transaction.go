package board

import (
	"fmt"
	"sort"
	"strings"
)

// PrereqFunc is a pure check run during validation. It must not mutate the
// player. A non-nil error rejects the whole transaction.
type PrereqFunc func(p *Player) error

// EffectFunc is a side effect run after a transaction's deltas have been
// applied. It may mutate the player's spatial state but must not fail and
// must not re-enter validation.
type EffectFunc func(p *Player)

type txStatus int

const (
	txProposed txStatus = iota
	txValidated
	txApplied
	txRejected
)

// Transaction is an atomic change to a player board: a set of resource
// deltas plus preconditions, prerequisite checks and side effects. Either
// every precondition holds and the whole change applies, or nothing does.
//
// Any negative delta doubles as an implicit precondition that the player
// already holds at least that much.
type Transaction struct {
	Description string

	deltas    map[Resource]int
	prereqs   map[Resource]int
	prereqFns []PrereqFunc
	effectFns []EffectFunc

	status txStatus
}

// NewTransaction builds a transaction from its deltas and explicit
// preconditions. Deltas on derived quantities are rejected as malformed;
// preconditions may name derived quantities (e.g. empty fields).
func NewTransaction(description string, deltas, prereqs map[Resource]int) (*Transaction, error) {
	t := &Transaction{
		Description: description,
		deltas:      make(map[Resource]int, len(deltas)),
		prereqs:     make(map[Resource]int, len(prereqs)),
	}
	for r, v := range prereqs {
		if _, ok := resourceNames[r]; !ok {
			return nil, fmt.Errorf("%w: %v is not a resource", ErrMalformedRequest, r)
		}
		t.prereqs[r] = v
	}
	for r, v := range deltas {
		if !r.Stored() {
			return nil, fmt.Errorf("%w: cannot apply a delta to %v", ErrMalformedRequest, r)
		}
		t.deltas[r] = v
		if v < 0 {
			t.prereqs[r] = t.prereqs[r] - v
		}
	}
	return t, nil
}

// WithPrereqFn appends a prerequisite check.
func (t *Transaction) WithPrereqFn(fn PrereqFunc) *Transaction {
	t.prereqFns = append(t.prereqFns, fn)
	return t
}

// WithEffectFn appends a post-apply side effect.
func (t *Transaction) WithEffectFn(fn EffectFunc) *Transaction {
	t.effectFns = append(t.effectFns, fn)
	return t
}

// validate checks every precondition against the player. On failure the
// transaction is rejected and the returned error names the unmet resources
// with required vs actual amounts.
func (t *Transaction) validate(p *Player) error {
	var unmet []Resource
	for r, min := range t.prereqs {
		if p.Amount(r) < min {
			unmet = append(unmet, r)
		}
	}
	if len(unmet) > 0 {
		t.status = txRejected
		return fmt.Errorf("%w: %s", ErrInsufficientResources, t.shortfall(p, unmet))
	}
	for _, fn := range t.prereqFns {
		if err := fn(p); err != nil {
			t.status = txRejected
			return fmt.Errorf("%s: %w", t.Description, err)
		}
	}
	t.status = txValidated
	return nil
}

// apply commits the deltas and runs the side effects in declared order.
// Only called after validate succeeded, so it cannot fail.
func (t *Transaction) apply(p *Player) {
	for r, v := range t.deltas {
		p.ledger.Add(r, v)
	}
	for _, fn := range t.effectFns {
		fn(p)
	}
	t.status = txApplied
}

// CheckAndApply validates the transaction against the player and, if every
// precondition holds, applies it. On any failure the player is untouched.
func (t *Transaction) CheckAndApply(p *Player) error {
	if t.status != txProposed {
		return fmt.Errorf("%w: transaction %q already resolved", ErrMalformedRequest, t.Description)
	}
	if err := t.validate(p); err != nil {
		return err
	}
	t.apply(p)
	return nil
}

func (t *Transaction) shortfall(p *Player, unmet []Resource) string {
	sort.Slice(unmet, func(i, j int) bool { return unmet[i] < unmet[j] })

	var need, have []string
	for _, r := range unmet {
		need = append(need, fmt.Sprintf("%d %v", t.prereqs[r], r))
		have = append(have, fmt.Sprintf("%d %v", p.Amount(r), r))
	}
	return fmt.Sprintf("%s requires %s but player has %s",
		t.Description, strings.Join(need, "/"), strings.Join(have, "/"))
}
