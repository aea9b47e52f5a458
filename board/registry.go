package board

import "fmt"

// Registry is the per-player bookkeeping for every placed region, one
// collection per kind. It enforces the spatial invariants: all cells in
// bounds, no cell claimed twice within a kind, no cross-kind overlap except
// the stable/pasture exception, and each kind group staying orthogonally
// connected.
type Registry struct {
	shape    Shape
	rooms    []*Room
	fields   []*Field
	pastures []*Pasture
	stables  []*Stable
}

// NewRegistry builds an empty registry for a board of the given shape.
func NewRegistry(shape Shape) *Registry {
	return &Registry{shape: shape}
}

func (g *Registry) Shape() Shape { return g.shape }

func (g *Registry) Rooms() []*Room       { return g.rooms }
func (g *Registry) Fields() []*Field     { return g.fields }
func (g *Registry) Pastures() []*Pasture { return g.pastures }
func (g *Registry) Stables() []*Stable   { return g.stables }

// regionsOf flattens one kind collection to the Region interface.
func (g *Registry) regionsOf(kind Kind) []Region {
	var out []Region
	switch kind {
	case KindRoom:
		for _, r := range g.rooms {
			out = append(out, r)
		}
	case KindField:
		for _, f := range g.fields {
			out = append(out, f)
		}
	case KindPasture:
		for _, p := range g.pastures {
			out = append(out, p)
		}
	case KindStable:
		for _, s := range g.stables {
			out = append(out, s)
		}
	}
	return out
}

// CheckPlacement verifies that newRegions of the given kind could legally be
// added: every cell in bounds, no duplicate cell within the batch, and no
// overlap with any existing kind outside allowOverlapWith. Nothing is
// registered.
func (g *Registry) CheckPlacement(newRegions []Region, kind Kind, allowOverlapWith map[Kind]bool) error {
	for _, r := range newRegions {
		if err := checkBounds(r, g.shape); err != nil {
			return err
		}
	}

	batch := make(map[Coord]bool)
	for _, r := range newRegions {
		for _, c := range r.Spaces() {
			if batch[c] {
				return fmt.Errorf("%w: two new %vs both claim cell %v", ErrOverlap, kind, c)
			}
			batch[c] = true
		}
	}

	for _, other := range []Kind{KindRoom, KindField, KindPasture, KindStable} {
		if allowOverlapWith[other] {
			continue
		}
		for _, existing := range g.regionsOf(other) {
			for _, c := range existing.Spaces() {
				if batch[c] {
					return fmt.Errorf("%w: placing a %v at cell %v where a %v already exists", ErrOverlap, kind, c, other)
				}
			}
		}
	}
	return nil
}

// CheckAddition runs the full pre-registration check for a batch: placement
// plus connectivity of the kind group with the batch included.
func (g *Registry) CheckAddition(newRegions []Region, kind Kind, allowOverlapWith map[Kind]bool) error {
	if err := g.CheckPlacement(newRegions, kind, allowOverlapWith); err != nil {
		return err
	}
	return CheckConnected(append(g.regionsOf(kind), newRegions...))
}

// Register appends a batch after a successful CheckAddition. The split lets
// the transaction engine validate spatial state before committing resource
// deltas, then register with no possibility of failure.
func (g *Registry) Register(newRegions []Region, kind Kind, allowOverlapWith map[Kind]bool) error {
	if err := g.CheckAddition(newRegions, kind, allowOverlapWith); err != nil {
		return err
	}
	g.add(newRegions, kind)
	return nil
}

// add appends without checking. Callers must have run CheckAddition on the
// same batch first.
func (g *Registry) add(newRegions []Region, kind Kind) {
	for _, r := range newRegions {
		switch kind {
		case KindRoom:
			g.rooms = append(g.rooms, r.(*Room))
		case KindField:
			g.fields = append(g.fields, r.(*Field))
		case KindPasture:
			g.pastures = append(g.pastures, r.(*Pasture))
		case KindStable:
			g.stables = append(g.stables, r.(*Stable))
		}
	}
}

// CellsOf returns the cells claimed by every region of one kind.
func (g *Registry) CellsOf(kind Kind) []Coord {
	var cells []Coord
	for _, r := range g.regionsOf(kind) {
		cells = append(cells, r.Spaces()...)
	}
	return cells
}

// UsedCells is the set of cells claimed by any region. A stable inside a
// pasture claims the same cell once.
func (g *Registry) UsedCells() map[Coord]bool {
	used := make(map[Coord]bool)
	for _, kind := range []Kind{KindRoom, KindField, KindPasture, KindStable} {
		for _, c := range g.CellsOf(kind) {
			used[c] = true
		}
	}
	return used
}

// EmptyCells is the complement of UsedCells within the board shape.
func (g *Registry) EmptyCells() []Coord {
	used := g.UsedCells()
	var empty []Coord
	for r := 0; r < g.shape.Rows; r++ {
		for c := 0; c < g.shape.Cols; c++ {
			if !used[Coord{r, c}] {
				empty = append(empty, Coord{r, c})
			}
		}
	}
	return empty
}

// FenceSet aggregates the fence segments of all pastures, deduplicated.
func (g *Registry) FenceSet() map[Edge]bool {
	return FencesForGroup(g.pastures)
}

// fencedBy reports whether the stable's cell lies inside some pasture.
func (g *Registry) fencedBy(s *Stable) *Pasture {
	for _, p := range g.pastures {
		for _, c := range p.Spaces() {
			if c == s.Space {
				return p
			}
		}
	}
	return nil
}

// FencedStables counts stables whose cell lies within a pasture.
func (g *Registry) FencedStables() int {
	n := 0
	for _, s := range g.stables {
		if g.fencedBy(s) != nil {
			n++
		}
	}
	return n
}

// FreeStables counts stables standing outside every pasture.
func (g *Registry) FreeStables() int {
	return len(g.stables) - g.FencedStables()
}
