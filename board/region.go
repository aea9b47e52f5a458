package board

import (
	"fmt"
	"sort"
)

// Kind tags the four region types that can occupy board cells.
type Kind int

const (
	KindRoom Kind = iota
	KindField
	KindPasture
	KindStable
)

func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindField:
		return "field"
	case KindPasture:
		return "pasture"
	case KindStable:
		return "stable"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Crop is what a field is currently planted with.
type Crop int

const (
	CropNone Crop = iota
	CropGrain
	CropVeg
)

func (c Crop) String() string {
	switch c {
	case CropGrain:
		return "grain"
	case CropVeg:
		return "veg"
	}
	return "none"
}

// Region is the shared shape of all four region types: a non-empty set of
// board cells. Geometry checks operate on this interface only.
type Region interface {
	Spaces() []Coord
}

// Overlaps reports whether two regions claim any common cell.
func Overlaps(a, b Region) bool {
	cells := make(map[Coord]bool)
	for _, c := range a.Spaces() {
		cells[c] = true
	}
	for _, c := range b.Spaces() {
		if cells[c] {
			return true
		}
	}
	return false
}

// CheckConnected verifies that the union of cells across all given regions
// forms a single orthogonally-connected component. Zero or one cells pass
// trivially.
func CheckConnected(regions []Region) error {
	var cells []Coord
	for _, r := range regions {
		cells = append(cells, r.Spaces()...)
	}
	if len(cells) <= 1 {
		return nil
	}

	// Flood fill from the first cell over orthogonal adjacency.
	seen := map[Coord]bool{cells[0]: true}
	frontier := []Coord{cells[0]}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, c := range cells {
			if !seen[c] && OrthogonallyAdjacent(cur, c) {
				seen[c] = true
				frontier = append(frontier, c)
			}
		}
	}
	for _, c := range cells {
		if !seen[c] {
			return fmt.Errorf("%w: group of %d regions splits into multiple components", ErrDisconnected, len(regions))
		}
	}
	return nil
}

func checkBounds(r Region, s Shape) error {
	for _, c := range r.Spaces() {
		if !InBounds(c, s) {
			return fmt.Errorf("%w: %v outside %dx%d board", ErrOutOfBounds, c, s.Rows, s.Cols)
		}
	}
	return nil
}

// Room occupies one cell and carries no extra state.
type Room struct {
	Space Coord
}

func (r *Room) Spaces() []Coord { return []Coord{r.Space} }

// Field occupies one cell and holds up to three units of one crop.
type Field struct {
	Space Coord

	items int
	crop  Crop
}

// NewField builds a field, optionally pre-planted. Either both items and
// crop are given or neither.
func NewField(space Coord, items int, crop Crop) (*Field, error) {
	if (items > 0) != (crop != CropNone) {
		return nil, fmt.Errorf("%w: field needs both item count and crop kind, got %d items and crop %v", ErrMalformedRequest, items, crop)
	}
	return &Field{Space: space, items: items, crop: crop}, nil
}

func (f *Field) Spaces() []Coord { return []Coord{f.Space} }

func (f *Field) Items() int { return f.items }
func (f *Field) Crop() Crop { return f.crop }

func (f *Field) IsEmpty() bool { return f.items == 0 }

// PlantGrain fills an empty field with three grain.
func (f *Field) PlantGrain() error {
	if !f.IsEmpty() {
		return fmt.Errorf("%w: planting grain in a non-empty field at %v", ErrMalformedRequest, f.Space)
	}
	f.items = 3
	f.crop = CropGrain
	return nil
}

// PlantVeg fills an empty field with two vegetables.
func (f *Field) PlantVeg() error {
	if !f.IsEmpty() {
		return fmt.Errorf("%w: planting veg in a non-empty field at %v", ErrMalformedRequest, f.Space)
	}
	f.items = 2
	f.crop = CropVeg
	return nil
}

// Harvest takes one unit off the field, clearing the crop when the last unit
// comes off. Reports whether a unit was actually harvested.
func (f *Field) Harvest() bool {
	if f.items == 0 {
		return false
	}
	f.items--
	if f.items == 0 {
		f.crop = CropNone
	}
	return true
}

// Stable occupies one cell. Standalone it houses a single animal; inside a
// pasture it doubles that pasture's capacity instead.
type Stable struct {
	Space Coord
}

func (s *Stable) Spaces() []Coord { return []Coord{s.Space} }

// Capacity of a free-standing stable.
func (s *Stable) Capacity() int { return 1 }

// Pasture is a fenced group of cells. Its fence set and capacity are derived
// from the current cells and attached stable count.
type Pasture struct {
	spaces  []Coord
	stables int
}

// NewPasture builds a pasture over the given cells, dropping duplicates.
func NewPasture(spaces []Coord) (*Pasture, error) {
	if len(spaces) == 0 {
		return nil, fmt.Errorf("%w: pasture needs at least one cell", ErrMalformedRequest)
	}
	seen := make(map[Coord]bool)
	var unique []Coord
	for _, c := range spaces {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].Row != unique[j].Row {
			return unique[i].Row < unique[j].Row
		}
		return unique[i].Col < unique[j].Col
	})
	return &Pasture{spaces: unique}, nil
}

func (p *Pasture) Spaces() []Coord { return p.spaces }

// Fences returns the pasture's outer boundary edges, recomputed from the
// current cells.
func (p *Pasture) Fences() map[Edge]bool {
	return BoundaryEdges(p.spaces)
}

// AddStables attaches n stables to the pasture. Whether the player may
// actually do so is checked by the transaction that calls this.
func (p *Pasture) AddStables(n int) {
	p.stables += n
}

func (p *Pasture) StableCount() int { return p.stables }

// Capacity is cells * 2^stables.
func (p *Pasture) Capacity() int {
	return len(p.spaces) << uint(p.stables)
}

// FencesForGroup unions the fence sets of several pastures. Shared segments
// are counted once.
func FencesForGroup(pastures []*Pasture) map[Edge]bool {
	fences := make(map[Edge]bool)
	for _, p := range pastures {
		for e := range p.Fences() {
			fences[e] = true
		}
	}
	return fences
}
