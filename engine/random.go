package engine

import (
	"golang.org/x/exp/rand"

	"agricola/board"
)

// RandomDriver throws random actions at a session, for smoke-testing the
// engine: whatever it tries, the board's invariants must hold. Rejections
// are part of normal operation and are not errors.
type RandomDriver struct {
	rng *rand.Rand
}

func NewRandomDriver(seed uint64) *RandomDriver {
	return &RandomDriver{rng: rand.New(rand.NewSource(seed))}
}

// Play attempts n random actions and reports how many the board accepted.
func (d *RandomDriver) Play(s *Session, n int) int {
	applied := 0
	for i := 0; i < n; i++ {
		if err := s.Do(d.next(s.Player)); err == nil {
			applied++
		}
	}
	return applied
}

// next proposes a random action. Cells are drawn uniformly from the board,
// so most proposals are illegal on a crowded board; that is the point.
func (d *RandomDriver) next(p *board.Player) Action {
	shape := p.Shape()
	cell := func() board.Coord {
		return board.Coord{Row: d.rng.Intn(shape.Rows), Col: d.rng.Intn(shape.Cols)}
	}

	switch d.rng.Intn(10) {
	case 0:
		return BuildRooms{Cells: []board.Coord{cell()}}
	case 1:
		return BuildPastures{Groups: [][]board.Coord{{cell()}}}
	case 2:
		return BuildStables{Cells: []board.Coord{cell()}, UnitCost: 2}
	case 3:
		return PlowFields{Cells: []board.Coord{cell()}}
	case 4:
		return Sow{Grain: d.rng.Intn(2), Veg: d.rng.Intn(2)}
	case 5:
		return BakeBread{N: d.rng.Intn(3)}
	case 6:
		return AddPeople{N: 1}
	case 7:
		return AddResources{Amounts: map[board.Resource]int{
			board.Wood:  d.rng.Intn(3),
			board.Reed:  d.rng.Intn(2),
			board.Grain: d.rng.Intn(2),
		}}
	case 8:
		return AddAnimals{Counts: map[board.Resource]int{board.Sheep: 1}}
	default:
		return Harvest{}
	}
}
