package board

import "fmt"

// Coord identifies a single cell on a player board, in matrix order
// (row first, then column).
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Shape is the fixed size of a player board.
type Shape struct {
	Rows int
	Cols int
}

// InBounds reports whether c is a valid cell for a board of the given shape.
func InBounds(c Coord, s Shape) bool {
	return c.Row >= 0 && c.Row < s.Rows && c.Col >= 0 && c.Col < s.Cols
}

// OrthogonallyAdjacent reports whether two cells share an edge: exactly one
// axis differs, and by exactly 1. Diagonal neighbours and identical cells
// don't count.
func OrthogonallyAdjacent(a, b Coord) bool {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Edge is a unit segment between two lattice corners of the board grid.
// From is always the corner that comes first in scan order, so edges compare
// equal regardless of how they were derived.
type Edge struct {
	From Coord
	To   Coord
}

// cellEdges returns the four unit edges bounding a cell: top, right, bottom,
// left. Corner points live on the (Rows+1, Cols+1) lattice.
func cellEdges(c Coord) [4]Edge {
	return [4]Edge{
		{Coord{c.Row, c.Col}, Coord{c.Row, c.Col + 1}},         // top
		{Coord{c.Row, c.Col + 1}, Coord{c.Row + 1, c.Col + 1}}, // right
		{Coord{c.Row + 1, c.Col}, Coord{c.Row + 1, c.Col + 1}}, // bottom
		{Coord{c.Row, c.Col}, Coord{c.Row + 1, c.Col}},         // left
	}
}

// BoundaryEdges computes the outer boundary of a set of cells. Every cell
// contributes its four edges; an edge contributed twice lies between two
// cells of the set and is discarded.
func BoundaryEdges(cells []Coord) map[Edge]bool {
	counts := make(map[Edge]int)
	for _, c := range cells {
		for _, e := range cellEdges(c) {
			counts[e]++
		}
	}
	boundary := make(map[Edge]bool)
	for e, n := range counts {
		if n == 1 {
			boundary[e] = true
		}
	}
	return boundary
}
