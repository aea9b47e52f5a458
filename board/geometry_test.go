package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInBounds(t *testing.T) {
	shape := Shape{Rows: 3, Cols: 5}

	require.True(t, InBounds(Coord{0, 0}, shape))
	require.True(t, InBounds(Coord{2, 4}, shape))
	require.False(t, InBounds(Coord{3, 0}, shape), "row equal to Rows is outside")
	require.False(t, InBounds(Coord{0, 5}, shape), "col equal to Cols is outside")
	require.False(t, InBounds(Coord{-1, 0}, shape))
	require.False(t, InBounds(Coord{0, -1}, shape))
}

func TestOrthogonallyAdjacent(t *testing.T) {
	require.True(t, OrthogonallyAdjacent(Coord{1, 1}, Coord{1, 2}))
	require.True(t, OrthogonallyAdjacent(Coord{1, 1}, Coord{0, 1}))
	require.False(t, OrthogonallyAdjacent(Coord{1, 1}, Coord{1, 1}), "a cell is not adjacent to itself")
	require.False(t, OrthogonallyAdjacent(Coord{1, 1}, Coord{2, 2}), "diagonals are not adjacent")
	require.False(t, OrthogonallyAdjacent(Coord{1, 1}, Coord{1, 3}), "distance two is not adjacent")
}

func TestBoundaryEdges(t *testing.T) {
	t.Run("single cell has four edges", func(t *testing.T) {
		edges := BoundaryEdges([]Coord{{0, 0}})
		require.Len(t, edges, 4)
	})

	t.Run("domino drops the shared edge", func(t *testing.T) {
		edges := BoundaryEdges([]Coord{{0, 0}, {0, 1}})
		require.Len(t, edges, 6)
		shared := Edge{Coord{0, 1}, Coord{1, 1}}
		require.False(t, edges[shared], "interior edge must not be part of the boundary")
	})

	t.Run("square of four cells keeps only the perimeter", func(t *testing.T) {
		edges := BoundaryEdges([]Coord{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
		require.Len(t, edges, 8)
	})
}
