package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSatisfy(t *testing.T) {
	t.Run("no requirements is trivially satisfiable", func(t *testing.T) {
		require.True(t, Satisfy(nil, CapacityMultiset{}))
		require.True(t, Satisfy(nil, CapacityMultiset{1: 3}))
	})

	t.Run("single requirement only needs total weight", func(t *testing.T) {
		require.True(t, Satisfy([]int{3}, CapacityMultiset{1: 2, 2: 1}))
		require.False(t, Satisfy([]int{5}, CapacityMultiset{1: 2, 2: 1}))
	})

	t.Run("two unit groups fit two stables and a pasture", func(t *testing.T) {
		require.True(t, Satisfy([]int{1, 1}, CapacityMultiset{1: 2, 2: 1}))
	})

	t.Run("groups may split across several housings", func(t *testing.T) {
		// 2 goes to the two unit capacities, 2 to the pasture.
		require.True(t, Satisfy([]int{2, 2}, CapacityMultiset{1: 2, 2: 1}))
	})

	t.Run("fails when no partition covers every group", func(t *testing.T) {
		// A part of weight 3 leaves at most weight 1 behind.
		require.False(t, Satisfy([]int{2, 3}, CapacityMultiset{1: 2, 2: 1}))
	})

	t.Run("prunes on insufficient total weight", func(t *testing.T) {
		require.False(t, Satisfy([]int{3, 3}, CapacityMultiset{1: 4}))
	})

	t.Run("parts may match requirements in any order", func(t *testing.T) {
		// The capacity-4 entry must serve the *second* requirement.
		require.True(t, Satisfy([]int{1, 4}, CapacityMultiset{1: 1, 4: 1}))
	})

	t.Run("every capacity is used at most once", func(t *testing.T) {
		require.False(t, Satisfy([]int{2, 2}, CapacityMultiset{2: 1}))
	})
}

func TestCapacityMultisetWeight(t *testing.T) {
	require.Equal(t, 0, CapacityMultiset{}.Weight())
	require.Equal(t, 7, CapacityMultiset{1: 3, 2: 2}.Weight())
}
