package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldLifecycle(t *testing.T) {
	t.Run("needs crop and count together", func(t *testing.T) {
		_, err := NewField(Coord{0, 0}, 3, CropNone)
		require.ErrorIs(t, err, ErrMalformedRequest)

		_, err = NewField(Coord{0, 0}, 0, CropGrain)
		require.ErrorIs(t, err, ErrMalformedRequest)
	})

	t.Run("plant grain fills three units", func(t *testing.T) {
		f, err := NewField(Coord{0, 0}, 0, CropNone)
		require.NoError(t, err)
		require.True(t, f.IsEmpty())

		require.NoError(t, f.PlantGrain())
		require.Equal(t, 3, f.Items())
		require.Equal(t, CropGrain, f.Crop())
	})

	t.Run("cannot plant a planted field", func(t *testing.T) {
		f, err := NewField(Coord{0, 0}, 2, CropVeg)
		require.NoError(t, err)
		require.ErrorIs(t, f.PlantGrain(), ErrMalformedRequest)
		require.ErrorIs(t, f.PlantVeg(), ErrMalformedRequest)
	})

	t.Run("harvest empties the field one unit at a time", func(t *testing.T) {
		f, err := NewField(Coord{0, 0}, 2, CropVeg)
		require.NoError(t, err)

		require.True(t, f.Harvest())
		require.Equal(t, CropVeg, f.Crop(), "crop stays while units remain")
		require.True(t, f.Harvest())
		require.Equal(t, CropNone, f.Crop(), "crop clears with the last unit")
		require.False(t, f.Harvest(), "empty field yields nothing")
	})
}

func TestPasture(t *testing.T) {
	t.Run("deduplicates cells", func(t *testing.T) {
		p, err := NewPasture([]Coord{{1, 1}, {1, 1}, {1, 2}})
		require.NoError(t, err)
		require.Len(t, p.Spaces(), 2)
	})

	t.Run("rejects empty cell list", func(t *testing.T) {
		_, err := NewPasture(nil)
		require.ErrorIs(t, err, ErrMalformedRequest)
	})

	t.Run("fence set is the outer boundary", func(t *testing.T) {
		p, err := NewPasture([]Coord{{1, 1}, {1, 2}})
		require.NoError(t, err)
		require.Len(t, p.Fences(), 6)
	})

	t.Run("capacity doubles per stable", func(t *testing.T) {
		p, err := NewPasture([]Coord{{1, 1}, {1, 2}})
		require.NoError(t, err)
		require.Equal(t, 2, p.Capacity())

		p.AddStables(1)
		require.Equal(t, 4, p.Capacity())
		p.AddStables(1)
		require.Equal(t, 8, p.Capacity())
	})
}

func TestFencesForGroup(t *testing.T) {
	a, err := NewPasture([]Coord{{1, 1}})
	require.NoError(t, err)
	b, err := NewPasture([]Coord{{1, 2}})
	require.NoError(t, err)

	// Two adjacent single-cell pastures share one fence segment.
	fences := FencesForGroup([]*Pasture{a, b})
	require.Len(t, fences, 7, "shared segment counted once")
}

func TestCheckConnected(t *testing.T) {
	t.Run("empty and single-cell groups pass", func(t *testing.T) {
		require.NoError(t, CheckConnected(nil))
		require.NoError(t, CheckConnected([]Region{&Room{Space: Coord{0, 0}}}))
	})

	t.Run("chain of rooms passes", func(t *testing.T) {
		group := []Region{
			&Room{Space: Coord{0, 0}},
			&Room{Space: Coord{0, 1}},
			&Room{Space: Coord{1, 1}},
		}
		require.NoError(t, CheckConnected(group))
	})

	t.Run("diagonal contact is not connected", func(t *testing.T) {
		group := []Region{
			&Room{Space: Coord{0, 0}},
			&Room{Space: Coord{1, 1}},
		}
		require.ErrorIs(t, CheckConnected(group), ErrDisconnected)
	})

	t.Run("multi-cell pasture bridges the group", func(t *testing.T) {
		p, err := NewPasture([]Coord{{0, 1}, {1, 1}})
		require.NoError(t, err)
		group := []Region{
			&Room{Space: Coord{0, 0}},
			p,
			&Room{Space: Coord{2, 1}},
		}
		require.NoError(t, CheckConnected(group))
	})
}

func TestOverlaps(t *testing.T) {
	a, err := NewPasture([]Coord{{0, 0}, {0, 1}})
	require.NoError(t, err)
	b, err := NewPasture([]Coord{{0, 1}, {0, 2}})
	require.NoError(t, err)
	c, err := NewPasture([]Coord{{2, 0}})
	require.NoError(t, err)

	require.True(t, Overlaps(a, b))
	require.False(t, Overlaps(a, c))
}
