package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := testPlayer(t)

	require.Equal(t, Shape{Rows: 3, Cols: 5}, p.Shape())
	require.Equal(t, 2, p.Amount(Rooms))
	require.Equal(t, Wood, p.HouseMaterial())
	require.Equal(t, 2, p.Amount(People))
	require.Equal(t, 3, p.Amount(PeopleAvail))
	require.Equal(t, 15, p.Amount(FencesAvail))
	require.Equal(t, 4, p.Amount(StablesAvail))
	require.Equal(t, 0, p.Amount(Wood))
	require.Equal(t, 13, p.Amount(EmptySpaces))
}

func TestNewPlayerValidation(t *testing.T) {
	t.Run("disconnected starting rooms fail", func(t *testing.T) {
		_, err := NewPlayer("bad", WithRooms(Coord{0, 0}, Coord{0, 2}))
		require.ErrorIs(t, err, ErrDisconnected)
	})

	t.Run("out of bounds starting rooms fail", func(t *testing.T) {
		_, err := NewPlayer("bad", WithRooms(Coord{0, 0}, Coord{0, 5}))
		require.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("starting stable inside a pasture multiplies its capacity", func(t *testing.T) {
		p, err := NewPlayer("ok",
			WithPastures([]Coord{{1, 1}, {1, 2}}),
			WithStables(Coord{1, 1}),
		)
		require.NoError(t, err)
		require.Equal(t, 4, p.Registry().Pastures()[0].Capacity())
		require.Equal(t, 1, p.Amount(FencedStables))
		require.Equal(t, 0, p.Amount(FreeStables))
	})
}

func TestBuildRooms(t *testing.T) {
	t.Run("pays house material and reed", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 12, Reed: 5}))

		require.NoError(t, p.BuildRooms(Coord{1, 0}, Coord{1, 1}))
		require.Equal(t, 4, p.Amount(Rooms))
		require.Equal(t, 2, p.Amount(Wood), "5 wood per room")
		require.Equal(t, 1, p.Amount(Reed), "2 reed per room")
	})

	t.Run("insufficient material leaves rooms unregistered", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 4, Reed: 5}))

		err := p.BuildRooms(Coord{1, 0})
		require.ErrorIs(t, err, ErrInsufficientResources)
		require.Equal(t, 2, p.Amount(Rooms))
		require.Equal(t, 4, p.Amount(Wood))
		require.Equal(t, 5, p.Amount(Reed))
	})

	t.Run("detached room is rejected before the ledger is touched", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 10, Reed: 5}))

		err := p.BuildRooms(Coord{2, 4})
		require.ErrorIs(t, err, ErrDisconnected)
		require.Equal(t, 10, p.Amount(Wood))
	})
}

func TestUpgradeHouse(t *testing.T) {
	p := testPlayer(t, WithStartingGoods(map[Resource]int{Clay: 2, Stone: 2, Reed: 2}))

	require.NoError(t, p.UpgradeHouse())
	require.Equal(t, Clay, p.HouseMaterial())
	require.Equal(t, 0, p.Amount(Clay), "one clay per room")
	require.Equal(t, 1, p.Amount(Reed))

	require.NoError(t, p.UpgradeHouse())
	require.Equal(t, Stone, p.HouseMaterial())

	require.ErrorIs(t, p.UpgradeHouse(), ErrMalformedRequest, "stone is the end of the progression")
}

func TestBuildPastures(t *testing.T) {
	t.Run("pays wood per new fence segment", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 10}))

		require.NoError(t, p.BuildPastures([]Coord{{1, 0}, {1, 1}}))
		require.Equal(t, 1, p.Amount(Pastures))
		require.Equal(t, 6, p.Amount(Fences))
		require.Equal(t, 4, p.Amount(Wood))
		require.Equal(t, 9, p.Amount(FencesAvail))
	})

	t.Run("existing fences are not paid for again", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 10}))

		require.NoError(t, p.BuildPastures([]Coord{{1, 0}}))
		require.Equal(t, 6, p.Amount(Wood), "first single-cell pasture costs 4")

		// The new pasture shares one fence with the first.
		require.NoError(t, p.BuildPastures([]Coord{{1, 1}}))
		require.Equal(t, 3, p.Amount(Wood), "shared segment is free")
		require.Equal(t, 7, p.Amount(Fences))
	})

	t.Run("fence set equals the union of group boundaries", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 20}))

		require.NoError(t, p.BuildPastures([]Coord{{1, 0}}))
		first := p.FenceSet()

		require.NoError(t, p.BuildPastures([]Coord{{1, 1}}))
		second := p.FenceSet()

		union := make(map[Edge]bool)
		for e := range BoundaryEdges([]Coord{{1, 0}}) {
			union[e] = true
		}
		for e := range BoundaryEdges([]Coord{{1, 1}}) {
			union[e] = true
		}
		require.Equal(t, union, second)
		for e := range first {
			require.True(t, second[e], "old fences survive new construction")
		}
	})

	t.Run("pasture may not cover a room", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 20}))
		require.ErrorIs(t, p.BuildPastures([]Coord{{0, 0}}), ErrOverlap)
	})

	t.Run("fencing around a free stable doubles capacity", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 20}))

		require.NoError(t, p.BuildStables([]Coord{{1, 1}}, 2))
		require.Equal(t, 1, p.Amount(FreeStables))

		require.NoError(t, p.BuildPastures([]Coord{{1, 1}, {1, 2}}))
		require.Equal(t, 0, p.Amount(FreeStables))
		require.Equal(t, 1, p.Amount(FencedStables))
		require.Equal(t, 4, p.Registry().Pastures()[0].Capacity())
	})
}

func TestBuildStables(t *testing.T) {
	t.Run("pays wood and stable allowance", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 5}))

		require.NoError(t, p.BuildStables([]Coord{{2, 2}}, 2))
		require.Equal(t, 3, p.Amount(Wood))
		require.Equal(t, 3, p.Amount(StablesAvail))
		require.Equal(t, 1, p.Amount(Stables))
	})

	t.Run("stable on a pasture cell multiplies that pasture", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 20}))

		require.NoError(t, p.BuildPastures([]Coord{{1, 1}, {1, 2}}))
		require.NoError(t, p.BuildStables([]Coord{{1, 2}}, 1))
		require.Equal(t, 4, p.Registry().Pastures()[0].Capacity())
		require.Equal(t, 1, p.Amount(FencedStables))
	})

	t.Run("stable allowance runs out", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 20, StablesAvail: 0}))

		err := p.BuildStables([]Coord{{2, 2}}, 1)
		require.ErrorIs(t, err, ErrInsufficientResources)
		require.Equal(t, 0, p.Amount(Stables))
	})
}

func TestPlowAndSow(t *testing.T) {
	t.Run("end to end: plow, sow, then fail atomically", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Grain: 1, Veg: 1}))

		require.NoError(t, p.PlowFields(Coord{1, 0}, Coord{1, 1}))
		require.Equal(t, 2, p.Amount(EmptyFields))

		require.NoError(t, p.Sow(1, 1))
		fields := p.Registry().Fields()
		require.Equal(t, CropGrain, fields[0].Crop())
		require.Equal(t, 3, fields[0].Items())
		require.Equal(t, CropVeg, fields[1].Crop())
		require.Equal(t, 2, fields[1].Items())
		require.Equal(t, 0, p.Amount(Grain))
		require.Equal(t, 0, p.Amount(Veg))

		err := p.Sow(1, 0)
		require.ErrorIs(t, err, ErrInsufficientResources, "no empty field left")
		require.Equal(t, 0, p.Amount(Grain))
		require.Equal(t, 3, fields[0].Items(), "failed sow changes nothing")
	})

	t.Run("plowed fields must connect to existing fields", func(t *testing.T) {
		p := testPlayer(t)
		require.NoError(t, p.PlowFields(Coord{1, 0}))
		require.ErrorIs(t, p.PlowFields(Coord{1, 4}), ErrDisconnected)
	})

	t.Run("negative sow counts are malformed", func(t *testing.T) {
		p := testPlayer(t)
		require.ErrorIs(t, p.Sow(-1, 0), ErrMalformedRequest)
	})
}

func TestHarvest(t *testing.T) {
	p := testPlayer(t, WithStartingGoods(map[Resource]int{Grain: 1, Veg: 1}))
	require.NoError(t, p.PlowFields(Coord{1, 0}, Coord{1, 1}))
	require.NoError(t, p.Sow(1, 1))

	require.NoError(t, p.Harvest())
	require.Equal(t, 1, p.Amount(Grain))
	require.Equal(t, 1, p.Amount(Veg))
	require.Equal(t, 2, p.Registry().Fields()[0].Items())
	require.Equal(t, 1, p.Registry().Fields()[1].Items())

	require.NoError(t, p.Harvest())
	require.NoError(t, p.Harvest())
	require.Equal(t, 3, p.Amount(Grain))
	require.Equal(t, 2, p.Amount(Veg), "veg field emptied after two harvests")
	require.Equal(t, 2, p.Amount(EmptyFields))
}

func TestBakeBread(t *testing.T) {
	t.Run("default oven cannot bake", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Grain: 3}))
		require.ErrorIs(t, p.BakeBread(1), ErrMalformedRequest, "final rate 0 with no listed rates")
	})

	t.Run("final rate repeats indefinitely", func(t *testing.T) {
		p := testPlayer(t,
			WithStartingGoods(map[Resource]int{Grain: 4}),
			WithBreadRates([]int{3, 2}),
		)
		require.NoError(t, p.BakeBread(4))
		require.Equal(t, 0, p.Amount(Grain))
		require.Equal(t, 3+2+2+2, p.Amount(Food))
	})

	t.Run("listed rates apply in order", func(t *testing.T) {
		p := testPlayer(t,
			WithStartingGoods(map[Resource]int{Grain: 2}),
			WithBreadRates([]int{5, 4, 0}),
		)
		require.NoError(t, p.BakeBread(2))
		require.Equal(t, 9, p.Amount(Food))
	})

	t.Run("needs the grain", func(t *testing.T) {
		p := testPlayer(t, WithBreadRates([]int{2}))
		require.ErrorIs(t, p.BakeBread(1), ErrInsufficientResources)
	})
}

func TestCookFood(t *testing.T) {
	p := testPlayer(t,
		WithStartingGoods(map[Resource]int{Grain: 2, Veg: 1}),
		WithCookingRates(map[Resource]int{Veg: 2}),
	)

	require.NoError(t, p.CookFood(map[Resource]int{Grain: 2, Veg: 1}))
	require.Equal(t, 0, p.Amount(Grain))
	require.Equal(t, 0, p.Amount(Veg))
	require.Equal(t, 2*1+1*2, p.Amount(Food))

	require.ErrorIs(t, p.CookFood(map[Resource]int{Wood: 1}), ErrMalformedRequest, "no rate for wood")
}

func TestAddPeople(t *testing.T) {
	p := testPlayer(t)

	require.NoError(t, p.AddPeople(2))
	require.Equal(t, 4, p.Amount(People))
	require.Equal(t, 1, p.Amount(PeopleAvail))

	require.ErrorIs(t, p.AddPeople(2), ErrInsufficientResources)
	require.Equal(t, 4, p.Amount(People))
}

func TestAddResources(t *testing.T) {
	p := testPlayer(t)

	require.NoError(t, p.AddResources(map[Resource]int{Wood: 3, Clay: 1}))
	require.Equal(t, 3, p.Amount(Wood))
	require.Equal(t, 1, p.Amount(Clay))

	require.ErrorIs(t, p.AddResources(map[Resource]int{Sheep: 1}), ErrMalformedRequest,
		"animals go through AddAnimals")
}

func TestAddAnimals(t *testing.T) {
	t.Run("bare board holds exactly one animal", func(t *testing.T) {
		p := testPlayer(t)

		require.NoError(t, p.AddAnimals(map[Resource]int{Sheep: 1}))
		require.Equal(t, 1, p.Amount(Sheep))

		err := p.AddAnimals(map[Resource]int{Boar: 1})
		require.ErrorIs(t, err, ErrInsufficientCapacity)
		require.Equal(t, 0, p.Amount(Boar), "rejected animals are not added")
	})

	t.Run("pastures and stables extend capacity", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 20}))
		require.NoError(t, p.BuildPastures([]Coord{{1, 1}, {1, 2}}))
		require.NoError(t, p.BuildStables([]Coord{{2, 4}}, 1))

		// House slot 1, free stable 1, pasture 2.
		require.NoError(t, p.AddAnimals(map[Resource]int{Sheep: 2, Boar: 1, Cattle: 1}))

		err := p.AddAnimals(map[Resource]int{Sheep: 1})
		require.ErrorIs(t, err, ErrInsufficientCapacity)
	})

	t.Run("unknown animal is malformed", func(t *testing.T) {
		p := testPlayer(t)
		require.ErrorIs(t, p.AddAnimals(map[Resource]int{Wood: 1}), ErrMalformedRequest)
	})
}

func TestPlayCard(t *testing.T) {
	t.Run("hand card applies and moves to played", func(t *testing.T) {
		p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 2}))
		card := &EffectCard{
			CardName: "basket maker",
			CardKind: Occupation,
			Deltas:   map[Resource]int{Wood: -1, Food: 2},
		}
		p.GiveCards(Occupation, card)

		require.NoError(t, p.PlayCard(card))
		require.Equal(t, 1, p.Amount(Wood))
		require.Equal(t, 2, p.Amount(Food))
		require.Empty(t, p.Hand(Occupation))
		require.Len(t, p.Played(Occupation), 1)
	})

	t.Run("card not in hand is malformed", func(t *testing.T) {
		p := testPlayer(t)
		card := &EffectCard{CardName: "stranger", CardKind: MinorImprovement}
		require.ErrorIs(t, p.PlayCard(card), ErrMalformedRequest)
	})

	t.Run("failed card effect keeps the card in hand", func(t *testing.T) {
		p := testPlayer(t)
		card := &EffectCard{
			CardName: "fireplace",
			CardKind: MajorImprovement,
			Deltas:   map[Resource]int{Clay: -2},
		}
		require.ErrorIs(t, p.PlayCard(card), ErrInsufficientResources)
		require.Empty(t, p.Played(MajorImprovement))
	})
}

func TestAtomicitySnapshot(t *testing.T) {
	// A rejected operation leaves ledger and regions exactly as before.
	p := testPlayer(t, WithStartingGoods(map[Resource]int{Wood: 3, Grain: 1}))
	require.NoError(t, p.PlowFields(Coord{1, 0}))

	before := make(map[Resource]int)
	for r := Resource(0); r < numStored; r++ {
		before[r] = p.Amount(r)
	}
	roomsBefore := p.Amount(Rooms)
	fieldsBefore := p.Amount(Fields)

	require.Error(t, p.BuildRooms(Coord{1, 1}))
	require.Error(t, p.Sow(2, 0))
	require.Error(t, p.BuildPastures([]Coord{{2, 2}}, []Coord{{2, 2}}))

	for r := Resource(0); r < numStored; r++ {
		require.Equal(t, before[r], p.Amount(r), "resource %v changed", r)
	}
	require.Equal(t, roomsBefore, p.Amount(Rooms))
	require.Equal(t, fieldsBefore, p.Amount(Fields))
}
