package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"agricola/board"
)

func TestDefaultNewPlayer(t *testing.T) {
	p, err := Default().NewPlayer("alice")
	require.NoError(t, err)

	require.Equal(t, board.Shape{Rows: 3, Cols: 5}, p.Shape())
	require.Equal(t, 2, p.Amount(board.Rooms))
	require.Equal(t, board.Wood, p.HouseMaterial())
	require.Equal(t, 15, p.Amount(board.FencesAvail))
}

func TestLoad(t *testing.T) {
	t.Run("file overrides defaults, rest stays", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.yaml")
		data := `
starting:
  goods:
    wood: 7
    grain: 2
house:
  material: clay
  room_cost: 5
rates:
  bread: [2, 1]
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "clay", cfg.House.Material)
		require.Equal(t, []int{2, 1}, cfg.Rates.Bread)
		require.Equal(t, 3, cfg.Board.Rows, "unnamed sections keep defaults")

		p, err := cfg.NewPlayer("bob")
		require.NoError(t, err)
		require.Equal(t, 7, p.Amount(board.Wood))
		require.Equal(t, 2, p.Amount(board.Grain))
		require.Equal(t, board.Clay, p.HouseMaterial())
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("unknown resource name errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.yaml")
		data := `
starting:
  goods:
    gold: 1
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)

		_, err = cfg.NewPlayer("carol")
		require.ErrorIs(t, err, board.ErrMalformedRequest)
	})

	t.Run("scripted layout builds the board", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.yaml")
		data := `
board:
  rooms: [[0, 0], [0, 1]]
  fields: [[1, 0], [1, 1]]
  pastures:
    - [[2, 2], [2, 3]]
  stables: [[2, 2]]
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		cfg, err := Load(path)
		require.NoError(t, err)

		p, err := cfg.NewPlayer("dave")
		require.NoError(t, err)
		require.Equal(t, 2, p.Amount(board.Fields))
		require.Equal(t, 1, p.Amount(board.Pastures))
		require.Equal(t, 1, p.Amount(board.FencedStables))
		require.Equal(t, 4, p.Registry().Pastures()[0].Capacity())
	})
}
