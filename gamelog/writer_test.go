package gamelog

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"agricola/board"
)

func TestWriter(t *testing.T) {
	p, err := board.NewPlayer("test", board.WithStartingGoods(map[board.Resource]int{board.Wood: 3}))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "logs", "game.csv")
	w, err := NewWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.Write(Snapshot(1, "plowing 1 fields", nil, p)))
	require.NoError(t, w.Write(Snapshot(2, "building 1 rooms", errors.New("insufficient resources"), p)))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two records")
	require.Equal(t, header, rows[0])
	require.Equal(t, "1", rows[1][0])
	require.Equal(t, "true", rows[1][2])
	require.Equal(t, "3", rows[1][5], "wood snapshot")
	require.Equal(t, "false", rows[2][2])
	require.Equal(t, "insufficient resources", rows[2][3])
}
