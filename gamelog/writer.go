// Package gamelog records every attempted board operation of a session as
// CSV rows, one file per session, for later inspection of a game.
package gamelog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"agricola/board"
)

// Record is one attempted operation plus the resource snapshot after it
// resolved. Failed operations leave the snapshot unchanged by construction.
type Record struct {
	Step   int
	Action string
	OK     bool
	Error  string

	Food, Wood, Clay, Stone, Reed, Grain, Veg int
	Sheep, Boar, Cattle                       int
}

// Snapshot builds a record from an operation outcome and the player's
// current ledger.
func Snapshot(step int, action string, err error, p *board.Player) Record {
	rec := Record{
		Step:   step,
		Action: action,
		OK:     err == nil,
		Food:   p.Amount(board.Food),
		Wood:   p.Amount(board.Wood),
		Clay:   p.Amount(board.Clay),
		Stone:  p.Amount(board.Stone),
		Reed:   p.Amount(board.Reed),
		Grain:  p.Amount(board.Grain),
		Veg:    p.Amount(board.Veg),
		Sheep:  p.Amount(board.Sheep),
		Boar:   p.Amount(board.Boar),
		Cattle: p.Amount(board.Cattle),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// Writer appends records to one CSV file.
type Writer struct {
	f *os.File
	w *csv.Writer
}

var header = []string{
	"step", "action", "ok", "error",
	"food", "wood", "clay", "stone", "reed", "grain", "veg",
	"sheep", "boar", "cattle",
}

// NewWriter creates the log file (and its directory) and writes the header.
func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create game log: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write game log header: %w", err)
	}
	return &Writer{f: f, w: w}, nil
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	row := []string{
		strconv.Itoa(rec.Step),
		rec.Action,
		strconv.FormatBool(rec.OK),
		rec.Error,
		strconv.Itoa(rec.Food),
		strconv.Itoa(rec.Wood),
		strconv.Itoa(rec.Clay),
		strconv.Itoa(rec.Stone),
		strconv.Itoa(rec.Reed),
		strconv.Itoa(rec.Grain),
		strconv.Itoa(rec.Veg),
		strconv.Itoa(rec.Sheep),
		strconv.Itoa(rec.Boar),
		strconv.Itoa(rec.Cattle),
	}
	if err := w.w.Write(row); err != nil {
		return fmt.Errorf("failed to write game log row: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
