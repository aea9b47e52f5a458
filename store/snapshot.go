// Package store persists board snapshots: JSON compressed with zstd, indexed
// per session in sqlite. It sits entirely outside the engine; the board never
// knows it is being saved.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"agricola/board"
)

const snapshotVersion = 1

// SnapshotV1 is a full, self-contained copy of one player board.
type SnapshotV1 struct {
	Version int    `json:"version"`
	Player  string `json:"player"`
	Step    int    `json:"step"`

	Rows          int            `json:"rows"`
	Cols          int            `json:"cols"`
	HouseMaterial string         `json:"house_material"`
	Resources     map[string]int `json:"resources"`

	Rooms    [][2]int    `json:"rooms"`
	Fields   []FieldV1   `json:"fields"`
	Pastures []PastureV1 `json:"pastures"`
	Stables  [][2]int    `json:"stables"`
}

type FieldV1 struct {
	Cell  [2]int `json:"cell"`
	Items int    `json:"items"`
	Crop  string `json:"crop"`
}

type PastureV1 struct {
	Cells   [][2]int `json:"cells"`
	Stables int      `json:"stables"`
}

// Capture copies the player's full state into a snapshot.
func Capture(p *board.Player, step int) *SnapshotV1 {
	shape := p.Shape()
	snap := &SnapshotV1{
		Version:       snapshotVersion,
		Player:        p.Name,
		Step:          step,
		Rows:          shape.Rows,
		Cols:          shape.Cols,
		HouseMaterial: p.HouseMaterial().String(),
		Resources:     make(map[string]int),
	}
	for _, r := range []board.Resource{
		board.Food, board.Wood, board.Clay, board.Stone, board.Reed,
		board.Grain, board.Veg, board.Sheep, board.Boar, board.Cattle,
		board.People, board.PeopleAvail, board.FencesAvail, board.StablesAvail,
	} {
		snap.Resources[r.String()] = p.Amount(r)
	}

	reg := p.Registry()
	for _, r := range reg.Rooms() {
		snap.Rooms = append(snap.Rooms, cellOf(r.Space))
	}
	for _, f := range reg.Fields() {
		snap.Fields = append(snap.Fields, FieldV1{
			Cell:  cellOf(f.Space),
			Items: f.Items(),
			Crop:  f.Crop().String(),
		})
	}
	for _, pa := range reg.Pastures() {
		pv := PastureV1{Stables: pa.StableCount()}
		for _, c := range pa.Spaces() {
			pv.Cells = append(pv.Cells, cellOf(c))
		}
		snap.Pastures = append(snap.Pastures, pv)
	}
	for _, s := range reg.Stables() {
		snap.Stables = append(snap.Stables, cellOf(s.Space))
	}
	return snap
}

// Restore rebuilds a live player board from the snapshot.
func (s *SnapshotV1) Restore() (*board.Player, error) {
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	material, err := board.ParseResource(s.HouseMaterial)
	if err != nil {
		return nil, fmt.Errorf("snapshot house material: %w", err)
	}

	goods := make(map[board.Resource]int, len(s.Resources))
	for name, amount := range s.Resources {
		r, err := board.ParseResource(name)
		if err != nil {
			return nil, fmt.Errorf("snapshot resources: %w", err)
		}
		goods[r] = amount
	}

	var fieldCells []board.Coord
	for _, f := range s.Fields {
		fieldCells = append(fieldCells, coordOf(f.Cell))
	}
	var pastureGroups [][]board.Coord
	for _, pv := range s.Pastures {
		var cells []board.Coord
		for _, c := range pv.Cells {
			cells = append(cells, coordOf(c))
		}
		pastureGroups = append(pastureGroups, cells)
	}
	var stableCells []board.Coord
	for _, c := range s.Stables {
		stableCells = append(stableCells, coordOf(c))
	}
	var roomCells []board.Coord
	for _, c := range s.Rooms {
		roomCells = append(roomCells, coordOf(c))
	}

	p, err := board.NewPlayer(s.Player,
		board.WithShape(s.Rows, s.Cols),
		board.WithRooms(roomCells...),
		board.WithFields(fieldCells...),
		board.WithPastures(pastureGroups...),
		board.WithStables(stableCells...),
		board.WithStartingGoods(goods),
		board.WithHouseMaterial(material),
	)
	if err != nil {
		return nil, err
	}

	// Replay field contents. A field holds 3..1 grain or 2..1 veg; planting
	// then harvesting down reproduces any legal state.
	for i, fv := range s.Fields {
		f := p.Registry().Fields()[i]
		var full int
		switch fv.Crop {
		case "grain":
			if err := f.PlantGrain(); err != nil {
				return nil, err
			}
			full = 3
		case "veg":
			if err := f.PlantVeg(); err != nil {
				return nil, err
			}
			full = 2
		case "none":
			continue
		default:
			return nil, fmt.Errorf("snapshot field crop %q", fv.Crop)
		}
		if fv.Items > full || fv.Items < 1 {
			return nil, fmt.Errorf("snapshot field holds %d %s", fv.Items, fv.Crop)
		}
		for n := full; n > fv.Items; n-- {
			f.Harvest()
		}
	}

	// Stables enclosed at construction are already counted; top up pastures
	// whose counter was raised further by card effects.
	for i, pv := range s.Pastures {
		pa := p.Registry().Pastures()[i]
		if pv.Stables < pa.StableCount() {
			return nil, fmt.Errorf("snapshot pasture %d counts fewer stables than it encloses", i)
		}
		pa.AddStables(pv.Stables - pa.StableCount())
	}
	return p, nil
}

// Encode writes the snapshot as zstd-compressed JSON.
func (s *SnapshotV1) Encode(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("snapshot encoder: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	return zw.Close()
}

// EncodeBytes is Encode into a fresh buffer.
func (s *SnapshotV1) EncodeBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one snapshot written by Encode.
func Decode(r io.Reader) (*SnapshotV1, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot decoder: %w", err)
	}
	defer zr.Close()

	var snap SnapshotV1
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	return &snap, nil
}

func cellOf(c board.Coord) [2]int {
	return [2]int{c.Row, c.Col}
}

func coordOf(c [2]int) board.Coord {
	return board.Coord{Row: c[0], Col: c[1]}
}
