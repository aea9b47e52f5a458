// Package config loads player-board setup from YAML: board shape, starting
// layout and goods, construction costs and conversion rates.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"agricola/board"
)

// Cell is a [row, col] pair as written in YAML.
type Cell [2]int

func (c Cell) Coord() board.Coord {
	return board.Coord{Row: c[0], Col: c[1]}
}

type Config struct {
	Board    BoardConfig    `yaml:"board"`
	House    HouseConfig    `yaml:"house"`
	Starting StartingConfig `yaml:"starting"`
	Rates    RatesConfig    `yaml:"rates"`
}

type BoardConfig struct {
	Rows     int      `yaml:"rows"`
	Cols     int      `yaml:"cols"`
	Rooms    []Cell   `yaml:"rooms"`
	Fields   []Cell   `yaml:"fields"`
	Pastures [][]Cell `yaml:"pastures"`
	Stables  []Cell   `yaml:"stables"`
}

type HouseConfig struct {
	Material string `yaml:"material"`
	RoomCost int    `yaml:"room_cost"`
}

type StartingConfig struct {
	Goods        map[string]int `yaml:"goods"`
	People       int            `yaml:"people"`
	PeopleAvail  int            `yaml:"people_avail"`
	FencesAvail  int            `yaml:"fences_avail"`
	StablesAvail int            `yaml:"stables_avail"`
}

type RatesConfig struct {
	Bread   []int          `yaml:"bread"`
	Cooking map[string]int `yaml:"cooking"`
}

// Default is the standard Agricola setup: 3x5 board, two wooden rooms, two
// people, empty stores.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Rows:  3,
			Cols:  5,
			Rooms: []Cell{{0, 0}, {0, 1}},
		},
		House: HouseConfig{
			Material: "wood",
			RoomCost: 5,
		},
		Starting: StartingConfig{
			People:       2,
			PeopleAvail:  3,
			FencesAvail:  15,
			StablesAvail: 4,
		},
		Rates: RatesConfig{
			Bread:   []int{0},
			Cooking: map[string]int{"grain": 1, "veg": 1, "sheep": 0, "boar": 0, "cattle": 0},
		},
	}
}

// Load reads a config file, starting from defaults so a file only has to
// name what it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// NewPlayer builds a player board from the config.
func (c *Config) NewPlayer(name string) (*board.Player, error) {
	material, err := board.ParseResource(c.House.Material)
	if err != nil {
		return nil, fmt.Errorf("house material: %w", err)
	}

	goods := map[board.Resource]int{
		board.People:       c.Starting.People,
		board.PeopleAvail:  c.Starting.PeopleAvail,
		board.FencesAvail:  c.Starting.FencesAvail,
		board.StablesAvail: c.Starting.StablesAvail,
	}
	for name, amount := range c.Starting.Goods {
		r, err := board.ParseResource(name)
		if err != nil {
			return nil, fmt.Errorf("starting goods: %w", err)
		}
		goods[r] = amount
	}

	cooking := make(map[board.Resource]int, len(c.Rates.Cooking))
	for name, rate := range c.Rates.Cooking {
		r, err := board.ParseResource(name)
		if err != nil {
			return nil, fmt.Errorf("cooking rates: %w", err)
		}
		cooking[r] = rate
	}

	options := []board.Option{
		board.WithShape(c.Board.Rows, c.Board.Cols),
		board.WithRooms(coords(c.Board.Rooms)...),
		board.WithStartingGoods(goods),
		board.WithHouseMaterial(material),
		board.WithRoomCost(c.House.RoomCost),
		board.WithBreadRates(c.Rates.Bread),
		board.WithCookingRates(cooking),
	}
	if len(c.Board.Fields) > 0 {
		options = append(options, board.WithFields(coords(c.Board.Fields)...))
	}
	if len(c.Board.Stables) > 0 {
		options = append(options, board.WithStables(coords(c.Board.Stables)...))
	}
	if len(c.Board.Pastures) > 0 {
		groups := make([][]board.Coord, len(c.Board.Pastures))
		for i, g := range c.Board.Pastures {
			groups[i] = coords(g)
		}
		options = append(options, board.WithPastures(groups...))
	}

	return board.NewPlayer(name, options...)
}

func coords(cells []Cell) []board.Coord {
	out := make([]board.Coord, len(cells))
	for i, c := range cells {
		out[i] = c.Coord()
	}
	return out
}
