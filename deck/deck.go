// Package deck loads card definitions from Lua scripts and turns them into
// board transactions. A card script returns one table:
//
//	return {
//	    name = "Clay Oven",
//	    kind = "major improvement",
//	    cost = { clay = 3, stone = 1 },
//	    gain = { food = 2 },
//	    prereq = { rooms = 2 },
//	    bread_rates = { 5, 0 },
//	}
//
// cost and gain become the transaction deltas, prereq its explicit
// preconditions, and bread_rates (if present) replace the player's baking
// rates once the transaction has applied.
package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shopify/go-lua"

	"agricola/board"
)

// ScriptCard is a card whose effect was defined in Lua. It implements
// board.Card.
type ScriptCard struct {
	name string
	kind board.CardKind

	cost       map[board.Resource]int
	gain       map[board.Resource]int
	prereq     map[board.Resource]int
	breadRates []int
}

func (c *ScriptCard) Name() string         { return c.name }
func (c *ScriptCard) Kind() board.CardKind { return c.kind }

// CheckAndApply runs the card's effect as one transaction against the
// player. Rate changes only happen after the transaction applied.
func (c *ScriptCard) CheckAndApply(p *board.Player) error {
	deltas := make(map[board.Resource]int, len(c.cost)+len(c.gain))
	for r, v := range c.cost {
		deltas[r] -= v
	}
	for r, v := range c.gain {
		deltas[r] += v
	}

	if err := p.ChangeState("playing "+c.name, deltas, c.prereq); err != nil {
		return err
	}
	if c.breadRates != nil {
		if err := p.SetBreadRates(c.breadRates); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile runs one card script and extracts its definition.
func LoadFile(path string) (*ScriptCard, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)

	if err := lua.LoadFile(l, path, ""); err != nil {
		return nil, fmt.Errorf("load card script %s: %w", path, err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run card script %s: %w", path, err)
	}
	card, err := cardFromStack(l)
	if err != nil {
		return nil, fmt.Errorf("card script %s: %w", path, err)
	}
	return card, nil
}

// LoadDir loads every .lua file in a directory, in name order.
func LoadDir(dir string) ([]*ScriptCard, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read card directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	cards := make([]*ScriptCard, 0, len(paths))
	for _, path := range paths {
		card, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// cardFromStack reads the card table the script left on top of the stack.
func cardFromStack(l *lua.State) (*ScriptCard, error) {
	if l.TypeOf(-1) != lua.TypeTable {
		return nil, fmt.Errorf("script must return a table")
	}

	card := &ScriptCard{}

	l.Field(-1, "name")
	name, ok := l.ToString(-1)
	l.Pop(1)
	if !ok || name == "" {
		return nil, fmt.Errorf("card needs a name")
	}
	card.name = name

	l.Field(-1, "kind")
	kindName, _ := l.ToString(-1)
	l.Pop(1)
	kind, err := parseKind(kindName)
	if err != nil {
		return nil, err
	}
	card.kind = kind

	if card.cost, err = resourceTable(l, "cost"); err != nil {
		return nil, err
	}
	if card.gain, err = resourceTable(l, "gain"); err != nil {
		return nil, err
	}
	if card.prereq, err = resourceTable(l, "prereq"); err != nil {
		return nil, err
	}

	l.Field(-1, "bread_rates")
	if l.TypeOf(-1) == lua.TypeTable {
		n := l.RawLength(-1)
		if n == 0 {
			l.Pop(1)
			return nil, fmt.Errorf("bread_rates must not be empty")
		}
		for i := 1; i <= n; i++ {
			l.RawGetInt(-1, i)
			rate, ok := l.ToInteger(-1)
			l.Pop(1)
			if !ok {
				return nil, fmt.Errorf("bread_rates[%d] is not an integer", i)
			}
			card.breadRates = append(card.breadRates, rate)
		}
	}
	l.Pop(1)

	return card, nil
}

// resourceTable reads an optional table field mapping resource names to
// integer amounts.
func resourceTable(l *lua.State, field string) (map[board.Resource]int, error) {
	l.Field(-1, field)
	defer l.Pop(1)

	switch l.TypeOf(-1) {
	case lua.TypeNil:
		return nil, nil
	case lua.TypeTable:
	default:
		return nil, fmt.Errorf("%s must be a table", field)
	}

	out := make(map[board.Resource]int)
	l.PushNil()
	for l.Next(-2) {
		if l.TypeOf(-2) != lua.TypeString {
			l.Pop(2)
			return nil, fmt.Errorf("%s keys must be resource names", field)
		}
		name, _ := l.ToString(-2)
		amount, ok := l.ToInteger(-1)
		if !ok {
			l.Pop(2)
			return nil, fmt.Errorf("%s.%s is not an integer", field, name)
		}
		r, err := board.ParseResource(name)
		if err != nil {
			l.Pop(2)
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out[r] = amount
		l.Pop(1)
	}
	return out, nil
}

func parseKind(name string) (board.CardKind, error) {
	switch name {
	case "occupation":
		return board.Occupation, nil
	case "minor improvement", "minor":
		return board.MinorImprovement, nil
	case "major improvement", "major":
		return board.MajorImprovement, nil
	}
	return 0, fmt.Errorf("unknown card kind %q", name)
}
