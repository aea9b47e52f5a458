// Package engine drives a game session against one player board. It owns no
// rules of its own: every action resolves through the board's transaction
// path, the session just sequences actions, logs outcomes and keeps the step
// counter.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"agricola/board"
	"agricola/gamelog"
)

// Action is one player operation the session can apply to the board.
type Action interface {
	Name() string
	Apply(p *board.Player) error
}

type Option func(s *Session)

// WithGameLog makes the session record every attempted action.
func WithGameLog(w *gamelog.Writer) Option {
	return func(s *Session) {
		s.gameLog = w
	}
}

// Session applies actions to a single player board. Callers serialize: one
// session per board, one action at a time.
type Session struct {
	Player *board.Player

	gameLog *gamelog.Writer
	step    int
}

func NewSession(p *board.Player, options ...Option) *Session {
	s := &Session{Player: p}
	for _, option := range options {
		option(s)
	}
	return s
}

// Step is the number of actions attempted so far.
func (s *Session) Step() int { return s.step }

// Do applies one action. A failed action changes nothing on the board; the
// failure is logged and returned.
func (s *Session) Do(a Action) error {
	s.step++
	err := a.Apply(s.Player)

	if err != nil {
		log.Warn().Int("step", s.step).Str("action", a.Name()).Err(err).
			Msgf("player %s: action rejected", s.Player.Name)
	} else {
		log.Info().Int("step", s.step).Str("action", a.Name()).
			Msgf("player %s: action applied", s.Player.Name)
	}

	if s.gameLog != nil {
		if logErr := s.gameLog.Write(gamelog.Snapshot(s.step, a.Name(), err, s.Player)); logErr != nil {
			log.Error().Err(logErr).Msg("failed to write game log record")
		}
	}
	return err
}

// Run applies a scripted sequence, stopping at the first rejection.
func (s *Session) Run(actions []Action) error {
	for _, a := range actions {
		if err := s.Do(a); err != nil {
			return fmt.Errorf("step %d (%s): %w", s.step, a.Name(), err)
		}
	}
	return nil
}

// The concrete actions below wrap the board operations one to one.

type BuildRooms struct {
	Cells []board.Coord
}

func (a BuildRooms) Name() string { return fmt.Sprintf("build %d rooms", len(a.Cells)) }

func (a BuildRooms) Apply(p *board.Player) error { return p.BuildRooms(a.Cells...) }

type UpgradeHouse struct{}

func (UpgradeHouse) Name() string { return "upgrade house" }

func (UpgradeHouse) Apply(p *board.Player) error { return p.UpgradeHouse() }

type BuildPastures struct {
	Groups [][]board.Coord
}

func (a BuildPastures) Name() string { return fmt.Sprintf("build %d pastures", len(a.Groups)) }

func (a BuildPastures) Apply(p *board.Player) error { return p.BuildPastures(a.Groups...) }

type BuildStables struct {
	Cells    []board.Coord
	UnitCost int
}

func (a BuildStables) Name() string { return fmt.Sprintf("build %d stables", len(a.Cells)) }

func (a BuildStables) Apply(p *board.Player) error { return p.BuildStables(a.Cells, a.UnitCost) }

type PlowFields struct {
	Cells []board.Coord
}

func (a PlowFields) Name() string { return fmt.Sprintf("plow %d fields", len(a.Cells)) }

func (a PlowFields) Apply(p *board.Player) error { return p.PlowFields(a.Cells...) }

type Sow struct {
	Grain int
	Veg   int
}

func (a Sow) Name() string { return fmt.Sprintf("sow %d grain %d veg", a.Grain, a.Veg) }

func (a Sow) Apply(p *board.Player) error { return p.Sow(a.Grain, a.Veg) }

type BakeBread struct {
	N int
}

func (a BakeBread) Name() string { return fmt.Sprintf("bake bread x%d", a.N) }

func (a BakeBread) Apply(p *board.Player) error { return p.BakeBread(a.N) }

type CookFood struct {
	Counts map[board.Resource]int
}

func (CookFood) Name() string { return "cook food" }

func (a CookFood) Apply(p *board.Player) error { return p.CookFood(a.Counts) }

type AddPeople struct {
	N int
}

func (a AddPeople) Name() string { return fmt.Sprintf("add %d people", a.N) }

func (a AddPeople) Apply(p *board.Player) error { return p.AddPeople(a.N) }

type AddResources struct {
	Amounts map[board.Resource]int
}

func (AddResources) Name() string { return "add resources" }

func (a AddResources) Apply(p *board.Player) error { return p.AddResources(a.Amounts) }

type AddAnimals struct {
	Counts map[board.Resource]int
}

func (AddAnimals) Name() string { return "add animals" }

func (a AddAnimals) Apply(p *board.Player) error { return p.AddAnimals(a.Counts) }

type Harvest struct{}

func (Harvest) Name() string { return "harvest" }

func (Harvest) Apply(p *board.Player) error { return p.Harvest() }

type PlayCard struct {
	Card board.Card
}

func (a PlayCard) Name() string { return fmt.Sprintf("play %s", a.Card.Name()) }

func (a PlayCard) Apply(p *board.Player) error { return p.PlayCard(a.Card) }
