package board

// CardKind distinguishes the three card piles a player can hold.
type CardKind int

const (
	Occupation CardKind = iota
	MinorImprovement
	MajorImprovement
)

func (k CardKind) String() string {
	switch k {
	case Occupation:
		return "occupation"
	case MinorImprovement:
		return "minor improvement"
	case MajorImprovement:
		return "major improvement"
	}
	return "card"
}

// Card is the interface the card/effect layer implements. A card's effect is
// expressed entirely as transactions against the player it is played on, so
// the board's atomicity guarantees carry over to card play.
type Card interface {
	Name() string
	Kind() CardKind
	CheckAndApply(p *Player) error
}

// EffectCard is a plain deltas-and-preconditions card, enough for most
// improvements. Scripted cards live in the deck package.
type EffectCard struct {
	CardName string
	CardKind CardKind
	Deltas   map[Resource]int
	Prereqs  map[Resource]int
}

func (c *EffectCard) Name() string   { return c.CardName }
func (c *EffectCard) Kind() CardKind { return c.CardKind }

func (c *EffectCard) CheckAndApply(p *Player) error {
	return p.ChangeState("playing "+c.CardName, c.Deltas, c.Prereqs)
}
