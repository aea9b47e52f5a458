package board

import (
	"fmt"
	"sort"
)

// houseProgression is the order house materials upgrade in.
var houseProgression = []Resource{Wood, Clay, Stone}

type playerSetup struct {
	shape    Shape
	rooms    []Coord
	fields   []Coord
	pastures [][]Coord
	stables  []Coord

	goods         map[Resource]int
	houseMaterial Resource
	roomCost      int
	breadRates    []int
	cookingRates  map[Resource]int
}

// Option customizes a new player board.
type Option func(s *playerSetup)

// WithShape overrides the default 3x5 board.
func WithShape(rows, cols int) Option {
	return func(s *playerSetup) {
		s.shape = Shape{Rows: rows, Cols: cols}
	}
}

// WithRooms replaces the default starting rooms at (0,0) and (0,1).
func WithRooms(cells ...Coord) Option {
	return func(s *playerSetup) {
		s.rooms = cells
	}
}

// WithFields pre-plows fields, mostly for tests and scripted scenarios.
func WithFields(cells ...Coord) Option {
	return func(s *playerSetup) {
		s.fields = cells
	}
}

// WithPastures pre-builds pastures without charging wood.
func WithPastures(groups ...[]Coord) Option {
	return func(s *playerSetup) {
		s.pastures = groups
	}
}

// WithStables pre-builds stables without charging wood.
func WithStables(cells ...Coord) Option {
	return func(s *playerSetup) {
		s.stables = cells
	}
}

// WithStartingGoods sets initial amounts for any stored resources,
// overriding the defaults for the ones named.
func WithStartingGoods(goods map[Resource]int) Option {
	return func(s *playerSetup) {
		for r, v := range goods {
			s.goods[r] = v
		}
	}
}

// WithHouseMaterial sets the starting house material.
func WithHouseMaterial(m Resource) Option {
	return func(s *playerSetup) {
		s.houseMaterial = m
	}
}

// WithRoomCost sets the per-room material cost.
func WithRoomCost(cost int) Option {
	return func(s *playerSetup) {
		s.roomCost = cost
	}
}

// WithBreadRates sets the food-per-grain rates for baking. The final rate
// repeats indefinitely.
func WithBreadRates(rates []int) Option {
	return func(s *playerSetup) {
		s.breadRates = rates
	}
}

// WithCookingRates overrides food-per-unit cooking rates.
func WithCookingRates(rates map[Resource]int) Option {
	return func(s *playerSetup) {
		for r, v := range rates {
			s.cookingRates[r] = v
		}
	}
}

// Player is one player's board: a region registry, a resource ledger, and
// the operations that may change them. Every mutation goes through a
// Transaction, so after any error the board is exactly as it was before.
//
// A Player is not safe for concurrent use; the session driving the game
// serializes operations on it.
type Player struct {
	Name string

	shape    Shape
	registry *Registry
	ledger   Ledger

	houseMaterial Resource
	roomCost      int

	// The last bread rate can be applied any number of times in one turn.
	breadRates   []int
	cookingRates map[Resource]int
	harvestRates map[Resource][]int

	hand   map[CardKind][]Card
	played map[CardKind][]Card
}

// NewPlayer builds a board with the standard starting layout: two connected
// wooden rooms, two people, and empty stores. Options override any part of
// the setup. The initial layout passes the same placement and connectivity
// checks as in-game construction.
func NewPlayer(name string, options ...Option) (*Player, error) {
	s := &playerSetup{
		shape: Shape{Rows: 3, Cols: 5},
		rooms: []Coord{{0, 0}, {0, 1}},
		goods: map[Resource]int{
			People:       2,
			PeopleAvail:  3,
			FencesAvail:  15,
			StablesAvail: 4,
		},
		houseMaterial: Wood,
		roomCost:      5,
		breadRates:    []int{0},
		cookingRates: map[Resource]int{
			Grain: 1, Veg: 1, Sheep: 0, Boar: 0, Cattle: 0,
		},
	}
	for _, option := range options {
		option(s)
	}

	switch s.houseMaterial {
	case Wood, Clay, Stone:
	default:
		return nil, fmt.Errorf("%w: %v is not a house material", ErrMalformedRequest, s.houseMaterial)
	}
	if len(s.breadRates) == 0 {
		return nil, fmt.Errorf("%w: bread rates must name at least a final rate", ErrMalformedRequest)
	}

	p := &Player{
		Name:          name,
		shape:         s.shape,
		registry:      NewRegistry(s.shape),
		houseMaterial: s.houseMaterial,
		roomCost:      s.roomCost,
		breadRates:    s.breadRates,
		cookingRates:  s.cookingRates,
		harvestRates:  map[Resource][]int{Wood: {}, Clay: {}, Reed: {}},
		hand:          make(map[CardKind][]Card),
		played:        make(map[CardKind][]Card),
	}
	for r, v := range s.goods {
		if !r.Stored() {
			return nil, fmt.Errorf("%w: %v cannot be a starting good", ErrMalformedRequest, r)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: negative starting amount %d of %v", ErrMalformedRequest, v, r)
		}
		p.ledger.Add(r, v)
	}

	// Register the initial layout in the same order and with the same
	// overlap exceptions as in-game construction.
	if err := p.registry.Register(roomRegions(s.rooms), KindRoom, nil); err != nil {
		return nil, err
	}
	pastures, err := pastureRegions(s.pastures)
	if err != nil {
		return nil, err
	}
	if err := p.registry.Register(pastures, KindPasture, map[Kind]bool{KindStable: true}); err != nil {
		return nil, err
	}
	if err := p.registry.Register(stableRegions(s.stables), KindStable, map[Kind]bool{KindPasture: true}); err != nil {
		return nil, err
	}
	fields, err := fieldRegions(s.fields)
	if err != nil {
		return nil, err
	}
	if err := p.registry.Register(fields, KindField, nil); err != nil {
		return nil, err
	}
	for _, st := range p.registry.Stables() {
		if pas := p.registry.fencedBy(st); pas != nil {
			pas.AddStables(1)
		}
	}
	return p, nil
}

func roomRegions(cells []Coord) []Region {
	out := make([]Region, len(cells))
	for i, c := range cells {
		out[i] = &Room{Space: c}
	}
	return out
}

func stableRegions(cells []Coord) []Region {
	out := make([]Region, len(cells))
	for i, c := range cells {
		out[i] = &Stable{Space: c}
	}
	return out
}

func fieldRegions(cells []Coord) ([]Region, error) {
	out := make([]Region, len(cells))
	for i, c := range cells {
		f, err := NewField(c, 0, CropNone)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func pastureRegions(groups [][]Coord) ([]Region, error) {
	out := make([]Region, len(groups))
	for i, g := range groups {
		pa, err := NewPasture(g)
		if err != nil {
			return nil, err
		}
		out[i] = pa
	}
	return out, nil
}

// Shape returns the board dimensions.
func (p *Player) Shape() Shape { return p.shape }

// Registry exposes the spatial state for read-only consumers like renderers.
func (p *Player) Registry() *Registry { return p.registry }

// HouseMaterial is what the player's rooms are currently built of.
func (p *Player) HouseMaterial() Resource { return p.houseMaterial }

// Amount returns the current value of any resource, stored or derived.
func (p *Player) Amount(r Resource) int {
	if r.Stored() {
		return p.ledger.Get(r)
	}
	switch r {
	case Rooms:
		return len(p.registry.Rooms())
	case Fields:
		return len(p.registry.Fields())
	case GrainFields:
		return p.countFields(CropGrain)
	case VegFields:
		return p.countFields(CropVeg)
	case EmptyFields:
		return p.countFields(CropNone)
	case Pastures:
		return len(p.registry.Pastures())
	case Fences:
		return len(p.registry.FenceSet())
	case Stables:
		return len(p.registry.Stables())
	case FencedStables:
		return p.registry.FencedStables()
	case FreeStables:
		return p.registry.FreeStables()
	case UsedSpaces:
		return len(p.registry.UsedCells())
	case EmptySpaces:
		return len(p.registry.EmptyCells())
	}
	panic(fmt.Sprintf("amount of unknown resource %v", r))
}

func (p *Player) countFields(crop Crop) int {
	n := 0
	for _, f := range p.registry.Fields() {
		if f.Crop() == crop {
			n++
		}
	}
	return n
}

// FenceSet is the deduplicated set of fence segments across all pastures.
func (p *Player) FenceSet() map[Edge]bool {
	return p.registry.FenceSet()
}

// ChangeState runs an ad-hoc transaction against the board. This is the
// entry point the card/effect layer uses for effects that are pure resource
// arithmetic.
func (p *Player) ChangeState(description string, deltas, prereqs map[Resource]int) error {
	t, err := NewTransaction(description, deltas, prereqs)
	if err != nil {
		return err
	}
	return t.CheckAndApply(p)
}

// BuildRooms extends the house. Each room costs the current house material
// times the room cost, plus two reed. The new rooms must keep the house
// connected.
func (p *Player) BuildRooms(cells ...Coord) error {
	if len(cells) == 0 {
		return fmt.Errorf("%w: no room cells given", ErrMalformedRequest)
	}
	rooms := roomRegions(cells)
	if err := p.registry.CheckAddition(rooms, KindRoom, nil); err != nil {
		return err
	}

	n := len(cells)
	t, err := NewTransaction(
		fmt.Sprintf("building %d rooms", n),
		map[Resource]int{p.houseMaterial: -p.roomCost * n, Reed: -2 * n},
		nil,
	)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		p.registry.add(rooms, KindRoom)
	})
	return t.CheckAndApply(p)
}

// UpgradeHouse moves the house material one step along wood, clay, stone,
// paying one unit of the new material per room plus one reed.
func (p *Player) UpgradeHouse() error {
	idx := -1
	for i, m := range houseProgression {
		if m == p.houseMaterial {
			idx = i
			break
		}
	}
	if idx < 0 || idx == len(houseProgression)-1 {
		return fmt.Errorf("%w: house of %v cannot be upgraded", ErrMalformedRequest, p.houseMaterial)
	}
	next := houseProgression[idx+1]

	t, err := NewTransaction(
		fmt.Sprintf("upgrading house from %v to %v", p.houseMaterial, next),
		map[Resource]int{next: -p.Amount(Rooms), Reed: -1},
		nil,
	)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		p.houseMaterial = next
	})
	return t.CheckAndApply(p)
}

// BuildPastures fences one or more new cell groups. The wood and fence cost
// is the number of fence segments the new group adds beyond fences already
// standing. Free stables enclosed by a new pasture start multiplying its
// capacity.
func (p *Player) BuildPastures(groups ...[]Coord) error {
	if len(groups) == 0 {
		return fmt.Errorf("%w: no pasture cells given", ErrMalformedRequest)
	}
	regions, err := pastureRegions(groups)
	if err != nil {
		return err
	}
	if err := p.registry.CheckAddition(regions, KindPasture, map[Kind]bool{KindStable: true}); err != nil {
		return err
	}

	pastures := make([]*Pasture, len(regions))
	for i, r := range regions {
		pastures[i] = r.(*Pasture)
	}
	newFences := 0
	existing := p.registry.FenceSet()
	for e := range FencesForGroup(pastures) {
		if !existing[e] {
			newFences++
		}
	}

	t, err := NewTransaction(
		fmt.Sprintf("building %d pastures", len(pastures)),
		map[Resource]int{Wood: -newFences, FencesAvail: -newFences},
		nil,
	)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		p.registry.add(regions, KindPasture)
		for _, pa := range pastures {
			for _, st := range p.registry.Stables() {
				for _, c := range pa.Spaces() {
					if c == st.Space {
						pa.AddStables(1)
					}
				}
			}
		}
	})
	return t.CheckAndApply(p)
}

// BuildStables places stables at the given cells for unitCost wood each.
// Stables may stand on pasture cells; a stable inside a pasture doubles that
// pasture's capacity instead of housing an animal itself.
func (p *Player) BuildStables(cells []Coord, unitCost int) error {
	if len(cells) == 0 {
		return fmt.Errorf("%w: no stable cells given", ErrMalformedRequest)
	}
	stables := stableRegions(cells)
	if err := p.registry.CheckAddition(stables, KindStable, map[Kind]bool{KindPasture: true}); err != nil {
		return err
	}

	n := len(cells)
	t, err := NewTransaction(
		fmt.Sprintf("building %d stables", n),
		map[Resource]int{Wood: -unitCost * n, StablesAvail: -n},
		nil,
	)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		p.registry.add(stables, KindStable)
		for _, r := range stables {
			if pa := p.registry.fencedBy(r.(*Stable)); pa != nil {
				pa.AddStables(1)
			}
		}
	})
	return t.CheckAndApply(p)
}

// PlowFields turns empty cells into fields. Plowing costs nothing but still
// runs through a transaction so all mutation stays on the one path.
func (p *Player) PlowFields(cells ...Coord) error {
	if len(cells) == 0 {
		return fmt.Errorf("%w: no field cells given", ErrMalformedRequest)
	}
	fields, err := fieldRegions(cells)
	if err != nil {
		return err
	}
	if err := p.registry.CheckAddition(fields, KindField, nil); err != nil {
		return err
	}

	t, err := NewTransaction(fmt.Sprintf("plowing %d fields", len(cells)), nil, nil)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		p.registry.add(fields, KindField)
	})
	return t.CheckAndApply(p)
}

// Sow plants grain and vegetables into empty fields, in field order: the
// first nGrain empty fields get grain, the next nVeg get vegetables.
func (p *Player) Sow(nGrain, nVeg int) error {
	if nGrain < 0 || nVeg < 0 {
		return fmt.Errorf("%w: negative sow counts %d grain / %d veg", ErrMalformedRequest, nGrain, nVeg)
	}

	t, err := NewTransaction(
		fmt.Sprintf("sowing %d grain and %d veg", nGrain, nVeg),
		map[Resource]int{Grain: -nGrain, Veg: -nVeg},
		map[Resource]int{EmptyFields: nGrain + nVeg},
	)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		planted := 0
		for _, f := range p.registry.Fields() {
			if !f.IsEmpty() {
				continue
			}
			if planted < nGrain {
				f.PlantGrain()
			} else if planted < nGrain+nVeg {
				f.PlantVeg()
			} else {
				break
			}
			planted++
		}
	})
	return t.CheckAndApply(p)
}

// BakeBread converts n grain to food. The first uses take the listed
// non-final rates in order; any remaining uses repeat the final rate.
func (p *Player) BakeBread(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative bake count %d", ErrMalformedRequest, n)
	}
	final := p.breadRates[len(p.breadRates)-1]
	if n > len(p.breadRates)-1 && final == 0 {
		return fmt.Errorf("%w: baking %d times but only %d non-repeating rates and the final rate is 0",
			ErrMalformedRequest, n, len(p.breadRates)-1)
	}

	food := 0
	for i := 0; i < n; i++ {
		if i < len(p.breadRates)-1 {
			food += p.breadRates[i]
		} else {
			food += final
		}
	}

	return p.ChangeState(
		fmt.Sprintf("baking bread %d times for %d food", n, food),
		map[Resource]int{Grain: -n, Food: food},
		nil,
	)
}

// CookFood converts crops or animals to food at the player's cooking rates.
func (p *Player) CookFood(counts map[Resource]int) error {
	deltas := map[Resource]int{Food: 0}
	for r, c := range counts {
		rate, ok := p.cookingRates[r]
		if !ok {
			return fmt.Errorf("%w: no cooking rate for %v", ErrMalformedRequest, r)
		}
		if c < 0 {
			return fmt.Errorf("%w: negative cook count %d of %v", ErrMalformedRequest, c, r)
		}
		deltas[r] = -c
		deltas[Food] += rate * c
	}
	return p.ChangeState("cooking food", deltas, nil)
}

// SetBreadRates replaces the baking rates, for card effects that improve
// the player's oven.
func (p *Player) SetBreadRates(rates []int) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: bread rates must name at least a final rate", ErrMalformedRequest)
	}
	p.breadRates = rates
	return nil
}

// SetCookingRate replaces one cooking rate, for card effects.
func (p *Player) SetCookingRate(r Resource, rate int) {
	p.cookingRates[r] = rate
}

// AddPeople grows the family by n, consuming available people.
func (p *Player) AddPeople(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: adding %d people", ErrMalformedRequest, n)
	}
	return p.ChangeState(
		fmt.Sprintf("adding %d people", n),
		map[Resource]int{People: n, PeopleAvail: -n},
		nil,
	)
}

// AddResources credits goods to the ledger. Only goods are accepted here;
// animals go through AddAnimals so housing is checked.
func (p *Player) AddResources(amounts map[Resource]int) error {
	deltas := make(map[Resource]int, len(amounts))
	for r, v := range amounts {
		if !r.Good() {
			return fmt.Errorf("%w: %v is not a good", ErrMalformedRequest, r)
		}
		deltas[r] = v
	}
	return p.ChangeState("adding resources", deltas, nil)
}

// AddAnimals takes new animals onto the board, but only if the whole herd
// after the addition still fits the player's housing: one always-free slot
// in the house, one slot per free stable, and each pasture's capacity, with
// each species housed as its own group.
func (p *Player) AddAnimals(counts map[Resource]int) error {
	deltas := make(map[Resource]int, len(counts))
	for r, v := range counts {
		if !r.Animal() {
			return fmt.Errorf("%w: %v is not an animal", ErrMalformedRequest, r)
		}
		if v < 0 {
			return fmt.Errorf("%w: negative animal count %d of %v", ErrMalformedRequest, v, r)
		}
		deltas[r] = v
	}

	t, err := NewTransaction("adding animals", deltas, nil)
	if err != nil {
		return err
	}
	t.WithPrereqFn(func(p *Player) error {
		var herd []int
		for _, animal := range []Resource{Sheep, Boar, Cattle} {
			if n := p.Amount(animal) + deltas[animal]; n > 0 {
				herd = append(herd, n)
			}
		}
		sort.Ints(herd)

		capacities := CapacityMultiset{}
		capacities[1] += p.Amount(FreeStables) + 1
		for _, pa := range p.registry.Pastures() {
			capacities[pa.Capacity()]++
		}
		if !Satisfy(herd, capacities) {
			return fmt.Errorf("%w: herd %v does not fit housing", ErrInsufficientCapacity, herd)
		}
		return nil
	})
	return t.CheckAndApply(p)
}

// Harvest takes one unit off every planted field into the ledger.
func (p *Player) Harvest() error {
	grain, veg := 0, 0
	for _, f := range p.registry.Fields() {
		switch f.Crop() {
		case CropGrain:
			grain++
		case CropVeg:
			veg++
		}
	}

	t, err := NewTransaction(
		fmt.Sprintf("harvesting %d grain and %d veg", grain, veg),
		map[Resource]int{Grain: grain, Veg: veg},
		nil,
	)
	if err != nil {
		return err
	}
	t.WithEffectFn(func(p *Player) {
		for _, f := range p.registry.Fields() {
			f.Harvest()
		}
	})
	return t.CheckAndApply(p)
}

// Score tallies the board at game end.
// TODO: category scoring tables (fields, pastures, animals, house, people).
func (p *Player) Score() int {
	return 0
}

// GiveCards deals cards into the player's hand.
func (p *Player) GiveCards(kind CardKind, cards ...Card) {
	p.hand[kind] = append(p.hand[kind], cards...)
}

// Hand returns the player's unplayed cards of one kind.
func (p *Player) Hand(kind CardKind) []Card { return p.hand[kind] }

// Played returns the player's played cards of one kind.
func (p *Player) Played(kind CardKind) []Card { return p.played[kind] }

// PlayCard applies a card's effect and moves it from hand to played. Major
// improvements are bought from the common pool, so they skip the hand check.
func (p *Player) PlayCard(c Card) error {
	if c.Kind() != MajorImprovement {
		found := false
		for _, held := range p.hand[c.Kind()] {
			if held == c {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s %q is not in hand", ErrMalformedRequest, c.Kind(), c.Name())
		}
	}

	if err := c.CheckAndApply(p); err != nil {
		return err
	}

	if c.Kind() != MajorImprovement {
		held := p.hand[c.Kind()]
		for i, card := range held {
			if card == c {
				p.hand[c.Kind()] = append(held[:i], held[i+1:]...)
				break
			}
		}
	}
	p.played[c.Kind()] = append(p.played[c.Kind()], c)
	return nil
}
