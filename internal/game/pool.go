package game

import "fmt"

// DrawSize is the number of cards offered each turn.
const DrawSize = 3

// Pool is the weighted set of cards a turn's draw is sampled from.
// It is rebuilt every turn.
type Pool struct {
	Cards []CardDefinition

	// Fallback is set when filtering left nothing and the pool was
	// replaced by one copy of every catalog card.
	Fallback bool
}

// Len returns the number of entries in the pool.
func (p Pool) Len() int {
	return len(p.Cards)
}

// Count returns how many entries of the card with the given ID are in the pool.
func (p Pool) Count(id string) int {
	n := 0
	for _, c := range p.Cards {
		if c.ID == id {
			n++
		}
	}
	return n
}

// Anomaly returns ErrEmptyPoolRecovered for a fallback pool, nil otherwise.
func (p Pool) Anomaly() error {
	if p.Fallback {
		return ErrEmptyPoolRecovered
	}
	return nil
}

// BuildPool expands the catalog into a weighted pool for the given total.
// Each card appears Weight() times. At total 0 multiply and divide cards are
// left out. If that empties the pool, every catalog card appears once.
func BuildPool(cat *Catalog, total int) (Pool, error) {
	if cat.Len() == 0 {
		return Pool{}, ErrCatalogUnavailable
	}

	var cards []CardDefinition
	for _, card := range cat.cards {
		if total == 0 && card.ScalesTotal() {
			continue
		}
		for i := 0; i < card.Weight(); i++ {
			cards = append(cards, card)
		}
	}

	if len(cards) == 0 {
		return Pool{Cards: cat.Cards(), Fallback: true}, nil
	}
	return Pool{Cards: cards}, nil
}

// TurnDraw is the set of cards offered to the player for one turn.
// Duplicates are allowed.
type TurnDraw struct {
	Turn  int // turn number this draw was dealt for (1-based)
	Cards [DrawSize]CardDefinition
}

// Card returns the card at index, or ErrInvalidSelection when out of range.
func (d TurnDraw) Card(index int) (CardDefinition, error) {
	if index < 0 || index >= len(d.Cards) {
		return CardDefinition{}, fmt.Errorf("%w: index %d out of range 0-%d", ErrInvalidSelection, index, len(d.Cards)-1)
	}
	return d.Cards[index], nil
}

// Names returns the display names of the drawn cards.
func (d TurnDraw) Names() []string {
	names := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		names[i] = c.String()
	}
	return names
}

// DrawCards samples DrawSize cards from the pool independently and uniformly,
// with replacement.
func DrawCards(pool Pool, turn int, rng RNG) (TurnDraw, error) {
	if pool.Len() == 0 {
		return TurnDraw{}, ErrCatalogUnavailable
	}
	draw := TurnDraw{Turn: turn}
	for i := range draw.Cards {
		draw.Cards[i] = pool.Cards[rng.Intn(pool.Len())]
	}
	return draw, nil
}
