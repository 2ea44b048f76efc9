package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/twentyone/internal/log"
)

// sequenceRNG returns values from a pre-set sequence, reduced modulo n.
type sequenceRNG struct {
	values []int
	idx    int
}

func (r *sequenceRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

// testCard builds a card whose ID and name are both id.
func testCard(id string, op Operation, value int, rarity Rarity) CardDefinition {
	return CardDefinition{ID: id, Name: id, Op: op, Value: value, Rarity: rarity}
}

func mustCatalog(t *testing.T, cards ...CardDefinition) *Catalog {
	t.Helper()
	cat, err := NewCatalog(cards)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

// ScriptedController is a PlayerController that picks cards by ID from a script.
// Used in tests to deterministically drive the game.
type ScriptedController struct {
	t      *testing.T
	picks  []string
	pos    int
	events []log.GameEvent
	draws  []TurnDraw
}

func NewScriptedController(t *testing.T) *ScriptedController {
	return &ScriptedController{t: t}
}

// AddPick appends a card ID to choose on a future turn.
func (sc *ScriptedController) AddPick(id string) *ScriptedController {
	sc.picks = append(sc.picks, id)
	return sc
}

func (sc *ScriptedController) ChooseCard(ctx context.Context, state GameState, draw TurnDraw) (int, error) {
	sc.draws = append(sc.draws, draw)
	if sc.pos >= len(sc.picks) {
		// Default: first card
		return 0, nil
	}
	want := sc.picks[sc.pos]
	sc.pos++
	for i, c := range draw.Cards {
		if c.ID == want {
			return i, nil
		}
	}
	sc.t.Fatalf("turn %d: scripted card %q not in draw %v", draw.Turn, want, draw.Names())
	return 0, nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// indexController answers with scripted indices, then 0 once they run out.
type indexController struct {
	indices []int
	asked   int
}

func (c *indexController) ChooseCard(ctx context.Context, state GameState, draw TurnDraw) (int, error) {
	c.asked++
	if c.asked > len(c.indices) {
		return 0, nil
	}
	return c.indices[c.asked-1], nil
}

func (c *indexController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
