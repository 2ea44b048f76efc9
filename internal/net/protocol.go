package net

import (
	"fmt"

	"github.com/peterkuimelis/twentyone/internal/game"
	"github.com/peterkuimelis/twentyone/internal/log"
)

// Message types for the JSON protocol over TCP.

const (
	MsgWelcome    = "welcome"
	MsgNotify     = "notify"
	MsgChooseCard = "choose_card"
	MsgGameOver   = "game_over"
	MsgError      = "error"

	MsgJoin   = "join"
	MsgSelect = "select"
	MsgAgain  = "again"
	MsgQuit   = "quit"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "welcome"
	SessionID string `json:"session_id,omitempty"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_card" and "game_over"
	State *StateView `json:"state,omitempty"`

	// For "choose_card"
	Turn  int        `json:"turn,omitempty"`
	Cards []CardView `json:"cards,omitempty"`

	// For "game_over"
	Result string `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Index   int    `json:"index"`
	Value   int    `json:"value,omitempty"`
	Total   int    `json:"total"`
	Details string `json:"details"`
}

// CardView describes one card of a draw, or a catalog entry.
type CardView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Op          string `json:"op"`
	Value       int    `json:"value"`
	Rarity      string `json:"rarity"`
	Weight      int    `json:"weight"`
	Color       string `json:"color"`
}

// StateView is the session state as shown to the player.
type StateView struct {
	Total          int    `json:"total"`
	Turns          int    `json:"turns"`
	PermanentBonus int    `json:"permanent_bonus"`
	Phase          string `json:"phase"`
	Target         int    `json:"target"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "select" (0-based position in the draw)
	Index int `json:"index"`

	// For "join"
	Name string `json:"name,omitempty"`
}

// --- View builders ---

// BuildStateView creates a StateView from a game state.
func BuildStateView(state game.GameState) *StateView {
	return &StateView{
		Total:          state.Total,
		Turns:          state.Turns,
		PermanentBonus: state.PermanentBonus,
		Phase:          state.Phase.String(),
		Target:         game.Target,
	}
}

// BuildCardView describes a card. bonus is the permanent bonus shown on its face.
func BuildCardView(index int, card game.CardDefinition, bonus int) CardView {
	return CardView{
		Index:       index,
		ID:          card.ID,
		Name:        card.String(),
		Text:        game.CardText(card, bonus),
		Description: card.Description,
		Op:          card.Op.Code(),
		Value:       card.Value,
		Rarity:      card.Rarity.String(),
		Weight:      card.Weight(),
		Color:       game.CardColor(card),
	}
}

// BuildDrawView describes the three cards of a draw.
func BuildDrawView(draw game.TurnDraw, bonus int) []CardView {
	views := make([]CardView, 0, len(draw.Cards))
	for i, c := range draw.Cards {
		views = append(views, BuildCardView(i, c, bonus))
	}
	return views
}

// BuildCatalogView describes every card in the catalog, in catalog order.
func BuildCatalogView(cat *game.Catalog) []CardView {
	cards := cat.Cards()
	views := make([]CardView, 0, len(cards))
	for i, c := range cards {
		views = append(views, BuildCardView(i, c, 0))
	}
	return views
}

// BuildEventView converts a logged game event.
func BuildEventView(event log.GameEvent) EventView {
	return EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Type:    event.Type.String(),
		Card:    event.Card,
		Index:   event.Index,
		Value:   event.Value,
		Total:   event.Total,
		Details: event.Details,
	}
}

// BuildEventViews converts a batch of events.
func BuildEventViews(events []log.GameEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, BuildEventView(e))
	}
	return views
}

// ResultText is the line shown on the game-over screen.
func ResultText(out game.Outcome) string {
	if out.Phase == game.PhaseWon {
		return fmt.Sprintf("You win! Landed on %d in %d turns.", out.Total, out.Turns)
	}
	return fmt.Sprintf("Bust! Final total %d after %d turns.", out.Total, out.Turns)
}
