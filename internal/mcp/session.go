package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/peterkuimelis/twentyone/internal/game"
	"github.com/peterkuimelis/twentyone/internal/log"
	"github.com/peterkuimelis/twentyone/internal/net"
)

// DecisionType identifies what the game is waiting for.
type DecisionType string

const (
	DecisionChooseCard DecisionType = "choose_card"
	DecisionGameOver   DecisionType = "game_over"
)

// PendingDecision is sent by the game goroutine when it needs input or has finished.
type PendingDecision struct {
	Type    DecisionType
	State   *net.StateView
	Turn    int
	Cards   []net.CardView
	Outcome *game.Outcome
	Err     error
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string          `json:"game_id,omitempty"`
	Events   []net.EventView `json:"events"`
	State    *net.StateView  `json:"state,omitempty"`
	Turn     int             `json:"turn,omitempty"`
	Draw     []net.CardView  `json:"draw,omitempty"`
	Revealed *int            `json:"revealed,omitempty"`
	Rejected string          `json:"rejected,omitempty"`
	GameOver bool            `json:"game_over"`
	Result   string          `json:"result,omitempty"`
}

// GameSession runs one game in a goroutine, driven by MCP tool calls.
type GameSession struct {
	ID string

	session *game.Session
	logger  *log.MemoryLogger
	ctrl    *MCPController

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	cancel context.CancelFunc
	done   chan struct{}
}

// NewGameSession starts a game on cat. The game goroutine runs until the
// game ends or Close is called.
func NewGameSession(cat *game.Catalog, seed int64) (*GameSession, error) {
	if cat.Len() == 0 {
		return nil, game.ErrCatalogUnavailable
	}

	logger := log.NewMemoryLogger()
	ctx, cancel := context.WithCancel(context.Background())
	sess := &GameSession{
		ID:        uuid.NewString(),
		session:   game.NewSession(game.SessionConfig{Catalog: cat, Logger: logger, Seed: seed}),
		logger:    logger,
		pendingCh: make(chan *PendingDecision, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	sess.ctrl = NewMCPController(sess)

	go func() {
		defer close(sess.done)
		out, err := sess.session.Play(ctx, sess.ctrl)
		final := &PendingDecision{
			Type:  DecisionGameOver,
			State: net.BuildStateView(sess.session.State()),
			Err:   err,
		}
		if err == nil {
			final.Outcome = &out
		}
		select {
		case sess.pendingCh <- final:
		default:
		}
	}()

	return sess, nil
}

// Select submits the player's choice for the pending draw and waits for the
// game to ask again or finish.
func (s *GameSession) Select(index int) (*ToolResponse, error) {
	p := s.currentPending
	if p == nil || p.Type != DecisionChooseCard {
		return nil, fmt.Errorf("%w: no card to choose", game.ErrInvalidSelection)
	}
	if index < 0 || index >= len(p.Cards) {
		return nil, fmt.Errorf("%w: index %d, must be 0-%d", game.ErrInvalidSelection, index, len(p.Cards)-1)
	}
	s.ctrl.responseCh <- index
	return s.waitForPending()
}

// waitForPending blocks until the next decision arrives from the game goroutine,
// then builds a ToolResponse with the events logged since the last call.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending
	if pending.Err != nil {
		return nil, pending.Err
	}
	return s.response(), nil
}

// response describes the current pending decision and drains new events.
func (s *GameSession) response() *ToolResponse {
	events := net.BuildEventViews(s.logger.Drain())
	resp := &ToolResponse{GameID: s.ID, Events: events}
	for _, e := range events {
		switch e.Type {
		case log.EventReveal.String():
			v := e.Value
			resp.Revealed = &v
		case log.EventRejected.String():
			resp.Rejected = e.Details
		}
	}

	p := s.currentPending
	if p == nil {
		return resp
	}
	resp.State = p.State
	if p.Type == DecisionGameOver {
		resp.GameOver = true
		if p.Outcome != nil {
			resp.Result = net.ResultText(*p.Outcome)
		}
		return resp
	}
	resp.Turn = p.Turn
	resp.Draw = p.Cards
	return resp
}

// Close stops the game goroutine and waits for it to exit.
func (s *GameSession) Close() {
	s.cancel()
	<-s.done
}

// Reset stops the game and returns the session to its pre-game state.
func (s *GameSession) Reset() *ToolResponse {
	s.Close()
	s.session.Reset()
	s.currentPending = nil
	resp := s.response()
	resp.State = net.BuildStateView(s.session.State())
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
