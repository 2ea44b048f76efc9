package game

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"

	"github.com/peterkuimelis/twentyone/internal/log"
)

// PlayerController is the interface that terminal, network and scripted players implement.
type PlayerController interface {
	// ChooseCard presents the current draw and waits for the player to pick an index.
	ChooseCard(ctx context.Context, state GameState, draw TurnDraw) (int, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// SessionConfig holds configuration for creating a new session.
type SessionConfig struct {
	Catalog *Catalog // nil until the catalog has loaded
	Logger  log.EventLogger
	RNG     RNG   // random source for draws and reveals (overrides Seed)
	Seed    int64 // RNG seed (0 for random)
}

// TurnResult is what the presentation layer receives after a card is applied.
type TurnResult struct {
	Effect Effect
	State  GameState

	// Next is the following turn's draw. Nil once the game is over.
	Next *TurnDraw

	// Outcome is set when the card ended the game.
	Outcome *Outcome
}

// Session owns the GameState of one play session. It is not safe for
// concurrent use; callers that share a session must serialize access.
type Session struct {
	catalog *Catalog
	logger  log.EventLogger
	rng     RNG

	state   GameState
	draw    TurnDraw
	started bool

	ctx  context.Context
	ctrl PlayerController
}

// NewSession creates a session in the pre-game state.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	rng := cfg.RNG
	if rng == nil {
		rng = NewRNG(cfg.Seed)
	}
	return &Session{
		catalog: cfg.Catalog,
		logger:  logger,
		rng:     rng,
		state:   NewGameState(),
		ctx:     context.Background(),
	}
}

// Catalog returns the session's catalog (nil if none was loaded).
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Logger returns the session's event logger.
func (s *Session) Logger() log.EventLogger {
	return s.logger
}

// State returns a copy of the current game state.
func (s *Session) State() GameState {
	return s.state
}

// Started reports whether a game has been dealt since the last reset.
func (s *Session) Started() bool {
	return s.started
}

// CurrentDraw returns the draw awaiting a selection, if any.
func (s *Session) CurrentDraw() (TurnDraw, bool) {
	if !s.started || s.state.Over() {
		return TurnDraw{}, false
	}
	return s.draw, true
}

// Outcome returns the final result once the game is over.
func (s *Session) Outcome() (Outcome, bool) {
	if !s.started || !s.state.Over() {
		return Outcome{}, false
	}
	return Outcome{Phase: s.state.Phase, Total: s.state.Total, Turns: s.state.Turns}, true
}

// Start resets the state and deals the first draw.
func (s *Session) Start() (TurnDraw, error) {
	s.state = NewGameState()
	s.draw = TurnDraw{}
	s.started = false

	if s.catalog.Len() == 0 {
		return TurnDraw{}, ErrCatalogUnavailable
	}

	s.log(log.NewGameEvent())
	if err := s.deal(); err != nil {
		return TurnDraw{}, err
	}
	s.started = true
	return s.draw, nil
}

// SelectCard applies the card at index of draw, which must be the most recent
// draw. On error the state is left unchanged.
func (s *Session) SelectCard(draw TurnDraw, index int) (TurnResult, error) {
	if err := s.checkSelection(draw); err != nil {
		s.reject(err)
		return TurnResult{}, err
	}
	card, err := s.draw.Card(index)
	if err != nil {
		s.reject(err)
		return TurnResult{}, err
	}

	next, eff, err := ApplyCard(s.state, card, s.rng)
	if err != nil {
		s.reject(err)
		return TurnResult{}, err
	}
	eff.Index = index
	prevBonus := s.state.PermanentBonus
	s.state = next

	phase := next.Phase.String()
	s.log(log.NewApplyEvent(next.Turns, phase, card.String(), index, eff.Before, eff.After))
	if eff.Revealed != nil {
		sign := "+"
		if card.Op == OpRandomSubtract {
			sign = "-"
		}
		s.log(log.NewRevealEvent(next.Turns, phase, card.String(), index, sign, *eff.Revealed, next.Total))
	}
	if next.PermanentBonus != prevBonus {
		s.log(log.NewBonusEvent(next.Turns, phase, card.String(), index, next.PermanentBonus, next.Total))
	}

	result := TurnResult{Effect: eff, State: next}
	if next.Over() {
		out := Outcome{Phase: next.Phase, Total: next.Total, Turns: next.Turns}
		result.Outcome = &out
		if next.Phase == PhaseWon {
			s.log(log.NewWinEvent(next.Turns, next.Total))
		} else {
			s.log(log.NewLoseEvent(next.Turns, next.Total))
		}
		return result, nil
	}

	if err := s.deal(); err != nil {
		return result, err
	}
	nextDraw := s.draw
	result.Next = &nextDraw
	return result, nil
}

// Reset returns the session to the pre-game state.
func (s *Session) Reset() {
	s.state = NewGameState()
	s.draw = TurnDraw{}
	s.started = false
	s.log(log.NewResetEvent())
}

// Play runs a whole game through ctrl: it deals, asks for a card until the
// game ends, and re-prompts after a rejected selection or an invalid card.
func (s *Session) Play(ctx context.Context, ctrl PlayerController) (Outcome, error) {
	s.ctx = ctx
	s.ctrl = ctrl
	defer func() {
		s.ctx = context.Background()
		s.ctrl = nil
	}()

	if _, err := s.Start(); err != nil {
		return Outcome{}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		idx, err := ctrl.ChooseCard(ctx, s.state, s.draw)
		if err != nil {
			return Outcome{}, fmt.Errorf("choose card: %w", err)
		}
		res, err := s.SelectCard(s.draw, idx)
		if errors.Is(err, ErrInvalidSelection) || errors.Is(err, ErrInvalidCard) {
			continue
		}
		if err != nil {
			return Outcome{}, err
		}
		if res.Outcome != nil {
			return *res.Outcome, nil
		}
	}
}

// checkSelection verifies a game is in progress and draw is the current one.
func (s *Session) checkSelection(draw TurnDraw) error {
	if !s.started {
		return fmt.Errorf("%w: no game in progress", ErrInvalidSelection)
	}
	if s.state.Over() {
		return fmt.Errorf("%w: game is already %s", ErrInvalidSelection, s.state.Phase)
	}
	if draw.Turn != s.draw.Turn {
		return fmt.Errorf("%w: draw for turn %d is stale (current turn %d)", ErrInvalidSelection, draw.Turn, s.draw.Turn)
	}
	return nil
}

// deal rebuilds the pool for the current total and draws the next turn's cards.
func (s *Session) deal() error {
	pool, err := BuildPool(s.catalog, s.state.Total)
	if err != nil {
		return err
	}
	turn := s.state.Turns + 1
	if err := pool.Anomaly(); err != nil {
		stdlog.Printf("Turn %d: %v (total %d)", turn, err, s.state.Total)
		s.log(log.NewPoolFallbackEvent(turn, s.state.Total, pool.Len(), err))
	}
	draw, err := DrawCards(pool, turn, s.rng)
	if err != nil {
		return err
	}
	s.draw = draw
	s.log(log.NewDrawEvent(turn, s.state.Total, draw.Names()))
	return nil
}

func (s *Session) reject(err error) {
	s.log(log.NewRejectedEvent(s.state.Turns, s.state.Phase.String(), s.state.Total, err.Error()))
}

func (s *Session) log(event log.GameEvent) {
	s.logger.Log(event)
	// Notify the controller (ignore errors for notifications)
	if s.ctrl != nil {
		_ = s.ctrl.Notify(s.ctx, event)
	}
}
