package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/twentyone/internal/game"
	"github.com/peterkuimelis/twentyone/internal/log"
)

// ErrPlayerQuit is returned by ChooseCard when the client leaves mid-game.
var ErrPlayerQuit = errors.New("player quit")

// NetworkController implements game.PlayerController over a TCP connection.
type NetworkController struct {
	conn      net.Conn
	enc       *json.Encoder
	dec       *json.Decoder
	sessionID string
	mu        sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, sessionID string) *NetworkController {
	return &NetworkController{
		conn:      conn,
		enc:       json.NewEncoder(conn),
		dec:       json.NewDecoder(conn),
		sessionID: sessionID,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseCard implements game.PlayerController. Out-of-range indices are
// passed through; the session rejects them and asks again.
func (nc *NetworkController) ChooseCard(ctx context.Context, state game.GameState, draw game.TurnDraw) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:  MsgChooseCard,
		State: BuildStateView(state),
		Turn:  draw.Turn,
		Cards: BuildDrawView(draw, state.PermanentBonus),
	}
	if err := nc.send(msg); err != nil {
		return 0, fmt.Errorf("send choose_card: %w", err)
	}

	for {
		resp, err := nc.recv()
		if err != nil {
			return 0, fmt.Errorf("recv select: %w", err)
		}
		switch resp.Type {
		case MsgSelect:
			return resp.Index, nil
		case MsgQuit:
			return 0, ErrPlayerQuit
		default:
			if err := nc.send(ServerMessage{Type: MsgError, Error: fmt.Sprintf("expected select, got %q", resp.Type)}); err != nil {
				return 0, fmt.Errorf("send error: %w", err)
			}
		}
	}
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	ev := BuildEventView(event)
	return nc.send(ServerMessage{Type: MsgNotify, Event: &ev})
}

// SendWelcome tells the client which session it was given.
func (nc *NetworkController) SendWelcome() error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgWelcome, SessionID: nc.sessionID})
}

// SendError reports a failure the client can recover from.
func (nc *NetworkController) SendError(err error) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgError, Error: err.Error()})
}

// SendGameOver sends a game_over message and waits for the client to ask for
// another game. It reports whether the client wants to play again.
func (nc *NetworkController) SendGameOver(state game.GameState, out game.Outcome) (bool, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:   MsgGameOver,
		State:  BuildStateView(state),
		Result: ResultText(out),
	}
	if err := nc.send(msg); err != nil {
		return false, fmt.Errorf("send game_over: %w", err)
	}

	resp, err := nc.recv()
	if err != nil {
		return false, fmt.Errorf("recv again: %w", err)
	}
	return resp.Type == MsgAgain, nil
}
