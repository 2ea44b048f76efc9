package mcp

import (
	"context"

	"github.com/peterkuimelis/twentyone/internal/game"
	"github.com/peterkuimelis/twentyone/internal/log"
	"github.com/peterkuimelis/twentyone/internal/net"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	session    *GameSession
	responseCh chan int
}

// NewMCPController creates a controller bound to session.
func NewMCPController(session *GameSession) *MCPController {
	return &MCPController{
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseCard implements game.PlayerController.
func (c *MCPController) ChooseCard(ctx context.Context, state game.GameState, draw game.TurnDraw) (int, error) {
	c.session.pendingCh <- &PendingDecision{
		Type:  DecisionChooseCard,
		State: net.BuildStateView(state),
		Turn:  draw.Turn,
		Cards: net.BuildDrawView(draw, state.PermanentBonus),
	}

	select {
	case idx := <-c.responseCh:
		return idx, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Notify implements game.PlayerController. Events are read back from the
// session's logger, which numbers them.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
