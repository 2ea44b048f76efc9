package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/twentyone/internal/game"
	"github.com/peterkuimelis/twentyone/internal/net"
)

// Handler owns the active game (one per stdio process) and serves the tools.
type Handler struct {
	catalog *game.Catalog
	seed    int64

	mu     sync.Mutex
	active *GameSession
}

// NewHandler creates a tool handler playing from cat. seed 0 means random.
func NewHandler(cat *game.Catalog, seed int64) *Handler {
	return &Handler{catalog: cat, seed: seed}
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, h *Handler) {
	s.AddTool(startGameTool(), h.handleStartGame)
	s.AddTool(selectCardTool(), h.handleSelectCard)
	s.AddTool(getGameStateTool(), h.handleGetGameState)
	s.AddTool(resetGameTool(), h.handleResetGame)
	s.AddTool(listCardsTool(), h.handleListCards)
}

// Close stops the active game, if any.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active != nil {
		h.active.Close()
		h.active = nil
	}
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new game of 21. The total starts at 0; each turn you pick one of three cards "+
			"that changes it. Land on exactly 21 or -21 to win, go past either and you lose. "+
			"Returns the state and the first draw. Starting again abandons the current game."),
	)
}

func selectCardTool() mcp.Tool {
	return mcp.NewTool("select_card",
		mcp.WithDescription("Play one card of the current draw. Returns the events it caused and the next draw, "+
			"or the result when the game ends."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based position of the card in the draw (0, 1 or 2)")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current state, draw and any events since the last call without playing a card. Read-only."),
	)
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Abandon the current game and return to the start screen."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card in the catalog with its operation, value, rarity and draw weight. Read-only."),
	)
}

// --- Tool handlers ---

func (h *Handler) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil {
		h.active.Close()
		h.active = nil
	}

	sess, err := NewGameSession(h.catalog, h.seed)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	resp, err := sess.waitForPending()
	if err != nil {
		sess.Close()
		return mcp.NewToolResultErrorf("Failed to deal the first draw: %v", err), nil
	}
	h.active = sess

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleSelectCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	index := request.GetInt("index", -1)
	resp, err := h.active.Select(index)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}
	if resp.Rejected != "" {
		return mcp.NewToolResultErrorf("%s; the draw is unchanged, pick another card", resp.Rejected), nil
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp := h.active.response()
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp := h.active.Reset()
	h.active = nil

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (h *Handler) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.catalog.Len() == 0 {
		return mcp.NewToolResultErrorf("%v", game.ErrCatalogUnavailable), nil
	}
	return mcp.NewToolResultText(respondJSON(net.BuildCatalogView(h.catalog))), nil
}
