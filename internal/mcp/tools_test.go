package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/twentyone/internal/game"
	"github.com/peterkuimelis/twentyone/internal/net"
)

// newCallToolRequest builds a tool call request with arguments.
func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func decodeResponse(t *testing.T, result *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	return resp
}

// elevenCatalog deals nothing but +11.
func elevenCatalog(t *testing.T) *game.Catalog {
	t.Helper()
	cat, err := game.NewCatalog([]game.CardDefinition{
		{ID: "eleven", Name: "Eleven", Op: game.OpAdd, Value: 11, Rarity: game.RarityCommon},
	})
	require.NoError(t, err)
	return cat
}

func TestStartSelectUntilGameOver(t *testing.T) {
	cat, err := game.NewCatalog([]game.CardDefinition{
		{ID: "seven", Name: "Seven", Op: game.OpAdd, Value: 7, Rarity: game.RarityCommon, Type: "plus"},
	})
	require.NoError(t, err)
	h := NewHandler(cat, 42)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	start := decodeResponse(t, result)
	assert.NotEmpty(t, start.GameID)
	assert.Equal(t, 1, start.Turn)
	require.Len(t, start.Draw, game.DrawSize)
	assert.Equal(t, "+7", start.Draw[0].Text)
	assert.Equal(t, 0, start.State.Total)
	assert.False(t, start.GameOver)

	var last ToolResponse
	for i := 0; i < 3; i++ {
		result, err = h.handleSelectCard(ctx, newCallToolRequest("select_card", map[string]any{"index": i}))
		require.NoError(t, err)
		last = decodeResponse(t, result)
		assert.Equal(t, start.GameID, last.GameID)
	}

	assert.True(t, last.GameOver)
	assert.Equal(t, 21, last.State.Total)
	assert.Equal(t, "Won", last.State.Phase)
	assert.Equal(t, 3, last.State.Turns)
	assert.Contains(t, last.Result, "You win!")
	assert.Empty(t, last.Draw)

	// No card to pick once the game is over.
	result, err = h.handleSelectCard(ctx, newCallToolRequest("select_card", map[string]any{"index": 0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid selection")
}

func TestSelectCardOutOfRange(t *testing.T) {
	h := NewHandler(elevenCatalog(t), 1)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	decodeResponse(t, result)

	result, err = h.handleSelectCard(ctx, newCallToolRequest("select_card", map[string]any{"index": 5}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid selection")

	// State unchanged.
	result, err = h.handleGetGameState(ctx, newCallToolRequest("get_game_state", nil))
	require.NoError(t, err)
	state := decodeResponse(t, result)
	assert.Equal(t, 0, state.State.Total)
	assert.Equal(t, 0, state.State.Turns)
	assert.Len(t, state.Draw, game.DrawSize)
}

func TestSelectCardWithoutGame(t *testing.T) {
	h := NewHandler(elevenCatalog(t), 1)

	result, err := h.handleSelectCard(context.Background(), newCallToolRequest("select_card", map[string]any{"index": 0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = h.handleGetGameState(context.Background(), newCallToolRequest("get_game_state", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGetGameStateDrainsEvents(t *testing.T) {
	h := NewHandler(elevenCatalog(t), 1)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	start := decodeResponse(t, result)
	require.Len(t, start.Events, 2)
	assert.Equal(t, "NewGame", start.Events[0].Type)
	assert.Equal(t, "Draw", start.Events[1].Type)

	result, err = h.handleGetGameState(ctx, newCallToolRequest("get_game_state", nil))
	require.NoError(t, err)
	state := decodeResponse(t, result)
	assert.Empty(t, state.Events)
	assert.NotNil(t, state.Events, "events should encode as an empty list")
	assert.Equal(t, start.Draw, state.Draw)
}

func TestResetGame(t *testing.T) {
	h := NewHandler(elevenCatalog(t), 1)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	decodeResponse(t, result)
	result, err = h.handleSelectCard(ctx, newCallToolRequest("select_card", map[string]any{"index": 1}))
	require.NoError(t, err)
	played := decodeResponse(t, result)
	assert.Equal(t, 11, played.State.Total)

	result, err = h.handleResetGame(ctx, newCallToolRequest("reset_game", nil))
	require.NoError(t, err)
	reset := decodeResponse(t, result)
	assert.Equal(t, 0, reset.State.Total)
	assert.Equal(t, "Playing", reset.State.Phase)
	require.NotEmpty(t, reset.Events)
	assert.Equal(t, "Reset", reset.Events[len(reset.Events)-1].Type)

	result, err = h.handleGetGameState(ctx, newCallToolRequest("get_game_state", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError, "no game after reset")

	result, err = h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	restarted := decodeResponse(t, result)
	assert.Equal(t, 1, restarted.Turn)
}

func TestStartGameReplacesRunningGame(t *testing.T) {
	h := NewHandler(elevenCatalog(t), 1)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	first := decodeResponse(t, result)

	result, err = h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	second := decodeResponse(t, result)
	assert.NotEqual(t, first.GameID, second.GameID)
}

func TestStartGameWithoutCatalog(t *testing.T) {
	h := NewHandler(nil, 0)

	result, err := h.handleStartGame(context.Background(), newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "catalog unavailable")

	result, err = h.handleListCards(context.Background(), newCallToolRequest("list_cards", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestRevealedValueReported(t *testing.T) {
	cat, err := game.NewCatalog([]game.CardDefinition{
		{ID: "dice", Name: "Dice Roll", Op: game.OpRandomAdd, Value: 6, Rarity: game.RarityUncommon},
	})
	require.NoError(t, err)
	h := NewHandler(cat, 8)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	decodeResponse(t, result)

	result, err = h.handleSelectCard(ctx, newCallToolRequest("select_card", map[string]any{"index": 0}))
	require.NoError(t, err)
	resp := decodeResponse(t, result)
	require.NotNil(t, resp.Revealed)
	assert.GreaterOrEqual(t, *resp.Revealed, 1)
	assert.LessOrEqual(t, *resp.Revealed, 6)
	assert.Equal(t, *resp.Revealed, resp.State.Total)
}

func TestSelectInvalidCardKeepsGame(t *testing.T) {
	cat, err := game.NewCatalog([]game.CardDefinition{
		{ID: "void", Name: "Void", Op: game.OpDivide, Value: 0, Rarity: game.RarityCommon},
	})
	require.NoError(t, err)
	h := NewHandler(cat, 3)
	defer h.Close()
	ctx := context.Background()

	result, err := h.handleStartGame(ctx, newCallToolRequest("start_game", nil))
	require.NoError(t, err)
	start := decodeResponse(t, result)

	for i := 0; i < 2; i++ {
		result, err = h.handleSelectCard(ctx, newCallToolRequest("select_card", map[string]any{"index": 0}))
		require.NoError(t, err)
		require.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "invalid card")
	}

	result, err = h.handleGetGameState(ctx, newCallToolRequest("get_game_state", nil))
	require.NoError(t, err)
	state := decodeResponse(t, result)
	assert.False(t, state.GameOver)
	assert.Equal(t, 0, state.State.Turns)
	assert.Equal(t, start.Turn, state.Turn)
	assert.Equal(t, start.Draw, state.Draw)
}

func TestListCards(t *testing.T) {
	cat, err := game.DefaultCatalog()
	require.NoError(t, err)
	h := NewHandler(cat, 0)

	result, err := h.handleListCards(context.Background(), newCallToolRequest("list_cards", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var cards []net.CardView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &cards))
	assert.Len(t, cards, cat.Len())
}
