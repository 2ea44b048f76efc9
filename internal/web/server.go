package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/peterkuimelis/twentyone/internal/game"
	gamelog "github.com/peterkuimelis/twentyone/internal/log"
	"github.com/peterkuimelis/twentyone/internal/net"
)

//go:embed static
var staticFiles embed.FS

// Message types exchanged over /ws.
const (
	MsgStart  = "start"
	MsgSelect = "select"
	MsgReset  = "reset"

	MsgTurn     = "turn"
	MsgResult   = "result"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// ClientMessage is a browser request.
type ClientMessage struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// ServerMessage is a reply to the browser.
type ServerMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	State     *net.StateView  `json:"state,omitempty"`
	Turn      int             `json:"turn,omitempty"`
	Cards     []net.CardView  `json:"cards,omitempty"`
	Played    *net.CardView   `json:"played,omitempty"`
	Revealed  *int            `json:"revealed,omitempty"`
	Events    []net.EventView `json:"events,omitempty"`
	Result    string          `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Server is the twentyone web UI server.
type Server struct {
	catalog *game.Catalog
	seed    int64
	mux     *http.ServeMux
}

// NewServer creates a new web server playing from cat. seed 0 means random.
func NewServer(cat *game.Catalog, seed int64) *Server {
	s := &Server{
		catalog: cat,
		seed:    seed,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)

	// One game per WebSocket connection
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	if s.catalog.Len() == 0 {
		http.Error(w, game.ErrCatalogUnavailable.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(net.BuildCatalogView(s.catalog))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	p := newPlayer(s.catalog, s.seed)

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				log.Printf("WebSocket read (session %s): %v", p.id, err)
			}
			return
		}
		for _, reply := range p.handle(msg) {
			if err := wsjson.Write(ctx, wsConn, reply); err != nil {
				log.Printf("WebSocket write (session %s): %v", p.id, err)
				return
			}
		}
	}
}

// player is the game state behind one WebSocket connection. Only the
// connection's goroutine touches it.
type player struct {
	id      string
	session *game.Session
	logger  *gamelog.MemoryLogger
}

func newPlayer(cat *game.Catalog, seed int64) *player {
	logger := gamelog.NewMemoryLogger()
	return &player{
		id:      uuid.NewString(),
		session: game.NewSession(game.SessionConfig{Catalog: cat, Logger: logger, Seed: seed}),
		logger:  logger,
	}
}

// handle applies one browser request and returns the replies to send.
func (p *player) handle(msg ClientMessage) []ServerMessage {
	switch msg.Type {
	case MsgStart:
		draw, err := p.session.Start()
		if err != nil {
			return []ServerMessage{p.errorMessage(err)}
		}
		return []ServerMessage{p.turnMessage(draw)}

	case MsgSelect:
		// Always the session's own draw; a zero draw when no game is running.
		draw, _ := p.session.CurrentDraw()
		res, err := p.session.SelectCard(draw, msg.Index)
		if err != nil {
			return []ServerMessage{p.errorMessage(err)}
		}
		played := net.BuildCardView(res.Effect.Index, res.Effect.Card, res.Effect.BonusApplied)
		result := ServerMessage{
			Type:      MsgResult,
			SessionID: p.id,
			State:     net.BuildStateView(res.State),
			Played:    &played,
			Revealed:  res.Effect.Revealed,
			Events:    net.BuildEventViews(p.logger.Drain()),
		}
		if res.Outcome != nil {
			return []ServerMessage{result, {
				Type:      MsgGameOver,
				SessionID: p.id,
				State:     net.BuildStateView(res.State),
				Result:    net.ResultText(*res.Outcome),
			}}
		}
		return []ServerMessage{result, p.turnMessage(*res.Next)}

	case MsgReset:
		p.session.Reset()
		return []ServerMessage{{
			Type:      MsgReset,
			SessionID: p.id,
			State:     net.BuildStateView(p.session.State()),
			Events:    net.BuildEventViews(p.logger.Drain()),
		}}

	default:
		return []ServerMessage{{Type: MsgError, SessionID: p.id, Error: "unknown message type " + msg.Type}}
	}
}

func (p *player) turnMessage(draw game.TurnDraw) ServerMessage {
	state := p.session.State()
	return ServerMessage{
		Type:      MsgTurn,
		SessionID: p.id,
		State:     net.BuildStateView(state),
		Turn:      draw.Turn,
		Cards:     net.BuildDrawView(draw, state.PermanentBonus),
		Events:    net.BuildEventViews(p.logger.Drain()),
	}
}

func (p *player) errorMessage(err error) ServerMessage {
	return ServerMessage{
		Type:      MsgError,
		SessionID: p.id,
		State:     net.BuildStateView(p.session.State()),
		Error:     err.Error(),
		Events:    net.BuildEventViews(p.logger.Drain()),
	}
}
