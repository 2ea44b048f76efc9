package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/twentyone/internal/game"
)

// Server hosts single-player games for any number of TCP clients.
// Each connection gets its own session.
type Server struct {
	Catalog *game.Catalog
	Addr    string // listen address, e.g. ":9000"
	Seed    int64  // RNG seed for every session (0 for random)
}

// Run listens on s.Addr and serves clients until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	log.Printf("Listening for players on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln, one goroutine per client. It closes ln
// when ctx is canceled and returns once every client has finished.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, conn); err != nil {
				log.Printf("Client %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

// ServeConn runs games for one client until it quits or disconnects.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) error {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	// Read the join handshake
	var join ClientMessage
	if err := json.NewDecoder(conn).Decode(&join); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != MsgJoin {
		return fmt.Errorf("expected join, got %q", join.Type)
	}

	id := uuid.NewString()
	ctrl := NewNetworkController(conn, id)
	if err := ctrl.SendWelcome(); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}
	log.Printf("Player %q joined from %s (session %s)", join.Name, conn.RemoteAddr(), id)

	rng := game.NewRNG(s.Seed)
	for {
		sess := game.NewSession(game.SessionConfig{Catalog: s.Catalog, RNG: rng})
		out, err := sess.Play(ctx, ctrl)
		if errors.Is(err, ErrPlayerQuit) {
			log.Printf("Session %s: player quit", id)
			return nil
		}
		if errors.Is(err, game.ErrCatalogUnavailable) {
			_ = ctrl.SendError(err)
			return err
		}
		if err != nil {
			return err
		}
		log.Printf("Session %s: %s at %d after %d turns", id, out.Phase, out.Total, out.Turns)

		again, err := ctrl.SendGameOver(sess.State(), out)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// PlayLocal runs one client REPL against an in-process server over net.Pipe,
// the same path a remote player takes.
func PlayLocal(ctx context.Context, srv *Server, client *Client) error {
	clientConn, serverConn := net.Pipe()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ServeConn(ctx, serverConn)
	}()

	client.conn = clientConn
	replErr := client.Join(ctx)
	clientConn.Close()
	srvErr := <-errCh

	if replErr != nil {
		return replErr
	}
	return srvErr
}
