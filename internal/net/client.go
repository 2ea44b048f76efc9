package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	name string
	in   *bufio.Reader
	out  io.Writer
}

// NewClient creates a client that reads choices from in and renders to out.
func NewClient(name string, in io.Reader, out io.Writer) *Client {
	return &Client{name: name, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server and runs the REPL.
func Connect(ctx context.Context, addr string, client *Client) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	client.conn = conn
	return client.Join(ctx)
}

// Join sends the join handshake and runs the REPL until the player is done.
func (c *Client) Join(ctx context.Context) error {
	enc := json.NewEncoder(c.conn)
	if err := enc.Encode(ClientMessage{Type: MsgJoin, Name: c.name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return c.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgWelcome:
			fmt.Fprintf(c.out, "Connected (session %s). Reach exactly 21 or -21 to win.\n", msg.SessionID)

		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChooseCard:
			c.renderState(msg.State)
			c.renderCards(msg.Cards)
			idx, quit := c.readChoice(len(msg.Cards))
			reply := ClientMessage{Type: MsgSelect, Index: idx}
			if quit {
				reply = ClientMessage{Type: MsgQuit}
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send %s: %w", reply.Type, err)
			}
			if quit {
				return nil
			}

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprint(c.out, "Play again? (y/n): ")
			again := c.readYesNo()
			reply := ClientMessage{Type: MsgQuit}
			if again {
				reply.Type = MsgAgain
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send %s: %w", reply.Type, err)
			}
			if !again {
				return nil
			}

		case MsgError:
			fmt.Fprintf(c.out, "Error: %s\n", msg.Error)
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil || ev.Type == "Draw" {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 8 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  TOTAL: %-4d  Target: ±%d\n", sv.Total, sv.Target)
	fmt.Fprintf(c.out, "║  Turns: %-4d  Bonus: +%d\n", sv.Turns, sv.PermanentBonus)
	fmt.Fprintln(c.out, "╚══════════════════════════════════╝")
}

func (c *Client) renderCards(cards []CardView) {
	fmt.Fprintln(c.out, "\nPick a card:")
	for _, cv := range cards {
		fmt.Fprintf(c.out, "  %d) %-10s %-14s [%s]\n", cv.Index+1, cv.Text, cv.Name, cv.Rarity)
	}
	fmt.Fprintln(c.out, "  q) quit")
}

// readChoice returns a 0-based index, or quit on "q" or end of input.
func (c *Client) readChoice(count int) (int, bool) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" || (err != nil && line == "") {
			return 0, true
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, false // convert to 0-indexed
	}
}

// readYesNo treats end of input as "no".
func (c *Client) readYesNo() bool {
	for {
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(strings.ToLower(line))
		switch line {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		if err != nil {
			return false
		}
		fmt.Fprint(c.out, "Enter y or n: ")
	}
}
