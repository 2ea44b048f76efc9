package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

// Events returns a copy of all logged events.
func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Drain returns all events logged since the previous Drain and forgets them.
// Sequence numbers keep increasing across drains.
func (l *MemoryLogger) Drain() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	for len(phase) < 8 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewGameEvent() GameEvent {
	return GameEvent{
		Phase:   "Playing",
		Type:    EventNewGame,
		Index:   -1,
		Details: "=== New game (total 0) ===",
	}
}

func NewDrawEvent(turn int, total int, cards []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Playing",
		Type:    EventDraw,
		Index:   -1,
		Total:   total,
		Details: fmt.Sprintf("Drawn: %s", strings.Join(cards, " | ")),
	}
}

func NewApplyEvent(turn int, phase string, cardName string, index int, before, after int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventApply,
		Card:    cardName,
		Index:   index,
		Total:   after,
		Details: fmt.Sprintf("Card %d: %s (total %d → %d)", index+1, cardName, before, after),
	}
}

func NewRevealEvent(turn int, phase string, cardName string, index int, sign string, value int, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventReveal,
		Card:    cardName,
		Index:   index,
		Value:   value,
		Total:   total,
		Details: fmt.Sprintf("%s reveals %s%d", cardName, sign, value),
	}
}

func NewBonusEvent(turn int, phase string, cardName string, index int, bonus int, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventBonus,
		Card:    cardName,
		Index:   index,
		Value:   bonus,
		Total:   total,
		Details: fmt.Sprintf("Permanent bonus is now +%d", bonus),
	}
}

func NewPoolFallbackEvent(turn int, total int, size int, reason error) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Playing",
		Type:    EventPoolFallback,
		Index:   -1,
		Total:   total,
		Details: fmt.Sprintf("%v (total %d, %d cards)", reason, total, size),
	}
}

func NewWinEvent(turn int, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Won",
		Type:    EventWin,
		Index:   -1,
		Total:   total,
		Details: fmt.Sprintf("You win! Landed on %d in %d turns", total, turn),
	}
}

func NewLoseEvent(turn int, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Lost",
		Type:    EventLose,
		Index:   -1,
		Total:   total,
		Details: fmt.Sprintf("Bust! Total %d after %d turns", total, turn),
	}
}

func NewResetEvent() GameEvent {
	return GameEvent{
		Type:    EventReset,
		Index:   -1,
		Details: "Session reset",
	}
}

func NewRejectedEvent(turn int, phase string, total int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventRejected,
		Index:   -1,
		Total:   total,
		Details: fmt.Sprintf("Rejected: %s", reason),
	}
}
