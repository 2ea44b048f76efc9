package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewGame EventType = iota
	EventDraw
	EventApply
	EventReveal
	EventBonus
	EventPoolFallback
	EventWin
	EventLose
	EventReset
	EventRejected // a selection or card was refused; state unchanged
)

func (e EventType) String() string {
	switch e {
	case EventNewGame:
		return "NewGame"
	case EventDraw:
		return "Draw"
	case EventApply:
		return "Apply"
	case EventReveal:
		return "Reveal"
	case EventBonus:
		return "Bonus"
	case EventPoolFallback:
		return "PoolFallback"
	case EventWin:
		return "Win"
	case EventLose:
		return "Lose"
	case EventReset:
		return "Reset"
	case EventRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game session.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // turn the event belongs to (1-based, 0 before the first card)
	Phase   string    // game phase after the event ("Playing", "Won", "Lost")
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Index   int       // position of the card in the draw, -1 if not applicable
	Value   int       // revealed value for Reveal, bonus for Bonus, otherwise 0
	Total   int       // running total after the event
	Details string    // human-readable detail string
}
