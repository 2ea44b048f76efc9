package game

// Target is the absolute total that wins the game. Going past it loses.
const Target = 21

// GameState is the mutable state of one play session, passed by value.
type GameState struct {
	Total          int
	Turns          int
	PermanentBonus int
	Phase          Phase
}

// NewGameState returns the state a session starts from.
func NewGameState() GameState {
	return GameState{Phase: PhasePlaying}
}

// Over reports whether the game has reached a terminal phase.
func (s GameState) Over() bool {
	return s.Phase.Terminal()
}

// Resolve evaluates the win/loss rules against the total, in priority order:
// past ±21 loses, exactly ±21 wins, anything else keeps playing.
func Resolve(s GameState) GameState {
	switch {
	case s.Total > Target || s.Total < -Target:
		s.Phase = PhaseLost
	case s.Total == Target || s.Total == -Target:
		s.Phase = PhaseWon
	default:
		s.Phase = PhasePlaying
	}
	return s
}

// Outcome is the terminal summary of a finished game.
type Outcome struct {
	Phase Phase
	Total int
	Turns int
}
