package game

import "fmt"

// Effect describes what applying one card did.
type Effect struct {
	Card   CardDefinition
	Index  int // position of the card in the draw, -1 when applied directly
	Before int // total before the card
	After  int // total after the card

	// Revealed is the random magnitude drawn for RandomAdd / RandomSubtract.
	Revealed *int

	// BonusApplied is the permanent bonus added on top of an Add / RandomAdd.
	BonusApplied int
}

// ApplyCard applies card to state and returns the resolved next state.
// On error the input state is returned unchanged.
func ApplyCard(state GameState, card CardDefinition, rng RNG) (GameState, Effect, error) {
	if state.Over() {
		return state, Effect{}, fmt.Errorf("%w: game is already %s", ErrInvalidSelection, state.Phase)
	}
	if err := ValidateCard(card); err != nil {
		return state, Effect{}, err
	}

	next := state
	eff := Effect{Card: card, Index: -1, Before: state.Total}

	switch card.Op {
	case OpAdd:
		next.Total += card.Value + state.PermanentBonus
		eff.BonusApplied = state.PermanentBonus
	case OpSubtract:
		next.Total -= card.Value
	case OpMultiply:
		next.Total *= card.Value
	case OpDivide:
		next.Total = floorDiv(state.Total, card.Value)
	case OpRandomAdd:
		r := rng.Intn(card.Value) + 1
		eff.Revealed = &r
		next.Total += r + state.PermanentBonus
		eff.BonusApplied = state.PermanentBonus
	case OpRandomSubtract:
		r := rng.Intn(card.Value) + 1
		eff.Revealed = &r
		next.Total -= r
	case OpPermanentAdd:
		next.PermanentBonus += card.Value
	}

	next.Turns++
	next = Resolve(next)
	eff.After = next.Total
	return next, eff, nil
}

// MaxCardValue bounds the magnitude of a card's value so totals and the
// permanent bonus stay far from int overflow.
const MaxCardValue = 1_000_000

// ValidateCard checks the numeric precondition of the card's operation.
func ValidateCard(card CardDefinition) error {
	if card.Value > MaxCardValue || card.Value < -MaxCardValue {
		return fmt.Errorf("%w: %s value %d is outside ±%d", ErrInvalidCard, card, card.Value, MaxCardValue)
	}
	switch card.Op {
	case OpAdd, OpSubtract, OpMultiply:
		return nil
	case OpDivide:
		if card.Value == 0 {
			return fmt.Errorf("%w: %s divides by zero", ErrInvalidCard, card)
		}
	case OpRandomAdd, OpRandomSubtract:
		if card.Value < 1 {
			return fmt.Errorf("%w: %s has random range 1-%d", ErrInvalidCard, card, card.Value)
		}
	case OpPermanentAdd:
		if card.Value < 0 {
			return fmt.Errorf("%w: %s would lower the permanent bonus", ErrInvalidCard, card)
		}
	default:
		return fmt.Errorf("%w: %s has unknown operation %d", ErrInvalidCard, card, int(card.Op))
	}
	return nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
