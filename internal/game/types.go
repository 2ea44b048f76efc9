package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// Operation is the arithmetic a card applies to the running total.
type Operation int

const (
	OpAdd Operation = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpRandomAdd
	OpRandomSubtract
	OpPermanentAdd
)

func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "Add"
	case OpSubtract:
		return "Subtract"
	case OpMultiply:
		return "Multiply"
	case OpDivide:
		return "Divide"
	case OpRandomAdd:
		return "RandomAdd"
	case OpRandomSubtract:
		return "RandomSubtract"
	case OpPermanentAdd:
		return "PermanentAdd"
	default:
		return "Unknown"
	}
}

// Code returns the op code used in catalog files.
func (o Operation) Code() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpRandomAdd:
		return "random_plus"
	case OpRandomSubtract:
		return "random_minus"
	case OpPermanentAdd:
		return "perm_add"
	default:
		return "?"
	}
}

// IsRandom reports whether the operation reveals a random value when applied.
func (o Operation) IsRandom() bool {
	return o == OpRandomAdd || o == OpRandomSubtract
}

// ParseOperation converts a catalog op code to an Operation.
func ParseOperation(code string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "+", "add", "plus":
		return OpAdd, nil
	case "-", "subtract", "minus":
		return OpSubtract, nil
	case "*", "x", "×", "multiply":
		return OpMultiply, nil
	case "/", "divide":
		return OpDivide, nil
	case "random_plus", "random_add":
		return OpRandomAdd, nil
	case "random_minus", "random_subtract":
		return OpRandomSubtract, nil
	case "perm_add", "permanent_add":
		return OpPermanentAdd, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", code)
	}
}

// Rarity is the weight class that controls how often a card is drawn.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityUltra
	RarityUnknown
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityUltra:
		return "ultra"
	default:
		return "unknown"
	}
}

// Weight returns how many copies of a card with this rarity go into the draw pool.
func (r Rarity) Weight() int {
	switch r {
	case RarityCommon:
		return 12
	case RarityUncommon:
		return 6
	case RarityRare:
		return 3
	default:
		return 1
	}
}

// ParseRarity converts a weight class name. An empty name means common;
// names it does not know map to RarityUnknown.
func ParseRarity(name string) Rarity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "common":
		return RarityCommon
	case "uncommon":
		return RarityUncommon
	case "rare":
		return RarityRare
	case "ultra":
		return RarityUltra
	default:
		return RarityUnknown
	}
}

// Phase is the state of a game session.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "Playing"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no more cards can be applied in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// --- Card definition (static, from the catalog) ---

type CardDefinition struct {
	ID          string
	Name        string
	Description string
	Category    string
	Type        string // presentation type from the catalog, e.g. "plus", "rare", "epic"
	Color       string
	Op          Operation
	Value       int
	Rarity      Rarity
}

func (c CardDefinition) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s %d", c.Op, c.Value)
}

// Weight returns the card's draw weight.
func (c CardDefinition) Weight() int {
	return c.Rarity.Weight()
}

// ScalesTotal reports whether the card multiplies or divides the total.
// Such cards are pointless while the total is zero.
func (c CardDefinition) ScalesTotal() bool {
	return c.Op == OpMultiply || c.Op == OpDivide
}
