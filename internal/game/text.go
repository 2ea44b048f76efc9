package game

import "fmt"

// CardText renders the face of a card as shown to the player. bonus is the
// current permanent bonus, displayed on cards it applies to.
func CardText(card CardDefinition, bonus int) string {
	bonusText := ""
	if bonus > 0 {
		bonusText = fmt.Sprintf(" (+%d)", bonus)
	}

	switch card.Op {
	case OpAdd:
		return fmt.Sprintf("+%d%s", card.Value, bonusText)
	case OpSubtract:
		return fmt.Sprintf("-%d", card.Value)
	case OpMultiply:
		return fmt.Sprintf("×%d", card.Value)
	case OpDivide:
		return fmt.Sprintf("/%d", card.Value)
	case OpRandomAdd:
		return fmt.Sprintf("+? 1–%d%s", card.Value, bonusText)
	case OpRandomSubtract:
		return fmt.Sprintf("-? 1–%d", card.Value)
	case OpPermanentAdd:
		return fmt.Sprintf("Perm +%d", card.Value)
	default:
		return "?"
	}
}

// RevealText renders a random card after its value has been revealed.
func RevealText(card CardDefinition, revealed int) string {
	if card.Op == OpRandomSubtract {
		return fmt.Sprintf("-%d", revealed)
	}
	return fmt.Sprintf("+%d", revealed)
}

// typeColors maps catalog card types to display colors.
var typeColors = map[string]string{
	"plus":     "green",
	"minus":    "red",
	"multiply": "blue",
	"divide":   "gold",
	"rare":     "purple",
	"epic":     "lightblue",
}

// CardColor returns the card's explicit color, else its type color, else white.
func CardColor(card CardDefinition) string {
	if card.Color != "" {
		return card.Color
	}
	if c, ok := typeColors[card.Type]; ok {
		return c
	}
	return "#ffffff"
}
