package game

import "testing"

func TestCardText(t *testing.T) {
	tests := []struct {
		card  CardDefinition
		bonus int
		want  string
	}{
		{testCard("a", OpAdd, 5, RarityCommon), 0, "+5"},
		{testCard("a", OpAdd, 5, RarityCommon), 3, "+5 (+3)"},
		{testCard("s", OpSubtract, 4, RarityCommon), 3, "-4"},
		{testCard("m", OpMultiply, 2, RarityCommon), 0, "×2"},
		{testCard("d", OpDivide, 3, RarityCommon), 0, "/3"},
		{testCard("r", OpRandomAdd, 6, RarityCommon), 3, "+? 1–6 (+3)"},
		{testCard("r", OpRandomSubtract, 6, RarityCommon), 3, "-? 1–6"},
		{testCard("p", OpPermanentAdd, 2, RarityCommon), 1, "Perm +2"},
	}
	for _, tt := range tests {
		if got := CardText(tt.card, tt.bonus); got != tt.want {
			t.Errorf("CardText(%s %d, bonus %d) = %q, want %q", tt.card.Op, tt.card.Value, tt.bonus, got, tt.want)
		}
	}
}

func TestRevealText(t *testing.T) {
	if got := RevealText(testCard("r", OpRandomAdd, 6, RarityCommon), 4); got != "+4" {
		t.Errorf("got %q", got)
	}
	if got := RevealText(testCard("r", OpRandomSubtract, 6, RarityCommon), 2); got != "-2" {
		t.Errorf("got %q", got)
	}
}

func TestCardColor(t *testing.T) {
	explicit := CardDefinition{Type: "multiply", Color: "#00bcd4"}
	if got := CardColor(explicit); got != "#00bcd4" {
		t.Errorf("explicit color = %q", got)
	}
	if got := CardColor(CardDefinition{Type: "epic"}); got != "lightblue" {
		t.Errorf("epic color = %q", got)
	}
	if got := CardColor(CardDefinition{Type: "weird"}); got != "#ffffff" {
		t.Errorf("fallback color = %q", got)
	}
}
