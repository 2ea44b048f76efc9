package game

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var standardCatalogYAML []byte

// CatalogFile represents the top-level catalog structure.
type CatalogFile struct {
	Cards []CardEntry `yaml:"cards" json:"cards"`
}

// CardEntry represents a single card record as it appears in a catalog file.
type CardEntry struct {
	ID          string `yaml:"id,omitempty" json:"id,omitempty"`
	Op          string `yaml:"op" json:"op"`
	Value       int    `yaml:"value" json:"value"`
	WeightClass string `yaml:"weight_class,omitempty" json:"weight_class,omitempty"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Catalog is an immutable, ordered set of card definitions.
type Catalog struct {
	cards []CardDefinition
	byID  map[string]int
}

// NewCatalog builds a catalog from definitions. Card IDs must be unique;
// empty IDs are derived from the card name.
func NewCatalog(cards []CardDefinition) (*Catalog, error) {
	c := &Catalog{
		cards: make([]CardDefinition, 0, len(cards)),
		byID:  make(map[string]int, len(cards)),
	}
	for i, card := range cards {
		if card.ID == "" {
			card.ID = cardID(card.Name, i)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %q", card.ID)
		}
		c.byID[card.ID] = len(c.cards)
		c.cards = append(c.cards, card)
	}
	return c, nil
}

// ParseCatalog parses catalog data. format is "json" or "yaml".
// JSON may be a bare array of cards or an object with a "cards" list.
func ParseCatalog(data []byte, format string) (*Catalog, error) {
	var entries []CardEntry
	switch format {
	case "json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &entries); err != nil {
				return nil, fmt.Errorf("parse catalog JSON: %w", err)
			}
		} else {
			var cf CatalogFile
			if err := json.Unmarshal(trimmed, &cf); err != nil {
				return nil, fmt.Errorf("parse catalog JSON: %w", err)
			}
			entries = cf.Cards
		}
	case "yaml", "yml":
		var cf CatalogFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse catalog YAML: %w", err)
		}
		entries = cf.Cards
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	cards := make([]CardDefinition, 0, len(entries))
	for i, e := range entries {
		card, err := e.Definition()
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i+1, e.DisplayName, err)
		}
		cards = append(cards, card)
	}
	return NewCatalog(cards)
}

// LoadCatalog reads a catalog file. The format follows the file extension.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseCatalog(data, format)
}

// DefaultCatalog returns the embedded standard catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(standardCatalogYAML, "yaml")
}

// OpenCatalog loads the catalog at path, or the standard catalog when path is empty.
func OpenCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	return LoadCatalog(path)
}

// Definition converts a file record into a card definition.
func (e CardEntry) Definition() (CardDefinition, error) {
	op, err := ParseOperation(e.Op)
	if err != nil {
		return CardDefinition{}, err
	}
	return CardDefinition{
		ID:          e.ID,
		Name:        e.DisplayName,
		Description: e.Description,
		Category:    e.Category,
		Type:        e.Type,
		Color:       e.Color,
		Op:          op,
		Value:       e.Value,
		Rarity:      ParseRarity(e.WeightClass),
	}, nil
}

// Len returns the number of distinct cards. A nil catalog has none.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.cards)
}

// Cards returns a copy of the catalog's definitions in file order.
func (c *Catalog) Cards() []CardDefinition {
	if c == nil {
		return nil
	}
	out := make([]CardDefinition, len(c.cards))
	copy(out, c.cards)
	return out
}

// Lookup finds a card by ID.
func (c *Catalog) Lookup(id string) (CardDefinition, bool) {
	if c == nil {
		return CardDefinition{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return CardDefinition{}, false
	}
	return c.cards[i], true
}

// cardID derives a stable identifier from a display name.
func cardID(name string, index int) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && sb.Len() > 0:
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	id := strings.TrimSuffix(sb.String(), "_")
	if id == "" {
		return fmt.Sprintf("card_%d", index+1)
	}
	return id
}
