// Package deck holds the fixed set of study decks and the shuffle used to
// reorder them.
package deck

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/vytor/flashdeck/internal/models"
)

//go:embed decks.toml
var defaultCatalog []byte

// ErrInvalidCatalog is wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid deck catalog")

type catalogFile struct {
	Default string        `toml:"default"`
	Decks   []models.Deck `toml:"decks"`
}

// Catalog is the ordered, immutable set of decks known at start-up.
type Catalog struct {
	defaultID string
	order     []string
	decks     map[string]models.Deck
}

// LoadCatalog reads a TOML catalog from path. An empty path selects the
// built-in javascript/html/css catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded deck catalog: %v", err))
	}
	return c
}

// ParseCatalog decodes and validates a TOML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(f.Default, f.Decks...)
}

// NewCatalog validates decks and builds a Catalog. An empty defaultID
// selects the first deck.
func NewCatalog(defaultID string, decks ...models.Deck) (*Catalog, error) {
	if len(decks) == 0 {
		return nil, fmt.Errorf("%w: no decks defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		order: make([]string, 0, len(decks)),
		decks: make(map[string]models.Deck, len(decks)),
	}
	for i, d := range decks {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: deck %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.decks[id]; dup {
			return nil, fmt.Errorf("%w: duplicate deck id %q", ErrInvalidCatalog, id)
		}
		if len(d.Cards) == 0 {
			return nil, fmt.Errorf("%w: deck %q has no cards", ErrInvalidCatalog, id)
		}
		for j, card := range d.Cards {
			if card.Front == "" || card.Back == "" {
				return nil, fmt.Errorf("%w: deck %q card %d needs both front and back", ErrInvalidCatalog, id, j)
			}
		}
		if d.Name == "" {
			d.Name = id
		}
		d.ID = id
		d.Cards = append([]models.Card(nil), d.Cards...)
		c.order = append(c.order, id)
		c.decks[id] = d
	}

	if defaultID == "" {
		defaultID = c.order[0]
	}
	if _, ok := c.decks[defaultID]; !ok {
		return nil, fmt.Errorf("%w: default deck %q is not defined", ErrInvalidCatalog, defaultID)
	}
	c.defaultID = defaultID
	return c, nil
}

// DefaultID is the deck active when a session starts.
func (c *Catalog) DefaultID() string {
	return c.defaultID
}

// IDs returns deck identifiers in catalog order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether id names a deck in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.decks[id]
	return ok
}

// Deck returns a copy of the deck with the given id.
func (c *Catalog) Deck(id string) (models.Deck, bool) {
	d, ok := c.decks[id]
	if !ok {
		return models.Deck{}, false
	}
	d.Cards = append([]models.Card(nil), d.Cards...)
	return d, true
}

// Summaries lists id, name and size for each deck in catalog order.
func (c *Catalog) Summaries() []models.DeckSummary {
	out := make([]models.DeckSummary, 0, len(c.order))
	for _, id := range c.order {
		d := c.decks[id]
		out = append(out, models.DeckSummary{ID: d.ID, Name: d.Name, Size: d.Len()})
	}
	return out
}
