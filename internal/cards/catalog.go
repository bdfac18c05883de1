// Package cards holds the reward card catalog and the ledger of won cards.
package cards

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/cardquest/internal/config"
)

var (
	// ErrUnknownCategory is returned for a category the catalog lacks.
	ErrUnknownCategory = errors.New("cards: unknown category")
	// ErrEmptyCategory is returned for a category with no cards.
	ErrEmptyCategory = errors.New("cards: category has no cards")
)

// Catalog maps word categories to their reward cards.
type Catalog struct {
	categories map[string][]string
}

// NewCatalog builds a catalog from configuration.
func NewCatalog(cfg config.CatalogConfig) *Catalog {
	c := &Catalog{categories: make(map[string][]string, len(cfg.Categories))}
	for name, cards := range cfg.Categories {
		c.categories[name] = append([]string(nil), cards...)
	}
	return c
}

// Cards returns the cards of a category.
func (c *Catalog) Cards(category string) ([]string, error) {
	cards, ok := c.categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyCategory, category)
	}
	return append([]string(nil), cards...), nil
}

// Categories returns all category names in sorted order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
