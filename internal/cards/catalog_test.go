package cards

import (
	"errors"
	"testing"

	"github.com/vovakirdan/cardquest/internal/config"
)

func TestCatalogCards(t *testing.T) {
	c := NewCatalog(config.CatalogConfig{Categories: map[string][]string{
		"animals": {"cat.png", "dog.png"},
		"empty":   {},
	}})

	tests := []struct {
		name     string
		category string
		count    int
		err      error
	}{
		{"known", "animals", 2, nil},
		{"empty", "empty", 0, ErrEmptyCategory},
		{"unknown", "dinosaurs", 0, ErrUnknownCategory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := c.Cards(tc.category)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Cards(%q) error = %v, expected %v", tc.category, err, tc.err)
			}
			if len(cards) != tc.count {
				t.Errorf("Cards(%q) = %v, expected %d cards", tc.category, cards, tc.count)
			}
		})
	}
}

func TestCatalogIsolation(t *testing.T) {
	src := map[string][]string{"animals": {"cat.png"}}
	c := NewCatalog(config.CatalogConfig{Categories: src})

	src["animals"][0] = "changed"
	cards, _ := c.Cards("animals")
	cards[0] = "mutated"

	again, _ := c.Cards("animals")
	if again[0] != "cat.png" {
		t.Errorf("catalog leaked mutation: %v", again)
	}
}

func TestCatalogCategoriesSorted(t *testing.T) {
	c := NewCatalog(config.CatalogConfig{Categories: map[string][]string{
		"vehicles": {"bus.png"},
		"animals":  {"cat.png"},
		"food":     {"pie.png"},
	}})
	got := c.Categories()
	want := []string{"animals", "food", "vehicles"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, expected %q", i, got[i], want[i])
		}
	}
}
