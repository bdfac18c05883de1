package reward

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/cardquest/internal/cards"
	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/storage"
)

func newResolver(seed int64, categories map[string][]string) (*Resolver, *cards.Ledger, *core.Recorder) {
	catalog := cards.NewCatalog(config.CatalogConfig{Categories: categories})
	ledger := cards.NewLedger(storage.NewMemory(), nil, nil)
	rec := &core.Recorder{}
	return NewResolver(catalog, ledger, rec, rand.New(rand.NewSource(seed)), nil), ledger, rec
}

func TestResolveTwiceSameCard(t *testing.T) {
	r, ledger, rec := newResolver(1, map[string][]string{"animals": {"cat.png"}})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		card, err := r.Resolve(ctx, core.GamePlinko, "animals")
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if card != "cat.png" {
			t.Errorf("Resolve() = %q, expected cat.png", card)
		}
	}

	won, _ := ledger.Won(ctx)
	if len(won["animals"]) != 1 {
		t.Errorf("ledger has %v, expected exactly one cat.png", won["animals"])
	}
	if rec.Count(core.SignalCardWon) != 2 {
		t.Errorf("card_won signals = %d, expected 2", rec.Count(core.SignalCardWon))
	}
}

func TestPickUniform(t *testing.T) {
	list := []string{"a", "b", "c", "d"}
	r, _, _ := newResolver(99, map[string][]string{"letters": list})

	counts := make(map[string]int)
	const draws = 4000
	for i := 0; i < draws; i++ {
		card, err := r.Pick("letters")
		if err != nil {
			t.Fatalf("Pick() failed: %v", err)
		}
		counts[card]++
	}
	for _, c := range list {
		// Expect ~1000 each; allow a wide margin.
		if counts[c] < 800 || counts[c] > 1200 {
			t.Errorf("card %s picked %d times of %d", c, counts[c], draws)
		}
	}
}

func TestResolveCategoryErrors(t *testing.T) {
	r, ledger, rec := newResolver(1, map[string][]string{"empty": {}})
	ctx := context.Background()

	if _, err := r.Resolve(ctx, core.GameBubblePop, "empty"); !errors.Is(err, cards.ErrEmptyCategory) {
		t.Errorf("Resolve(empty) error = %v, expected ErrEmptyCategory", err)
	}
	if _, err := r.Resolve(ctx, core.GameBubblePop, "missing"); !errors.Is(err, cards.ErrUnknownCategory) {
		t.Errorf("Resolve(missing) error = %v, expected ErrUnknownCategory", err)
	}
	if err := r.Validate("empty"); !errors.Is(err, cards.ErrEmptyCategory) {
		t.Errorf("Validate(empty) error = %v, expected ErrEmptyCategory", err)
	}
	if err := r.Validate("missing"); !errors.Is(err, cards.ErrUnknownCategory) {
		t.Errorf("Validate(missing) error = %v, expected ErrUnknownCategory", err)
	}
	if n, _ := ledger.Count(ctx); n != 0 {
		t.Errorf("ledger Count() = %d, expected 0", n)
	}
	if len(rec.Signals()) != 0 {
		t.Error("failed resolution should not notify")
	}
}

func TestDeal(t *testing.T) {
	all := []string{"cat.png", "dog.png", "fox.png", "owl.png"}
	r, _, _ := newResolver(5, map[string][]string{"animals": all, "empty": {}})

	tests := []struct {
		n    int
		want int
	}{
		{2, 2},
		{4, 4},
		{9, 4},
		{0, 4},
	}
	for _, tt := range tests {
		deck, err := r.Deal("animals", tt.n)
		if err != nil {
			t.Fatalf("Deal(%d) failed: %v", tt.n, err)
		}
		if len(deck) != tt.want {
			t.Errorf("Deal(%d) returned %d cards, expected %d", tt.n, len(deck), tt.want)
		}
		seen := map[string]bool{}
		for _, c := range deck {
			if seen[c] || !slices.Contains(all, c) {
				t.Errorf("Deal(%d) = %v, expected distinct catalog cards", tt.n, deck)
			}
			seen[c] = true
		}
	}

	if _, err := r.Deal("empty", 2); !errors.Is(err, cards.ErrEmptyCategory) {
		t.Errorf("Deal(empty) error = %v, expected ErrEmptyCategory", err)
	}
}
