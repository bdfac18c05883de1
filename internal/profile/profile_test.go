package profile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cardquest/internal/cards"
	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/storage"
)

func testCatalog() config.CatalogConfig {
	return config.CatalogConfig{Categories: map[string][]string{
		"animals": {"cat.png", "dog.png", "fox.png"},
		"food":    {"jam.png"},
	}}
}

func TestOpenRequiresKV(t *testing.T) {
	if _, err := Open(context.Background(), Options{}); err == nil {
		t.Error("Open() without a store should fail")
	}
}

func TestOpenDefaults(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	if err := kv.Put(ctx, "points", []byte("12")); err != nil {
		t.Fatal(err)
	}

	p, err := Open(ctx, Options{KV: kv})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if p.Category() != DefaultCategory {
		t.Errorf("Category() = %q, expected %q", p.Category(), DefaultCategory)
	}
	if got := p.Points.Balance(); got != 12 {
		t.Errorf("Balance() = %d, expected 12", got)
	}

	deps := p.Deps()
	if deps.Points != p.Points || deps.Rewards != p.Rewards || deps.Notifier == nil || deps.Logger == nil {
		t.Errorf("Deps() = %+v, expected the profile's collaborators", deps)
	}
	if err := p.Rewards.Validate(DefaultCategory); err != nil {
		t.Errorf("default catalog should cover %q: %v", DefaultCategory, err)
	}
}

func TestAlbum(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, Options{
		KV:       storage.NewMemory(),
		Config:   config.Set{Catalog: testCatalog()},
		Category: "animals",
		Seed:     1,
	})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := p.Rewards.Award(ctx, core.GamePlinko, "animals", "dog.png"); err != nil {
		t.Fatalf("Award() failed: %v", err)
	}

	a, err := p.Album(ctx, "")
	if err != nil {
		t.Fatalf("Album() failed: %v", err)
	}
	if a.Category != "animals" || len(a.Cards) != 3 || a.Won != 1 {
		t.Fatalf("Album() = %+v, expected 1 of 3 animals", a)
	}
	for _, c := range a.Cards {
		if c.Won != (c.Card == "dog.png") {
			t.Errorf("card %s won = %v", c.Card, c.Won)
		}
	}

	food, err := p.Album(ctx, "food")
	if err != nil || food.Won != 0 || len(food.Cards) != 1 {
		t.Errorf("Album(food) = %+v, %v", food, err)
	}

	if _, err := p.Album(ctx, "planets"); !errors.Is(err, cards.ErrUnknownCategory) {
		t.Errorf("Album(planets) error = %v, expected ErrUnknownCategory", err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	p, err := Open(ctx, Options{KV: storage.NewMemory(), Seed: 1})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := p.Progress.SavePlinko(ctx, progress.Plinko{Fill: 5, CurrentCard: "cat.png"}); err != nil {
		t.Fatal(err)
	}
	if err := p.Progress.SaveCardReveal(ctx, progress.CardReveal{CurrentCard: "dog.png"}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Points.Add(ctx, 4); err != nil {
		t.Fatal(err)
	}

	if err := p.Reset(ctx, core.GamePlinko); err != nil {
		t.Fatalf("Reset(plinko) failed: %v", err)
	}
	if _, ok := p.Progress.LoadPlinko(ctx); ok {
		t.Error("plinko progress should be gone")
	}
	if _, ok := p.Progress.LoadCardReveal(ctx); !ok {
		t.Error("card reveal progress should survive a plinko reset")
	}

	if err := p.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if _, ok := p.Progress.LoadCardReveal(ctx); ok {
		t.Error("Reset() with no kinds should clear every game")
	}
	if p.Points.Balance() != 4 {
		t.Errorf("Balance() = %d, reset must keep points", p.Points.Balance())
	}
}

func TestProfilesShareOneDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(filepath.Join(t.TempDir(), "cards.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer db.Close()

	open := func(user string) *Profile {
		p, err := Open(ctx, Options{
			KV:      storage.Prefixed(db, user),
			History: db.History(user),
			Config:  config.Set{Catalog: testCatalog()},
			Seed:    1,
		})
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", user, err)
		}
		return p
	}

	alice := open("alice")
	if _, err := alice.Points.Add(ctx, 3); err != nil {
		t.Fatal(err)
	}
	if err := alice.Rewards.Award(ctx, core.GameCardReveal, "animals", "fox.png"); err != nil {
		t.Fatal(err)
	}

	bob := open("bob")
	if bob.Points.Balance() != 0 {
		t.Errorf("bob balance = %d, expected 0", bob.Points.Balance())
	}
	if n, _ := bob.Cards.Count(ctx); n != 0 {
		t.Errorf("bob holds %d cards, expected 0", n)
	}

	wins, err := db.Wins(ctx, "alice", 10)
	if err != nil || len(wins) != 1 || wins[0].Card != "fox.png" || wins[0].Game != "cardreveal" {
		t.Errorf("alice wins = %+v, %v", wins, err)
	}
}
