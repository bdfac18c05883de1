// Package gametest wires in-memory collaborators for game session tests.
package gametest

import (
	"context"
	"strconv"
	"testing"

	"github.com/vovakirdan/cardquest/internal/cards"
	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/points"
	"github.com/vovakirdan/cardquest/internal/profile"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/registry"
	"github.com/vovakirdan/cardquest/internal/reward"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// Category is the category used by Env.Deps.
const Category = "animals"

// Env is a set of collaborators backed by one in-memory store.
type Env struct {
	KV       *storage.Memory
	Recorder *core.Recorder
	Points   *points.Ledger
	Progress *progress.Store
	Cards    *cards.Ledger
	Rewards  *reward.Resolver
	Profile  *profile.Profile
	Catalog  config.CatalogConfig
}

// New creates an environment whose balance starts at balance.
func New(t testing.TB, balance int) *Env {
	t.Helper()
	return NewWithCatalog(t, balance, config.CatalogConfig{
		Categories: map[string][]string{
			Category: {"cat.png", "dog.png", "fox.png"},
			"empty":  {},
		},
	})
}

// NewWithCatalog is New with a custom card catalog.
func NewWithCatalog(t testing.TB, balance int, catalog config.CatalogConfig) *Env {
	t.Helper()
	ctx := context.Background()

	kv := storage.NewMemory()
	if err := kv.Put(ctx, points.Key, []byte(strconv.Itoa(balance))); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	rec := &core.Recorder{}
	p, err := profile.Open(ctx, profile.Options{
		KV: kv,
		Config: config.Set{
			BubblePop:  config.DefaultBubblePopConfig(),
			Plinko:     config.DefaultPlinkoConfig(),
			CardReveal: config.DefaultCardRevealConfig(),
			WordMatch:  config.DefaultWordMatchConfig(),
			Catalog:    catalog,
		},
		Category: Category,
		Notifier: rec,
		Seed:     7,
	})
	if err != nil {
		t.Fatalf("profile.Open() failed: %v", err)
	}

	return &Env{
		KV:       kv,
		Recorder: rec,
		Profile:  p,
		Points:   p.Points,
		Progress: p.Progress,
		Cards:    p.Cards,
		Rewards:  p.Rewards,
		Catalog:  catalog,
	}
}

// Deps returns game dependencies for category with default game tunables.
func (e *Env) Deps(category string) registry.Deps {
	deps := e.Profile.Deps()
	deps.Category = category
	return deps
}

// Frame builds an input frame with the given actions set.
func Frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// Click builds an input frame with a pointer press at p.
func Click(p core.Vec) core.InputFrame {
	in := core.NewInputFrame()
	in.SetPointer(p, true)
	return in
}
