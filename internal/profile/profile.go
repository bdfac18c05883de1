// Package profile wires one player's persistent state over a single
// key/value store: the point balance, saved game sessions, won cards and
// the reward resolver that hands them out.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/cards"
	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/points"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/registry"
	"github.com/vovakirdan/cardquest/internal/reward"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// DefaultCategory is the word category played when none is chosen.
const DefaultCategory = "animals"

// Options configure Open.
type Options struct {
	KV       storage.KV    // Required
	History  cards.History // Optional win history
	Config   config.Set
	Category string
	Notifier core.Notifier
	Seed     int64 // Reward RNG seed; 0 uses the clock
	Logger   *log.Logger
}

// Profile is everything a game session needs for one player.
type Profile struct {
	Points   *points.Ledger
	Progress *progress.Store
	Cards    *cards.Ledger
	Catalog  *cards.Catalog
	Rewards  *reward.Resolver

	category string
	config   config.Set
	notifier core.Notifier
	logger   *log.Logger
}

// Open builds a profile and loads its balance. A storage failure while
// loading is returned with the profile still usable at a zero balance.
func Open(ctx context.Context, opts Options) (*Profile, error) {
	if opts.KV == nil {
		return nil, errors.New("profile: a key/value store is required")
	}
	if opts.Category == "" {
		opts.Category = DefaultCategory
	}
	if opts.Notifier == nil {
		opts.Notifier = core.NopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Config.Catalog.Categories == nil {
		opts.Config.Catalog = config.DefaultCatalogConfig()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	catalog := cards.NewCatalog(opts.Config.Catalog)
	won := cards.NewLedger(opts.KV, opts.History, opts.Logger)
	p := &Profile{
		Points:   points.NewLedger(opts.KV, opts.Notifier, opts.Logger),
		Progress: progress.NewStore(opts.KV, opts.Logger),
		Cards:    won,
		Catalog:  catalog,
		Rewards:  reward.NewResolver(catalog, won, opts.Notifier, rand.New(rand.NewSource(seed)), opts.Logger),
		category: opts.Category,
		config:   opts.Config,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}

	if err := p.Points.Load(ctx); err != nil {
		return p, fmt.Errorf("profile: %w", err)
	}
	return p, nil
}

// Category returns the word category rewards are drawn from.
func (p *Profile) Category() string {
	return p.category
}

// Deps returns the collaborators for a new game session.
func (p *Profile) Deps() registry.Deps {
	return registry.Deps{
		Points:   p.Points,
		Progress: p.Progress,
		Rewards:  p.Rewards,
		Notifier: p.notifier,
		Category: p.category,
		Config:   p.config,
		Logger:   p.logger,
	}
}

// NewGame creates a session of kind bound to this profile.
func (p *Profile) NewGame(kind core.GameKind) (registry.Game, error) {
	return registry.Create(kind, p.Deps())
}

// Reset forgets the saved session of every given game. With no kinds it
// resets all games. Points and won cards are kept.
func (p *Profile) Reset(ctx context.Context, kinds ...core.GameKind) error {
	if len(kinds) == 0 {
		kinds = core.Kinds()
	}
	for _, k := range kinds {
		if err := p.Progress.Reset(ctx, k); err != nil {
			return err
		}
		p.logger.Info("progress reset", "game", k)
	}
	return nil
}

// Album lists the cards of the profile's category with their won state.
type Album struct {
	Category string
	Cards    []AlbumCard
	Won      int
}

// AlbumCard is one catalog card.
type AlbumCard struct {
	Card string
	Won  bool
}

// Album returns the catalog of category (the profile's own when empty)
// marked with the cards already won.
func (p *Profile) Album(ctx context.Context, category string) (Album, error) {
	if category == "" {
		category = p.category
	}
	all, err := p.Catalog.Cards(category)
	if err != nil {
		return Album{Category: category}, err
	}
	won, err := p.Cards.Won(ctx)
	if err != nil {
		return Album{Category: category}, err
	}

	held := make(map[string]bool, len(won[category]))
	for _, c := range won[category] {
		held[c] = true
	}

	a := Album{Category: category, Cards: make([]AlbumCard, 0, len(all))}
	for _, c := range all {
		a.Cards = append(a.Cards, AlbumCard{Card: c, Won: held[c]})
		if held[c] {
			a.Won++
		}
	}
	return a, nil
}
