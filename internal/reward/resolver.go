// Package reward picks reward cards and records them as won.
package reward

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/cards"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
)

// CardSource lists the cards of a category. *cards.Catalog implements it.
type CardSource interface {
	Cards(category string) ([]string, error)
}

// Resolver picks cards uniformly at random and awards them. Already-held
// cards may be picked again; awarding one is a ledger no-op.
type Resolver struct {
	source   CardSource
	ledger   *cards.Ledger
	notifier core.Notifier
	logger   *log.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResolver creates a resolver.
func NewResolver(source CardSource, ledger *cards.Ledger, notifier core.Notifier, rng *rand.Rand, logger *log.Logger) *Resolver {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{source: source, ledger: ledger, notifier: notifier, rng: rng, logger: logger}
}

// Validate reports whether category has cards to award. Games call it
// before starting so an unusable category blocks the session.
func (r *Resolver) Validate(category string) error {
	_, err := r.cards(category)
	return err
}

// Pick selects a card from category. Unknown or empty categories fail with
// the catalog's error.
func (r *Resolver) Pick(category string) (string, error) {
	list, err := r.cards(category)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	i := r.rng.Intn(len(list))
	r.mu.Unlock()
	return list[i], nil
}

// Deal returns up to n distinct cards of category in random order, or the
// whole category shuffled when n <= 0.
func (r *Resolver) Deal(category string, n int) ([]string, error) {
	list, err := r.cards(category)
	if err != nil {
		return nil, err
	}
	deck := slices.Clone(list)
	r.mu.Lock()
	r.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	r.mu.Unlock()
	if n > 0 && n < len(deck) {
		deck = deck[:n]
	}
	return deck, nil
}

// Award records card as won and tells the host. The host is told even when
// the card was already held.
func (r *Resolver) Award(ctx context.Context, game core.GameKind, category, card string) error {
	added, err := r.ledger.Add(ctx, game, category, card)
	if err != nil {
		return fmt.Errorf("reward: %w", err)
	}
	r.logger.Info("card won", "game", game, "category", category, "card", card, "new", added)
	r.notifier.CardWon(game, category, card)
	return nil
}

// Resolve picks a card from category and awards it.
func (r *Resolver) Resolve(ctx context.Context, game core.GameKind, category string) (string, error) {
	card, err := r.Pick(category)
	if err != nil {
		return "", err
	}
	if err := r.Award(ctx, game, category, card); err != nil {
		return card, err
	}
	return card, nil
}

func (r *Resolver) cards(category string) ([]string, error) {
	list, err := r.source.Cards(category)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %q", cards.ErrEmptyCategory, category)
	}
	return list, nil
}
