package cards

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// Key is the storage key of the won-card map.
const Key = "wonCards"

// History receives every first-time win. *storage.History implements it.
type History interface {
	RecordWin(ctx context.Context, w storage.CardWin) error
}

// Ledger is the append-only set of won cards, keyed by category.
// Each call reads and writes the full value; adding a held card is a no-op.
type Ledger struct {
	mu      sync.Mutex
	kv      storage.KV
	history History
	logger  *log.Logger
}

// NewLedger creates a card ledger. history may be nil.
func NewLedger(kv storage.KV, history History, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ledger{kv: kv, history: history, logger: logger}
}

// Won returns every won card by category. Unreadable data counts as empty.
func (l *Ledger) Won(ctx context.Context) (map[string][]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(ctx)
}

// Has reports whether a card has been won.
func (l *Ledger) Has(ctx context.Context, category, card string) (bool, error) {
	won, err := l.Won(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(won[category], card), nil
}

// Count returns the number of distinct won cards.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	won, err := l.Won(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, cards := range won {
		n += len(cards)
	}
	return n, nil
}

// Add records a won card. It returns false when the card was already held.
func (l *Ledger) Add(ctx context.Context, game core.GameKind, category, card string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	won, err := l.read(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(won[category], card) {
		return false, nil
	}
	won[category] = append(won[category], card)

	if err := storage.PutJSON(ctx, l.kv, Key, won); err != nil {
		return false, fmt.Errorf("cards: save: %w", err)
	}

	if l.history != nil {
		w := storage.CardWin{
			ID:       uuid.NewString(),
			Category: category,
			Card:     card,
			Game:     game.String(),
		}
		if err := l.history.RecordWin(ctx, w); err != nil {
			// History is best effort.
			l.logger.Warn("could not record card win", "card", card, "error", err)
		}
	}
	return true, nil
}

// read must be called with mu held.
func (l *Ledger) read(ctx context.Context) (map[string][]string, error) {
	won := make(map[string][]string)
	ok, err := storage.GetJSON(ctx, l.kv, Key, &won)
	switch {
	case err == nil && ok && won != nil:
		return won, nil
	case err == nil:
		return make(map[string][]string), nil
	case errors.Is(err, storage.ErrMalformed):
		l.logger.Warn("ignoring unreadable won cards", "error", err)
		return make(map[string][]string), nil
	default:
		return nil, fmt.Errorf("cards: load: %w", err)
	}
}
