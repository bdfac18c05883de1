// Package points tracks the player's spendable point balance.
package points

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// Key is the storage key of the balance.
const Key = "points"

// Ledger is the single non-negative point balance. Every mutation is
// written through to storage before the call returns.
type Ledger struct {
	mu       sync.Mutex
	kv       storage.KV
	notifier core.Notifier
	logger   *log.Logger
	balance  int
}

// NewLedger creates a ledger over kv. A nil notifier is replaced by a no-op.
func NewLedger(kv storage.KV, notifier core.Notifier, logger *log.Logger) *Ledger {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ledger{kv: kv, notifier: notifier, logger: logger}
}

// Load reads the persisted balance. Missing or malformed values count as
// zero; only storage failures are returned, and the balance is zero then too.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance = 0
	data, err := l.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("points: load: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		l.logger.Warn("malformed points balance, starting from zero", "value", string(data))
		return nil
	}
	l.balance = max(n, 0)
	return nil
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Spend takes one point. It returns false, leaving the balance unchanged,
// when there is nothing to spend.
func (l *Ledger) Spend(ctx context.Context) (bool, error) {
	l.mu.Lock()
	if l.balance <= 0 {
		l.mu.Unlock()
		return false, nil
	}
	l.balance--
	balance := l.balance
	err := l.persist(ctx, balance)
	l.mu.Unlock()

	l.notifier.PointsChanged(balance)
	return true, err
}

// Add changes the balance by n and returns the new balance. Negative n is
// allowed (word-match penalties) but the balance never drops below zero.
func (l *Ledger) Add(ctx context.Context, n int) (int, error) {
	l.mu.Lock()
	l.balance = max(l.balance+n, 0)
	balance := l.balance
	err := l.persist(ctx, balance)
	l.mu.Unlock()

	l.notifier.PointsChanged(balance)
	return balance, err
}

// persist must be called with mu held.
func (l *Ledger) persist(ctx context.Context, balance int) error {
	if err := l.kv.Put(ctx, Key, []byte(strconv.Itoa(balance))); err != nil {
		l.logger.Warn("could not persist points", "balance", balance, "error", err)
		return fmt.Errorf("points: save: %w", err)
	}
	return nil
}
