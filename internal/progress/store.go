package progress

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/logging"
	"github.com/vovakirdan/cardquest/internal/storage"
)

// Store loads and saves progress blobs. Reads never fail: anything missing,
// malformed or from another schema version comes back as absent.
type Store struct {
	kv     storage.KV
	logger *log.Logger
}

// NewStore creates a progress store over kv.
func NewStore(kv storage.KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{kv: kv, logger: logger}
}

// LoadBubblePop returns the saved Bubble-Pop session, if any.
func (s *Store) LoadBubblePop(ctx context.Context) (BubblePop, bool) {
	var p BubblePop
	if !s.load(ctx, core.GameBubblePop, &p, func() (int, bool) { return p.Version, p.valid() }) {
		return BubblePop{}, false
	}
	return p, true
}

// SaveBubblePop replaces the saved Bubble-Pop session.
func (s *Store) SaveBubblePop(ctx context.Context, p BubblePop) error {
	p.Version = Version
	return s.save(ctx, core.GameBubblePop, p)
}

// LoadPlinko returns the saved Plinko session, if any.
func (s *Store) LoadPlinko(ctx context.Context) (Plinko, bool) {
	var p Plinko
	if !s.load(ctx, core.GamePlinko, &p, func() (int, bool) { return p.Version, p.valid() }) {
		return Plinko{}, false
	}
	return p, true
}

// SavePlinko replaces the saved Plinko session.
func (s *Store) SavePlinko(ctx context.Context, p Plinko) error {
	p.Version = Version
	return s.save(ctx, core.GamePlinko, p)
}

// LoadCardReveal returns the saved Card-Reveal session, if any.
func (s *Store) LoadCardReveal(ctx context.Context) (CardReveal, bool) {
	var p CardReveal
	if !s.load(ctx, core.GameCardReveal, &p, func() (int, bool) { return p.Version, p.valid() }) {
		return CardReveal{}, false
	}
	return p, true
}

// SaveCardReveal replaces the saved Card-Reveal session.
func (s *Store) SaveCardReveal(ctx context.Context, p CardReveal) error {
	p.Version = Version
	return s.save(ctx, core.GameCardReveal, p)
}

// Reset deletes the saved session of a game.
func (s *Store) Reset(ctx context.Context, kind core.GameKind) error {
	key := kind.ProgressKey()
	if key == "" {
		if slices.Contains(core.Kinds(), kind) {
			return nil // Nothing saved for this game
		}
		return fmt.Errorf("progress: unknown game kind %d", kind)
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("progress: reset %s: %w", kind, err)
	}
	return nil
}

// load decodes the blob of kind into v. check reports the decoded version
// and whether the value passed validation.
func (s *Store) load(ctx context.Context, kind core.GameKind, v any, check func() (int, bool)) bool {
	ok, err := storage.GetJSON(ctx, s.kv, kind.ProgressKey(), v)
	if err != nil {
		s.logger.Warn("ignoring unreadable progress", "game", kind, "error", err)
		return false
	}
	if !ok {
		return false
	}
	version, valid := check()
	if version != Version {
		s.logger.Warn("ignoring progress from another schema version", "game", kind, "version", version)
		return false
	}
	if !valid {
		s.logger.Warn("ignoring invalid progress", "game", kind)
		return false
	}
	return true
}

func (s *Store) save(ctx context.Context, kind core.GameKind, v any) error {
	if err := storage.PutJSON(ctx, s.kv, kind.ProgressKey(), v); err != nil {
		s.logger.Warn("could not save progress", "game", kind, "error", err)
		return fmt.Errorf("progress: save %s: %w", kind, err)
	}
	return nil
}
