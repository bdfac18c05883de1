package progress

import (
	"context"
	"testing"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/storage"
)

func TestLoadMissing(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)
	ctx := context.Background()

	if _, ok := s.LoadBubblePop(ctx); ok {
		t.Error("LoadBubblePop() on empty store should be absent")
	}
	if _, ok := s.LoadPlinko(ctx); ok {
		t.Error("LoadPlinko() on empty store should be absent")
	}
	if _, ok := s.LoadCardReveal(ctx); ok {
		t.Error("LoadCardReveal() on empty store should be absent")
	}
}

func TestBubblePopRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv, nil)
	ctx := context.Background()

	want := BubblePop{
		Cleared:      1,
		TotalVisible: 2,
		CurrentCard:  "cat",
		Bubbles:      []Bubble{{X: 26, Y: 26, Visible: false}, {X: 72, Y: 26, Visible: true}},
		Obstacles:    []Obstacle{{X: 6, Y: 98, W: 132, H: 40}},
	}
	if err := s.SaveBubblePop(ctx, want); err != nil {
		t.Fatalf("SaveBubblePop() failed: %v", err)
	}

	got, ok := s.LoadBubblePop(ctx)
	if !ok {
		t.Fatal("LoadBubblePop() should find saved progress")
	}
	if got.Version != Version {
		t.Errorf("Version = %d, expected %d", got.Version, Version)
	}
	if got.Cleared != 1 || got.TotalVisible != 2 || got.CurrentCard != "cat" {
		t.Errorf("LoadBubblePop() = %+v", got)
	}
	if len(got.Bubbles) != 2 || got.Bubbles[1] != want.Bubbles[1] {
		t.Errorf("Bubbles = %+v, expected %+v", got.Bubbles, want.Bubbles)
	}
	if len(got.Obstacles) != 1 || got.Obstacles[0] != want.Obstacles[0] {
		t.Errorf("Obstacles = %+v, expected %+v", got.Obstacles, want.Obstacles)
	}

	// Stored under the game's key.
	if _, err := kv.Get(ctx, "bubblePopProgress"); err != nil {
		t.Errorf("expected blob under bubblePopProgress: %v", err)
	}
}

func TestPlinkoAndCardRevealRoundTrip(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)
	ctx := context.Background()

	s.SavePlinko(ctx, Plinko{Fill: 17, CurrentCard: "dog", NeedNewCard: true})
	p, ok := s.LoadPlinko(ctx)
	if !ok || p.Fill != 17 || p.CurrentCard != "dog" || !p.NeedNewCard {
		t.Errorf("LoadPlinko() = (%+v, %v)", p, ok)
	}

	var cr CardReveal
	cr.Revealed[0] = true
	cr.Revealed[15] = true
	cr.CurrentCard = "owl"
	s.SaveCardReveal(ctx, cr)
	got, ok := s.LoadCardReveal(ctx)
	if !ok || got.RevealedCount() != 2 || !got.Revealed[15] {
		t.Errorf("LoadCardReveal() = (%+v, %v)", got, ok)
	}
}

func TestLoadRejectsBadBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "{oops"},
		{"wrong shape", `["a", "b"]`},
		{"no version", `{"progressBarFill": 10}`},
		{"future version", `{"version": 99, "progressBarFill": 10}`},
		{"negative fill", `{"version": 1, "progressBarFill": -4}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := storage.NewMemory()
			ctx := context.Background()
			kv.Put(ctx, core.GamePlinko.ProgressKey(), []byte(tc.blob))

			p, ok := NewStore(kv, nil).LoadPlinko(ctx)
			if ok {
				t.Errorf("LoadPlinko() accepted %s: %+v", tc.blob, p)
			}
			if p != (Plinko{}) {
				t.Errorf("rejected load should return zero value, got %+v", p)
			}
		})
	}
}

func TestLoadBubblePopRejectsMismatchedCounts(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	s := NewStore(kv, nil)

	// One bubble showing plus two cleared cannot make a board of five.
	s.SaveBubblePop(ctx, BubblePop{
		Cleared:      2,
		TotalVisible: 5,
		CurrentCard:  "cat",
		Bubbles:      []Bubble{{X: 26, Y: 26, Visible: true}, {X: 72, Y: 26}},
	})
	if p, ok := s.LoadBubblePop(ctx); ok {
		t.Errorf("LoadBubblePop() accepted inconsistent counts: %+v", p)
	}

	// Fully cleared but consistent is still a valid blob.
	s.SaveBubblePop(ctx, BubblePop{
		Cleared:      2,
		TotalVisible: 2,
		CurrentCard:  "cat",
		Bubbles:      []Bubble{{X: 26, Y: 26}, {X: 72, Y: 26}},
	})
	if _, ok := s.LoadBubblePop(ctx); !ok {
		t.Error("LoadBubblePop() should accept a consistent cleared board")
	}
}

func TestReset(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)
	ctx := context.Background()

	s.SavePlinko(ctx, Plinko{Fill: 5})
	s.SaveBubblePop(ctx, BubblePop{Cleared: 1})

	if err := s.Reset(ctx, core.GamePlinko); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if _, ok := s.LoadPlinko(ctx); ok {
		t.Error("Plinko progress should be gone after Reset")
	}
	if _, ok := s.LoadBubblePop(ctx); !ok {
		t.Error("Reset(plinko) must not touch Bubble-Pop progress")
	}

	if err := s.Reset(ctx, core.GameWordMatch); err != nil {
		t.Errorf("Reset() of a game without saved sessions = %v, expected nil", err)
	}
	if err := s.Reset(ctx, core.GameKind(42)); err == nil {
		t.Error("Reset() of unknown kind should fail")
	}
}
