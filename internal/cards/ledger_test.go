package cards

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/storage"
)

type recordingHistory struct {
	wins []storage.CardWin
	err  error
}

func (h *recordingHistory) RecordWin(ctx context.Context, w storage.CardWin) error {
	h.wins = append(h.wins, w)
	return h.err
}

func TestLedgerAddIdempotent(t *testing.T) {
	kv := storage.NewMemory()
	hist := &recordingHistory{}
	l := NewLedger(kv, hist, nil)
	ctx := context.Background()

	added, err := l.Add(ctx, core.GamePlinko, "animals", "cat.png")
	if err != nil || !added {
		t.Fatalf("first Add() = (%v, %v), expected (true, nil)", added, err)
	}
	added, err = l.Add(ctx, core.GameBubblePop, "animals", "cat.png")
	if err != nil || added {
		t.Fatalf("second Add() = (%v, %v), expected (false, nil)", added, err)
	}

	won, err := l.Won(ctx)
	if err != nil {
		t.Fatalf("Won() failed: %v", err)
	}
	if len(won["animals"]) != 1 {
		t.Errorf("won[animals] = %v, expected exactly one entry", won["animals"])
	}
	if len(hist.wins) != 1 {
		t.Fatalf("history got %d wins, expected 1", len(hist.wins))
	}
	if hist.wins[0].Game != "plinko" || hist.wins[0].ID == "" {
		t.Errorf("history win = %+v, expected plinko with an id", hist.wins[0])
	}
}

func TestLedgerKeyedByCategory(t *testing.T) {
	l := NewLedger(storage.NewMemory(), nil, nil)
	ctx := context.Background()

	l.Add(ctx, core.GamePlinko, "animals", "cat.png")
	l.Add(ctx, core.GamePlinko, "food", "cat.png")

	if has, _ := l.Has(ctx, "food", "cat.png"); !has {
		t.Error("Has(food, cat.png) = false")
	}
	if has, _ := l.Has(ctx, "vehicles", "cat.png"); has {
		t.Error("Has(vehicles, cat.png) = true")
	}
	if n, _ := l.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, expected 2", n)
	}
}

func TestLedgerMalformedCountsAsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	kv.Put(ctx, Key, []byte(`["cat.png"]`))

	l := NewLedger(kv, nil, nil)
	won, err := l.Won(ctx)
	if err != nil {
		t.Fatalf("Won() failed: %v", err)
	}
	if len(won) != 0 {
		t.Errorf("Won() = %v, expected empty", won)
	}

	if added, err := l.Add(ctx, core.GameCardReveal, "animals", "owl.png"); !added || err != nil {
		t.Errorf("Add() = (%v, %v), expected (true, nil)", added, err)
	}
}

func TestLedgerHistoryFailureIsNotFatal(t *testing.T) {
	hist := &recordingHistory{err: errors.New("db locked")}
	l := NewLedger(storage.NewMemory(), hist, nil)

	added, err := l.Add(context.Background(), core.GamePlinko, "animals", "cat.png")
	if err != nil || !added {
		t.Errorf("Add() = (%v, %v), expected (true, nil) despite history failure", added, err)
	}
}

func TestLedgerWithSQLiteHistory(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/cards.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	l := NewLedger(store, store.History("local"), nil)
	l.Add(ctx, core.GameBubblePop, "animals", "fox.png")
	l.Add(ctx, core.GameBubblePop, "animals", "fox.png")

	wins, err := store.Wins(ctx, "local", 10)
	if err != nil {
		t.Fatalf("Wins() failed: %v", err)
	}
	if len(wins) != 1 || wins[0].Card != "fox.png" || wins[0].Game != "bubblepop" {
		t.Errorf("Wins() = %+v, expected one bubblepop fox.png", wins)
	}
}
