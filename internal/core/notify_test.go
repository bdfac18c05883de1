package core

import "testing"

func TestNotifiersFanOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	n := Notifiers(a, nil, b)

	n.OutOfPoints(GamePlinko)
	n.CardWon(GameBubblePop, "animals", "cat")
	n.ProgressChanged(GamePlinko, 40)
	n.PointsChanged(3)

	for name, r := range map[string]*Recorder{"a": a, "b": b} {
		if got := len(r.Signals()); got != 4 {
			t.Errorf("recorder %s got %d signals, expected 4", name, got)
		}
		if r.Count(SignalCardWon) != 1 {
			t.Errorf("recorder %s card_won count = %d, expected 1", name, r.Count(SignalCardWon))
		}
	}

	won := a.Signals()[1]
	if won.Game != GameBubblePop || won.Category != "animals" || won.Card != "cat" {
		t.Errorf("card_won signal = %+v", won)
	}

	a.Reset()
	if len(a.Signals()) != 0 {
		t.Error("Reset should clear signals")
	}
}

func TestGameKind(t *testing.T) {
	tests := []struct {
		kind GameKind
		name string
		key  string
	}{
		{GameBubblePop, "bubblepop", "bubblePopProgress"},
		{GamePlinko, "plinko", "plinkoProgress"},
		{GameCardReveal, "cardreveal", "cardRevealProgress"},
		{GameWordMatch, "wordmatch", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.kind.String() != tc.name {
				t.Errorf("String() = %q, expected %q", tc.kind.String(), tc.name)
			}
			if tc.kind.ProgressKey() != tc.key {
				t.Errorf("ProgressKey() = %q, expected %q", tc.kind.ProgressKey(), tc.key)
			}
			if tc.kind.Persistent() != (tc.key != "") {
				t.Errorf("Persistent() = %v for key %q", tc.kind.Persistent(), tc.key)
			}
			k, ok := ParseGameKind(tc.name)
			if !ok || k != tc.kind {
				t.Errorf("ParseGameKind(%q) = (%v, %v)", tc.name, k, ok)
			}
		})
	}

	if _, ok := ParseGameKind("pong"); ok {
		t.Error("ParseGameKind(pong) should fail")
	}
}
