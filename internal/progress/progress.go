// Package progress persists per-game session progress under typed schemas.
package progress

import "math"

// Version is the schema version written with every progress blob.
// Blobs with any other version are treated as absent.
const Version = 1

// RevealBlocks is the number of blocks covering a Card-Reveal card.
const RevealBlocks = 16

// Bubble is a saved Bubble-Pop target.
type Bubble struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// Obstacle is a saved Bubble-Pop block.
type Obstacle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// BubblePop is the persisted Bubble-Pop session.
type BubblePop struct {
	Version      int        `json:"version"`
	Cleared      int        `json:"clearedBubbles"`
	TotalVisible int        `json:"totalVisibleBubbles"`
	CurrentCard  string     `json:"currentCard"`
	NeedNewCard  bool       `json:"needNewCard"`
	Bubbles      []Bubble   `json:"bubbles"`
	Obstacles    []Obstacle `json:"obstacles"`
}

// Plinko is the persisted Plinko session.
type Plinko struct {
	Version     int    `json:"version"`
	Fill        int    `json:"progressBarFill"`
	CurrentCard string `json:"currentCard"`
	NeedNewCard bool   `json:"needNewCard"`
}

// CardReveal is the persisted Card-Reveal session.
type CardReveal struct {
	Version     int                `json:"version"`
	Revealed    [RevealBlocks]bool `json:"revealedBlocks"`
	CurrentCard string             `json:"currentCard"`
	NeedNewCard bool               `json:"needNewCard"`
}

// RevealedCount returns how many blocks are uncovered.
func (p CardReveal) RevealedCount() int {
	n := 0
	for _, r := range p.Revealed {
		if r {
			n++
		}
	}
	return n
}

// Visible returns how many saved bubbles are still showing.
func (p BubblePop) Visible() int {
	n := 0
	for _, b := range p.Bubbles {
		if b.Visible {
			n++
		}
	}
	return n
}

// valid also rejects boards whose counts disagree: every visible bubble
// is either still showing or cleared.
func (p BubblePop) valid() bool {
	if p.Cleared < 0 || p.TotalVisible < 0 {
		return false
	}
	if p.TotalVisible > 0 && len(p.Bubbles) > 0 && p.Visible()+p.Cleared != p.TotalVisible {
		return false
	}
	for _, b := range p.Bubbles {
		if !finite(b.X, b.Y) {
			return false
		}
	}
	for _, o := range p.Obstacles {
		if !finite(o.X, o.Y, o.W, o.H) || o.W < 0 || o.H < 0 {
			return false
		}
	}
	return true
}

func (p Plinko) valid() bool {
	return p.Fill >= 0
}

func (p CardReveal) valid() bool {
	return true
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
