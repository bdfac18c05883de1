package physics

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/cardquest/internal/core"
)

// EventKind identifies what happened to a ball during a step.
type EventKind int

const (
	EventWall     EventKind = iota // Bounced off a side or the top wall
	EventObstacle                  // Bounced off a shape; Index says which
	EventExit                      // Left play through the bottom
	EventStalled                   // Degenerate input; ball frozen in place
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventWall:
		return "wall"
	case EventObstacle:
		return "obstacle"
	case EventExit:
		return "exit"
	case EventStalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// Event is a single collision or terminal event.
type Event struct {
	Kind  EventKind
	Index int // Shape index for EventObstacle, -1 otherwise
	At    core.Vec
}

// Result reports the outcome of one Advance call.
type Result struct {
	Events  []Event
	Exited  bool    // Ball crossed the exit line and is no longer active
	ExitX   float64 // Horizontal position at exit
	Stalled bool    // Input was degenerate; caller should apply its exit path
}

// Hit reports whether the step produced an event of the given kind.
func (r Result) Hit(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Params are the tunables of a stepper.
type Params struct {
	Gravity         float64   // Added to vertical velocity per frame
	WallDamping     float64   // Multiplier on a wall-reflected axis; 0 means 1
	ObstacleDamping float64   // Multiplier on an obstacle-reflected axis; 0 means 1
	Jitter          float64   // Width of the uniform velocity perturbation; 0 disables
	ExitInset       float64   // Ball exits once Pos.Y >= Bounds.Bottom()-ExitInset
	Bounds          core.Rect // Walls: left, right and top bounce, bottom exits
}

// Stepper advances balls one frame at a time.
// It is not safe for concurrent use; callers own a single in-flight step.
type Stepper struct {
	Params Params
	rng    *rand.Rand
}

// NewStepper creates a stepper. rng drives jitter and may be nil when
// Params.Jitter is zero.
func NewStepper(p Params, rng *rand.Rand) *Stepper {
	return &Stepper{Params: p, rng: rng}
}

// Advance moves the ball by dt nominal frames against walls and shapes.
//
// Per step: gravity, tentative move, walls, then the first shape hit in
// iteration order; the position is re-clamped into the walls, jitter is
// added to velocity and the ball is committed. Crossing the exit line
// deactivates the ball.
func (s *Stepper) Advance(b *Ball, dt float64, shapes []core.Shape) Result {
	if b == nil || !b.Active {
		return Result{}
	}

	p := s.Params
	if s.degenerate(b, dt) {
		return s.stall(b)
	}
	if dt <= 0 {
		return Result{}
	}

	var res Result
	vel := b.Vel
	vel.Y += p.Gravity * dt
	next := b.Pos.Add(vel.Scale(dt))

	if c, hit := core.WallContact(core.Circle{C: next, R: b.R}, p.Bounds); hit {
		next = c.Point
		vel = reflect(vel, c, damping(p.WallDamping))
		res.Events = append(res.Events, Event{Kind: EventWall, Index: -1, At: next})
	}

	if idx, c, hit := core.FirstContact(core.Circle{C: next, R: b.R}, vel, shapes); hit {
		next = c.Point
		vel = reflect(vel, c, damping(p.ObstacleDamping))
		res.Events = append(res.Events, Event{Kind: EventObstacle, Index: idx, At: next})
	}

	// A shape can push the ball back through a wall; walls win.
	next = core.ContainPoint(next, b.R, p.Bounds)

	if p.Jitter > 0 && s.rng != nil {
		vel.X += (s.rng.Float64() - 0.5) * p.Jitter
		vel.Y += (s.rng.Float64() - 0.5) * p.Jitter
	}

	b.Pos = next
	b.Vel = vel

	if next.Y >= p.Bounds.Bottom()-p.ExitInset {
		b.Active = false
		res.Exited = true
		res.ExitX = next.X
		res.Events = append(res.Events, Event{Kind: EventExit, Index: -1, At: next})
	}
	return res
}

func (s *Stepper) degenerate(b *Ball, dt float64) bool {
	bounds := s.Params.Bounds
	return math.IsNaN(dt) || math.IsInf(dt, 0) ||
		!validBounds(bounds) || !b.Pos.Finite() || !b.Vel.Finite() ||
		math.IsNaN(b.R) || b.R < 0
}

// stall freezes the ball somewhere sane without advancing it.
func (s *Stepper) stall(b *Ball) Result {
	bounds := s.Params.Bounds
	pos := b.Pos
	if !pos.Finite() {
		pos = core.Vec{}
	}
	r := b.R
	if math.IsNaN(r) || r < 0 {
		r = 0
	}
	if validBounds(bounds) {
		if !b.Pos.Finite() {
			pos = core.V(bounds.X+bounds.W/2, bounds.Y+r)
		}
		pos = core.ContainPoint(pos, r, bounds)
	}
	b.Pos = pos
	b.Vel = core.Vec{}
	return Result{
		Stalled: true,
		Events:  []Event{{Kind: EventStalled, Index: -1, At: pos}},
	}
}

func validBounds(r core.Rect) bool {
	return !r.Empty() && core.V(r.X, r.Y).Finite() && core.V(r.W, r.H).Finite()
}

func reflect(vel core.Vec, c core.Contact, k float64) core.Vec {
	if c.FlipX {
		vel.X = -vel.X * k
	}
	if c.FlipY {
		vel.Y = -vel.Y * k
	}
	return vel
}

func damping(k float64) float64 {
	if k <= 0 {
		return 1
	}
	return k
}
