package registry

import (
	"context"
	"sync"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/loop"
)

// Runner drives a Game on its own frame loop. Input sent between frames is
// merged into the next frame; stopping the runner stops all stepping.
type Runner struct {
	game Game
	loop *loop.Loop

	mu      sync.Mutex
	pending core.InputFrame
	last    core.StepResult
}

// NewRunner creates a stopped runner stepping g at tickRate frames per second.
func NewRunner(g Game, tickRate int) *Runner {
	r := &Runner{game: g, pending: core.NewInputFrame()}
	r.loop = loop.New(tickRate, r.step)
	return r
}

// Game returns the driven game.
func (r *Runner) Game() Game {
	return r.game
}

// Start begins stepping. It returns false if already running.
func (r *Runner) Start(ctx context.Context) bool {
	return r.loop.Start(ctx)
}

// Stop halts stepping and waits for the current frame to finish.
func (r *Runner) Stop() {
	r.loop.Stop()
}

// Running reports whether the runner is stepping.
func (r *Runner) Running() bool {
	return r.loop.Running()
}

// Send queues an action for the next frame.
func (r *Runner) Send(a core.Action) {
	r.mu.Lock()
	r.pending.Set(a)
	r.mu.Unlock()
}

// SendPointer queues a pointer event for the next frame.
func (r *Runner) SendPointer(pos core.Vec, down bool) {
	r.mu.Lock()
	r.pending.SetPointer(pos, down)
	r.mu.Unlock()
}

// Last returns the result of the most recent frame.
func (r *Runner) Last() core.StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Runner) step(dt float64) {
	r.mu.Lock()
	in := r.pending
	r.pending = core.NewInputFrame()
	r.mu.Unlock()

	res := r.game.Step(in, dt)

	r.mu.Lock()
	r.last = res
	r.mu.Unlock()
}
