package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/cardquest/internal/core"
)

type fakeGame struct {
	mu    sync.Mutex
	deps  Deps
	steps int
	fired int
}

func (g *fakeGame) Kind() core.GameKind { return core.GamePlinko }
func (g *fakeGame) Title() string       { return "Fake Plinko" }

func (g *fakeGame) Load(ctx context.Context, cfg core.RuntimeConfig) error { return nil }

func (g *fakeGame) Step(in core.InputFrame, dt float64) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++
	if in.Has(core.ActionFire) {
		g.fired++
	}
	return core.StepResult{State: core.GameState{Points: g.fired}}
}

func (g *fakeGame) Render(dst *core.Screen) {}

func (g *fakeGame) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return core.GameState{Points: g.fired}
}

func (g *fakeGame) counts() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.steps, g.fired
}

var registerOnce sync.Once

func registerFake(t *testing.T) {
	t.Helper()
	registerOnce.Do(func() {
		Register(core.GamePlinko, "Fake Plinko", func(deps Deps) Game {
			return &fakeGame{deps: deps}
		})
	})
}

func TestRegisterListCreate(t *testing.T) {
	registerFake(t)

	found := false
	for _, info := range List() {
		if info.Kind == core.GamePlinko {
			found = true
			if info.ID != "plinko" || info.Title != "Fake Plinko" {
				t.Errorf("List() entry = %+v", info)
			}
		}
	}
	if !found {
		t.Fatal("List() is missing the registered game")
	}

	if !Exists("plinko") {
		t.Error("Exists(plinko) = false")
	}
	if Exists("pong") {
		t.Error("Exists(pong) = true")
	}

	g, err := CreateByID("plinko", Deps{Category: "animals"})
	if err != nil {
		t.Fatalf("CreateByID() failed: %v", err)
	}
	fg := g.(*fakeGame)
	if fg.deps.Category != "animals" {
		t.Errorf("deps not passed through: %+v", fg.deps)
	}
	if fg.deps.Notifier == nil {
		t.Error("Create should default a nil notifier")
	}

	if _, err := CreateByID("pong", Deps{}); err == nil {
		t.Error("CreateByID(pong) should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	registerFake(t)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(core.GamePlinko, "Again", func(Deps) Game { return &fakeGame{} })
}

func TestRunnerStepsAndStops(t *testing.T) {
	g := &fakeGame{}
	r := NewRunner(g, 200)

	if !r.Start(context.Background()) {
		t.Fatal("Start() = false")
	}
	r.Send(core.ActionFire)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, fired := g.counts(); fired == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	r.Stop()

	steps, fired := g.counts()
	if fired != 1 {
		t.Fatalf("fired = %d, expected the queued action exactly once", fired)
	}
	if r.Running() {
		t.Error("Running() = true after Stop")
	}

	time.Sleep(30 * time.Millisecond)
	if after, _ := g.counts(); after != steps {
		t.Errorf("game stepped %d times after Stop", after-steps)
	}
	if r.Last().State.Points != 1 && steps > 0 {
		t.Errorf("Last() = %+v", r.Last())
	}
}
