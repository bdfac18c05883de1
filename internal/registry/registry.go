// Package registry provides a global registry for mini-game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardquest/internal/config"
	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/points"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/reward"
)

// Game is the interface every mini-game session implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
//
// Implementations serialize Step, Render and State internally so a frame
// loop and a renderer may call them from different goroutines.
type Game interface {
	// Kind identifies the game and its progress schema.
	Kind() core.GameKind

	// Title returns a human-readable name for display (e.g., "Bubble Pop").
	Title() string

	// Load restores saved progress or builds a fresh board, choosing a new
	// reward card when one is needed. A category without cards is an error
	// and the game must not be started.
	Load(ctx context.Context, cfg core.RuntimeConfig) error

	// Step advances the session by dt nominal frames with this frame's input.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Board is implemented by games drawn on a continuous board. Hosts use it
// to map pointer cells into board coordinates with core.BoardLayout.
type Board interface {
	BoardSize() (w, h float64)
}

// Resizer is implemented by games whose board geometry follows the host.
type Resizer interface {
	Resize(w, h float64)
}

// Deps are the shared collaborators handed to every game.
type Deps struct {
	Points   *points.Ledger
	Progress *progress.Store
	Rewards  *reward.Resolver
	Notifier core.Notifier
	Category string
	Config   config.Set
	Logger   *log.Logger
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	Kind  core.GameKind
	ID    string
	Title string
}

// Factory is a function that creates a new game session.
type Factory func(deps Deps) Game

type entry struct {
	title   string
	factory Factory
}

var (
	factories = make(map[core.GameKind]entry)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game of the same kind is already registered.
func Register(kind core.GameKind, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", kind))
	}
	factories[kind] = entry{title: title, factory: f}
}

// List returns information about all registered games in menu order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for kind, e := range factories {
		result = append(result, GameInfo{
			Kind:  kind,
			ID:    kind.String(),
			Title: e.title,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates a new game session by kind.
// Returns an error if the game is not registered.
func Create(kind core.GameKind, deps Deps) (Game, error) {
	mu.RLock()
	e, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", kind)
	}
	if deps.Notifier == nil {
		deps.Notifier = core.NopNotifier{}
	}
	return e.factory(deps), nil
}

// CreateByID instantiates a game from its command-line identifier.
func CreateByID(id string, deps Deps) (Game, error) {
	kind, ok := core.ParseGameKind(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return Create(kind, deps)
}

// Exists checks if a game with the given identifier is registered.
func Exists(id string) bool {
	kind, ok := core.ParseGameKind(id)
	if !ok {
		return false
	}

	mu.RLock()
	defer mu.RUnlock()

	_, ok = factories[kind]
	return ok
}
