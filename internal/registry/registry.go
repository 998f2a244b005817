// Package registry maps game IDs to factories. Games register themselves
// from init(), so the CLI and the SSH server can build a game by name
// without importing its package directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Game is what the platform drives: a fixed-step simulation that renders
// into a character grid. Games never see Bubble Tea.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// score key, e.g. "breakout".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the input collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. The screen is cleared first.
	Render(dst *core.Screen)

	// State returns the current score and status flags.
	State() core.GameState
}

// Info describes a registered game.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It panics on an empty or duplicate ID, which can
// only happen through a programming error in an init function.
func Register(info Info, f Factory) {
	if strings.TrimSpace(info.ID) == "" {
		panic("registry: empty game id")
	}
	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for %q", info.ID))
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered game sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b Info) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Lookup returns the info of a registered game.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
