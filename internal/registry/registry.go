// Package registry provides a global registry for engine factories.
// Engines register themselves in init() functions, allowing hosts to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/framehost/internal/engine"
)

// EngineInfo contains metadata about a registered engine.
type EngineInfo struct {
	ID     string
	Title  string
	Width  int
	Height int
}

// Factory is a function that creates a new instance of an engine.
type Factory func() engine.Engine

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]EngineInfo)
	mu        sync.RWMutex
)

// Register adds an engine factory to the registry.
// Panics if an engine with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: engine %q already registered", id))
	}

	factories[id] = f

	// Capture metadata from a throwaway instance
	e := f()
	w, h := e.Resolution()
	infos[id] = EngineInfo{ID: id, Title: e.Title(), Width: w, Height: h}
}

// List returns information about all registered engines, sorted by ID.
func List() []EngineInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EngineInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new engine by its ID.
func Create(id string) (engine.Engine, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown engine %q", id)
	}

	return f(), nil
}

// Exists checks if an engine with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
