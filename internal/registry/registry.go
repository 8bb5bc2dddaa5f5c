// Package registry provides a global registry for hand input sources.
// Sources register themselves in init() functions, allowing the host
// to discover and instantiate them by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/hand-pong/internal/core"
)

// Options carries what a source needs to build its sampler.
type Options struct {
	// CanvasW and CanvasH are the canvas dimensions hands are mapped into.
	CanvasW float64
	CanvasH float64

	// ScriptPath is the replay file for scripted sources.
	ScriptPath string

	// Landmarks asks synthetic sources to emit palm landmarks as well as
	// control points.
	Landmarks bool
}

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	Name        string
	Description string
}

// Factory creates a new sampler instance.
type Factory func(opts Options) (core.HandSampler, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a source factory to the registry.
// Typically called from an init() function.
// Panics if a source with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered sources, sorted by name.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(factories))
	for name := range factories {
		result = append(result, SourceInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a sampler by source name.
// Returns an error if the name is not registered or the factory fails.
func Create(name string, opts Options) (core.HandSampler, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown source %q", name)
	}

	s, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", name, err)
	}
	return s, nil
}

// Exists checks if a source with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
