// Package registry holds the detector builders known to this process.
// Model packages register themselves at init time; callers construct
// variants by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/iancoleman/strcase"

	"github.com/deepscene/det3d/pkg/detection"
)

// Builder constructs a fresh detector instance.
type Builder func() (detection.Detector, error)

var (
	mu       sync.RWMutex
	builders = map[string]Builder{}
)

// Normalize converts a display name to its registry ID (snake case).
func Normalize(name string) string {
	return strcase.ToSnake(name)
}

// Register adds a builder under the normalized name. Registering the same
// ID twice panics; registration happens at init time, a duplicate is a
// programming error.
func Register(name string, b Builder) {
	id := Normalize(name)

	mu.Lock()
	defer mu.Unlock()
	if _, ok := builders[id]; ok {
		panic(fmt.Sprintf("registry: detector %q registered twice", id))
	}
	builders[id] = b
}

// New constructs the detector registered under name.
func New(name string) (detection.Detector, error) {
	id := Normalize(name)

	mu.RLock()
	b, ok := builders[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown detector %q", id)
	}
	return b()
}

// List returns the registered IDs in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(builders))
	for id := range builders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
