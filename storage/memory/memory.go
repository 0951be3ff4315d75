// Package memory provides a map-backed storage adapter intended for tests
// and examples. It makes no persistence guarantees beyond process lifetime.
package memory

import (
	"sync"

	"github.com/goliatone/go-prefs/internal/clone"
)

// Adapter stores entries in process memory. Values are deep-copied on the
// way in and out so callers never alias stored state.
type Adapter struct {
	mu      sync.RWMutex
	scalars map[string]any
	lists   map[string][]any
}

// New constructs an empty adapter.
func New() *Adapter {
	return &Adapter{
		scalars: map[string]any{},
		lists:   map[string][]any{},
	}
}

func (a *Adapter) SaveValue(key string, value any) error {
	a.mu.Lock()
	a.scalars[key] = clone.Any(value)
	a.mu.Unlock()
	return nil
}

func (a *Adapter) LoadValue(key string, def any) (any, error) {
	a.mu.RLock()
	value, ok := a.scalars[key]
	a.mu.RUnlock()
	if !ok {
		return def, nil
	}
	return clone.Any(value), nil
}

func (a *Adapter) SaveList(key string, values []any) error {
	a.mu.Lock()
	a.lists[key] = clone.Slice(values)
	a.mu.Unlock()
	return nil
}

func (a *Adapter) LoadList(key string, def []any) ([]any, error) {
	a.mu.RLock()
	values, ok := a.lists[key]
	a.mu.RUnlock()
	if !ok {
		return def, nil
	}
	return clone.Slice(values), nil
}

func (a *Adapter) Clear() error {
	a.mu.Lock()
	a.scalars = map[string]any{}
	a.lists = map[string][]any{}
	a.mu.Unlock()
	return nil
}
