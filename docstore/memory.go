package docstore

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store used by tests and local development. It keeps
// the same ObjectID identifier scheme as Mongo and returns documents in
// insertion order, which keeps matchmaking tie-breaks deterministic.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
	down        bool
}

// NewMemory returns an empty, available Memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]map[string]any)}
}

// SetAvailable toggles the simulated connection state. Tests use it to
// exercise the unavailable-store paths.
func (m *Memory) SetAvailable(ok bool) {
	m.mu.Lock()
	m.down = !ok
	m.mu.Unlock()
}

// Available implements Store.
func (m *Memory) Available() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.down
}

// Insert implements Store.
func (m *Memory) Insert(ctx context.Context, collection string, doc map[string]any) (primitive.ObjectID, error) {
	if !m.Available() {
		return primitive.NilObjectID, ErrUnavailable
	}

	stored := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	id := primitive.NewObjectID()
	stored["_id"] = id

	m.mu.Lock()
	m.collections[collection] = append(m.collections[collection], stored)
	m.mu.Unlock()

	return id, nil
}

// Query implements Store. Filter values match on equality.
func (m *Memory) Query(ctx context.Context, collection string, filter map[string]any, limit int64) ([]map[string]any, error) {
	if !m.Available() {
		return nil, ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []map[string]any
	for _, doc := range m.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		cp := make(map[string]any, len(doc))
		for k, v := range doc {
			cp[k] = v
		}
		out = append(out, cp)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// Collections implements Store.
func (m *Memory) Collections(ctx context.Context) ([]string, error) {
	if !m.Available() {
		return nil, ErrUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func matches(doc, filter map[string]any) bool {
	for k, want := range filter {
		if doc[k] != want {
			return false
		}
	}
	return true
}
