package store

import (
	"context"
	"strings"
	"sync"

	"github.com/dusk-indust/doctree/internal/reflect"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu      sync.RWMutex
	records map[reflect.ID]Record
	order   []reflect.ID // insertion order, keeps query results deterministic
	rels    []Relationship
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[reflect.ID]Record),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddReflection stores a record keyed by its id. Re-adding an id replaces
// the record but keeps its original position.
func (m *MemStore) AddReflection(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.ID]; !exists {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec
	return nil
}

// AddRelationship appends a relationship to the internal slice.
func (m *MemStore) AddRelationship(_ context.Context, rel Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rels = append(m.rels, rel)
	return nil
}

// GetReflection returns the record for the given id, or nil if not found.
func (m *MemStore) GetReflection(_ context.Context, id reflect.ID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// QueryReflections returns records whose name contains query
// (case-insensitive), up to limit results. A limit <= 0 returns all matches.
func (m *MemStore) QueryReflections(_ context.Context, query string, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []Record
	for _, id := range m.order {
		rec := m.records[id]
		if strings.Contains(strings.ToLower(rec.Name), lowerQuery) {
			results = append(results, rec)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

// Children returns the records whose CHILD_OF relationship targets id.
func (m *MemStore) Children(_ context.Context, id reflect.ID) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, rel := range m.rels {
		if rel.Kind != RelChild || rel.TargetID != id {
			continue
		}
		if rec, ok := m.records[rel.SourceID]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Hierarchy performs a BFS along EXTENDS and IMPLEMENTS relationships from
// id, up to maxDepth hops. It returns one chain per reachable supertype.
func (m *MemStore) Hierarchy(_ context.Context, id reflect.ID, maxDepth int) ([]HierarchyChain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxDepth <= 0 {
		return nil, nil
	}

	type bfsEntry struct {
		id   reflect.ID
		path []reflect.ID
	}

	visited := map[reflect.ID]bool{id: true}
	queue := []bfsEntry{{id: id, path: []reflect.ID{id}}}
	var chains []HierarchyChain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, super := range m.supertypes(entry.id) {
				if visited[super] {
					continue
				}
				visited[super] = true
				newPath := make([]reflect.ID, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, super)
				chains = append(chains, HierarchyChain{
					IDs:   newPath,
					Depth: len(newPath) - 1,
				})
				nextQueue = append(nextQueue, bfsEntry{id: super, path: newPath})
			}
		}
		queue = nextQueue
	}

	return chains, nil
}

// supertypes returns ids reachable from id in one heritage hop.
func (m *MemStore) supertypes(id reflect.ID) []reflect.ID {
	var result []reflect.ID
	for _, rel := range m.rels {
		if rel.SourceID != id {
			continue
		}
		if rel.Kind == RelExtends || rel.Kind == RelImplements {
			result = append(result, rel.TargetID)
		}
	}
	return result
}

// Stats returns counts of stored records and relationships.
func (m *MemStore) Stats(_ context.Context) (*ProjectStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &ProjectStats{
		ReflectionCount:   len(m.records),
		RelationshipCount: len(m.rels),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
