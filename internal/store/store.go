// Package store persists a converted reflection tree into a queryable
// backend. Two implementations exist: KuzuStore (graph database, requires
// CGO) and MemStore (in-memory, used by tests and as a CGO-free fallback).
package store

import (
	"context"
	"io"

	"github.com/dusk-indust/doctree/internal/reflect"
)

// Store is the persistence interface for reflection graphs.
// All backend access goes through this interface.
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddReflection(ctx context.Context, rec Record) error
	AddRelationship(ctx context.Context, rel Relationship) error

	// Read operations. A limit of zero or less means no limit.
	GetReflection(ctx context.Context, id reflect.ID) (*Record, error)
	QueryReflections(ctx context.Context, query string, limit int) ([]Record, error)
	Children(ctx context.Context, id reflect.ID) ([]Record, error)

	// Hierarchy walks heritage relationships upward from id, returning one
	// chain per reachable supertype.
	Hierarchy(ctx context.Context, id reflect.ID, maxDepth int) ([]HierarchyChain, error)

	// Stats.
	Stats(ctx context.Context) (*ProjectStats, error)
}

// Record is the flattened, storable form of one reflection.
type Record struct {
	ID       reflect.ID   `json:"id"`
	Name     string       `json:"name"`
	Kind     reflect.Kind `json:"kind"`
	Comment  string       `json:"comment,omitempty"`
	File     string       `json:"file,omitempty"`
	Line     int          `json:"line,omitempty"`
	Exported bool         `json:"exported"`
	External bool         `json:"external"`
}

// RelKind classifies relationships between stored reflections.
type RelKind string

const (
	RelChild      RelKind = "CHILD_OF"
	RelExtends    RelKind = "EXTENDS"
	RelImplements RelKind = "IMPLEMENTS"
)

// Relationship links two stored reflections.
type Relationship struct {
	SourceID reflect.ID `json:"sourceId"`
	TargetID reflect.ID `json:"targetId"`
	Kind     RelKind    `json:"kind"`
}

// HierarchyChain is an ordered heritage path from a reflection to one of
// its supertypes.
type HierarchyChain struct {
	IDs   []reflect.ID `json:"ids"`
	Depth int          `json:"depth"`
}

// ProjectStats summarizes a stored reflection graph.
type ProjectStats struct {
	ReflectionCount   int `json:"reflectionCount"`
	RelationshipCount int `json:"relationshipCount"`
}

// recordOf flattens a reflection. The first source reference wins; merged
// declarations keep their extra sites in the reflection tree only.
func recordOf(r *reflect.Reflection) Record {
	rec := Record{
		ID:       r.ID,
		Name:     r.Name,
		Kind:     r.Kind,
		Comment:  r.Comment,
		Exported: r.Flags.Exported,
		External: r.Flags.External,
	}
	if len(r.Sources) > 0 {
		rec.File = r.Sources[0].File
		rec.Line = r.Sources[0].Line
	}
	return rec
}

// Persist writes a whole project into s: one record per reflection, a
// CHILD_OF relationship per parent link, and EXTENDS/IMPLEMENTS
// relationships for every resolved heritage reference.
func Persist(ctx context.Context, s Store, project *reflect.Project) error {
	var failure error
	project.Reflection.Traverse(func(r *reflect.Reflection) {
		if failure != nil {
			return
		}
		if err := s.AddReflection(ctx, recordOf(r)); err != nil {
			failure = err
			return
		}
		if r.Parent() != nil {
			failure = s.AddRelationship(ctx, Relationship{
				SourceID: r.ID,
				TargetID: r.Parent().ID,
				Kind:     RelChild,
			})
		}
	})
	if failure != nil {
		return failure
	}

	project.Reflection.Traverse(func(r *reflect.Reflection) {
		if failure != nil {
			return
		}
		for _, ref := range r.ExtendedTypes {
			if ref.Reflection == 0 {
				continue
			}
			if err := s.AddRelationship(ctx, Relationship{
				SourceID: r.ID, TargetID: ref.Reflection, Kind: RelExtends,
			}); err != nil {
				failure = err
				return
			}
		}
		for _, ref := range r.ImplementedTypes {
			if ref.Reflection == 0 {
				continue
			}
			if err := s.AddRelationship(ctx, Relationship{
				SourceID: r.ID, TargetID: ref.Reflection, Kind: RelImplements,
			}); err != nil {
				failure = err
				return
			}
		}
	})
	return failure
}
