package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/doctree/internal/reflect"
)

// buildProject assembles a small reflection tree with resolved heritage:
// Base <- Middle <- Leaf, plus an unrelated function.
func buildProject() *reflect.Project {
	p := reflect.NewProject("Test")

	base := p.CreateReflection("Base", reflect.KindClass, &p.Reflection)
	base.Sources = append(base.Sources, reflect.SourceReference{File: "base.ts", Line: 1})

	middle := p.CreateReflection("Middle", reflect.KindClass, &p.Reflection)
	middle.ExtendedTypes = append(middle.ExtendedTypes, &reflect.TypeRef{Text: "Base", Reflection: base.ID})

	leaf := p.CreateReflection("Leaf", reflect.KindClass, &p.Reflection)
	leaf.ExtendedTypes = append(leaf.ExtendedTypes, &reflect.TypeRef{Text: "Middle", Reflection: middle.ID})

	p.CreateReflection("size", reflect.KindProperty, leaf)
	p.CreateReflection("render", reflect.KindFunction, &p.Reflection)
	return p
}

func persistProject(t *testing.T) (*MemStore, *reflect.Project) {
	t.Helper()
	m := NewMemStore()
	p := buildProject()
	require.NoError(t, m.InitSchema(context.Background()))
	require.NoError(t, Persist(context.Background(), m, p))
	return m, p
}

func recordByName(t *testing.T, m *MemStore, name string) Record {
	t.Helper()
	recs, err := m.QueryReflections(context.Background(), name, 0)
	require.NoError(t, err)
	require.NotEmpty(t, recs, "no record named %s", name)
	return recs[0]
}

func TestPersist_StoresTreeAndRelationships(t *testing.T) {
	m, p := persistProject(t)
	ctx := context.Background()

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.Count()+1, stats.ReflectionCount, "root included")
	// One CHILD_OF per non-root reflection plus two EXTENDS edges.
	assert.Equal(t, p.Count()+2, stats.RelationshipCount)

	base := recordByName(t, m, "Base")
	assert.Equal(t, reflect.KindClass, base.Kind)
	assert.Equal(t, "base.ts", base.File)
	assert.Equal(t, 1, base.Line)
}

func TestMemStore_GetReflection(t *testing.T) {
	m, _ := persistProject(t)
	ctx := context.Background()

	rec, err := m.GetReflection(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, reflect.KindProject, rec.Kind)

	missing, err := m.GetReflection(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemStore_QueryReflections(t *testing.T) {
	m, _ := persistProject(t)
	ctx := context.Background()

	recs, err := m.QueryReflections(ctx, "mid", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Middle", recs[0].Name)

	// Limit caps the result count.
	all, err := m.QueryReflections(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemStore_Children(t *testing.T) {
	m, p := persistProject(t)
	ctx := context.Background()

	leaf := recordByName(t, m, "Leaf")
	children, err := m.Children(ctx, leaf.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "size", children[0].Name)

	rootChildren, err := m.Children(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rootChildren, len(p.Reflection.Children))
}

func TestMemStore_HierarchyWalksHeritage(t *testing.T) {
	m, _ := persistProject(t)
	ctx := context.Background()

	leaf := recordByName(t, m, "Leaf")
	chains, err := m.Hierarchy(ctx, leaf.ID, 10)
	require.NoError(t, err)
	require.Len(t, chains, 2, "Middle at depth 1, Base at depth 2")

	depths := map[int]int{}
	for _, c := range chains {
		depths[c.Depth]++
		assert.Equal(t, leaf.ID, c.IDs[0], "chains start at the queried reflection")
	}
	assert.Equal(t, 1, depths[1])
	assert.Equal(t, 1, depths[2])
}

func TestMemStore_HierarchyDepthLimit(t *testing.T) {
	m, _ := persistProject(t)
	ctx := context.Background()

	leaf := recordByName(t, m, "Leaf")
	chains, err := m.Hierarchy(ctx, leaf.ID, 1)
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, 1, chains[0].Depth)

	none, err := m.Hierarchy(ctx, leaf.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemStore_AddReflectionReplacesByID(t *testing.T) {
	m := NewMemStore()
	ctx := context.Background()

	require.NoError(t, m.AddReflection(ctx, Record{ID: 1, Name: "old"}))
	require.NoError(t, m.AddReflection(ctx, Record{ID: 1, Name: "new"}))

	stats, err := m.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ReflectionCount)

	rec, err := m.GetReflection(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new", rec.Name)
}
