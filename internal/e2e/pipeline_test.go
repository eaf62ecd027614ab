//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/export"
	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/plugins"
	"github.com/dusk-indust/doctree/internal/reflect"
	"github.com/dusk-indust/doctree/internal/store"
)

func fixtureFiles(t *testing.T, dir, ext string) []string {
	t.Helper()
	root := filepath.Join("..", "..", "testdata", "fixtures", dir)
	matches, err := filepath.Glob(filepath.Join(root, "*"+ext))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "fixture %s should contain %s files", dir, ext)
	return matches
}

func findByName(t *testing.T, p *reflect.Project, name string) *reflect.Reflection {
	t.Helper()
	var found *reflect.Reflection
	p.Traverse(func(r *reflect.Reflection) {
		if r.ID != 0 && r.Name == name && found == nil {
			found = r
		}
	})
	require.NotNil(t, found, "reflection %q should exist", name)
	return found
}

// TestPipeline_E2E_TypeScript runs the full pipeline against the checked-in
// TypeScript fixture: convert with the default plugin set, persist the tree
// into a store, walk the hierarchy, and export both JSON and Mermaid output.
func TestPipeline_E2E_TypeScript(t *testing.T) {
	c := converter.New(converter.Options{Name: "ts-fixture"}, frontend.NewLocalHost(), nil)
	require.NoError(t, plugins.RegisterDefaults(c))

	result, err := c.Convert(fixtureFiles(t, "ts_project", ".ts"))
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)

	project := result.Project

	// --- Conversion produced the fixture's declarations ---

	circle := findByName(t, project, "Circle")
	assert.Equal(t, reflect.KindClass, circle.Kind)
	require.Len(t, circle.ExtendedTypes, 1)
	shape := findByName(t, project, "Shape")
	assert.Equal(t, shape.ID, circle.ExtendedTypes[0].Reflection,
		"extends clause should resolve to the Shape reflection")

	drawable := findByName(t, project, "Drawable")
	assert.Equal(t, reflect.KindInterface, drawable.Kind)
	require.Len(t, shape.ImplementedTypes, 1)
	assert.Equal(t, drawable.ID, shape.ImplementedTypes[0].Reflection)
	assert.Contains(t, drawable.Comment, "renderer can draw")

	clamp := findByName(t, project, "clamp")
	assert.Equal(t, reflect.KindFunction, clamp.Kind)
	assert.Len(t, clamp.Signatures(), 2, "one signature per overload")

	// --- Persist and query through the store layer ---

	ctx := context.Background()
	s := store.NewMemStore()
	require.NoError(t, s.InitSchema(ctx))
	require.NoError(t, store.Persist(ctx, s, project))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, project.Count()+1, stats.ReflectionCount)

	records, err := s.QueryReflections(ctx, "circle", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)

	chains, err := s.Hierarchy(ctx, circle.ID, 5)
	require.NoError(t, err)
	require.NotEmpty(t, chains, "Circle sits under Shape in the hierarchy")

	// --- Export ---

	outDir := t.TempDir()
	require.NoError(t, export.WriteJSON(outDir, project, converter.ModeSingleFile))

	data, err := os.ReadFile(filepath.Join(outDir, "project.json"))
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "ts-fixture", doc.Name)
	require.NotNil(t, doc.Root)

	diagram := export.GenerateMermaid(project)
	assert.Contains(t, diagram, "classDiagram")
	assert.Contains(t, diagram, `["Circle"]`)
	assert.Contains(t, diagram, "<<interface>>")
}

// TestPipeline_E2E_Go converts the Go fixture with the Go front-end and
// checks that struct and interface declarations come through.
func TestPipeline_E2E_Go(t *testing.T) {
	c := converter.New(converter.Options{
		Name:     "go-fixture",
		Language: frontend.LangGo,
	}, frontend.NewLocalHost(), nil)
	require.NoError(t, plugins.RegisterDefaults(c))

	result, err := c.Convert(fixtureFiles(t, "go_project", ".go"))
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)

	project := result.Project

	user := findByName(t, project, "User")
	assert.Equal(t, reflect.KindClass, user.Kind)

	repo := findByName(t, project, "Repository")
	assert.Equal(t, reflect.KindInterface, repo.Kind)

	assert.Greater(t, project.Count(), 2)
}
