package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/reflect"
)

func sampleProject() *reflect.Project {
	p := reflect.NewProject("Sample")

	iface := p.CreateReflection("Drawable", reflect.KindInterface, &p.Reflection)
	p.CreateReflection("draw", reflect.KindMethod, iface)

	base := p.CreateReflection("Shape", reflect.KindClass, &p.Reflection)
	circle := p.CreateReflection("Circle", reflect.KindClass, &p.Reflection)
	circle.ExtendedTypes = append(circle.ExtendedTypes, &reflect.TypeRef{Text: "Shape", Reflection: base.ID})
	circle.ImplementedTypes = append(circle.ImplementedTypes, &reflect.TypeRef{Text: "Drawable", Reflection: iface.ID})
	radius := p.CreateReflection("radius", reflect.KindProperty, circle)
	radius.Flags.Private = true

	return p
}

func TestJSON_RoundTrips(t *testing.T) {
	data, err := JSON(sampleProject())
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Sample", doc.Name)
	require.NotNil(t, doc.Root)
	assert.Len(t, doc.Root.Children, 3)
}

func TestWriteJSON_SingleFileMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON(dir, sampleProject(), converter.ModeSingleFile))

	data, err := os.ReadFile(filepath.Join(dir, "project.json"))
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Sample", doc.Name)
}

func TestWriteJSON_PerModuleMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteJSON(dir, sampleProject(), converter.ModePerModule))

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)

	var index ModuleIndex
	require.NoError(t, json.Unmarshal(data, &index))
	require.Len(t, index.Modules, 3)

	for _, name := range index.Modules {
		var r reflect.Reflection
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &r))
		assert.NotEmpty(t, r.Name)
	}
}

func TestModuleFileName_SanitizesAndDisambiguates(t *testing.T) {
	a := &reflect.Reflection{ID: 4, Name: "utils/strings"}
	b := &reflect.Reflection{ID: 9, Name: "utils/strings"}

	na := moduleFileName(a)
	nb := moduleFileName(b)
	assert.NotEqual(t, na, nb)
	assert.NotContains(t, na, "/")
	assert.Equal(t, "utils_strings.4.json", na)
}

func TestGenerateMermaid(t *testing.T) {
	out := GenerateMermaid(sampleProject())

	assert.Contains(t, out, "classDiagram")
	assert.Contains(t, out, `["Circle"]`)
	assert.Contains(t, out, "<<interface>>")
	assert.Contains(t, out, "-radius")

	// Shape <|-- Circle and Drawable <|.. Circle, by diagram id.
	assert.Contains(t, out, "<|--")
	assert.Contains(t, out, "<|..")
}
