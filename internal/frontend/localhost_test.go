package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLocalHost_ReadFileOK(t *testing.T) {
	h := NewLocalHost()
	path := writeTemp(t, "ok.ts", []byte("export class A {}"))

	text, status := h.ReadFile(path)
	assert.Equal(t, ReadOK, status)
	assert.Equal(t, "export class A {}", text)
}

func TestLocalHost_ReadFileStripsUTF8BOM(t *testing.T) {
	h := NewLocalHost()
	path := writeTemp(t, "bom.ts", append([]byte{0xEF, 0xBB, 0xBF}, []byte("let x = 1;")...))

	text, status := h.ReadFile(path)
	assert.Equal(t, ReadOK, status)
	assert.Equal(t, "let x = 1;", text)
}

func TestLocalHost_ReadFileMissing(t *testing.T) {
	h := NewLocalHost()
	text, status := h.ReadFile(filepath.Join(t.TempDir(), "absent.ts"))
	assert.Equal(t, ReadMissing, status)
	assert.Empty(t, text)
}

func TestLocalHost_ReadFileBadEncodings(t *testing.T) {
	h := NewLocalHost()

	tests := []struct {
		name string
		data []byte
	}{
		{"utf-16 le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}},
		{"utf-16 be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}},
		{"utf-32 le bom", []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0, 0, 0}},
		{"nul byte", []byte{'h', 'i', 0x00, '!'}},
		{"invalid utf-8", []byte{0xC3, 0x28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "bad.ts", tt.data)
			text, status := h.ReadFile(path)
			assert.Equal(t, ReadBadEncoding, status)
			assert.Empty(t, text)
		})
	}
}

func TestLocalHost_CurrentDirectoryMemoized(t *testing.T) {
	h := NewLocalHost()
	first := h.CurrentDirectory()
	require.NotEmpty(t, first)

	// The memoized value survives a working directory change.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.Equal(t, first, h.CurrentDirectory())
}

func TestLocalHost_CanonicalFileNameIdempotent(t *testing.T) {
	h := NewLocalHost()
	canonical := h.CanonicalFileName(`src\models\User.ts`)
	assert.Equal(t, canonical, h.CanonicalFileName(canonical))
	assert.NotContains(t, canonical, `\`)
}

func TestLocalHost_DefaultLibFileName(t *testing.T) {
	h := NewLocalHost()
	assert.Equal(t, "lib.d.ts", h.DefaultLibFileName(TargetES5))
	assert.Equal(t, "lib.es2015.d.ts", h.DefaultLibFileName(TargetES2015))
	assert.Equal(t, "lib.esnext.d.ts", h.DefaultLibFileName(TargetESNext))
	assert.Equal(t, "lib.d.ts", h.DefaultLibFileName(Target(999)), "unknown targets fall back to ES5")
}

func TestLocalHost_DefaultLibFilePathUsesEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCTREE_LIB_DIR", dir)

	h := NewLocalHost()
	path := h.DefaultLibFilePath(TargetES2015)
	assert.Equal(t, filepath.Join(dir, "lib.es2015.d.ts"), path)
}

func TestLocalHost_WriteFileIsNoOp(t *testing.T) {
	h := NewLocalHost()
	target := filepath.Join(t.TempDir(), "out.js")
	h.WriteFile(target, []byte("var x;"))
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err), "the engine never emits compiled output")
}
