package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProgram parses the given name→source files under a temp dir.
func newProgram(t *testing.T, files map[string]string, opts ProgramOptions) *Program {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, source := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
		paths = append(paths, path)
	}

	p, err := NewProgram(NewLocalHost(), paths, opts)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestNewProgram_ParsesAndBinds(t *testing.T) {
	p := newProgram(t, map[string]string{
		"lib.ts": `
export class Widget {
    size: number;
    draw(): void {}
}
export function render(w: Widget): void {}
`,
	}, ProgramOptions{})

	require.Len(t, p.Files, 1)
	assert.False(t, p.HasErrors())

	widget, ok := p.Symbols.Lookup("Widget")
	require.True(t, ok)
	assert.Equal(t, "Widget", widget.Name)
	assert.Equal(t, KindClass, widget.Kind)

	// Members are qualified by their container chain.
	_, ok = p.Symbols.Lookup("Widget.draw")
	assert.True(t, ok)
	_, ok = p.Symbols.Lookup("Widget.size")
	assert.True(t, ok)
	_, ok = p.Symbols.Lookup("render")
	assert.True(t, ok)

	// Unqualified member names do not leak to the top level.
	_, ok = p.Symbols.Lookup("draw")
	assert.False(t, ok)
}

func TestNewProgram_CrossFileMergingBindsOneSymbol(t *testing.T) {
	p := newProgram(t, map[string]string{
		"a.ts": "export interface Options { name: string; }",
		"b.ts": "export interface Options { mode: string; }",
	}, ProgramOptions{})

	sym, ok := p.Symbols.Lookup("Options")
	require.True(t, ok)
	assert.Len(t, sym.Declarations, 2, "both files bind to the same symbol")
}

func TestNewProgram_OverloadDeclarations(t *testing.T) {
	p := newProgram(t, map[string]string{
		"pad.ts": `
export function pad(value: string): string;
export function pad(value: number): string;
export function pad(value: any): string { return String(value); }
`,
	}, ProgramOptions{})

	sym, ok := p.Symbols.Lookup("pad")
	require.True(t, ok)
	require.Len(t, sym.Declarations, 3)
	assert.True(t, sym.HasSignatureDeclarations())

	bodies := 0
	for _, d := range sym.Declarations {
		if d.HasBody {
			bodies++
		}
	}
	assert.Equal(t, 1, bodies, "only the implementation site has a body")
}

func TestNewProgram_SyntaxErrorsBecomeDiagnostics(t *testing.T) {
	p := newProgram(t, map[string]string{
		"broken.ts": "export class {{{",
	}, ProgramOptions{})

	require.Len(t, p.Files, 1, "a broken file still parses best-effort")
	assert.True(t, p.HasErrors())
}

func TestNewProgram_MissingFile(t *testing.T) {
	p, err := NewProgram(NewLocalHost(), []string{filepath.Join(t.TempDir(), "nope.ts")}, ProgramOptions{})
	require.NoError(t, err)
	defer p.Close()

	assert.Empty(t, p.Files)
	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, SeverityError, p.Diagnostics[0].Severity)
}

func TestNewProgram_BadEncodingKeepsFileAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "utf16.ts")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFE, 'x', 0}, 0o644))

	p, err := NewProgram(NewLocalHost(), []string{path}, ProgramOptions{})
	require.NoError(t, err)
	defer p.Close()

	require.Len(t, p.Files, 1)
	assert.True(t, p.Files[0].Unreadable)
	assert.Empty(t, p.Files[0].Text())

	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, SeverityWarning, p.Diagnostics[0].Severity)
	assert.False(t, p.HasErrors())
}

func TestNewProgram_DeclarationFileFiltering(t *testing.T) {
	files := map[string]string{
		"types.d.ts": "export declare class Hidden {}",
		"main.ts":    "export class Shown {}",
	}

	p := newProgram(t, files, ProgramOptions{})
	assert.Len(t, p.Files, 1)

	p = newProgram(t, files, ProgramOptions{IncludeDeclarations: true})
	assert.Len(t, p.Files, 2)
}

func TestNewProgram_UnknownLanguageFails(t *testing.T) {
	_, err := NewProgram(NewLocalHost(), nil, ProgramOptions{Language: Language("cobol")})
	assert.Error(t, err)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path   string
		want   Language
		wantOK bool
	}{
		{"src/app.ts", LangTypeScript, true},
		{"src/util.mts", LangTypeScript, true},
		{"main.go", LangGo, true},
		{"tool.py", LangPython, true},
		{"lib.rs", LangRust, true},
		{"README.md", "", false},
	}
	for _, tt := range tests {
		got, ok := DetectLanguage(tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
		if ok {
			assert.Equal(t, tt.want, got, tt.path)
		}
	}
}

func TestNamespaceQualification(t *testing.T) {
	p := newProgram(t, map[string]string{
		"app.ts": `
namespace app {
    export class Service {}
}
`,
	}, ProgramOptions{})

	_, ok := p.Symbols.Lookup("app.Service")
	assert.True(t, ok)
	_, ok = p.Symbols.Lookup("Service")
	assert.False(t, ok)
}
