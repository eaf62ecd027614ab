package frontend

import (
	"strings"

	"github.com/cockroachdb/errors"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ProgramOptions configure program creation.
type ProgramOptions struct {
	// Language selects the front-end grammar. Default: TypeScript.
	Language Language

	// Target selects the language level, used for default-library
	// resolution.
	Target Target

	// IncludeDeclarations keeps declaration-only files (*.d.ts) in the
	// program. Default: false.
	IncludeDeclarations bool
}

// SourceFile is one parsed file of a program.
type SourceFile struct {
	// Path is the canonical file path.
	Path string

	// Spec is the language spec the file was parsed with.
	Spec *LangSpec

	// Unreadable is set when the file could not be decoded; the file then
	// parses as empty text.
	Unreadable bool

	source []byte
	tree   *tree_sitter.Tree
}

// Root returns the file's root syntax node.
func (f *SourceFile) Root() Node {
	return Node{inner: f.tree.RootNode(), file: f}
}

// Text returns the file's source text.
func (f *SourceFile) Text() string {
	return string(f.source)
}

// Program is a parsed-and-bound set of source files: trees, symbol table,
// and collected diagnostics. It owns tree-sitter memory; callers must
// Close it when the conversion result no longer needs the syntax trees.
type Program struct {
	Files       []*SourceFile
	Symbols     *SymbolTable
	Diagnostics []Diagnostic

	host Host
	spec *LangSpec
}

// NewProgram reads, parses, and binds the given files. Paths must already
// be canonical. Source problems (missing files, bad encodings, syntax
// errors) become diagnostics, not errors; only an engine-level fault (no
// grammar for the language) fails.
func NewProgram(host Host, paths []string, opts ProgramOptions) (*Program, error) {
	lang := opts.Language
	if lang == "" {
		lang = LangTypeScript
	}
	spec, err := SpecFor(lang)
	if err != nil {
		return nil, err
	}

	p := &Program{
		Symbols: newSymbolTable(),
		host:    host,
		spec:    spec,
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(spec.Grammar); err != nil {
		return nil, errors.Wrapf(err, "frontend: set grammar for %s", lang)
	}

	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		if !opts.IncludeDeclarations && isDeclarationFile(path) {
			continue
		}

		file, diags := parseFile(parser, host, spec, path)
		p.Diagnostics = append(p.Diagnostics, diags...)
		if file == nil {
			continue
		}
		p.Files = append(p.Files, file)
	}

	for _, file := range p.Files {
		p.Symbols.bindFile(file)
	}

	return p, nil
}

// parseFile reads and parses a single file. A nil file is returned only
// when the file does not exist.
func parseFile(parser *tree_sitter.Parser, host Host, spec *LangSpec, path string) (*SourceFile, []Diagnostic) {
	text, status := host.ReadFile(path)

	var diags []Diagnostic
	switch status {
	case ReadMissing:
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Message:  "file not found",
			File:     path,
		})
		return nil, diags
	case ReadBadEncoding:
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Message:  "file could not be read, unsupported encoding; treating as empty",
			File:     path,
		})
		text = ""
	}

	source := []byte(text)
	tree := parser.Parse(source, nil)
	if tree == nil {
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Message:  "parser returned no tree",
			File:     path,
		})
		return nil, diags
	}

	file := &SourceFile{
		Path:       path,
		Spec:       spec,
		Unreadable: status == ReadBadEncoding,
		source:     source,
		tree:       tree,
	}
	diags = append(diags, scanSyntaxErrors(tree.RootNode(), path)...)
	return file, diags
}

// Host returns the adapter the program was built with.
func (p *Program) Host() Host {
	return p.host
}

// SymbolFor returns the symbol bound to a declaration node, if any.
func (p *Program) SymbolFor(n Node) (*Symbol, bool) {
	return p.Symbols.ForNode(n)
}

// HasErrors reports whether any collected diagnostic is an error.
func (p *Program) HasErrors() bool {
	for _, d := range p.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Close releases the tree-sitter trees held by the program's files.
func (p *Program) Close() error {
	for _, f := range p.Files {
		if f.tree != nil {
			f.tree.Close()
			f.tree = nil
		}
	}
	return nil
}

// isDeclarationFile reports whether path is a declaration-only file.
func isDeclarationFile(path string) bool {
	return strings.HasSuffix(path, ".d.ts") ||
		strings.HasSuffix(path, ".d.mts") ||
		strings.HasSuffix(path, ".d.cts")
}
