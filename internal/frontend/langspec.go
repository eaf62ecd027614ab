package frontend

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language identifies a front-end grammar.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// LangSpec binds a tree-sitter grammar to the generic node model: which
// grammar kinds map to which NodeKinds, and how a node's declared name is
// read. One program uses exactly one spec.
type LangSpec struct {
	Language   Language
	Grammar    *tree_sitter.Language
	Extensions []string

	// kinds maps grammar node kinds with a fixed generic shape.
	kinds map[string]NodeKind

	// kindOverride resolves kinds that depend on node context (e.g. a Go
	// type_spec being a struct or an interface). May be nil.
	kindOverride func(n *tree_sitter.Node) (NodeKind, bool)

	// nameOverride reads names for nodes where the grammar does not use a
	// "name" field. May be nil.
	nameOverride func(n *tree_sitter.Node, source []byte) (string, bool)
}

// KindOf returns the generic kind of a grammar node.
func (s *LangSpec) KindOf(n *tree_sitter.Node) NodeKind {
	if s.kindOverride != nil {
		if k, ok := s.kindOverride(n); ok {
			return k
		}
	}
	if k, ok := s.kinds[n.Kind()]; ok {
		return k
	}
	return KindOther
}

// NameOf returns the declared name of a grammar node, or "".
func (s *LangSpec) NameOf(n *tree_sitter.Node, source []byte) string {
	if s.nameOverride != nil {
		if name, ok := s.nameOverride(n, source); ok {
			return name
		}
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return strings.Trim(name.Utf8Text(source), "\"'`")
}

// --- Registry ---

var langSpecs = map[Language]*LangSpec{}

// registerLangSpec adds a spec to the registry. Called from each language
// file's init.
func registerLangSpec(spec *LangSpec) {
	langSpecs[spec.Language] = spec
}

// SpecFor returns the registered spec for a language.
func SpecFor(lang Language) (*LangSpec, error) {
	spec, ok := langSpecs[lang]
	if !ok {
		return nil, errors.Newf("frontend: no language spec registered for %q", lang)
	}
	return spec, nil
}

// DetectLanguage maps a file path to its language by extension.
func DetectLanguage(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, spec := range langSpecs {
		for _, e := range spec.Extensions {
			if e == ext {
				return spec.Language, true
			}
		}
	}
	return "", false
}

// SupportedLanguages returns all registered languages.
func SupportedLanguages() []Language {
	out := make([]Language, 0, len(langSpecs))
	for lang := range langSpecs {
		out = append(out, lang)
	}
	return out
}
