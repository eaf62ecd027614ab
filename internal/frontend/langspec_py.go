package frontend

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

func init() {
	registerLangSpec(&LangSpec{
		Language:   LangPython,
		Grammar:    tree_sitter.NewLanguage(tree_sitter_python.Language()),
		Extensions: []string{".py"},
		kinds: map[string]NodeKind{
			"module":                KindSourceFile,
			"import_statement":      KindImport,
			"import_from_statement": KindImport,
			"class_definition":      KindClass,
			"function_definition":   KindFunction,
			"typed_parameter":       KindParameter,
			"identifier_parameter":  KindParameter,
			"block":                 KindBlock,
			"comment":               KindComment,
		},
		kindOverride: pyKindOverride,
	})
}

// pyKindOverride keeps class and function bodies traversable for nested
// definitions; Python reuses "block" for both.
func pyKindOverride(n *tree_sitter.Node) (NodeKind, bool) {
	if n.Kind() == "block" {
		if parent := n.Parent(); parent != nil && parent.Kind() == "class_definition" {
			return KindOther, true
		}
	}
	return 0, false
}
