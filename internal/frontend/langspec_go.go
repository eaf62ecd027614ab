package frontend

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

func init() {
	registerLangSpec(&LangSpec{
		Language:   LangGo,
		Grammar:    tree_sitter.NewLanguage(tree_sitter_go.Language()),
		Extensions: []string{".go"},
		kinds: map[string]NodeKind{
			"source_file":                KindSourceFile,
			"import_spec":                KindImport,
			"function_declaration":       KindFunction,
			"method_declaration":         KindMethod,
			"parameter_declaration":      KindParameter,
			"type_parameter_declaration": KindTypeParameter,
			"var_spec":                   KindVariable,
			"const_spec":                 KindVariable,
			"field_declaration":          KindProperty,
			"block":                      KindBlock,
			"comment":                    KindComment,
		},
		kindOverride: goKindOverride,
	})
}

// goKindOverride resolves type_spec nodes by their underlying type: struct
// types document as classes, interface types as interfaces, the rest as
// type aliases.
func goKindOverride(n *tree_sitter.Node) (NodeKind, bool) {
	if n.Kind() != "type_spec" {
		return 0, false
	}
	t := n.ChildByFieldName("type")
	if t == nil {
		return KindTypeAlias, true
	}
	switch t.Kind() {
	case "struct_type":
		return KindClass, true
	case "interface_type":
		return KindInterface, true
	default:
		return KindTypeAlias, true
	}
}
