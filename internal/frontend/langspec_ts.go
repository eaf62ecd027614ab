package frontend

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// TypeScript is the primary front-end: its grammar distinguishes overload
// signatures from implementations and carries the full modifier surface.

func init() {
	registerLangSpec(&LangSpec{
		Language:   LangTypeScript,
		Grammar:    tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		Extensions: []string{".ts", ".mts", ".cts"},
		kinds: map[string]NodeKind{
			"program":                    KindSourceFile,
			"internal_module":            KindModule, // namespace N { ... }
			"module":                     KindModule, // declare module "..." { ... }
			"import_statement":           KindImport,
			"class_declaration":          KindClass,
			"abstract_class_declaration": KindClass,
			"interface_declaration":      KindInterface,
			"enum_declaration":           KindEnum,
			"enum_assignment":            KindEnumMember,
			"function_declaration":       KindFunction,
			"function_signature":         KindFunctionSignature,
			"method_definition":          KindMethod,
			"method_signature":           KindMethodSignature,
			"abstract_method_signature":  KindMethodSignature,
			"call_signature":             KindCallSignature,
			"index_signature":            KindIndexSignature,
			"public_field_definition":    KindProperty,
			"property_signature":         KindProperty,
			"variable_declarator":        KindVariable,
			"type_alias_declaration":     KindTypeAlias,
			"required_parameter":         KindParameter,
			"optional_parameter":         KindParameter,
			"type_parameter":             KindTypeParameter,
			"statement_block":            KindBlock,
			"comment":                    KindComment,
		},
		kindOverride: tsKindOverride,
		nameOverride: tsNameOverride,
	})
}

// tsNameOverride reads parameter names from the grammar's "pattern" field,
// which holds the binding identifier for plain and destructured parameters.
func tsNameOverride(n *tree_sitter.Node, source []byte) (string, bool) {
	switch n.Kind() {
	case "required_parameter", "optional_parameter":
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			return pattern.Utf8Text(source), true
		}
		return "", true
	default:
		return "", false
	}
}

// tsKindOverride keeps namespace bodies traversable: the grammar reuses
// statement_block for them, but only function bodies are opaque blocks.
func tsKindOverride(n *tree_sitter.Node) (NodeKind, bool) {
	if n.Kind() == "statement_block" {
		if parent := n.Parent(); parent != nil && parent.Kind() == "internal_module" {
			return KindOther, true
		}
	}
	return 0, false
}
