package frontend

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

func init() {
	registerLangSpec(&LangSpec{
		Language:   LangRust,
		Grammar:    tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		Extensions: []string{".rs"},
		kinds: map[string]NodeKind{
			"source_file":       KindSourceFile,
			"mod_item":          KindModule,
			"use_declaration":   KindImport,
			"struct_item":       KindClass,
			"trait_item":        KindInterface,
			"enum_item":         KindEnum,
			"enum_variant":      KindEnumMember,
			"function_item":     KindFunction,
			"const_item":        KindVariable,
			"static_item":       KindVariable,
			"type_item":         KindTypeAlias,
			"field_declaration": KindProperty,
			"parameter":         KindParameter,
			"type_parameter":    KindTypeParameter,
			"block":             KindBlock,
			"line_comment":      KindComment,
			"block_comment":     KindComment,
		},
	})
}
