package frontend

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeKind classifies syntax nodes by language-independent shape. The
// conversion engine dispatches on these kinds; per-language specs map the
// grammar's concrete node kinds onto them.
type NodeKind int

const (
	// KindOther marks nodes with no documentation meaning of their own.
	// Traversal descends through them transparently.
	KindOther NodeKind = iota
	KindSourceFile
	KindModule
	KindImport
	KindClass
	KindInterface
	KindEnum
	KindEnumMember
	KindFunction          // function declaration with a body
	KindFunctionSignature // overload or ambient declaration, no body
	KindMethod
	KindMethodSignature
	KindConstructor
	KindCallSignature
	KindIndexSignature
	KindProperty
	KindVariable
	KindTypeAlias
	KindParameter
	KindTypeParameter
	KindBlock // executable statement body, never descended into
	KindComment
)

var nodeKindNames = map[NodeKind]string{
	KindOther:             "other",
	KindSourceFile:        "source file",
	KindModule:            "module",
	KindImport:            "import",
	KindClass:             "class",
	KindInterface:         "interface",
	KindEnum:              "enum",
	KindEnumMember:        "enum member",
	KindFunction:          "function",
	KindFunctionSignature: "function signature",
	KindMethod:            "method",
	KindMethodSignature:   "method signature",
	KindConstructor:       "constructor",
	KindCallSignature:     "call signature",
	KindIndexSignature:    "index signature",
	KindProperty:          "property",
	KindVariable:          "variable",
	KindTypeAlias:         "type alias",
	KindParameter:         "parameter",
	KindTypeParameter:     "type parameter",
	KindBlock:             "block",
	KindComment:           "comment",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsDeclaration reports whether nodes of this kind introduce a named,
// documentable entity and therefore carry a symbol.
func (k NodeKind) IsDeclaration() bool {
	switch k {
	case KindModule, KindClass, KindInterface, KindEnum, KindEnumMember,
		KindFunction, KindFunctionSignature, KindMethod, KindMethodSignature,
		KindConstructor, KindProperty, KindVariable, KindTypeAlias:
		return true
	default:
		return false
	}
}

// Node is one syntax node of a parsed source file, viewed through the
// language spec's generic kind mapping. The zero value is not usable;
// nodes are obtained from SourceFile.Root and Node.Children.
type Node struct {
	inner *tree_sitter.Node
	file  *SourceFile
}

// Kind returns the generic shape of this node.
func (n Node) Kind() NodeKind {
	return n.file.Spec.KindOf(n.inner)
}

// RawKind returns the grammar's own node kind string.
func (n Node) RawKind() string {
	return n.inner.Kind()
}

// Name returns the declared name of this node, or "" when it has none.
func (n Node) Name() string {
	return n.file.Spec.NameOf(n.inner, n.file.source)
}

// Text returns the source text covered by this node.
func (n Node) Text() string {
	return n.inner.Utf8Text(n.file.source)
}

// File returns the source file this node belongs to.
func (n Node) File() *SourceFile {
	return n.file
}

// StartLine returns the 1-based line the node starts on.
func (n Node) StartLine() int {
	return int(n.inner.StartPosition().Row) + 1
}

// EndLine returns the 1-based line the node ends on.
func (n Node) EndLine() int {
	return int(n.inner.EndPosition().Row) + 1
}

// StartByte returns the node's byte offset, used as its identity within
// one file.
func (n Node) StartByte() int {
	return int(n.inner.StartByte())
}

// Parent returns the syntactic parent node, if any.
func (n Node) Parent() (Node, bool) {
	parent := n.inner.Parent()
	if parent == nil {
		return Node{}, false
	}
	return Node{inner: parent, file: n.file}, true
}

// Children returns the node's named children in source order.
func (n Node) Children() []Node {
	count := n.inner.NamedChildCount()
	out := make([]Node, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.inner.NamedChild(i)
		if child == nil {
			continue
		}
		out = append(out, Node{inner: child, file: n.file})
	}
	return out
}

// ChildByField returns the child bound to the given grammar field, if any.
func (n Node) ChildByField(field string) (Node, bool) {
	child := n.inner.ChildByFieldName(field)
	if child == nil {
		return Node{}, false
	}
	return Node{inner: child, file: n.file}, true
}

// HasBody reports whether the node carries an executable statement body.
func (n Node) HasBody() bool {
	body := n.inner.ChildByFieldName("body")
	return body != nil && n.file.Spec.KindOf(body) == KindBlock
}

// TypeText returns the declared type annotation text of this node with the
// annotation punctuation stripped, or "" when untyped. For function-like
// nodes this is the return type.
func (n Node) TypeText() string {
	t := n.inner.ChildByFieldName("type")
	if t == nil {
		t = n.inner.ChildByFieldName("return_type")
	}
	if t == nil {
		return ""
	}
	text := t.Utf8Text(n.file.source)
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
	return text
}

// HasModifier reports whether one of the node's unnamed children spells the
// given keyword (e.g. "static", "abstract", "private", "export").
func (n Node) HasModifier(keyword string) bool {
	count := n.inner.ChildCount()
	for i := uint(0); i < count; i++ {
		child := n.inner.Child(i)
		if child == nil {
			continue
		}
		if child.Utf8Text(n.file.source) == keyword {
			return true
		}
		// TS nests visibility in an accessibility_modifier node.
		if child.Kind() == "accessibility_modifier" && child.Utf8Text(n.file.source) == keyword {
			return true
		}
	}
	return false
}

// wrapperKinds are grammar nodes that sit between a declaration and the
// statement position its doc comment precedes (e.g. an export statement
// around a class, or the declaration list around a variable declarator).
var wrapperKinds = map[string]bool{
	"export_statement":     true,
	"lexical_declaration":  true,
	"variable_declaration": true,
	"ambient_declaration":  true,
}

// PrecedingComment returns the text of the comment node immediately before
// this node, or "" when the node is undocumented. Wrapper nodes such as
// export statements are looked through, so a comment above `export class`
// attaches to the class.
func (n Node) PrecedingComment() string {
	cur := n.inner
	for {
		if prev := cur.PrevNamedSibling(); prev != nil {
			if n.file.Spec.KindOf(prev) != KindComment {
				return ""
			}
			return prev.Utf8Text(n.file.source)
		}
		parent := cur.Parent()
		if parent == nil || !wrapperKinds[parent.Kind()] {
			return ""
		}
		cur = parent
	}
}

// InExportStatement reports whether the node sits inside an export
// statement, looking through the same wrapper nodes as PrecedingComment so
// that a declarator under `export const` counts as exported.
func (n Node) InExportStatement() bool {
	for parent := n.inner.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Kind() == "export_statement" {
			return true
		}
		if !wrapperKinds[parent.Kind()] {
			return false
		}
	}
	return false
}
