package frontend

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one problem reported while building a program. Diagnostics
// are collected and returned, never thrown; a file with errors is still
// traversed best-effort.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s:%d: %s", d.Severity, d.File, d.Line, d.Message)
}

// scanSyntaxErrors walks a parsed tree and reports every ERROR and missing
// node as a syntactic diagnostic.
func scanSyntaxErrors(root *tree_sitter.Node, path string) []Diagnostic {
	var out []Diagnostic

	cursor := root.Walk()
	defer cursor.Close()

	var walk func()
	walk = func() {
		node := cursor.Node()
		if node.IsError() {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Message:  "syntax error",
				File:     path,
				Line:     int(node.StartPosition().Row) + 1,
			})
		} else if node.IsMissing() {
			out = append(out, Diagnostic{
				Severity: SeverityError,
				Message:  fmt.Sprintf("missing %s", node.Kind()),
				File:     path,
				Line:     int(node.StartPosition().Row) + 1,
			})
		}

		if cursor.GotoFirstChild() {
			walk()
			for cursor.GotoNextSibling() {
				walk()
			}
			cursor.GotoParent()
		}
	}
	walk()

	return out
}
