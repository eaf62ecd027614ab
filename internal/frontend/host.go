// Package frontend wraps the external parser that supplies syntax trees,
// symbols, and diagnostics for the conversion engine. The engine itself
// never parses source text; it drives this package through the Host and
// Program types and consumes the generic node model they expose.
package frontend

import "fmt"

// Target selects the language level a program is compiled against. It is
// only used to pick the matching built-in declaration library file.
type Target int

const (
	TargetES5 Target = iota
	TargetES2015
	TargetESNext
)

// String returns the lowercase name of the target.
func (t Target) String() string {
	switch t {
	case TargetES5:
		return "es5"
	case TargetES2015:
		return "es2015"
	case TargetESNext:
		return "esnext"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ReadStatus distinguishes the outcomes of reading a source file. A missing
// file and an unreadable (unsupported encoding, permission) file are
// different conditions: the former yields "no file", the latter yields
// empty text plus a surfaced warning.
type ReadStatus int

const (
	ReadOK ReadStatus = iota
	ReadMissing
	ReadBadEncoding
)

// Host is the set of callbacks the conversion engine supplies to drive the
// external front-end. Implementations: LocalHost (production), test fakes.
type Host interface {
	// ReadFile returns the text of the file at path together with the
	// read outcome. On ReadBadEncoding the returned text is empty.
	ReadFile(path string) (string, ReadStatus)

	// DefaultLibFileName returns the basename of the built-in declaration
	// library matching the given target.
	DefaultLibFileName(target Target) string

	// DefaultLibFilePath returns the full path of the built-in declaration
	// library, composed from the host's installation root.
	DefaultLibFilePath(target Target) string

	// CurrentDirectory returns the working directory. The value is
	// computed once and memoized.
	CurrentDirectory() string

	// UseCaseSensitiveFileNames reports whether file names on this
	// platform are case-sensitive.
	UseCaseSensitiveFileNames() bool

	// CanonicalFileName normalizes path separators and, on
	// case-insensitive platforms, letter case. Canonical input is
	// returned unchanged.
	CanonicalFileName(path string) string

	// NewLine returns the host platform's line ending sequence.
	NewLine() string

	// WriteFile acknowledges a "write compiled output" request. The
	// engine only consumes programs, so implementations discard the data.
	WriteFile(path string, data []byte)
}
