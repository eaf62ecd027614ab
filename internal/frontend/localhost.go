package frontend

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"
)

// Compile-time assertion: *LocalHost satisfies Host.
var _ Host = (*LocalHost)(nil)

// LocalHost implements Host against the local filesystem. Memoized values
// (working directory, library root) are scoped to one instance so that
// independent conversions in the same process never interfere.
type LocalHost struct {
	cwdOnce sync.Once
	cwd     string

	libOnce sync.Once
	libRoot string
}

// NewLocalHost returns a LocalHost ready for use.
func NewLocalHost() *LocalHost {
	return &LocalHost{}
}

// ReadFile reads path and classifies the outcome. UTF-8 text (with or
// without BOM) is accepted; UTF-16/UTF-32 byte order marks, NUL bytes, and
// invalid UTF-8 are reported as ReadBadEncoding with empty text.
func (h *LocalHost) ReadFile(path string) (string, ReadStatus) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ReadMissing
		}
		return "", ReadBadEncoding
	}

	if hasUnsupportedBOM(data) || bytes.IndexByte(data, 0) >= 0 {
		return "", ReadBadEncoding
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		return "", ReadBadEncoding
	}
	return string(data), ReadOK
}

// defaultLibNames maps each target to its declaration library basename.
var defaultLibNames = map[Target]string{
	TargetES5:    "lib.d.ts",
	TargetES2015: "lib.es2015.d.ts",
	TargetESNext: "lib.esnext.d.ts",
}

// DefaultLibFileName returns the declaration library basename for target.
// Unknown targets fall back to the ES5 library.
func (h *LocalHost) DefaultLibFileName(target Target) string {
	if name, ok := defaultLibNames[target]; ok {
		return name
	}
	return defaultLibNames[TargetES5]
}

// DefaultLibFilePath joins the library root with the target's basename.
// The root is taken from DOCTREE_LIB_DIR when set, otherwise the directory
// of the running executable; it is resolved once per host.
func (h *LocalHost) DefaultLibFilePath(target Target) string {
	h.libOnce.Do(func() {
		if dir := os.Getenv("DOCTREE_LIB_DIR"); dir != "" {
			h.libRoot = dir
			return
		}
		if exe, err := os.Executable(); err == nil {
			h.libRoot = filepath.Dir(exe)
			return
		}
		h.libRoot = h.CurrentDirectory()
	})
	return filepath.Join(h.libRoot, h.DefaultLibFileName(target))
}

// CurrentDirectory returns the working directory, computed on first call.
func (h *LocalHost) CurrentDirectory() string {
	h.cwdOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		h.cwd = cwd
	})
	return h.cwd
}

// UseCaseSensitiveFileNames reports the platform's file name policy.
func (h *LocalHost) UseCaseSensitiveFileNames() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	default:
		return true
	}
}

// CanonicalFileName converts path separators to forward slashes and lowers
// case on case-insensitive platforms. Idempotent.
func (h *LocalHost) CanonicalFileName(path string) string {
	canonical := filepath.ToSlash(path)
	if !h.UseCaseSensitiveFileNames() {
		canonical = strings.ToLower(canonical)
	}
	return canonical
}

// NewLine returns the platform line ending.
func (h *LocalHost) NewLine() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// WriteFile is a deliberate no-op: this engine never emits compiled output.
func (h *LocalHost) WriteFile(string, []byte) {}

// hasUnsupportedBOM reports whether data starts with a UTF-16 or UTF-32
// byte order mark.
func hasUnsupportedBOM(data []byte) bool {
	switch {
	case len(data) >= 4 && (bytes.Equal(data[:4], []byte{0x00, 0x00, 0xFE, 0xFF}) ||
		bytes.Equal(data[:4], []byte{0xFF, 0xFE, 0x00, 0x00})):
		return true
	case len(data) >= 2 && (bytes.Equal(data[:2], []byte{0xFE, 0xFF}) ||
		bytes.Equal(data[:2], []byte{0xFF, 0xFE})):
		return true
	default:
		return false
	}
}
