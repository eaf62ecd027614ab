package plugins

import (
	"strings"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/plugin"
)

// CommentPlugin attaches the doc comment preceding a declaration to its
// reflection, with comment punctuation stripped.
type CommentPlugin struct{}

func (p *CommentPlugin) Name() string { return "comment" }

func newCommentRegistration() plugin.Registration[*converter.Converter, converter.Extension] {
	return plugin.Registration[*converter.Converter, converter.Extension]{
		Name:     "comment",
		Requires: ">=1.0.0",
		New: func(c *converter.Converter) (converter.Extension, error) {
			p := &CommentPlugin{}
			attach := func(ev converter.DeclarationEvent) {
				if ev.Reflection.Comment != "" {
					return
				}
				ev.Reflection.Comment = CleanComment(ev.Node.PrecedingComment())
			}
			c.OnDeclaration(converter.EventCreateDeclaration, attach)
			c.OnDeclaration(converter.EventCreateSignature, attach)
			return p, nil
		},
	}
}

// CleanComment strips comment markers and per-line decoration from a raw
// comment text.
func CleanComment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimPrefix(text, "/**")
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
	case strings.HasPrefix(text, "///"):
		// Rust-style doc comments keep their prefix per line; handled below.
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "///")
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, "#")
		lines[i] = strings.TrimSpace(line)
	}

	// Drop leading and trailing blank lines.
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
