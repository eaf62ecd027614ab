package plugins

import (
	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/plugin"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// TypeResolverPlugin links type references to the reflections their
// symbols map to. This must run in the resolution pass: the referenced
// reflection may come from a file visited after the reference.
type TypeResolverPlugin struct{}

func (p *TypeResolverPlugin) Name() string { return "type" }

func newTypeResolverRegistration() plugin.Registration[*converter.Converter, converter.Extension] {
	return plugin.Registration[*converter.Converter, converter.Extension]{
		Name:     "type",
		Requires: ">=1.0.0",
		New: func(c *converter.Converter) (converter.Extension, error) {
			p := &TypeResolverPlugin{}
			c.OnResolve(func(ev converter.ResolveEvent) {
				resolveRef(ev.Context.Project, ev.Reflection.Type)
			})
			return p, nil
		},
	}
}

// resolveRef fills a type reference's reflection id from the symbol map.
// Idempotent: a reference resolved by an earlier pass stays resolved.
func resolveRef(project *reflect.Project, ref *reflect.TypeRef) {
	if ref == nil || ref.Symbol == 0 || ref.Reflection != 0 {
		return
	}
	if target, ok := project.BySymbol(ref.Symbol); ok {
		ref.Reflection = target.ID
	}
}
