package plugins

import (
	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/plugin"
)

// ImplementsPlugin resolves heritage clauses: the extends/implements type
// references of classes and interfaces are linked to the reflections of
// the types they name, regardless of file visit order.
type ImplementsPlugin struct{}

func (p *ImplementsPlugin) Name() string { return "implements" }

func newImplementsRegistration() plugin.Registration[*converter.Converter, converter.Extension] {
	return plugin.Registration[*converter.Converter, converter.Extension]{
		Name:     "implements",
		After:    []string{"type"},
		Requires: ">=1.0.0",
		New: func(c *converter.Converter) (converter.Extension, error) {
			p := &ImplementsPlugin{}
			c.OnResolve(func(ev converter.ResolveEvent) {
				for _, ref := range ev.Reflection.ExtendedTypes {
					resolveRef(ev.Context.Project, ref)
				}
				for _, ref := range ev.Reflection.ImplementedTypes {
					resolveRef(ev.Context.Project, ref)
				}
			})
			return p, nil
		},
	}
}
