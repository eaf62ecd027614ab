// Package plugins holds the built-in converter extensions. They are
// registered through the converter's plugin host like any third-party
// extension and communicate with the engine only through its typed events.
package plugins

import (
	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/plugin"
)

// RegisterDefaults adds every built-in extension to the converter's plugin
// host. Activation happens on the converter's first Convert call.
func RegisterDefaults(c *converter.Converter) error {
	regs := []plugin.Registration[*converter.Converter, converter.Extension]{
		newCommentRegistration(),
		newTypeResolverRegistration(),
		newImplementsRegistration(),
		newGroupRegistration(),
		newExternalRegistration(),
	}
	for _, reg := range regs {
		if err := c.Plugins().Add(reg); err != nil {
			return err
		}
	}
	return nil
}
