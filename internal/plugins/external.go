package plugins

import (
	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"

	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/plugin"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// ExternalPlugin marks files matching the configured glob pattern as
// external, so every reflection created from them carries the external
// flag. With exclusion enabled it removes those reflections from the tree
// once the resolution pass has run.
type ExternalPlugin struct {
	pattern glob.Glob
}

func (p *ExternalPlugin) Name() string { return "external" }

func newExternalRegistration() plugin.Registration[*converter.Converter, converter.Extension] {
	return plugin.Registration[*converter.Converter, converter.Extension]{
		Name:     "external",
		Requires: ">=1.0.0",
		Params: []plugin.Param{
			{
				Name:        "externalPattern",
				Type:        plugin.ParamString,
				Description: "glob matched against canonical file paths; matching files are marked external",
				Validate: func(value string) error {
					if value == "" {
						return nil
					}
					_, err := glob.Compile(value, '/')
					return err
				},
			},
			{
				Name:        "excludeExternals",
				Type:        plugin.ParamBoolean,
				Default:     "false",
				Description: "remove external reflections from the output tree",
			},
		},
		New: func(c *converter.Converter) (converter.Extension, error) {
			p := &ExternalPlugin{}
			opts := c.Options()

			if opts.ExternalPattern != "" {
				pattern, err := glob.Compile(opts.ExternalPattern, '/')
				if err != nil {
					return nil, errors.Wrapf(err, "external: invalid pattern %q", opts.ExternalPattern)
				}
				p.pattern = pattern
			}

			c.OnFileBegin(func(ev *converter.FileEvent) {
				if p.pattern != nil && p.pattern.Match(ev.File.Path) {
					ev.External = true
				}
			})

			if opts.ExcludeExternals {
				c.OnConverter(converter.EventResolveEnd, func(ev converter.ConverterEvent) {
					p.exclude(ev.Context.Project)
				})
			}
			return p, nil
		},
	}
}

// exclude removes every external subtree. Only the topmost external
// reflection of each subtree needs unregistering; Unregister takes its
// descendants with it.
func (p *ExternalPlugin) exclude(project *reflect.Project) {
	var roots []*reflect.Reflection
	var collect func(r *reflect.Reflection)
	collect = func(r *reflect.Reflection) {
		for _, child := range r.Children {
			if child.Flags.External {
				roots = append(roots, child)
				continue
			}
			collect(child)
		}
	}
	collect(&project.Reflection)

	for _, r := range roots {
		project.Unregister(r)
	}
}
