package plugins

import (
	"github.com/dusk-indust/doctree/internal/converter"
	"github.com/dusk-indust/doctree/internal/plugin"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// groupTitles maps a child kind to the heading its group renders under.
var groupTitles = map[reflect.Kind]string{
	reflect.KindModule:      "Modules",
	reflect.KindClass:       "Classes",
	reflect.KindInterface:   "Interfaces",
	reflect.KindEnum:        "Enumerations",
	reflect.KindEnumMember:  "Enumeration Members",
	reflect.KindFunction:    "Functions",
	reflect.KindMethod:      "Methods",
	reflect.KindConstructor: "Constructors",
	reflect.KindProperty:    "Properties",
	reflect.KindVariable:    "Variables",
	reflect.KindTypeAlias:   "Type Aliases",
}

// groupOrder fixes the heading order within a container.
var groupOrder = []reflect.Kind{
	reflect.KindModule,
	reflect.KindEnum,
	reflect.KindEnumMember,
	reflect.KindClass,
	reflect.KindInterface,
	reflect.KindTypeAlias,
	reflect.KindConstructor,
	reflect.KindProperty,
	reflect.KindMethod,
	reflect.KindFunction,
	reflect.KindVariable,
}

// GroupPlugin sorts a container's children into titled kind groups during
// the resolution pass. It runs after the heritage resolver so groups see
// the final shape of the tree.
type GroupPlugin struct{}

func (p *GroupPlugin) Name() string { return "group" }

func newGroupRegistration() plugin.Registration[*converter.Converter, converter.Extension] {
	return plugin.Registration[*converter.Converter, converter.Extension]{
		Name:     "group",
		After:    []string{"implements"},
		Requires: ">=1.0.0",
		New: func(c *converter.Converter) (converter.Extension, error) {
			p := &GroupPlugin{}
			c.OnResolve(func(ev converter.ResolveEvent) {
				ev.Reflection.Groups = buildGroups(ev.Reflection)
			})
			return p, nil
		},
	}
}

// buildGroups computes the kind groups of r's direct children. Containers
// with no groupable children get no groups; signature and parameter
// children are never grouped.
func buildGroups(r *reflect.Reflection) []reflect.Group {
	switch r.Kind {
	case reflect.KindProject, reflect.KindModule, reflect.KindClass,
		reflect.KindInterface, reflect.KindEnum:
	default:
		return nil
	}

	byKind := make(map[reflect.Kind][]reflect.ID)
	for _, child := range r.Children {
		if _, ok := groupTitles[child.Kind]; !ok {
			continue
		}
		byKind[child.Kind] = append(byKind[child.Kind], child.ID)
	}

	var groups []reflect.Group
	for _, kind := range groupOrder {
		ids := byKind[kind]
		if len(ids) == 0 {
			continue
		}
		groups = append(groups, reflect.Group{
			Title:    groupTitles[kind],
			Kind:     kind,
			Children: ids,
		})
	}
	return groups
}
