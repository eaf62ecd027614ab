package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/doctree/internal/reflect"
)

// GenerateMermaid produces a Mermaid classDiagram from the project's type
// hierarchy. Classes and interfaces become diagram classes with their
// properties and methods; resolved heritage references become inheritance
// and realization arrows.
func GenerateMermaid(project *reflect.Project) string {
	// Collect diagram participants in creation order.
	var types []*reflect.Reflection
	project.Reflection.Traverse(func(r *reflect.Reflection) {
		switch r.Kind {
		case reflect.KindClass, reflect.KindInterface, reflect.KindEnum:
			types = append(types, r)
		}
	})

	// Diagram identifiers must be alphanumeric; same-named types in
	// different containers get distinct ids.
	ids := make(map[reflect.ID]string, len(types))
	for i, t := range types {
		ids[t.ID] = fmt.Sprintf("T%d", i)
	}

	var sb strings.Builder
	sb.WriteString("classDiagram\n")

	for _, t := range types {
		sb.WriteString(fmt.Sprintf("  class %s[\"%s\"]", ids[t.ID], t.Name))
		if t.Kind == reflect.KindInterface {
			sb.WriteString(" {\n    <<interface>>\n")
		} else if t.Kind == reflect.KindEnum {
			sb.WriteString(" {\n    <<enumeration>>\n")
		} else {
			sb.WriteString(" {\n")
		}
		for _, member := range t.Children {
			switch member.Kind {
			case reflect.KindProperty, reflect.KindEnumMember:
				sb.WriteString(fmt.Sprintf("    %s%s\n", visibility(member), member.Name))
			case reflect.KindMethod, reflect.KindConstructor:
				sb.WriteString(fmt.Sprintf("    %s%s()\n", visibility(member), member.Name))
			}
		}
		sb.WriteString("  }\n")
	}

	for _, t := range types {
		for _, ref := range t.ExtendedTypes {
			if target, ok := ids[ref.Reflection]; ok && ref.Reflection != 0 {
				sb.WriteString(fmt.Sprintf("  %s <|-- %s\n", target, ids[t.ID]))
			}
		}
		for _, ref := range t.ImplementedTypes {
			if target, ok := ids[ref.Reflection]; ok && ref.Reflection != 0 {
				sb.WriteString(fmt.Sprintf("  %s <|.. %s\n", target, ids[t.ID]))
			}
		}
	}

	return sb.String()
}

// visibility maps member flags to Mermaid visibility markers.
func visibility(r *reflect.Reflection) string {
	switch {
	case r.Flags.Private:
		return "-"
	case r.Flags.Protected:
		return "#"
	default:
		return "+"
	}
}
