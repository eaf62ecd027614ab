package reflect

import "github.com/dusk-indust/doctree/internal/frontend"

// ID is a reflection identity, unique for the life of one conversion and
// never reused within it.
type ID int

// Flags describe modifiers observed at a reflection's declaration sites.
type Flags struct {
	Private   bool `json:"private,omitempty"`
	Protected bool `json:"protected,omitempty"`
	Static    bool `json:"static,omitempty"`
	Abstract  bool `json:"abstract,omitempty"`
	External  bool `json:"external,omitempty"`
	Optional  bool `json:"optional,omitempty"`
	Exported  bool `json:"exported,omitempty"`
}

// SourceReference points at one declaration site of a reflection.
type SourceReference struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// TypeRef is an opaque reference into the external type system: the raw
// annotation text, the symbol it names, and — after the resolution pass —
// the reflection that symbol maps to (0 when the type is not part of the
// documented program).
type TypeRef struct {
	Text       string            `json:"text"`
	Symbol     frontend.SymbolID `json:"-"`
	Reflection ID                `json:"reflection,omitempty"`
}

// Group is a presentation grouping of a container's children by kind,
// computed during the resolution pass.
type Group struct {
	Title    string `json:"title"`
	Kind     Kind   `json:"kind"`
	Children []ID   `json:"children"`
}

// Reflection is one documented entity. The tree is a strict ownership
// hierarchy: a reflection's parent link and its membership in the parent's
// Children list are kept consistent by AddChild/RemoveChild being the only
// mutation points.
type Reflection struct {
	ID      ID                `json:"id"`
	Name    string            `json:"name"`
	Kind    Kind              `json:"kind"`
	Flags   Flags             `json:"flags,omitempty"`
	Comment string            `json:"comment,omitempty"`
	Sources []SourceReference `json:"sources,omitempty"`

	Children []*Reflection `json:"children,omitempty"`

	// Type is the declared type of properties, variables, and parameters,
	// and the return type of signatures.
	Type *TypeRef `json:"type,omitempty"`

	// DefaultValue is a parameter's declared default, when present.
	DefaultValue string `json:"defaultValue,omitempty"`

	// ExtendedTypes and ImplementedTypes carry heritage clauses of classes
	// and interfaces; their Reflection fields are filled by the resolution
	// pass.
	ExtendedTypes    []*TypeRef `json:"extendedTypes,omitempty"`
	ImplementedTypes []*TypeRef `json:"implementedTypes,omitempty"`

	Groups []Group `json:"groups,omitempty"`

	parent *Reflection
}

// Parent returns the owning reflection, nil for the project root.
func (r *Reflection) Parent() *Reflection {
	return r.parent
}

// AddChild appends child to r and sets its parent link.
func (r *Reflection) AddChild(child *Reflection) {
	child.parent = r
	r.Children = append(r.Children, child)
}

// RemoveChild detaches child from r. A child not present is a no-op.
func (r *Reflection) RemoveChild(child *Reflection) {
	for i, c := range r.Children {
		if c == child {
			r.Children = append(r.Children[:i], r.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// ChildrenOfKind returns r's direct children with the given kind.
func (r *Reflection) ChildrenOfKind(kind Kind) []*Reflection {
	var out []*Reflection
	for _, c := range r.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Traverse visits r and every descendant depth-first in child order.
func (r *Reflection) Traverse(visit func(*Reflection)) {
	visit(r)
	for _, c := range r.Children {
		c.Traverse(visit)
	}
}

// Signatures returns the signature children of a function-like reflection.
func (r *Reflection) Signatures() []*Reflection {
	var out []*Reflection
	for _, c := range r.Children {
		if c.Kind.IsSignature() {
			out = append(out, c)
		}
	}
	return out
}
