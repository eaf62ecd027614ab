package reflect

import "github.com/dusk-indust/doctree/internal/frontend"

// Project is the root reflection of one conversion. It additionally owns
// the symbol→reflection map used for declaration merging and a flat
// id→reflection index used by the resolution pass. Created once per
// conversion, never shared between conversions.
type Project struct {
	Reflection

	byID     map[ID]*Reflection
	bySymbol map[frontend.SymbolID]*Reflection
	order    []ID // creation order, drives Snapshot
	nextID   ID
}

// NewProject creates an empty project root with the given display name.
func NewProject(name string) *Project {
	p := &Project{
		byID:     make(map[ID]*Reflection),
		bySymbol: make(map[frontend.SymbolID]*Reflection),
		nextID:   1,
	}
	p.Reflection = Reflection{ID: 0, Name: name, Kind: KindProject}
	p.byID[0] = &p.Reflection
	p.order = append(p.order, 0) // the root takes part in the resolve pass
	return p
}

// CreateReflection allocates the next identity, registers the reflection
// in the id index, and attaches it under parent. Identities are assigned
// once and never reused within a conversion.
func (p *Project) CreateReflection(name string, kind Kind, parent *Reflection) *Reflection {
	r := &Reflection{
		ID:   p.nextID,
		Name: name,
		Kind: kind,
	}
	p.nextID++
	p.byID[r.ID] = r
	p.order = append(p.order, r.ID)
	parent.AddChild(r)
	return r
}

// ByID returns the reflection with the given id, or nil.
func (p *Project) ByID(id ID) *Reflection {
	return p.byID[id]
}

// RegisterSymbol binds a symbol to its reflection. At most one reflection
// exists per symbol; a second registration for the same symbol is ignored
// so the first creation site wins.
func (p *Project) RegisterSymbol(sym frontend.SymbolID, r *Reflection) {
	if _, exists := p.bySymbol[sym]; exists {
		return
	}
	p.bySymbol[sym] = r
}

// BySymbol returns the reflection a symbol maps to, if any.
func (p *Project) BySymbol(sym frontend.SymbolID) (*Reflection, bool) {
	r, ok := p.bySymbol[sym]
	return r, ok
}

// Unregister removes a reflection (and its subtree) from the indexes and
// from its parent. Used when externals are excluded from the graph.
func (p *Project) Unregister(r *Reflection) {
	r.Traverse(func(node *Reflection) {
		delete(p.byID, node.ID)
		for sym, mapped := range p.bySymbol {
			if mapped == node {
				delete(p.bySymbol, sym)
			}
		}
	})
	if r.parent != nil {
		r.parent.RemoveChild(r)
	}
}

// Snapshot returns the reflections existing at the time of the call, in
// creation order. Reflections created later — including during a resolution
// pass iterating this snapshot — are not part of it.
func (p *Project) Snapshot() []*Reflection {
	out := make([]*Reflection, 0, len(p.order))
	for _, id := range p.order {
		if r, ok := p.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of live reflections, excluding the root.
func (p *Project) Count() int {
	return len(p.byID) - 1
}
