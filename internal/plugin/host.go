// Package plugin implements a generic registry and activator for named,
// orderable extensions bound to one owner component. The host decides when
// an extension is constructed — each extension registers its own listeners
// with the owner during construction — and guarantees that activation
// either happens completely, in a dependency-respecting order, or not at
// all.
package plugin

import (
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Param declares one configurable parameter an extension contributes to
// its owner's option surface.
type Param struct {
	Name        string
	Type        ParamType
	Default     string
	Description string

	// Validate rejects invalid values. May be nil.
	Validate func(value string) error
}

// ParamType is the declared type of a parameter value.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
)

// Registration describes one extension: its name, ordering constraints
// relative to other extensions, the host API version range it supports,
// the parameters it contributes, and its factory.
type Registration[O, E any] struct {
	Name string

	// Before and After name extensions this one must be activated before
	// or after. Referenced names must be registered by Load time.
	Before []string
	After  []string

	// Requires is a semver constraint on the host API version. Empty
	// means any version.
	Requires string

	Params []Param

	// New constructs the extension against the owner. The constructor is
	// expected to register the extension's event listeners.
	New func(owner O) (E, error)
}

// Host is a plugin registry typed to one owner and extension kind.
type Host[O, E any] struct {
	apiVersion string
	regs       map[string]Registration[O, E]
	regOrder   []string
	params     map[string]Param
	instances  map[string]E
	loadOrder  []string
}

// NewHost creates an empty host. apiVersion is matched against each
// registration's Requires constraint at load time.
func NewHost[O, E any](apiVersion string) *Host[O, E] {
	return &Host[O, E]{
		apiVersion: apiVersion,
		regs:       make(map[string]Registration[O, E]),
		params:     make(map[string]Param),
		instances:  make(map[string]E),
	}
}

// Add registers an extension. Names and contributed parameter names must
// be unique across the host.
func (h *Host[O, E]) Add(reg Registration[O, E]) error {
	if reg.Name == "" {
		return errors.New("plugin: registration requires a name")
	}
	if reg.New == nil {
		return errors.Newf("plugin: %s: registration requires a factory", reg.Name)
	}
	if _, exists := h.regs[reg.Name]; exists {
		return errors.Newf("plugin: %s: already registered", reg.Name)
	}
	for _, p := range reg.Params {
		if _, exists := h.params[p.Name]; exists {
			return errors.Newf("plugin: %s: parameter %q conflicts with another extension", reg.Name, p.Name)
		}
	}

	h.regs[reg.Name] = reg
	h.regOrder = append(h.regOrder, reg.Name)
	for _, p := range reg.Params {
		h.params[p.Name] = p
	}
	return nil
}

// Remove unregisters an extension by name before loading.
func (h *Host[O, E]) Remove(name string) error {
	reg, ok := h.regs[name]
	if !ok {
		return errors.Newf("plugin: %s: not registered", name)
	}
	delete(h.regs, name)
	for i, n := range h.regOrder {
		if n == name {
			h.regOrder = append(h.regOrder[:i], h.regOrder[i+1:]...)
			break
		}
	}
	for _, p := range reg.Params {
		delete(h.params, p.Name)
	}
	return nil
}

// Get returns an active extension instance by name.
func (h *Host[O, E]) Get(name string) (E, bool) {
	inst, ok := h.instances[name]
	return inst, ok
}

// Params returns the merged parameter surface of all registered
// extensions, sorted by name.
func (h *Host[O, E]) Params() []Param {
	out := make([]Param, 0, len(h.params))
	for _, p := range h.params {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// LoadOrder returns the activation order computed by the last Load.
func (h *Host[O, E]) LoadOrder() []string {
	out := make([]string, len(h.loadOrder))
	copy(out, h.loadOrder)
	return out
}

// Load instantiates every registered extension against owner, in an order
// satisfying all before/after constraints. Unknown constraint references,
// ordering cycles, and version mismatches fail before any extension is
// constructed, so a failed Load never leaves a partially activated set.
func (h *Host[O, E]) Load(owner O) error {
	if err := h.checkVersions(); err != nil {
		return err
	}
	order, err := h.resolveOrder()
	if err != nil {
		return err
	}

	instances := make(map[string]E, len(order))
	for _, name := range order {
		inst, err := h.regs[name].New(owner)
		if err != nil {
			return errors.Wrapf(err, "plugin: %s: construction failed", name)
		}
		instances[name] = inst
	}

	h.instances = instances
	h.loadOrder = order
	return nil
}

// checkVersions validates every Requires constraint against the host API
// version.
func (h *Host[O, E]) checkVersions() error {
	ver, err := semver.NewVersion(h.apiVersion)
	if err != nil {
		return errors.Wrapf(err, "plugin: invalid host API version %q", h.apiVersion)
	}
	for _, name := range h.regOrder {
		reg := h.regs[name]
		if reg.Requires == "" {
			continue
		}
		constraint, err := semver.NewConstraint(reg.Requires)
		if err != nil {
			return errors.Wrapf(err, "plugin: %s: invalid version constraint %q", name, reg.Requires)
		}
		if !constraint.Check(ver) {
			return errors.Newf("plugin: %s requires host API %s, but running %s", name, reg.Requires, h.apiVersion)
		}
	}
	return nil
}

// resolveOrder computes a topological order over the before/after graph.
// Registration order breaks ties so the result is deterministic.
func (h *Host[O, E]) resolveOrder() ([]string, error) {
	// successors[a] contains b when a must activate before b.
	successors := make(map[string][]string, len(h.regs))
	indegree := make(map[string]int, len(h.regs))
	for _, name := range h.regOrder {
		indegree[name] = 0
	}

	addEdge := func(from, to, owner string) error {
		if _, ok := h.regs[from]; !ok {
			return errors.Newf("plugin: %s: ordering constraint references unknown extension %q", owner, from)
		}
		if _, ok := h.regs[to]; !ok {
			return errors.Newf("plugin: %s: ordering constraint references unknown extension %q", owner, to)
		}
		successors[from] = append(successors[from], to)
		indegree[to]++
		return nil
	}

	for _, name := range h.regOrder {
		reg := h.regs[name]
		for _, target := range reg.Before {
			if err := addEdge(name, target, name); err != nil {
				return nil, err
			}
		}
		for _, dep := range reg.After {
			if err := addEdge(dep, name, name); err != nil {
				return nil, err
			}
		}
	}

	// Kahn's algorithm with the ready set kept in registration order.
	var ready []string
	for _, name := range h.regOrder {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(h.regs))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		for _, succ := range successors[name] {
			indegree[succ]--
			if indegree[succ] == 0 {
				ready = append(ready, succ)
			}
		}
		sort.SliceStable(ready, func(i, j int) bool {
			return h.regIndex(ready[i]) < h.regIndex(ready[j])
		})
	}

	if len(order) != len(h.regs) {
		var stuck []string
		for name, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, errors.Newf("plugin: ordering cycle involving %v", stuck)
	}
	return order, nil
}

func (h *Host[O, E]) regIndex(name string) int {
	for i, n := range h.regOrder {
		if n == name {
			return i
		}
	}
	return len(h.regOrder)
}
