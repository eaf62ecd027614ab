package converter

import (
	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// Context is the mutable state threaded through one conversion: the scope
// stack, the project being populated, the bound program, and transient
// visitation flags. It is created per Convert call and discarded with it.
//
// Extensions read the current scope and flags; only the visit dispatcher
// mutates them, through the scoped With* helpers, so that after any visit
// routine returns the stack is exactly as it was before the call.
type Context struct {
	Project   *reflect.Project
	Program   *frontend.Program
	Converter *Converter

	scopes      []*reflect.Reflection
	isExternal  bool
	isPrivate   bool
	isInherited bool
}

func newContext(conv *Converter, project *reflect.Project, program *frontend.Program) *Context {
	return &Context{
		Project:   project,
		Program:   program,
		Converter: conv,
		scopes:    []*reflect.Reflection{&project.Reflection},
	}
}

// Scope returns the innermost reflection currently being populated. Newly
// created reflections attach here.
func (c *Context) Scope() *reflect.Reflection {
	return c.scopes[len(c.scopes)-1]
}

// ScopeDepth returns the current depth of the scope stack.
func (c *Context) ScopeDepth() int {
	return len(c.scopes)
}

// WithScope runs fn with r as the innermost scope. The previous scope is
// restored when fn returns, including on early return paths inside fn.
func (c *Context) WithScope(r *reflect.Reflection, fn func()) {
	c.scopes = append(c.scopes, r)
	defer func() {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}()
	fn()
}

// IsExternal reports whether the subtree being visited belongs to an
// externally-resolved file.
func (c *Context) IsExternal() bool {
	return c.isExternal
}

// WithExternal runs fn with the external flag set to v, restoring the
// prior value afterwards.
func (c *Context) WithExternal(v bool, fn func()) {
	prev := c.isExternal
	c.isExternal = v
	defer func() { c.isExternal = prev }()
	fn()
}

// IsPrivate reports whether the current subtree is declared private.
func (c *Context) IsPrivate() bool {
	return c.isPrivate
}

// WithPrivate runs fn with the private flag set to v.
func (c *Context) WithPrivate(v bool, fn func()) {
	prev := c.isPrivate
	c.isPrivate = v
	defer func() { c.isPrivate = prev }()
	fn()
}

// IsInherited reports whether the current subtree is visited as inherited
// members of a derived declaration.
func (c *Context) IsInherited() bool {
	return c.isInherited
}

// WithInherited runs fn with the inherited flag set to v.
func (c *Context) WithInherited(v bool, fn func()) {
	prev := c.isInherited
	c.isInherited = v
	defer func() { c.isInherited = prev }()
	fn()
}
