package converter

import "github.com/dusk-indust/doctree/internal/frontend"

// visitFn is one entry of the node-kind-keyed dispatch table.
type visitFn func(*Context, frontend.Node)

// buildDispatch wires the dispatch table. Kinds without an entry are
// traversed transparently; blocks, comments, and imports are skipped
// without altering scope.
func (c *Converter) buildDispatch() {
	c.table = map[frontend.NodeKind]visitFn{
		frontend.KindModule:            c.visitModule,
		frontend.KindClass:             c.visitClass,
		frontend.KindInterface:         c.visitInterface,
		frontend.KindEnum:              c.visitEnum,
		frontend.KindFunction:          c.visitFunction,
		frontend.KindFunctionSignature: c.visitFunction,
		frontend.KindMethod:            c.visitMethod,
		frontend.KindMethodSignature:   c.visitMethod,
		frontend.KindConstructor:       c.visitMethod,
		frontend.KindCallSignature:     c.visitCallSignature,
		frontend.KindIndexSignature:    c.visitIndexSignature,
		frontend.KindProperty:          c.visitProperty,
		frontend.KindVariable:          c.visitVariable,
		frontend.KindTypeAlias:         c.visitTypeAlias,
		frontend.KindParameter:         c.visitParameter,
		frontend.KindTypeParameter:     c.visitTypeParameter,
	}
}

// visit dispatches a single node. Every routine leaves the scope stack
// exactly as it found it.
func (c *Converter) visit(ctx *Context, n frontend.Node) {
	kind := n.Kind()

	switch kind {
	case frontend.KindBlock, frontend.KindComment, frontend.KindImport:
		return
	}

	if fn, ok := c.table[kind]; ok {
		fn(ctx, n)
		return
	}

	for _, child := range n.Children() {
		c.visit(ctx, child)
	}
}
