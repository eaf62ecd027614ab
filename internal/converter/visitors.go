package converter

import (
	"strings"

	"github.com/dusk-indust/doctree/internal/frontend"
	"github.com/dusk-indust/doctree/internal/reflect"
)

// createOrMerge creates a reflection for a declaration node, or returns
// the reflection the node's symbol already maps to (declaration merging:
// the same logical entity declared at several sites stays one reflection).
// Nodes without a usable name yield nil and their subtree is not entered.
func (c *Converter) createOrMerge(ctx *Context, n frontend.Node, kind reflect.Kind) (*reflect.Reflection, bool) {
	name := n.Name()
	if name == "" {
		return nil, false
	}

	sym, hasSym := ctx.Program.SymbolFor(n)
	if hasSym {
		if existing, ok := ctx.Project.BySymbol(sym.ID); ok {
			existing.Sources = append(existing.Sources, reflect.SourceReference{
				File: n.File().Path,
				Line: n.StartLine(),
			})
			return existing, false
		}
	}

	r := ctx.Project.CreateReflection(name, kind, ctx.Scope())
	r.Sources = append(r.Sources, reflect.SourceReference{
		File: n.File().Path,
		Line: n.StartLine(),
	})
	c.applyFlags(ctx, r, n)
	if hasSym {
		ctx.Project.RegisterSymbol(sym.ID, r)
	}

	c.emitDeclaration(EventCreateDeclaration, ctx, r, n)
	return r, true
}

// applyFlags reads modifiers off the declaration node and the visitation
// flags off the context.
func (c *Converter) applyFlags(ctx *Context, r *reflect.Reflection, n frontend.Node) {
	f := &r.Flags
	if n.HasModifier("private") {
		f.Private = true
	}
	if n.HasModifier("protected") {
		f.Protected = true
	}
	if n.HasModifier("static") {
		f.Static = true
	}
	if n.HasModifier("abstract") || n.RawKind() == "abstract_class_declaration" {
		f.Abstract = true
	}
	if n.HasModifier("export") || n.InExportStatement() {
		f.Exported = true
	}
	if ctx.IsExternal() {
		f.External = true
	}
	if ctx.IsPrivate() {
		f.Private = true
	}
}

// --- Containers ---

func (c *Converter) visitModule(ctx *Context, n frontend.Node) {
	r, _ := c.createOrMerge(ctx, n, reflect.KindModule)
	if r == nil {
		return
	}
	ctx.WithScope(r, func() {
		for _, child := range n.Children() {
			c.visit(ctx, child)
		}
	})
}

func (c *Converter) visitClass(ctx *Context, n frontend.Node) {
	r, created := c.createOrMerge(ctx, n, reflect.KindClass)
	if r == nil {
		return
	}
	if created {
		for _, name := range heritageNames(n, "extends_clause") {
			r.ExtendedTypes = append(r.ExtendedTypes, c.typeRef(ctx, name))
		}
		for _, name := range heritageNames(n, "implements_clause") {
			r.ImplementedTypes = append(r.ImplementedTypes, c.typeRef(ctx, name))
		}
	}
	ctx.WithScope(r, func() {
		for _, child := range n.Children() {
			c.visit(ctx, child)
		}
	})
}

func (c *Converter) visitInterface(ctx *Context, n frontend.Node) {
	r, created := c.createOrMerge(ctx, n, reflect.KindInterface)
	if r == nil {
		return
	}
	if created {
		for _, name := range heritageNames(n, "extends_type_clause", "extends_clause") {
			r.ExtendedTypes = append(r.ExtendedTypes, c.typeRef(ctx, name))
		}
	}
	ctx.WithScope(r, func() {
		for _, child := range n.Children() {
			c.visit(ctx, child)
		}
	})
}

func (c *Converter) visitEnum(ctx *Context, n frontend.Node) {
	r, _ := c.createOrMerge(ctx, n, reflect.KindEnum)
	if r == nil {
		return
	}
	ctx.WithScope(r, func() {
		c.visitEnumMembers(ctx, n)
	})
}

// visitEnumMembers creates a member reflection per enum entry. The grammar
// represents initialized members as assignments and bare members as plain
// identifiers, so both shapes are handled here instead of in the table.
func (c *Converter) visitEnumMembers(ctx *Context, n frontend.Node) {
	for _, child := range n.Children() {
		switch {
		case child.Kind() == frontend.KindEnumMember:
			if member, _ := c.createOrMerge(ctx, child, reflect.KindEnumMember); member != nil {
				if value, ok := child.ChildByField("value"); ok {
					member.DefaultValue = value.Text()
				}
			}
		case child.RawKind() == "property_identifier":
			member := ctx.Project.CreateReflection(child.Text(), reflect.KindEnumMember, ctx.Scope())
			member.Sources = append(member.Sources, reflect.SourceReference{
				File: child.File().Path,
				Line: child.StartLine(),
			})
			c.emitDeclaration(EventCreateDeclaration, ctx, member, child)
		default:
			c.visitEnumMembers(ctx, child)
		}
	}
}

// --- Function-like declarations ---

func (c *Converter) visitFunction(ctx *Context, n frontend.Node) {
	// A body following already-created overload signatures is the
	// implementation site, not a new declaration.
	if sym, ok := ctx.Program.SymbolFor(n); ok {
		if r, exists := ctx.Project.BySymbol(sym.ID); exists && n.HasBody() && sym.HasSignatureDeclarations() {
			c.emitDeclaration(EventFunctionImplementation, ctx, r, n)
			return
		}
	}

	r, _ := c.createOrMerge(ctx, n, reflect.KindFunction)
	if r == nil {
		return
	}
	ctx.WithScope(r, func() {
		c.createSignature(ctx, n, reflect.KindCallSignature, r.Name)
	})
}

func (c *Converter) visitMethod(ctx *Context, n frontend.Node) {
	kind := reflect.KindMethod
	sigKind := reflect.KindCallSignature
	if n.Name() == "constructor" {
		kind = reflect.KindConstructor
		sigKind = reflect.KindConstructorSignature
	}

	if sym, ok := ctx.Program.SymbolFor(n); ok {
		if r, exists := ctx.Project.BySymbol(sym.ID); exists && n.HasBody() && sym.HasSignatureDeclarations() {
			c.emitDeclaration(EventFunctionImplementation, ctx, r, n)
			return
		}
	}

	r, _ := c.createOrMerge(ctx, n, kind)
	if r == nil {
		return
	}
	ctx.WithScope(r, func() {
		c.createSignature(ctx, n, sigKind, r.Name)
	})
}

func (c *Converter) visitCallSignature(ctx *Context, n frontend.Node) {
	c.createSignature(ctx, n, reflect.KindCallSignature, ctx.Scope().Name)
}

func (c *Converter) visitIndexSignature(ctx *Context, n frontend.Node) {
	c.createSignature(ctx, n, reflect.KindIndexSignature, "__index")
}

// createSignature attaches a signature reflection to the current scope and
// populates its type parameters and parameters as children, in source
// order, under the signature as scope.
func (c *Converter) createSignature(ctx *Context, n frontend.Node, kind reflect.Kind, name string) {
	sig := ctx.Project.CreateReflection(name, kind, ctx.Scope())
	sig.Sources = append(sig.Sources, reflect.SourceReference{
		File: n.File().Path,
		Line: n.StartLine(),
	})
	if ret := n.TypeText(); ret != "" {
		sig.Type = c.typeRef(ctx, ret)
	}
	c.emitDeclaration(EventCreateSignature, ctx, sig, n)

	ctx.WithScope(sig, func() {
		if tps, ok := childByRawKind(n, "type_parameters"); ok {
			for _, tp := range tps.Children() {
				if tp.Kind() == frontend.KindTypeParameter {
					c.visitTypeParameter(ctx, tp)
				}
			}
		}
		if params, ok := n.ChildByField("parameters"); ok {
			for _, p := range params.Children() {
				if p.Kind() == frontend.KindParameter {
					c.visitParameter(ctx, p)
				}
			}
		}
	})
}

func (c *Converter) visitParameter(ctx *Context, n frontend.Node) {
	name := n.Name()
	if name == "" {
		name = "__param"
	}
	p := ctx.Project.CreateReflection(name, reflect.KindParameter, ctx.Scope())
	if t := n.TypeText(); t != "" {
		p.Type = c.typeRef(ctx, t)
	}
	if n.RawKind() == "optional_parameter" {
		p.Flags.Optional = true
	}
	if value, ok := n.ChildByField("value"); ok {
		p.DefaultValue = value.Text()
	}
	c.emitDeclaration(EventCreateParameter, ctx, p, n)
}

func (c *Converter) visitTypeParameter(ctx *Context, n frontend.Node) {
	tp := ctx.Project.CreateReflection(n.Name(), reflect.KindTypeParameter, ctx.Scope())
	if constraint, ok := n.ChildByField("constraint"); ok {
		tp.Type = c.typeRef(ctx, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(constraint.Text()), "extends")))
	}
	c.emitDeclaration(EventCreateTypeParameter, ctx, tp, n)
}

// --- Leaf declarations ---

func (c *Converter) visitProperty(ctx *Context, n frontend.Node) {
	r, created := c.createOrMerge(ctx, n, reflect.KindProperty)
	if r == nil || !created {
		return
	}
	if t := n.TypeText(); t != "" {
		r.Type = c.typeRef(ctx, t)
	}
	if n.HasModifier("?") {
		r.Flags.Optional = true
	}
	if value, ok := n.ChildByField("value"); ok {
		r.DefaultValue = value.Text()
	}
}

func (c *Converter) visitVariable(ctx *Context, n frontend.Node) {
	r, created := c.createOrMerge(ctx, n, reflect.KindVariable)
	if r == nil || !created {
		return
	}
	if t := n.TypeText(); t != "" {
		r.Type = c.typeRef(ctx, t)
	}
	if value, ok := n.ChildByField("value"); ok {
		r.DefaultValue = value.Text()
	}
}

func (c *Converter) visitTypeAlias(ctx *Context, n frontend.Node) {
	r, created := c.createOrMerge(ctx, n, reflect.KindTypeAlias)
	if r == nil || !created {
		return
	}
	if value, ok := n.ChildByField("value"); ok {
		r.Type = c.typeRef(ctx, value.Text())
	}
}

// --- Helpers ---

// typeRef builds an opaque type reference. When the named type is a symbol
// of the documented program, the symbol id is recorded so the resolution
// pass can link the reflection once the complete graph exists.
func (c *Converter) typeRef(ctx *Context, text string) *reflect.TypeRef {
	ref := &reflect.TypeRef{Text: strings.TrimSpace(text)}
	if name := baseTypeName(ref.Text); name != "" {
		if sym, ok := ctx.Program.Symbols.Lookup(name); ok {
			ref.Symbol = sym.ID
		}
	}
	return ref
}

// baseTypeName strips type arguments from a type expression and returns
// the referenced name, or "" for composite expressions that do not name a
// single symbol.
func baseTypeName(text string) string {
	name := text
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " |&{}()[]\"'`,") {
		return ""
	}
	return name
}

// heritageNames collects the type names under the given heritage clause
// kinds, looking through the grammar's wrapper node when present.
func heritageNames(n frontend.Node, clauseKinds ...string) []string {
	var out []string
	for _, child := range n.Children() {
		raw := child.RawKind()
		if raw == "class_heritage" {
			out = append(out, heritageNames(child, clauseKinds...)...)
			continue
		}
		for _, clause := range clauseKinds {
			if raw != clause {
				continue
			}
			for _, t := range child.Children() {
				if name := strings.TrimSpace(t.Text()); name != "" {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

// childByRawKind finds the first named child with the given grammar kind.
func childByRawKind(n frontend.Node, raw string) (frontend.Node, bool) {
	for _, child := range n.Children() {
		if child.RawKind() == raw {
			return child, true
		}
	}
	return frontend.Node{}, false
}
