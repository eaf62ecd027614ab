package frontend

import "strings"

// SymbolID is a stable numeric symbol identity, unique within one program.
type SymbolID int

// Declaration is one site where a symbol is declared.
type Declaration struct {
	File    string
	Line    int
	Kind    NodeKind
	HasBody bool
}

// Symbol is one logical program entity. A symbol declared at several sites
// (overload signatures, merged interfaces, namespace merging) has one
// Symbol with multiple Declarations.
type Symbol struct {
	ID            SymbolID
	Name          string
	QualifiedName string
	Kind          NodeKind // kind of the first declaration site
	Declarations  []Declaration
}

// HasSignatureDeclarations reports whether any declaration site is a
// bodiless signature, which makes a later body the implementation site of
// an overloaded function rather than a fresh declaration.
func (s *Symbol) HasSignatureDeclarations() bool {
	for _, d := range s.Declarations {
		if d.Kind == KindFunctionSignature || d.Kind == KindMethodSignature {
			return true
		}
	}
	return false
}

// nodeKey identifies a declaration node within a program.
type nodeKey struct {
	file  string
	start int
}

// SymbolTable maps qualified names and declaration nodes to symbols.
// Qualification runs from the program root through the container chain, so
// the same entity declared in two files binds to one symbol.
type SymbolTable struct {
	byQName map[string]*Symbol
	byNode  map[nodeKey]*Symbol
	byID    map[SymbolID]*Symbol
	next    SymbolID
}

// newSymbolTable returns an empty table. The first symbol id is 1 so that
// the zero SymbolID stays "no symbol".
func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		byQName: make(map[string]*Symbol),
		byNode:  make(map[nodeKey]*Symbol),
		byID:    make(map[SymbolID]*Symbol),
		next:    1,
	}
}

// Lookup returns the symbol with the given qualified name.
func (t *SymbolTable) Lookup(qualifiedName string) (*Symbol, bool) {
	s, ok := t.byQName[qualifiedName]
	return s, ok
}

// ByID returns the symbol with the given id.
func (t *SymbolTable) ByID(id SymbolID) (*Symbol, bool) {
	s, ok := t.byID[id]
	return s, ok
}

// ForNode returns the symbol bound to a declaration node.
func (t *SymbolTable) ForNode(n Node) (*Symbol, bool) {
	s, ok := t.byNode[nodeKey{file: n.File().Path, start: n.StartByte()}]
	return s, ok
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int {
	return len(t.byQName)
}

// bind records a declaration node under the given qualified name, creating
// the symbol on first sight.
func (t *SymbolTable) bind(n Node, qualifiedName string) *Symbol {
	sym, ok := t.byQName[qualifiedName]
	if !ok {
		sym = &Symbol{
			ID:            t.next,
			Name:          n.Name(),
			QualifiedName: qualifiedName,
			Kind:          n.Kind(),
		}
		t.next++
		t.byQName[qualifiedName] = sym
		t.byID[sym.ID] = sym
	}

	sym.Declarations = append(sym.Declarations, Declaration{
		File:    n.File().Path,
		Line:    n.StartLine(),
		Kind:    n.Kind(),
		HasBody: n.HasBody(),
	})
	t.byNode[nodeKey{file: n.File().Path, start: n.StartByte()}] = sym
	return sym
}

// bindFile walks one file's tree and binds every declaration node. The
// qualifier stack mirrors the container chain; function bodies are not
// descended into.
func (t *SymbolTable) bindFile(file *SourceFile) {
	var qualifier []string

	var walk func(n Node)
	walk = func(n Node) {
		kind := n.Kind()

		if kind == KindBlock || kind == KindComment || kind == KindImport {
			return
		}

		if kind.IsDeclaration() {
			name := n.Name()
			if name == "" {
				return
			}
			t.bind(n, qualifiedName(qualifier, name))

			switch kind {
			case KindModule, KindClass, KindInterface, KindEnum:
				qualifier = append(qualifier, name)
				for _, child := range n.Children() {
					walk(child)
				}
				qualifier = qualifier[:len(qualifier)-1]
			}
			// Function-like and leaf declarations do not contribute
			// nested symbols.
			return
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	walk(file.Root())
}

func qualifiedName(qualifier []string, name string) string {
	if len(qualifier) == 0 {
		return name
	}
	return strings.Join(qualifier, ".") + "." + name
}
