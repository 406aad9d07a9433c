// Package syntax is a reduced Python syntax tree. It keeps only the node kinds
// the style rules and the fixer inspect; everything else is a Generic node
// holding its children so walks still reach nested definitions.
package syntax

// Pos is a source position: 1-based line, 0-based byte column.
type Pos struct {
	Line   int
	Column int
}

// Span is a half-open byte range into the file content.
type Span struct {
	Start int
	End   int
}

// Node is implemented by the node kinds of this package.
type Node interface {
	Position() Pos
	Extent() Span
	Children() []Node
	node()
}

// Loc is embedded by every node kind.
type Loc struct {
	Pos  Pos
	Span Span
}

func (l Loc) Position() Pos { return l.Pos }
func (l Loc) Extent() Span  { return l.Span }
func (Loc) node()           {}

// NameCtx tells whether a Name is read, bound or deleted.
type NameCtx int

const (
	Load NameCtx = iota
	Store
	Del
)

func (c NameCtx) String() string {
	switch c {
	case Store:
		return "store"
	case Del:
		return "del"
	default:
		return "load"
	}
}

// Ident is an identifier token that is not itself an expression: a def or
// class name, a parameter, an attribute.
type Ident struct {
	Name string
	Pos  Pos
	Span Span
}

// Module is the root of a parsed file.
type Module struct {
	Loc
	Body []Node
	// Occurrences lists every identifier token in source order.
	Occurrences []Occurrence
}

func (m *Module) Children() []Node { return m.Body }

// Block is the body of a def, class or compound statement.
type Block struct {
	Loc
	Stmts []Node
}

func (b *Block) Children() []Node { return b.Stmts }

// Assign is a plain or annotated assignment. Chained targets are flattened.
type Assign struct {
	Loc
	Targets    []Node
	Value      Node
	Annotation Node
	// Annotated is set for "x: T" and "x: T = v".
	Annotated bool
}

func (a *Assign) Children() []Node {
	out := append([]Node{}, a.Targets...)
	if a.Annotation != nil {
		out = append(out, a.Annotation)
	}
	if a.Value != nil {
		out = append(out, a.Value)
	}
	return out
}

type AugAssign struct {
	Loc
	Target Node
	Op     string
	Value  Node
}

func (a *AugAssign) Children() []Node { return compact(a.Target, a.Value) }

// ParamKind classifies a parameter by where it sits in the signature.
type ParamKind int

const (
	ParamPositional ParamKind = iota
	ParamPositionalOnly
	ParamVarArgs
	ParamKeywordOnly
	ParamKwArgs
)

type Param struct {
	Name       Ident
	Kind       ParamKind
	Annotation Node
	Default    Node
}

// Header holds what functions and classes share: where the statement
// starts when decorated, and where the header's colon ends.
type Header struct {
	// Head is the position of the first decorator, or of the def/class
	// keyword when there is none.
	Head Pos
	// ColonEnd is the byte offset just after the header's ':'.
	ColonEnd int
}

type FunctionDef struct {
	Loc
	Header
	Name       Ident
	Async      bool
	Decorators []Node
	Params     []Param
	Returns    Node
	Body       *Block
}

func (f *FunctionDef) Children() []Node {
	out := append([]Node{}, f.Decorators...)
	for _, p := range f.Params {
		if p.Annotation != nil {
			out = append(out, p.Annotation)
		}
		if p.Default != nil {
			out = append(out, p.Default)
		}
	}
	if f.Returns != nil {
		out = append(out, f.Returns)
	}
	if f.Body != nil {
		out = append(out, f.Body)
	}
	return out
}

// PositionalParams returns the plain positional parameters, excluding
// positional-only ones and anything after * or *args.
func (f *FunctionDef) PositionalParams() []Param {
	var out []Param
	for _, p := range f.Params {
		if p.Kind == ParamPositional {
			out = append(out, p)
		}
	}
	return out
}

type ClassDef struct {
	Loc
	Header
	Name       Ident
	Decorators []Node
	Bases      []Node
	Body       *Block
}

func (c *ClassDef) Children() []Node {
	out := append([]Node{}, c.Decorators...)
	out = append(out, c.Bases...)
	if c.Body != nil {
		out = append(out, c.Body)
	}
	return out
}

// Alias is one imported name with its optional "as" rename.
type Alias struct {
	Name   string
	AsName string
	Span   Span
}

// Bound returns the name the alias introduces into the namespace.
func (a Alias) Bound() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

// Import is "import a, b.c as d".
type Import struct {
	Loc
	Names []Alias
}

func (*Import) Children() []Node { return nil }

// ImportFrom is "from m import x, y as z".
type ImportFrom struct {
	Loc
	Module   string
	Level    int
	Names    []Alias
	Wildcard bool
}

func (*ImportFrom) Children() []Node { return nil }

// ModuleText is the module as written, leading dots included.
func (i *ImportFrom) ModuleText() string {
	dots := ""
	for n := 0; n < i.Level; n++ {
		dots += "."
	}
	return dots + i.Module
}

type Name struct {
	Loc
	ID  string
	Ctx NameCtx
}

func (*Name) Children() []Node { return nil }

type Attribute struct {
	Loc
	Value Node
	Attr  Ident
}

func (a *Attribute) Children() []Node { return compact(a.Value) }

type Compare struct {
	Loc
	Left        Node
	Ops         []string
	Comparators []Node
}

func (c *Compare) Children() []Node {
	return append(compact(c.Left), c.Comparators...)
}

type ConstKind int

const (
	ConstNone ConstKind = iota
	ConstTrue
	ConstFalse
	ConstString
	ConstBytes
	ConstNumber
	ConstEllipsis
)

type Constant struct {
	Loc
	Kind ConstKind
	// Value holds the text between the quotes of string literals and the
	// raw text of everything else.
	Value string
}

func (*Constant) Children() []Node { return nil }

type CollectionKind int

const (
	CollList CollectionKind = iota
	CollDict
	CollSet
	CollTuple
)

// Collection is a list, dict, set or tuple display.
type Collection struct {
	Loc
	Kind  CollectionKind
	Elems []Node
}

func (c *Collection) Children() []Node { return c.Elems }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Loc
	Value Node
}

func (e *ExprStmt) Children() []Node { return compact(e.Value) }

// Generic stands in for every construct the rules never inspect directly.
// F-strings are Generic too, so their interpolated names stay reachable.
type Generic struct {
	Loc
	Kind string
	Kids []Node
}

func (g *Generic) Children() []Node { return g.Kids }

func compact(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
