package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
)

// PythonParser implements domain.Parser using the tree-sitter Python grammar.
type PythonParser struct{}

func New() *PythonParser {
	return &PythonParser{}
}

func (p *PythonParser) Parse(ctx context.Context, content []byte) (*syntax.Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pt := bad.StartPoint()
			return nil, fmt.Errorf("%w: syntax error at line %d, column %d",
				domain.ErrParseFailure, pt.Row+1, pt.Column)
		}
		return nil, fmt.Errorf("%w: syntax error", domain.ErrParseFailure)
	}

	b := &builder{src: content}
	mod := b.module(root)
	sort.SliceStable(b.occ, func(i, j int) bool {
		return b.occ[i].Span.Start < b.occ[j].Span.Start
	})
	mod.Occurrences = b.occ
	return mod, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}

// builder maps the concrete tree onto syntax nodes and records every
// identifier token it meets.
type builder struct {
	src []byte
	occ []syntax.Occurrence
}

func (b *builder) loc(n *sitter.Node) syntax.Loc {
	return syntax.Loc{Pos: pos(n), Span: span(n)}
}

func pos(n *sitter.Node) syntax.Pos {
	pt := n.StartPoint()
	return syntax.Pos{Line: int(pt.Row) + 1, Column: int(pt.Column)}
}

func span(n *sitter.Node) syntax.Span {
	return syntax.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (b *builder) text(n *sitter.Node) string {
	return n.Content(b.src)
}

func (b *builder) ident(n *sitter.Node, role syntax.Role) syntax.Ident {
	id := syntax.Ident{Name: b.text(n), Pos: pos(n), Span: span(n)}
	b.occ = append(b.occ, syntax.Occurrence{Name: id.Name, Role: role, Pos: id.Pos, Span: id.Span})
	return id
}

// identsIn records every identifier below n under role.
func (b *builder) identsIn(n *sitter.Node, role syntax.Role) {
	if n.Type() == "identifier" {
		b.ident(n, role)
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.identsIn(n.NamedChild(i), role)
	}
}

func isExtra(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_continuation":
		return true
	}
	return false
}

// namedKids returns the named children of n, comments excluded.
func namedKids(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c != nil && !isExtra(c) {
			out = append(out, c)
		}
	}
	return out
}

func same(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func (b *builder) module(n *sitter.Node) *syntax.Module {
	mod := &syntax.Module{Loc: b.loc(n)}
	for _, c := range namedKids(n) {
		mod.Body = append(mod.Body, b.node(c, syntax.Load))
	}
	return mod
}

func (b *builder) block(n *sitter.Node) *syntax.Block {
	if n == nil {
		return &syntax.Block{}
	}
	blk := &syntax.Block{Loc: b.loc(n)}
	for _, c := range namedKids(n) {
		blk.Stmts = append(blk.Stmts, b.node(c, syntax.Load))
	}
	return blk
}

// node builds statements and expressions alike; ctx applies to names that
// are bound by an enclosing target.
func (b *builder) node(n *sitter.Node, ctx syntax.NameCtx) syntax.Node {
	switch n.Type() {
	case "expression_statement":
		return b.expressionStatement(n)
	case "assignment":
		return b.assignment(n, b.loc(n))
	case "augmented_assignment":
		return b.augAssignment(n, b.loc(n))
	case "function_definition":
		return b.function(n, nil, pos(n))
	case "class_definition":
		return b.class(n, nil, pos(n))
	case "decorated_definition":
		return b.decorated(n)
	case "import_statement":
		return b.importStmt(n)
	case "import_from_statement", "future_import_statement":
		return b.importFrom(n)
	case "block":
		return b.block(n)
	case "global_statement", "nonlocal_statement":
		b.identsIn(n, syntax.RoleScope)
		return &syntax.Generic{Loc: b.loc(n), Kind: n.Type()}
	case "delete_statement":
		return b.generic(n, syntax.Del)
	case "for_statement", "for_in_clause":
		return b.forLoop(n)

	case "identifier":
		id := b.ident(n, syntax.RoleName)
		return &syntax.Name{Loc: b.loc(n), ID: id.Name, Ctx: ctx}
	case "attribute":
		a := &syntax.Attribute{Loc: b.loc(n)}
		if obj := n.ChildByFieldName("object"); obj != nil {
			a.Value = b.node(obj, syntax.Load)
		}
		if attr := n.ChildByFieldName("attribute"); attr != nil {
			a.Attr = b.ident(attr, syntax.RoleAttr)
		}
		return a
	case "comparison_operator":
		return b.compare(n)
	case "none":
		return &syntax.Constant{Loc: b.loc(n), Kind: syntax.ConstNone, Value: "None"}
	case "true":
		return &syntax.Constant{Loc: b.loc(n), Kind: syntax.ConstTrue, Value: "True"}
	case "false":
		return &syntax.Constant{Loc: b.loc(n), Kind: syntax.ConstFalse, Value: "False"}
	case "integer", "float":
		return &syntax.Constant{Loc: b.loc(n), Kind: syntax.ConstNumber, Value: b.text(n)}
	case "ellipsis":
		return &syntax.Constant{Loc: b.loc(n), Kind: syntax.ConstEllipsis, Value: "..."}
	case "string", "concatenated_string":
		return b.str(n)
	case "list", "list_pattern":
		return b.collection(n, syntax.CollList, ctx)
	case "tuple", "tuple_pattern", "pattern_list":
		return b.collection(n, syntax.CollTuple, ctx)
	case "set":
		return b.collection(n, syntax.CollSet, syntax.Load)
	case "dictionary":
		return b.collection(n, syntax.CollDict, syntax.Load)
	case "keyword_argument":
		g := &syntax.Generic{Loc: b.loc(n), Kind: n.Type()}
		if name := n.ChildByFieldName("name"); name != nil {
			b.ident(name, syntax.RoleKeyword)
		}
		if v := n.ChildByFieldName("value"); v != nil {
			g.Kids = append(g.Kids, b.node(v, syntax.Load))
		}
		return g
	case "named_expression":
		g := &syntax.Generic{Loc: b.loc(n), Kind: n.Type()}
		if name := n.ChildByFieldName("name"); name != nil {
			g.Kids = append(g.Kids, b.node(name, syntax.Store))
		}
		if v := n.ChildByFieldName("value"); v != nil {
			g.Kids = append(g.Kids, b.node(v, syntax.Load))
		}
		return g
	case "lambda":
		return b.lambda(n)
	case "subscript":
		return b.generic(n, syntax.Load)
	case "parenthesized_expression", "expression_list", "list_splat_pattern",
		"list_splat", "as_pattern_target":
		return b.generic(n, ctx)
	}
	return b.generic(n, syntax.Load)
}

// generic keeps the named children of n. A child that follows an "as"
// keyword is a binding.
func (b *builder) generic(n *sitter.Node, ctx syntax.NameCtx) *syntax.Generic {
	g := &syntax.Generic{Loc: b.loc(n), Kind: n.Type()}
	afterAs := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || isExtra(c) {
			continue
		}
		if !c.IsNamed() {
			afterAs = c.Type() == "as"
			continue
		}
		childCtx := ctx
		if afterAs {
			childCtx = syntax.Store
			afterAs = false
		}
		g.Kids = append(g.Kids, b.node(c, childCtx))
	}
	return g
}

func (b *builder) expressionStatement(n *sitter.Node) syntax.Node {
	kids := namedKids(n)
	if len(kids) == 1 {
		switch kids[0].Type() {
		case "assignment":
			return b.assignment(kids[0], b.loc(n))
		case "augmented_assignment":
			return b.augAssignment(kids[0], b.loc(n))
		}
		return &syntax.ExprStmt{Loc: b.loc(n), Value: b.node(kids[0], syntax.Load)}
	}
	g := &syntax.Generic{Loc: b.loc(n), Kind: "expression_list"}
	for _, k := range kids {
		g.Kids = append(g.Kids, b.node(k, syntax.Load))
	}
	return &syntax.ExprStmt{Loc: b.loc(n), Value: g}
}

func (b *builder) assignment(n *sitter.Node, loc syntax.Loc) *syntax.Assign {
	a := &syntax.Assign{Loc: loc}
	cur := n
	for {
		if left := cur.ChildByFieldName("left"); left != nil {
			a.Targets = append(a.Targets, b.node(left, syntax.Store))
		}
		if t := cur.ChildByFieldName("type"); t != nil {
			a.Annotated = true
			a.Annotation = b.typeExpr(t)
		}
		right := cur.ChildByFieldName("right")
		if right == nil {
			return a
		}
		if right.Type() == "assignment" {
			cur = right
			continue
		}
		a.Value = b.node(right, syntax.Load)
		return a
	}
}

func (b *builder) augAssignment(n *sitter.Node, loc syntax.Loc) *syntax.AugAssign {
	a := &syntax.AugAssign{Loc: loc}
	if left := n.ChildByFieldName("left"); left != nil {
		a.Target = b.node(left, syntax.Store)
	}
	if op := n.ChildByFieldName("operator"); op != nil {
		a.Op = op.Type()
	}
	if right := n.ChildByFieldName("right"); right != nil {
		a.Value = b.node(right, syntax.Load)
	}
	return a
}

func (b *builder) forLoop(n *sitter.Node) *syntax.Generic {
	g := &syntax.Generic{Loc: b.loc(n), Kind: n.Type()}
	left := n.ChildByFieldName("left")
	for _, c := range namedKids(n) {
		ctx := syntax.Load
		if same(c, left) {
			ctx = syntax.Store
		}
		g.Kids = append(g.Kids, b.node(c, ctx))
	}
	return g
}

// typeExpr unwraps the grammar's "type" node around annotations.
func (b *builder) typeExpr(n *sitter.Node) syntax.Node {
	if n.Type() == "type" {
		if kids := namedKids(n); len(kids) == 1 {
			return b.node(kids[0], syntax.Load)
		}
	}
	return b.node(n, syntax.Load)
}

func (b *builder) compare(n *sitter.Node) *syntax.Compare {
	c := &syntax.Compare{Loc: b.loc(n)}
	for i := 0; i < int(n.ChildCount()); i++ {
		k := n.Child(i)
		if k == nil || isExtra(k) {
			continue
		}
		if !k.IsNamed() {
			c.Ops = append(c.Ops, strings.Join(strings.Fields(b.text(k)), " "))
			continue
		}
		operand := b.node(k, syntax.Load)
		if c.Left == nil {
			c.Left = operand
		} else {
			c.Comparators = append(c.Comparators, operand)
		}
	}
	return c
}

func (b *builder) collection(n *sitter.Node, kind syntax.CollectionKind, ctx syntax.NameCtx) *syntax.Collection {
	coll := &syntax.Collection{Loc: b.loc(n), Kind: kind}
	for _, c := range namedKids(n) {
		coll.Elems = append(coll.Elems, b.node(c, ctx))
	}
	return coll
}

// str builds string literals. Plain strings become Constants; anything with
// interpolations becomes a Generic holding the interpolated expressions.
func (b *builder) str(n *sitter.Node) syntax.Node {
	parts := []*sitter.Node{n}
	if n.Type() == "concatenated_string" {
		parts = namedKids(n)
	}

	var (
		value       strings.Builder
		bytesPrefix bool
		formatted   bool
		interps     []syntax.Node
	)
	for _, p := range parts {
		prefix, body := splitStringLiteral(b.text(p))
		if strings.ContainsAny(prefix, "bB") {
			bytesPrefix = true
		}
		if strings.ContainsAny(prefix, "fF") {
			formatted = true
		}
		value.WriteString(body)
		b.interpolations(p, &interps)
	}

	if formatted || len(interps) > 0 {
		return &syntax.Generic{Loc: b.loc(n), Kind: "fstring", Kids: interps}
	}
	kind := syntax.ConstString
	if bytesPrefix {
		kind = syntax.ConstBytes
	}
	return &syntax.Constant{Loc: b.loc(n), Kind: kind, Value: value.String()}
}

func (b *builder) interpolations(n *sitter.Node, out *[]syntax.Node) {
	for _, c := range namedKids(n) {
		if c.Type() != "interpolation" {
			continue
		}
		first := len(b.occ)
		*out = append(*out, b.generic(c, syntax.Load))
		if selfDocumenting(c) {
			for i := first; i < len(b.occ); i++ {
				b.occ[i].Role = syntax.RoleEcho
			}
		}
	}
}

// selfDocumenting reports whether an interpolation is written {expr=}.
func selfDocumenting(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); !c.IsNamed() && c.Type() == "=" {
			return true
		}
	}
	return false
}

// splitStringLiteral separates the prefix letters from the text between the
// quotes of a single string literal.
func splitStringLiteral(raw string) (prefix, body string) {
	i := strings.IndexAny(raw, `"'`)
	if i < 0 {
		return "", raw
	}
	prefix, rest := raw[:i], raw[i:]
	quote := rest[:1]
	if strings.HasPrefix(rest, strings.Repeat(quote, 3)) && len(rest) >= 6 {
		quote = strings.Repeat(quote, 3)
	}
	if len(rest) < 2*len(quote) {
		return prefix, ""
	}
	return prefix, rest[len(quote) : len(rest)-len(quote)]
}

func (b *builder) decorated(n *sitter.Node) syntax.Node {
	var decorators []syntax.Node
	for _, c := range namedKids(n) {
		if c.Type() == "decorator" {
			decorators = append(decorators, b.generic(c, syntax.Load))
		}
	}
	head := pos(n)
	def := n.ChildByFieldName("definition")
	if def == nil {
		return b.generic(n, syntax.Load)
	}
	switch def.Type() {
	case "function_definition":
		return b.function(def, decorators, head)
	case "class_definition":
		return b.class(def, decorators, head)
	}
	return b.generic(n, syntax.Load)
}

func (b *builder) colonEnd(n, body *sitter.Node) int {
	end := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if same(c, body) {
			break
		}
		if !c.IsNamed() && c.Type() == ":" {
			end = int(c.EndByte())
		}
	}
	return end
}

func (b *builder) function(n *sitter.Node, decorators []syntax.Node, head syntax.Pos) *syntax.FunctionDef {
	f := &syntax.FunctionDef{Loc: b.loc(n), Decorators: decorators}
	f.Head = head
	if first := n.Child(0); first != nil && first.Type() == "async" {
		f.Async = true
	}
	if name := n.ChildByFieldName("name"); name != nil {
		f.Name = b.ident(name, syntax.RoleDef)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		f.Params = b.params(params)
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		f.Returns = b.typeExpr(ret)
	}
	body := n.ChildByFieldName("body")
	f.ColonEnd = b.colonEnd(n, body)
	f.Body = b.block(body)
	return f
}

func (b *builder) class(n *sitter.Node, decorators []syntax.Node, head syntax.Pos) *syntax.ClassDef {
	c := &syntax.ClassDef{Loc: b.loc(n), Decorators: decorators}
	c.Head = head
	if name := n.ChildByFieldName("name"); name != nil {
		c.Name = b.ident(name, syntax.RoleDef)
	}
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for _, s := range namedKids(supers) {
			c.Bases = append(c.Bases, b.node(s, syntax.Load))
		}
	}
	body := n.ChildByFieldName("body")
	c.ColonEnd = b.colonEnd(n, body)
	c.Body = b.block(body)
	return c
}

func (b *builder) params(n *sitter.Node) []syntax.Param {
	kids := namedKids(n)
	slash := -1
	for i, c := range kids {
		if c.Type() == "positional_separator" {
			slash = i
		}
	}

	var out []syntax.Param
	kind := syntax.ParamPositional
	for i, c := range kids {
		switch c.Type() {
		case "positional_separator":
			continue
		case "keyword_separator":
			kind = syntax.ParamKeywordOnly
			continue
		}
		p, ok := b.param(c)
		if !ok {
			continue
		}
		switch {
		case p.Kind == syntax.ParamVarArgs:
			kind = syntax.ParamKeywordOnly
		case p.Kind == syntax.ParamKwArgs:
		case i < slash:
			p.Kind = syntax.ParamPositionalOnly
		default:
			p.Kind = kind
		}
		out = append(out, p)
	}
	return out
}

func (b *builder) param(n *sitter.Node) (syntax.Param, bool) {
	var p syntax.Param
	switch n.Type() {
	case "identifier":
		p.Name = b.ident(n, syntax.RoleParam)
	case "list_splat_pattern", "dictionary_splat_pattern":
		p.Kind = syntax.ParamVarArgs
		if n.Type() == "dictionary_splat_pattern" {
			p.Kind = syntax.ParamKwArgs
		}
		if kids := namedKids(n); len(kids) > 0 && kids[0].Type() == "identifier" {
			p.Name = b.ident(kids[0], syntax.RoleParam)
		}
	case "typed_parameter":
		kids := namedKids(n)
		if len(kids) == 0 {
			return p, false
		}
		inner, _ := b.param(kids[0])
		p = inner
		if t := n.ChildByFieldName("type"); t != nil {
			p.Annotation = b.typeExpr(t)
		}
	case "default_parameter", "typed_default_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			if name.Type() == "identifier" {
				p.Name = b.ident(name, syntax.RoleParam)
			} else {
				b.identsIn(name, syntax.RoleParam)
			}
		}
		if t := n.ChildByFieldName("type"); t != nil {
			p.Annotation = b.typeExpr(t)
		}
		if v := n.ChildByFieldName("value"); v != nil {
			p.Default = b.node(v, syntax.Load)
		}
	case "tuple_pattern":
		b.identsIn(n, syntax.RoleParam)
	default:
		return p, false
	}
	return p, true
}

func (b *builder) lambda(n *sitter.Node) *syntax.Generic {
	g := &syntax.Generic{Loc: b.loc(n), Kind: "lambda"}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range b.params(params) {
			if p.Default != nil {
				g.Kids = append(g.Kids, p.Default)
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		g.Kids = append(g.Kids, b.node(body, syntax.Load))
	}
	return g
}

func (b *builder) alias(n *sitter.Node) syntax.Alias {
	b.identsIn(n, syntax.RoleImport)
	a := syntax.Alias{Span: span(n)}
	if n.Type() == "aliased_import" {
		if name := n.ChildByFieldName("name"); name != nil {
			a.Name = b.text(name)
		}
		if as := n.ChildByFieldName("alias"); as != nil {
			a.AsName = b.text(as)
		}
		return a
	}
	a.Name = b.text(n)
	return a
}

func (b *builder) importStmt(n *sitter.Node) *syntax.Import {
	imp := &syntax.Import{Loc: b.loc(n)}
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "dotted_name", "aliased_import":
			imp.Names = append(imp.Names, b.alias(c))
		}
	}
	return imp
}

func (b *builder) importFrom(n *sitter.Node) *syntax.ImportFrom {
	imp := &syntax.ImportFrom{Loc: b.loc(n)}
	if n.Type() == "future_import_statement" {
		imp.Module = "__future__"
	}
	sawImport := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || isExtra(c) {
			continue
		}
		if !c.IsNamed() {
			if c.Type() == "import" {
				sawImport = true
			}
			continue
		}
		if !sawImport {
			b.moduleName(c, imp)
			continue
		}
		switch c.Type() {
		case "wildcard_import":
			imp.Wildcard = true
		case "dotted_name", "aliased_import":
			imp.Names = append(imp.Names, b.alias(c))
		}
	}
	return imp
}

func (b *builder) moduleName(n *sitter.Node, imp *syntax.ImportFrom) {
	b.identsIn(n, syntax.RoleImport)
	switch n.Type() {
	case "dotted_name":
		imp.Module = b.text(n)
	case "relative_import":
		for _, c := range namedKids(n) {
			switch c.Type() {
			case "import_prefix":
				imp.Level = strings.Count(b.text(c), ".")
			case "dotted_name":
				imp.Module = b.text(c)
			}
		}
	}
}
