package syntax

import "strings"

// Inspect traverses the tree depth-first in source order. If f returns false
// the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}

// Collect returns every node of type T in source order.
func Collect[T Node](root Node) []T {
	var out []T
	Inspect(root, func(n Node) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Definition is a function or class definition.
type Definition interface {
	Node
	DefName() Ident
	DefBody() *Block
	DefHeader() Header
}

func (f *FunctionDef) DefName() Ident    { return f.Name }
func (f *FunctionDef) DefBody() *Block   { return f.Body }
func (f *FunctionDef) DefHeader() Header { return f.Header }
func (c *ClassDef) DefName() Ident       { return c.Name }
func (c *ClassDef) DefBody() *Block      { return c.Body }
func (c *ClassDef) DefHeader() Header    { return c.Header }

// Definitions returns functions and classes in source order, nested included.
func Definitions(root Node) []Definition {
	var out []Definition
	Inspect(root, func(n Node) bool {
		switch d := n.(type) {
		case *FunctionDef:
			out = append(out, d)
		case *ClassDef:
			out = append(out, d)
		}
		return true
	})
	return out
}

// Docstring returns the leading string literal of a body when there is one.
// Bytes do not count; f-strings are never Constants.
func Docstring(b *Block) (*Constant, bool) {
	if b == nil || len(b.Stmts) == 0 {
		return nil, false
	}
	stmt, ok := b.Stmts[0].(*ExprStmt)
	if !ok {
		return nil, false
	}
	c, ok := stmt.Value.(*Constant)
	if !ok || c.Kind != ConstString {
		return nil, false
	}
	return c, true
}

// HasDocstring reports whether the body starts with a non-empty docstring.
func HasDocstring(b *Block) bool {
	c, ok := Docstring(b)
	return ok && strings.TrimSpace(c.Value) != ""
}

// SimpleTargets returns the Name targets of a plain (non-annotated)
// assignment. Tuple and attribute targets are not simple.
func SimpleTargets(a *Assign) []*Name {
	if a.Annotated {
		return nil
	}
	var out []*Name
	for _, t := range a.Targets {
		if n, ok := t.(*Name); ok {
			out = append(out, n)
		}
	}
	return out
}

// Reads returns the set of identifiers that appear as read references.
func Reads(root Node) map[string]bool {
	reads := make(map[string]bool)
	Inspect(root, func(n Node) bool {
		if name, ok := n.(*Name); ok && name.Ctx == Load {
			reads[name.ID] = true
		}
		return true
	})
	return reads
}
