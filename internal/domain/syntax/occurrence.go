package syntax

// Role says what an identifier token is doing at one place in the file.
type Role int

const (
	// RoleName is an expression name: a read, a binding or a del.
	RoleName Role = iota
	// RoleDef is the name of a def or class statement.
	RoleDef
	RoleParam
	// RoleKeyword is the name in a keyword argument f(name=...).
	RoleKeyword
	// RoleAttr is the attribute in x.name.
	RoleAttr
	// RoleImport is any identifier inside an import statement.
	RoleImport
	// RoleScope is a name in a global or nonlocal statement.
	RoleScope
	// RoleEcho is any identifier inside a self-documenting f-string
	// interpolation such as f"{name=}", whose source text is printed.
	RoleEcho
)

func (r Role) String() string {
	switch r {
	case RoleName:
		return "name"
	case RoleDef:
		return "definition"
	case RoleParam:
		return "parameter"
	case RoleKeyword:
		return "keyword argument"
	case RoleAttr:
		return "attribute"
	case RoleImport:
		return "import"
	case RoleScope:
		return "global/nonlocal"
	case RoleEcho:
		return "self-documenting f-string"
	}
	return "unknown"
}

// Occurrence is one identifier token.
type Occurrence struct {
	Name string
	Role Role
	Pos  Pos
	Span Span
}

// OccurrencesOf groups the module's identifier tokens by text.
func (m *Module) OccurrencesOf() map[string][]Occurrence {
	out := make(map[string][]Occurrence)
	for _, o := range m.Occurrences {
		out[o.Name] = append(out[o.Name], o)
	}
	return out
}
