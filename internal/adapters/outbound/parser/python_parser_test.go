package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/abdidvp/pystyle/internal/adapters/outbound/parser"
	"github.com/abdidvp/pystyle/internal/domain"
	"github.com/abdidvp/pystyle/internal/domain/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *syntax.Module {
	t.Helper()
	mod, err := parser.New().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return mod
}

func TestPythonParser_SyntaxErrorIsParseFailure(t *testing.T) {
	_, err := parser.New().Parse(context.Background(), []byte("def f(:\n    pass\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParseFailure))
}

func TestPythonParser_EmptyFile(t *testing.T) {
	mod := parse(t, "")
	assert.Empty(t, mod.Body)
}

func TestPythonParser_AssignTargets(t *testing.T) {
	mod := parse(t, "a = b = 1\nx: int = 2\n")
	require.Len(t, mod.Body, 2)

	chained, ok := mod.Body[0].(*syntax.Assign)
	require.True(t, ok)
	require.Len(t, chained.Targets, 2)
	names := syntax.SimpleTargets(chained)
	require.Len(t, names, 2)
	assert.Equal(t, "a", names[0].ID)
	assert.Equal(t, "b", names[1].ID)
	assert.Equal(t, syntax.Store, names[0].Ctx)

	annotated, ok := mod.Body[1].(*syntax.Assign)
	require.True(t, ok)
	assert.True(t, annotated.Annotated)
	assert.Empty(t, syntax.SimpleTargets(annotated))
}

func TestPythonParser_Positions(t *testing.T) {
	mod := parse(t, "import os\n\nclass Foo:\n    x = 1\n")
	cls := syntax.Collect[*syntax.ClassDef](mod)
	require.Len(t, cls, 1)
	assert.Equal(t, syntax.Pos{Line: 3, Column: 0}, cls[0].Position())
	assert.Equal(t, "Foo", cls[0].Name.Name)

	assigns := syntax.Collect[*syntax.Assign](mod)
	require.Len(t, assigns, 1)
	name := assigns[0].Targets[0].(*syntax.Name)
	assert.Equal(t, syntax.Pos{Line: 4, Column: 4}, name.Position())
}

func TestPythonParser_FunctionHeader(t *testing.T) {
	src := "@decorator\nasync def fetch(a, /, b, *args, c, **kw) -> int:\n    return a\n"
	mod := parse(t, src)
	fns := syntax.Collect[*syntax.FunctionDef](mod)
	require.Len(t, fns, 1)
	fn := fns[0]

	assert.True(t, fn.Async)
	assert.Equal(t, 2, fn.Position().Line)
	assert.Equal(t, 1, fn.Head.Line)
	assert.Len(t, fn.Decorators, 1)
	assert.Equal(t, byte(':'), src[fn.ColonEnd-1])

	kinds := make(map[string]syntax.ParamKind)
	for _, p := range fn.Params {
		kinds[p.Name.Name] = p.Kind
	}
	assert.Equal(t, syntax.ParamPositionalOnly, kinds["a"])
	assert.Equal(t, syntax.ParamPositional, kinds["b"])
	assert.Equal(t, syntax.ParamVarArgs, kinds["args"])
	assert.Equal(t, syntax.ParamKeywordOnly, kinds["c"])
	assert.Equal(t, syntax.ParamKwArgs, kinds["kw"])

	positional := fn.PositionalParams()
	require.Len(t, positional, 1)
	assert.Equal(t, "b", positional[0].Name.Name)
}

func TestPythonParser_ParamAnnotationsAndDefaults(t *testing.T) {
	mod := parse(t, "def f(a: [] = None, b={}):\n    pass\n")
	fn := syntax.Collect[*syntax.FunctionDef](mod)[0]
	require.Len(t, fn.Params, 2)

	ann, ok := fn.Params[0].Annotation.(*syntax.Collection)
	require.True(t, ok)
	assert.Equal(t, syntax.CollList, ann.Kind)

	def, ok := fn.Params[1].Default.(*syntax.Collection)
	require.True(t, ok)
	assert.Equal(t, syntax.CollDict, def.Kind)
	assert.Nil(t, fn.Params[1].Annotation)
}

func TestPythonParser_Imports(t *testing.T) {
	mod := parse(t, "import os.path as p, sys\nfrom ..pkg import a, b as c\nfrom m import *\nfrom __future__ import annotations\n")
	require.Len(t, mod.Body, 4)

	imp := mod.Body[0].(*syntax.Import)
	require.Len(t, imp.Names, 2)
	assert.Equal(t, "os.path", imp.Names[0].Name)
	assert.Equal(t, "p", imp.Names[0].Bound())
	assert.Equal(t, "sys", imp.Names[1].Bound())

	from := mod.Body[1].(*syntax.ImportFrom)
	assert.Equal(t, 2, from.Level)
	assert.Equal(t, "pkg", from.Module)
	assert.Equal(t, "..pkg", from.ModuleText())
	require.Len(t, from.Names, 2)
	assert.Equal(t, "c", from.Names[1].Bound())

	assert.True(t, mod.Body[2].(*syntax.ImportFrom).Wildcard)
	assert.Equal(t, "__future__", mod.Body[3].(*syntax.ImportFrom).Module)
}

func TestPythonParser_NameContexts(t *testing.T) {
	src := `for i, j in pairs:
    total = i
with open(p) as fh:
    del fh
print(f"{total}", key=value)
`
	mod := parse(t, src)
	ctx := map[string][]syntax.NameCtx{}
	syntax.Inspect(mod, func(n syntax.Node) bool {
		if name, ok := n.(*syntax.Name); ok {
			ctx[name.ID] = append(ctx[name.ID], name.Ctx)
		}
		return true
	})

	assert.Equal(t, []syntax.NameCtx{syntax.Store, syntax.Load}, ctx["i"])
	assert.Equal(t, []syntax.NameCtx{syntax.Store}, ctx["j"])
	assert.Equal(t, []syntax.NameCtx{syntax.Store, syntax.Del}, ctx["fh"])
	assert.Equal(t, []syntax.NameCtx{syntax.Store, syntax.Load}, ctx["total"], "f-string interpolation reads total")
	assert.NotContains(t, ctx, "key", "keyword argument names are not expressions")

	reads := syntax.Reads(mod)
	assert.True(t, reads["value"])
	assert.True(t, reads["pairs"])
	assert.False(t, reads["j"])
}

func TestPythonParser_SelfDocumentingInterpolation(t *testing.T) {
	mod := parse(t, "x = 1\nprint(f'{x=}', f'{x}', f'{obj.size = }')\n")
	roles := map[string][]syntax.Role{}
	for _, o := range mod.Occurrences {
		roles[o.Name] = append(roles[o.Name], o.Role)
	}
	assert.Equal(t, []syntax.Role{syntax.RoleName, syntax.RoleEcho, syntax.RoleName}, roles["x"])
	assert.Equal(t, []syntax.Role{syntax.RoleEcho}, roles["obj"])
	assert.Equal(t, []syntax.Role{syntax.RoleEcho}, roles["size"])

	// The interpolated name is still a read.
	assert.True(t, syntax.Reads(mod)["x"])
}

func TestPythonParser_Occurrences(t *testing.T) {
	mod := parse(t, "import os\nclass A:\n    def run(self, n=1):\n        self.run(n=n)\n")
	roles := map[string][]syntax.Role{}
	for _, o := range mod.Occurrences {
		roles[o.Name] = append(roles[o.Name], o.Role)
	}
	assert.Equal(t, []syntax.Role{syntax.RoleImport}, roles["os"])
	assert.Equal(t, []syntax.Role{syntax.RoleDef}, roles["A"])
	assert.Equal(t, []syntax.Role{syntax.RoleDef, syntax.RoleAttr}, roles["run"])
	assert.Equal(t, []syntax.Role{syntax.RoleParam, syntax.RoleKeyword, syntax.RoleName}, roles["n"])

	for i := 1; i < len(mod.Occurrences); i++ {
		assert.Less(t, mod.Occurrences[i-1].Span.Start, mod.Occurrences[i].Span.Start)
	}
}

func TestPythonParser_Docstrings(t *testing.T) {
	src := `def a():
    """Doc."""

def b():
    f"""{x}"""

def c():
    b"bytes"

def d():
    "one" "two"
`
	mod := parse(t, src)
	fns := syntax.Collect[*syntax.FunctionDef](mod)
	require.Len(t, fns, 4)
	assert.True(t, syntax.HasDocstring(fns[0].Body))
	assert.False(t, syntax.HasDocstring(fns[1].Body))
	assert.False(t, syntax.HasDocstring(fns[2].Body))
	assert.True(t, syntax.HasDocstring(fns[3].Body))

	doc, ok := syntax.Docstring(fns[3].Body)
	require.True(t, ok)
	assert.Equal(t, "onetwo", doc.Value)
}

func TestPythonParser_NoneComparison(t *testing.T) {
	mod := parse(t, "if None is not x:\n    pass\n")
	cmps := syntax.Collect[*syntax.Compare](mod)
	require.Len(t, cmps, 1)
	assert.Equal(t, []string{"is not"}, cmps[0].Ops)
	left, ok := cmps[0].Left.(*syntax.Constant)
	require.True(t, ok)
	assert.Equal(t, syntax.ConstNone, left.Kind)
}
