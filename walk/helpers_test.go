package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/sem"
	"bitc/typing"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Builders for syntax trees.  Spans are left nil.

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func num(v int) *ast.IntLit {
	return &ast.IntLit{Value: strconv.Itoa(v)}
}

func str(v string) *ast.StringLit {
	return &ast.StringLit{Value: v}
}

func boolean(v bool) *ast.BoolLit {
	return &ast.BoolLit{Value: v}
}

func binary(op ast.Oper, lhs, rhs ast.Expr) *ast.BinaryOp {
	return &ast.BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

func not(operand ast.Expr) *ast.UnaryOp {
	return &ast.UnaryOp{Op: ast.OpNot, Operand: operand}
}

func is(expr ast.Expr, typ ast.TypeExpr) *ast.Is {
	return &ast.Is{Expr: expr, Type: typ}
}

func block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts}
}

func call(fn ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Func: fn, Args: args}
}

func access(expr ast.Expr, field string) *ast.Access {
	return &ast.Access{Expr: expr, Field: field}
}

func ifElse(cond, then, els ast.Expr) *ast.If {
	return &ast.If{Cond: cond, Then: then, Else: els}
}

func structLit(fields ...*ast.FieldInit) *ast.StructLit {
	return &ast.StructLit{Fields: fields}
}

func field(name string, value ast.Expr) *ast.FieldInit {
	return &ast.FieldInit{Name: name, Value: value}
}

func tname(name string) *ast.TypeName {
	return &ast.TypeName{Name: name}
}

func tunion(lhs, rhs ast.TypeExpr) *ast.TypeBinary {
	return &ast.TypeBinary{Op: ast.OpUnion, Lhs: lhs, Rhs: rhs}
}

func tstruct(fields ...*ast.TypeField) *ast.TypeStruct {
	return &ast.TypeStruct{Fields: fields}
}

func tfield(name string, typ ast.TypeExpr) *ast.TypeField {
	return &ast.TypeField{Name: name, Type: typ}
}

func val(name string, value ast.Expr) *ast.VarDef {
	return &ast.VarDef{Name: name, Value: value}
}

func typedVar(name string, typ ast.TypeExpr, value ast.Expr) *ast.VarDef {
	return &ast.VarDef{Name: name, Mutable: true, Type: typ, Value: value}
}

func param(name string, typ ast.TypeExpr) *ast.Param {
	return &ast.Param{Name: name, Type: typ}
}

func fun(name string, params []*ast.Param, ret ast.TypeExpr, body ast.Expr) *ast.FuncDef {
	return &ast.FuncDef{Name: name, Params: params, ReturnType: ret, Body: body}
}

func program(defs ...ast.Def) *ast.Program {
	return &ast.Program{Defs: defs}
}

// -----------------------------------------------------------------------------

// assertType asserts that actual is structurally equal to expected.
func assertType(t *testing.T, expected, actual typing.Type) {
	t.Helper()

	if assert.NotNil(t, actual) {
		assert.True(t, typing.Equals(expected, actual), "expected %s but got %s", expected.Repr(), actual.Repr())
	}
}

// testEnv creates a walker along with a package environment in which the
// given variables are declared.
func testEnv(t *testing.T, vars map[string]typing.Type) (*Walker, *depm.Environment) {
	w := NewWalker(depm.MapPackageResolver{})
	env := w.Universe().Child()

	for name, typ := range vars {
		_, err := env.DeclareVariable(name, typ)
		require.NoError(t, err)
	}

	return w, env
}

// lookupType returns the type bound to name in env.
func lookupType(t *testing.T, env *depm.Environment, name string) typing.Type {
	t.Helper()

	binding, err := env.LookupValue(name)
	require.NoError(t, err)
	return binding.Type
}

// defType returns the type of the value declared by the definition at index i
// of a resolved program.
func defType(t *testing.T, prog *sem.Program, i int) typing.Type {
	t.Helper()

	require.Greater(t, len(prog.Defs), i)
	vd, ok := prog.Defs[i].(*sem.VarDef)
	require.True(t, ok, "definition %d is a %T", i, prog.Defs[i])
	return vd.Type
}
