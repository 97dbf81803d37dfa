package walk

import (
	"bitc/ast"
	"bitc/sem"
	"bitc/typing"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRefinement(t *testing.T) {
	w, env := testEnv(t, map[string]typing.Type{
		"x": typing.Union(typing.Integer, typing.String),
	})

	result, err := w.ResolveExpr(ifElse(is(ident("x"), tname("Integer")), ident("x"), ident("x")), env)
	require.NoError(t, err)

	ifExpr := result.(*sem.If)
	assertType(t, typing.Boolean, ifExpr.Cond.Type())
	assertType(t, typing.Integer, ifExpr.Then.Type())
	assertType(t, typing.String, ifExpr.Else.Type())
	assertType(t, typing.Union(typing.Integer, typing.String), ifExpr.Type())

	// the refinements do not leak out of the branches
	assertType(t, typing.Union(typing.Integer, typing.String), lookupType(t, env, "x"))
}

func TestArithmeticRefinement(t *testing.T) {
	tests := []struct {
		name     string
		cond     ast.Expr
		expected typing.Type
	}{
		{"add", binary(ast.OpEq, binary(ast.OpAdd, ident("x"), num(1)), num(5)), typing.NewIntegerLiteral(4)},
		{"add flipped", binary(ast.OpEq, num(5), binary(ast.OpAdd, num(1), ident("x"))), typing.NewIntegerLiteral(4)},
		{"sub lhs", binary(ast.OpEq, binary(ast.OpSub, ident("x"), num(2)), num(5)), typing.NewIntegerLiteral(7)},
		{"sub rhs", binary(ast.OpEq, binary(ast.OpSub, num(10), ident("x")), num(4)), typing.NewIntegerLiteral(6)},
		{"mul", binary(ast.OpEq, binary(ast.OpMul, ident("x"), num(3)), num(12)), typing.NewIntegerLiteral(4)},
		{"mul inexact", binary(ast.OpEq, binary(ast.OpMul, ident("x"), num(2)), num(5)), typing.Never},
		{"mul by zero", binary(ast.OpEq, binary(ast.OpMul, ident("x"), num(0)), num(0)), typing.Integer},
		{"div", binary(ast.OpEq, binary(ast.OpDiv, ident("x"), num(2)), num(3)), typing.Integer},
		{"neg", binary(ast.OpEq, &ast.UnaryOp{Op: ast.OpNeg, Operand: ident("x")}, num(3)), typing.NewIntegerLiteral(-3)},
		{"nested", binary(ast.OpEq, binary(ast.OpMul, binary(ast.OpAdd, ident("x"), num(1)), num(2)), num(10)), typing.NewIntegerLiteral(4)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w, env := testEnv(t, map[string]typing.Type{"x": typing.Integer})

			cond, err := w.ResolveExpr(test.cond, env)
			require.NoError(t, err)

			thenEnv := env.Child()
			refineEnvs(cond, thenEnv, nil)

			assertType(t, test.expected, lookupType(t, thenEnv, "x"))
		})
	}
}

func TestLogicalRefinement(t *testing.T) {
	xType := typing.Union(typing.Integer, typing.String, typing.None)

	tests := []struct {
		name         string
		cond         ast.Expr
		thenX, elseX typing.Type
		thenY, elseY typing.Type
	}{
		{
			name:  "not",
			cond:  not(is(ident("x"), tname("Integer"))),
			thenX: typing.Union(typing.String, typing.None),
			elseX: typing.Integer,
		},
		{
			name:  "or on both sides",
			cond:  binary(ast.OpOr, is(ident("x"), tname("Integer")), is(ident("x"), tname("String"))),
			thenX: typing.Union(typing.Integer, typing.String),
			elseX: typing.None,
		},
		{
			name:  "or on one side",
			cond:  binary(ast.OpOr, is(ident("x"), tname("Integer")), binary(ast.OpEq, ident("y"), num(1))),
			thenX: xType,
			elseX: typing.Union(typing.String, typing.None),
		},
		{
			name:  "and",
			cond:  binary(ast.OpAnd, is(ident("x"), tname("Integer")), binary(ast.OpEq, ident("y"), num(1))),
			thenX: typing.Integer,
			elseX: xType,
			thenY: typing.NewIntegerLiteral(1),
		},
		{
			name:  "and on both sides",
			cond:  binary(ast.OpAnd, not(is(ident("x"), tname("Integer"))), not(is(ident("x"), tname("String")))),
			thenX: typing.None,
			elseX: typing.Union(typing.Integer, typing.String),
		},
		{
			name:  "not equal",
			cond:  binary(ast.OpNeq, ident("x"), ident("None")),
			thenX: typing.Union(typing.Integer, typing.String),
			elseX: typing.None,
		},
		{
			name:  "equal literal",
			cond:  binary(ast.OpEq, ident("y"), num(2)),
			thenX: xType,
			elseX: xType,
			thenY: typing.NewIntegerLiteral(2),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w, env := testEnv(t, map[string]typing.Type{"x": xType, "y": typing.Integer})

			cond, err := w.ResolveExpr(test.cond, env)
			require.NoError(t, err)

			thenEnv, elseEnv := env.Child(), env.Child()
			refineEnvs(cond, thenEnv, elseEnv)

			assertType(t, test.thenX, lookupType(t, thenEnv, "x"))
			assertType(t, test.elseX, lookupType(t, elseEnv, "x"))

			if test.thenY == nil {
				test.thenY = typing.Integer
			}

			if test.elseY == nil {
				test.elseY = typing.Integer
			}

			assertType(t, test.thenY, lookupType(t, thenEnv, "y"))
			assertType(t, test.elseY, lookupType(t, elseEnv, "y"))
		})
	}
}

func TestRefinementNarrowsRhs(t *testing.T) {
	// the right operand of `and` sees the left operand as true
	w, env := testEnv(t, map[string]typing.Type{
		"x": typing.Union(typing.Integer, typing.String),
	})

	cond := binary(ast.OpAnd, is(ident("x"), tname("Integer")), binary(ast.OpGt, ident("x"), num(0)))
	result, err := w.ResolveExpr(cond, env)
	require.NoError(t, err)
	assertType(t, typing.Boolean, result.Type())

	// and the right operand of `or` sees it as false
	cond = binary(ast.OpOr, is(ident("x"), tname("String")), binary(ast.OpGt, ident("x"), num(0)))
	_, err = w.ResolveExpr(cond, env)
	assert.NoError(t, err)

	// without refinement the comparison is a type mismatch
	_, err = w.ResolveExpr(binary(ast.OpGt, ident("x"), num(0)), env)
	assert.Error(t, err)
}

func TestCombineRefinements(t *testing.T) {
	_, env := testEnv(t, map[string]typing.Type{"a": typing.Any, "b": typing.Any})
	a, err := env.LookupValue("a")
	require.NoError(t, err)
	b, err := env.LookupValue("b")
	require.NoError(t, err)

	lhs := []refinement{
		{sym: a.Symbol, typ: typing.Union(typing.Integer, typing.String)},
		{sym: a.Symbol, typ: typing.Integer},
		{sym: b.Symbol, typ: typing.Integer},
	}
	rhs := []refinement{
		{sym: a.Symbol, typ: typing.None},
	}

	combined := combineRefinements(lhs, rhs)
	require.Len(t, combined, 1)
	assert.Equal(t, a.Symbol, combined[0].sym)
	assertType(t, typing.Union(typing.Integer, typing.None), combined[0].typ)
}

func TestRefinementNeverWidens(t *testing.T) {
	declared := []typing.Type{
		typing.Integer,
		typing.Union(typing.Integer, typing.String),
		typing.NewIntegerLiteral(3),
		typing.String,
	}

	conds := []ast.Expr{
		is(ident("x"), tname("Integer")),
		is(ident("x"), tname("Any")),
		binary(ast.OpEq, ident("x"), num(3)),
		binary(ast.OpNeq, ident("x"), str("s")),
		not(is(ident("x"), tname("String"))),
	}

	for _, typ := range declared {
		for _, cond := range conds {
			w, env := testEnv(t, map[string]typing.Type{"x": typ})

			resolved, err := w.ResolveExpr(cond, env)
			require.NoError(t, err)

			thenEnv, elseEnv := env.Child(), env.Child()
			refineEnvs(resolved, thenEnv, elseEnv)

			assert.True(t, typing.Extend(lookupType(t, thenEnv, "x"), typ))
			assert.True(t, typing.Extend(lookupType(t, elseEnv, "x"), typ))
		}
	}
}
