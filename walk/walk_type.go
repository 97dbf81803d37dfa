package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/typing"
	"math/big"
)

// walkTypeExpr resolves a type expression in env.
func (w *Walker) walkTypeExpr(expr ast.TypeExpr, env *depm.Environment) typing.Type {
	switch v := expr.(type) {
	case *ast.TypeName:
		tb, err := env.LookupType(v.Name)
		w.check(err, v.Span())
		return tb.Type
	case *ast.TypeBinary:
		return w.walkTypeBinary(v, env)
	case *ast.TypeIntLit:
		return w.intLitType(v.Value, v.Span())
	case *ast.TypeStringLit:
		return typing.NewStringLiteral(v.Value)
	case *ast.TypeBoolLit:
		return boolLitType(v.Value)
	case *ast.TypeStruct:
		fields := make(map[string]typing.Type, len(v.Fields))
		for _, field := range v.Fields {
			if _, ok := fields[field.Name]; ok {
				w.raise(report.DuplicateDeclaration, v.Span(), "multiple fields named `%s` in struct type", field.Name)
			}

			fields[field.Name] = w.walkTypeExpr(field.Type, env)
		}

		return typing.NewStruct(fields)
	case *ast.TypeCall:
		return w.walkTypeCall(v, env)
	case *ast.TypeMatch:
		// the matched value and patterns are checked but only the results
		// contribute to the type
		w.walkTypeExpr(v.Value, env)

		results := make([]typing.Type, len(v.Cases))
		for i, tcase := range v.Cases {
			w.walkTypeExpr(tcase.Pattern, env)
			results[i] = w.walkTypeExpr(tcase.Result, env)
		}

		return typing.Union(results...)
	case *ast.TypeFunc:
		funcEnv := env.Child()
		generics := w.walkGenerics(v.Generics, funcEnv)

		params := make([]typing.Type, len(v.Params))
		for i, param := range v.Params {
			params[i] = w.walkTypeExpr(param, funcEnv)
		}

		return &typing.FuncType{
			ReturnType: w.walkReturnTypeExpr(v.ReturnType, funcEnv),
			Generics:   generics,
			Params:     params,
		}
	}

	report.ReportICE("unknown type expression: %T", expr)
	return nil
}

// walkReturnTypeExpr resolves a declared return type which defaults to None.
func (w *Walker) walkReturnTypeExpr(expr ast.TypeExpr, env *depm.Environment) typing.Type {
	if expr == nil {
		return typing.None
	}

	return w.walkTypeExpr(expr, env)
}

// walkTypeBinary resolves a binary type operator.
func (w *Walker) walkTypeBinary(tb *ast.TypeBinary, env *depm.Environment) typing.Type {
	lhs := w.walkTypeExpr(tb.Lhs, env)
	rhs := w.walkTypeExpr(tb.Rhs, env)

	var result typing.Type
	var err error
	switch tb.Op {
	case ast.OpUnion:
		return typing.Union(lhs, rhs)
	case ast.OpIntersect:
		return typing.Intersection(lhs, rhs)
	case ast.OpAdd:
		result, err = typing.Add(lhs, rhs)
	case ast.OpSub:
		result, err = typing.Subtract(lhs, rhs)
	case ast.OpMul:
		result, err = typing.Multiply(lhs, rhs)
	case ast.OpDiv:
		result, err = typing.Divide(lhs, rhs)
	default:
		w.raise(report.TypeMismatch, tb.Span(), "operator `%s` cannot be applied to types", tb.Op)
	}

	w.check(err, tb.Span())
	return result
}

// walkTypeCall resolves the application of a type function.
func (w *Walker) walkTypeCall(tc *ast.TypeCall, env *depm.Environment) typing.Type {
	tf, err := env.LookupTypeFunc(tc.Name)
	w.check(err, tc.Span())

	if len(tc.Args) != tf.Arity {
		w.raise(report.ArityMismatch, tc.Span(), "type function `%s` expects %d arguments but got %d", tc.Name, tf.Arity, len(tc.Args))
	}

	args := make([]typing.Type, len(tc.Args))
	for i, arg := range tc.Args {
		args[i] = w.walkTypeExpr(arg, env)
	}

	result, err := tf.Apply(args)
	w.check(err, tc.Span())
	return result
}

// walkGenerics declares the generic type parameters of a function in env.
// Each bound may refer to the parameters declared before it.
func (w *Walker) walkGenerics(params []*ast.TypeParam, env *depm.Environment) []*typing.TypeVar {
	generics := make([]*typing.TypeVar, len(params))
	for i, param := range params {
		var bounds typing.Type
		if param.Bound != nil {
			bounds = w.walkTypeExpr(param.Bound, env)
		}

		tv := typing.NewTypeVar(param.Name, bounds)
		_, err := env.DeclareType(param.Name, tv)
		w.check(err, param.Span())

		generics[i] = tv
	}

	return generics
}

// -----------------------------------------------------------------------------

// intLitType returns the literal type of an integer literal.
func (w *Walker) intLitType(text string, span *report.TextSpan) *typing.IntegerLiteral {
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		w.raise(report.TypeMismatch, span, "malformed integer literal: `%s`", text)
	}

	return typing.NewBigIntegerLiteral(value)
}

// boolLitType returns the literal type of a boolean literal.
func boolLitType(value bool) typing.Type {
	if value {
		return typing.True
	}

	return typing.False
}
