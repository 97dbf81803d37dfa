package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
)

// walkCall resolves a function call.  Generic arguments which are not given
// explicitly are inferred by unifying the parameter types with the argument
// types; a type variable which cannot be inferred takes its bounds.
func (w *Walker) walkCall(call *ast.Call, env *depm.Environment) *sem.Call {
	fn := w.walkExpr(call.Func, env)

	fnType, ok := typing.AsFunc(fn.Type())
	if !ok {
		w.raise(report.NotCallable, call.Func.Span(), "type %s is not callable", fn.Type().Repr())
	}

	var generics []typing.Type
	var args []sem.Expr
	if len(call.Generics) > 0 || len(fnType.Generics) == 0 {
		generics = make([]typing.Type, len(call.Generics))
		for i, gen := range call.Generics {
			generics[i] = w.walkTypeExpr(gen, env)
		}

		completed, err := typing.Complete(fnType, generics)
		w.check(err, call.Span())

		args = w.walkArgs(call.Args, completed.Params, call.Span(), env)
		fnType = completed
	} else {
		args = make([]sem.Expr, len(call.Args))
		argTypes := make([]typing.Type, len(call.Args))
		for i, arg := range call.Args {
			args[i] = w.walkExpr(arg, env)
			argTypes[i] = args[i].Type()
		}

		generics = inferGenerics(fnType, argTypes)

		completed, err := typing.Complete(fnType, generics)
		w.check(err, call.Span())

		w.checkArgs(args, completed.Params, call.Span())
		fnType = completed
	}

	return &sem.Call{
		ExprBase: sem.NewExprBase(call.Span(), fnType.ReturnType, typing.Union(fn.ReturnType(), returnTypeOf(args...))),
		Func:     fn,
		Generics: generics,
		Args:     args,
	}
}

// inferGenerics infers the generic arguments of fn from the types of the
// arguments it is called with.
func inferGenerics(fn *typing.FuncType, argTypes []typing.Type) []typing.Type {
	inferred := typing.Unify(fn.Params, argTypes)

	generics := make([]typing.Type, len(fn.Generics))
	for i, gen := range fn.Generics {
		if t, ok := inferred[gen]; ok {
			generics[i] = t
		} else {
			generics[i] = gen.Bounds
		}
	}

	return generics
}

// walkArgs resolves the arguments of a call and checks them against params.
func (w *Walker) walkArgs(argExprs []ast.Expr, params []typing.Type, span *report.TextSpan, env *depm.Environment) []sem.Expr {
	args := make([]sem.Expr, len(argExprs))
	for i, arg := range argExprs {
		args[i] = w.walkExpr(arg, env)
	}

	w.checkArgs(args, params, span)
	return args
}

// checkArgs checks the number and types of the arguments of a call.
func (w *Walker) checkArgs(args []sem.Expr, params []typing.Type, span *report.TextSpan) {
	if len(args) != len(params) {
		w.raise(report.ArityMismatch, span, "expected %d arguments but got %d", len(params), len(args))
	}

	for i, arg := range args {
		if !typing.Extend(arg.Type(), params[i]) {
			w.raise(
				report.TypeMismatch,
				arg.Span(),
				"argument %d: expected %s but got %s",
				i+1, params[i].Repr(), arg.Type().Repr(),
			)
		}
	}
}
