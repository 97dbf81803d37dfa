package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
)

// walkCond resolves a condition which must be a boolean.
func (w *Walker) walkCond(cond ast.Expr, env *depm.Environment) sem.Expr {
	result := w.walkExpr(cond, env)
	w.mustExtend(result.Type(), typing.Boolean, cond.Span())
	return result
}

// walkIf resolves an if expression.  Each branch is resolved in its own child
// environment narrowed by what the condition proves about that branch.
func (w *Walker) walkIf(ifExpr *ast.If, env *depm.Environment) *sem.If {
	cond := w.walkCond(ifExpr.Cond, env)

	thenEnv, elseEnv := env.Child(), env.Child()
	refineEnvs(cond, thenEnv, elseEnv)

	then := w.walkExpr(ifExpr.Then, thenEnv)

	var els sem.Expr
	var typ typing.Type
	if ifExpr.Else == nil {
		typ = typing.Union(then.Type(), typing.None)
	} else {
		els = w.walkExpr(ifExpr.Else, elseEnv)
		typ = typing.Union(then.Type(), els.Type())
	}

	return &sem.If{
		ExprBase: sem.NewExprBase(ifExpr.Span(), typ, returnTypeOf(cond, then, els)),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

// walkWhile resolves a while loop.  The body is narrowed by the condition.
func (w *Walker) walkWhile(whileExpr *ast.While, env *depm.Environment) *sem.While {
	cond := w.walkCond(whileExpr.Cond, env)

	bodyEnv := env.Child()
	refineEnvs(cond, bodyEnv, nil)

	w.loopDepth++
	body := w.walkExpr(whileExpr.Body, bodyEnv)
	w.loopDepth--

	return &sem.While{
		ExprBase: sem.NewExprBase(whileExpr.Span(), typing.None, returnTypeOf(cond, body)),
		Cond:     cond,
		Body:     body,
	}
}

// -----------------------------------------------------------------------------

// walkReturn resolves a return expression.  The expression itself never
// yields a value: its value is accounted for in its early-exit type.
func (w *Walker) walkReturn(ret *ast.Return, env *depm.Environment) *sem.Return {
	if w.funcDepth == 0 {
		w.raise(report.InvalidControl, ret.Span(), "return outside of function")
	}

	if ret.Value == nil {
		return &sem.Return{ExprBase: sem.NewExprBase(ret.Span(), typing.Never, typing.None)}
	}

	value := w.walkExpr(ret.Value, env)
	return &sem.Return{
		ExprBase: sem.NewExprBase(ret.Span(), typing.Never, typing.Union(value.Type(), value.ReturnType())),
		Value:    value,
	}
}

// walkBreak resolves a break expression.
func (w *Walker) walkBreak(brk *ast.Break) *sem.Break {
	if w.loopDepth == 0 {
		w.raise(report.InvalidControl, brk.Span(), "break outside of loop")
	}

	return &sem.Break{ExprBase: sem.NewExprBase(brk.Span(), typing.Never, typing.Never)}
}

// walkContinue resolves a continue expression.
func (w *Walker) walkContinue(cont *ast.Continue) *sem.Continue {
	if w.loopDepth == 0 {
		w.raise(report.InvalidControl, cont.Span(), "continue outside of loop")
	}

	return &sem.Continue{ExprBase: sem.NewExprBase(cont.Span(), typing.Never, typing.Never)}
}
