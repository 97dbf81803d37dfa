package walk

import (
	"bitc/ast"
	"bitc/depm"
	"bitc/report"
	"bitc/sem"
	"bitc/typing"
)

// binaryOperFuncs maps each arithmetic and comparison operator to its type
// level operator.
var binaryOperFuncs = map[ast.Oper]func(a, b typing.Type) (typing.Type, error){
	ast.OpAdd:  typing.Add,
	ast.OpSub:  typing.Subtract,
	ast.OpMul:  typing.Multiply,
	ast.OpDiv:  typing.Divide,
	ast.OpLt:   typing.LessThan,
	ast.OpLtEq: typing.LessThanOrEqual,
	ast.OpGt:   typing.GreaterThan,
	ast.OpGtEq: typing.GreaterThanOrEqual,
}

// walkBinaryOp resolves a binary operator application.  The right operand of
// `and` is resolved knowing the left operand is true and that of `or` knowing
// the left operand is false.
func (w *Walker) walkBinaryOp(bop *ast.BinaryOp, env *depm.Environment) *sem.BinaryOp {
	lhs := w.walkExpr(bop.Lhs, env)

	var rhs sem.Expr
	var typ typing.Type
	var err error

	switch bop.Op {
	case ast.OpEq, ast.OpNeq:
		rhs = w.walkExpr(bop.Rhs, env)

		if bop.Op == ast.OpEq {
			typ = typing.Equal(lhs.Type(), rhs.Type())
		} else {
			typ = typing.NotEqual(lhs.Type(), rhs.Type())
		}
	case ast.OpAnd, ast.OpOr:
		w.mustExtend(lhs.Type(), typing.Boolean, bop.Lhs.Span())

		rhsEnv := env.Child()
		if bop.Op == ast.OpAnd {
			refineEnvs(lhs, rhsEnv, nil)
		} else {
			refineEnvs(lhs, nil, rhsEnv)
		}

		rhs = w.walkExpr(bop.Rhs, rhsEnv)
		w.mustExtend(rhs.Type(), typing.Boolean, bop.Rhs.Span())

		if bop.Op == ast.OpAnd {
			typ, err = typing.And(lhs.Type(), rhs.Type())
		} else {
			typ, err = typing.Or(lhs.Type(), rhs.Type())
		}
	default:
		opFunc, ok := binaryOperFuncs[bop.Op]
		if !ok {
			w.raise(report.TypeMismatch, bop.Span(), "`%s` is not a binary operator", bop.Op)
		}

		rhs = w.walkExpr(bop.Rhs, env)
		typ, err = opFunc(lhs.Type(), rhs.Type())
	}

	w.check(err, bop.Span())

	return &sem.BinaryOp{
		ExprBase: sem.NewExprBase(bop.Span(), typ, returnTypeOf(lhs, rhs)),
		Op:       bop.Op,
		Lhs:      lhs,
		Rhs:      rhs,
	}
}

// walkUnaryOp resolves a unary operator application.
func (w *Walker) walkUnaryOp(uop *ast.UnaryOp, env *depm.Environment) *sem.UnaryOp {
	operand := w.walkExpr(uop.Operand, env)

	var typ typing.Type
	var err error
	switch uop.Op {
	case ast.OpNot:
		typ, err = typing.Not(operand.Type())
	case ast.OpNeg:
		typ, err = typing.Negate(operand.Type())
	default:
		w.raise(report.TypeMismatch, uop.Span(), "`%s` is not a unary operator", uop.Op)
	}

	w.check(err, uop.Span())

	return &sem.UnaryOp{
		ExprBase: sem.NewExprBase(uop.Span(), typ, operand.ReturnType()),
		Op:       uop.Op,
		Operand:  operand,
	}
}
