package sem

import (
	"bitc/ast"
	"bitc/common"
	"bitc/report"
	"bitc/typing"
	"math/big"
)

// Expr is a resolved expression.
type Expr interface {
	Stmt

	// Type returns the type the expression evaluates to.
	Type() typing.Type

	// ReturnType returns the union of the types the expression may return
	// early with from its enclosing function.  This is Never if the expression
	// never returns early.
	ReturnType() typing.Type
}

// ExprBase is the base struct for all resolved expressions.
type ExprBase struct {
	nodeBase

	typ, returnType typing.Type
}

// NewExprBase creates a new expression base.
func NewExprBase(span *report.TextSpan, typ, returnType typing.Type) ExprBase {
	return ExprBase{nodeBase: nodeBase{span}, typ: typ, returnType: returnType}
}

func (eb *ExprBase) Type() typing.Type {
	return eb.typ
}

func (eb *ExprBase) ReturnType() typing.Type {
	return eb.returnType
}

// -----------------------------------------------------------------------------

// Identifier is a usage of a value symbol.
type Identifier struct {
	ExprBase

	Symbol common.Symbol
}

// Call is a function call.
type Call struct {
	ExprBase

	Func Expr

	// The generic arguments of the call, whether explicit or inferred.
	Generics []typing.Type

	Args []Expr
}

// Block is a sequence of statements.  The block evaluates to its last
// expression or to None.
type Block struct {
	ExprBase

	Stmts []Stmt
}

// IntLit is an integer literal.
type IntLit struct {
	ExprBase

	Value *big.Int
}

// StringLit is a string literal.
type StringLit struct {
	ExprBase

	Value string
}

// BoolLit is a boolean literal.
type BoolLit struct {
	ExprBase

	Value bool
}

// BinaryOp is a binary operator application.
type BinaryOp struct {
	ExprBase

	Op       ast.Oper
	Lhs, Rhs Expr
}

// UnaryOp is a unary operator application.
type UnaryOp struct {
	ExprBase

	Op      ast.Oper
	Operand Expr
}

// If is an if expression.  Else may be nil.
type If struct {
	ExprBase

	Cond, Then, Else Expr
}

// While is a while loop.
type While struct {
	ExprBase

	Cond, Body Expr
}

// As is a type cast.
type As struct {
	ExprBase

	Expr Expr

	// The type being cast to.
	Target typing.Type
}

// Is is a type test.
type Is struct {
	ExprBase

	Expr Expr

	// The type being tested against.
	Target typing.Type
}

// StructLit is a struct literal.
type StructLit struct {
	ExprBase

	Fields []*FieldInit
}

// FieldInit is one field of a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// Access is a field access.
type Access struct {
	ExprBase

	Expr  Expr
	Field string
}

// ExtensionAccess is the selection of an extension function on a receiver.
// Its type is the signature of the extension not counting the receiver.
type ExtensionAccess struct {
	ExprBase

	Receiver Expr

	// The symbol of the selected extension.
	Extension common.Symbol
}

// FuncLit is an anonymous function.
type FuncLit struct {
	ExprBase

	Params []common.Symbol
	Body   Expr
}

// New is an instantiation of a class.
type New struct {
	ExprBase

	// The symbol of the constructor of the class.
	Constructor common.Symbol

	Args []Expr
}

// Return is a return expression.  Value may be nil.
type Return struct {
	ExprBase

	Value Expr
}

// Break exits the enclosing loop.
type Break struct {
	ExprBase
}

// Continue skips to the next iteration of the enclosing loop.
type Continue struct {
	ExprBase
}
