package ast

// Expr represents an untyped expression.
type Expr interface {
	Stmt

	exprNode()
}

func (*Identifier) exprNode() {}
func (*Call) exprNode()       {}
func (*Block) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*BinaryOp) exprNode()   {}
func (*UnaryOp) exprNode()    {}
func (*If) exprNode()         {}
func (*While) exprNode()      {}
func (*As) exprNode()         {}
func (*Is) exprNode()         {}
func (*StructLit) exprNode()  {}
func (*Access) exprNode()     {}
func (*FuncLit) exprNode()    {}
func (*New) exprNode()        {}
func (*Return) exprNode()     {}
func (*Break) exprNode()      {}
func (*Continue) exprNode()   {}

func (*Identifier) stmtNode() {}
func (*Call) stmtNode()       {}
func (*Block) stmtNode()      {}
func (*IntLit) stmtNode()     {}
func (*StringLit) stmtNode()  {}
func (*BoolLit) stmtNode()    {}
func (*BinaryOp) stmtNode()   {}
func (*UnaryOp) stmtNode()    {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*As) stmtNode()         {}
func (*Is) stmtNode()         {}
func (*StructLit) stmtNode()  {}
func (*Access) stmtNode()     {}
func (*FuncLit) stmtNode()    {}
func (*New) stmtNode()        {}
func (*Return) stmtNode()     {}
func (*Break) stmtNode()      {}
func (*Continue) stmtNode()   {}

// -----------------------------------------------------------------------------

// Identifier is a usage of a named value.
type Identifier struct {
	ASTBase

	Name string
}

// Call is a function call.
type Call struct {
	ASTBase

	Func Expr

	// The explicit generic arguments.  If these are omitted, they are inferred
	// from the arguments.
	Generics []TypeExpr

	Args []Expr
}

// Block is a sequence of statements evaluating to its last expression.
type Block struct {
	ASTBase

	Stmts []Stmt
}

// IntLit is an integer literal.  The value is stored as its decimal text so
// that it has arbitrary precision.
type IntLit struct {
	ASTBase

	Value string
}

// StringLit is a string literal.
type StringLit struct {
	ASTBase

	Value string
}

// BoolLit is a boolean literal.
type BoolLit struct {
	ASTBase

	Value bool
}

// BinaryOp is a binary operator application.
type BinaryOp struct {
	ASTBase

	Op       Oper
	Lhs, Rhs Expr
}

// UnaryOp is a unary operator application.
type UnaryOp struct {
	ASTBase

	Op      Oper
	Operand Expr
}

// If is an if expression.  Else may be nil.
type If struct {
	ASTBase

	Cond, Then, Else Expr
}

// While is a while loop.
type While struct {
	ASTBase

	Cond, Body Expr
}

// As is a type cast.
type As struct {
	ASTBase

	Expr Expr
	Type TypeExpr
}

// Is is a type test.
type Is struct {
	ASTBase

	Expr Expr
	Type TypeExpr
}

// StructLit is a struct literal.
type StructLit struct {
	ASTBase

	Fields []*FieldInit
}

// FieldInit is one field of a struct literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// Access is a field access.
type Access struct {
	ASTBase

	Expr  Expr
	Field string
}

// FuncLit is an anonymous function.
type FuncLit struct {
	ASTBase

	Generics   []*TypeParam
	Params     []*Param
	ReturnType TypeExpr
	Body       Expr
}

// New is an instantiation of a class.
type New struct {
	ASTBase

	TypeName string
	Args     []Expr
}

// Return is a return expression.  Value may be nil.
type Return struct {
	ASTBase

	Value Expr
}

// Break exits the enclosing loop.
type Break struct {
	ASTBase
}

// Continue skips to the next iteration of the enclosing loop.
type Continue struct {
	ASTBase
}
