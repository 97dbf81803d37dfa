package ast

// Oper is an operator used in the AST.
type Oper int

// Enumeration of operators.
const (
	OpAdd Oper = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
	OpNot
	OpNeg
	OpUnion
	OpIntersect
)

var operNames = []string{"+", "-", "*", "/", "==", "!=", "<", "<=", ">", ">=", "and", "or", "not", "-", "|", "&"}

func (op Oper) String() string {
	return operNames[op]
}

// binaryOpers maps the spelling of each binary operator to its operator.
var binaryOpers = map[string]Oper{
	"+":   OpAdd,
	"-":   OpSub,
	"*":   OpMul,
	"/":   OpDiv,
	"==":  OpEq,
	"!=":  OpNeq,
	"<":   OpLt,
	"<=":  OpLtEq,
	">":   OpGt,
	">=":  OpGtEq,
	"and": OpAnd,
	"or":  OpOr,
	"|":   OpUnion,
	"&":   OpIntersect,
}

// unaryOpers maps the spelling of each unary operator to its operator.
var unaryOpers = map[string]Oper{
	"not": OpNot,
	"-":   OpNeg,
}
