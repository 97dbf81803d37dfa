package ast

// TypeExpr represents an untyped type expression.
type TypeExpr interface {
	ASTNode

	typeNode()
}

func (*TypeName) typeNode()      {}
func (*TypeBinary) typeNode()    {}
func (*TypeIntLit) typeNode()    {}
func (*TypeStringLit) typeNode() {}
func (*TypeBoolLit) typeNode()   {}
func (*TypeStruct) typeNode()    {}
func (*TypeCall) typeNode()      {}
func (*TypeMatch) typeNode()     {}
func (*TypeFunc) typeNode()      {}

// TypeName is a usage of a named type.
type TypeName struct {
	ASTBase

	Name string
}

// TypeBinary is a binary type operator: union, intersection or arithmetic over
// integer types.
type TypeBinary struct {
	ASTBase

	Op       Oper
	Lhs, Rhs TypeExpr
}

// TypeIntLit is an integer literal type.
type TypeIntLit struct {
	ASTBase

	Value string
}

// TypeStringLit is a string literal type.
type TypeStringLit struct {
	ASTBase

	Value string
}

// TypeBoolLit is a boolean literal type.
type TypeBoolLit struct {
	ASTBase

	Value bool
}

// TypeStruct is a struct type.
type TypeStruct struct {
	ASTBase

	Fields []*TypeField
}

// TypeField is a field of a struct type.
type TypeField struct {
	Name string
	Type TypeExpr
}

// TypeCall is an application of a type function.
type TypeCall struct {
	ASTBase

	Name string
	Args []TypeExpr
}

// TypeMatch is a type-level match whose type is the union of its cases.
type TypeMatch struct {
	ASTBase

	Value TypeExpr
	Cases []*TypeCase
}

// TypeCase is a case of a type-level match.
type TypeCase struct {
	Pattern, Result TypeExpr
}

// TypeFunc is a function type.  ReturnType may be nil: the return type is
// None.
type TypeFunc struct {
	ASTBase

	Generics   []*TypeParam
	Params     []TypeExpr
	ReturnType TypeExpr
}
