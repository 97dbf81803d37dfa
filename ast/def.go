package ast

// Def represents a declaration.
type Def interface {
	Stmt

	// Names returns the list of names that this definition defines.
	Names() []string
}

func (*VarDef) stmtNode()   {}
func (*FuncDef) stmtNode()  {}
func (*TypeDef) stmtNode()  {}
func (*ClassDef) stmtNode() {}
func (*ImplDef) stmtNode()  {}
func (*Assign) stmtNode()   {}

// -----------------------------------------------------------------------------

// VarDef is a variable (`var`) or value (`val`) declaration.
type VarDef struct {
	ASTBase

	Name string

	// Whether the binding may be reassigned.
	Mutable bool

	// The declared type.  This may be nil if the type is to be inferred.
	Type TypeExpr

	Value Expr
}

func (vd *VarDef) Names() []string {
	return []string{vd.Name}
}

// TypeParam is a generic type parameter or type function parameter.
type TypeParam struct {
	ASTBase

	Name string

	// The upper bound of the parameter.  This may be nil: the bound is Any.
	Bound TypeExpr
}

// Param is a function or constructor parameter.
type Param struct {
	ASTBase

	Name string
	Type TypeExpr
}

// FuncDef is a named function declaration.
type FuncDef struct {
	ASTBase

	Name     string
	Generics []*TypeParam
	Params   []*Param

	// The declared return type.  This may be nil: the return type is None.
	ReturnType TypeExpr

	Body Expr
}

func (fd *FuncDef) Names() []string {
	return []string{fd.Name}
}

// TypeDef is a type declaration: a nominal type (no value), an alias (a value)
// or a type function (parameterized).
type TypeDef struct {
	ASTBase

	Name string

	// Whether the type takes parameters.  A parameterized type with no
	// parameters is still a type function.
	Parameterized bool
	Params        []*TypeParam

	// The aliased type.  If this is nil, the definition declares a new nominal
	// type.
	Value TypeExpr
}

func (td *TypeDef) Names() []string {
	return []string{td.Name}
}

// ClassDef is a class declaration.
type ClassDef struct {
	ASTBase

	Name string

	// The constructor parameters of the class.
	Params []*Param

	Members []*Member
}

// Member is a member of a class.
type Member struct {
	Public bool
	Def    Def
}

func (cd *ClassDef) Names() []string {
	return []string{cd.Name}
}

// ImplDef implements extension functions for a named type.
type ImplDef struct {
	ASTBase

	// The name of the receiver type.
	TypeName string

	Funcs []*FuncDef
}

func (id *ImplDef) Names() []string {
	names := make([]string, len(id.Funcs))
	for i, fn := range id.Funcs {
		names[i] = fn.Name
	}

	return names
}

// -----------------------------------------------------------------------------

// Assign is an assignment to a variable or to a struct field.
type Assign struct {
	ASTBase

	// The assigned location: an Identifier or an Access.
	Target Expr

	Value Expr
}
