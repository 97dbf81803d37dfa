package sem

import (
	"bitc/common"
	"bitc/report"
	"bitc/typing"
)

// VarDef is a resolved variable or value declaration.
type VarDef struct {
	nodeBase

	Symbol  common.Symbol
	Mutable bool

	// The type the symbol was declared with.
	Type typing.Type

	Value Expr
}

// NewVarDef creates a new resolved variable declaration.
func NewVarDef(span *report.TextSpan, sym common.Symbol, mutable bool, typ typing.Type, value Expr) *VarDef {
	return &VarDef{nodeBase: nodeBase{span}, Symbol: sym, Mutable: mutable, Type: typ, Value: value}
}

func (vd *VarDef) Symbols() []common.Symbol {
	return []common.Symbol{vd.Symbol}
}

// FuncDef is a resolved named function.
type FuncDef struct {
	nodeBase

	Symbol common.Symbol

	// The signature of the function.
	Type *typing.FuncType

	// The symbols of the parameters of the function.
	Params []common.Symbol

	Body Expr
}

// NewFuncDef creates a new resolved function definition.
func NewFuncDef(span *report.TextSpan, sym common.Symbol, typ *typing.FuncType, params []common.Symbol, body Expr) *FuncDef {
	return &FuncDef{nodeBase: nodeBase{span}, Symbol: sym, Type: typ, Params: params, Body: body}
}

func (fd *FuncDef) Symbols() []common.Symbol {
	return []common.Symbol{fd.Symbol}
}

// TypeDef is a resolved type declaration.
type TypeDef struct {
	nodeBase

	// The type symbol of the declaration.
	TypeSymbol common.Symbol

	// The value symbol of the declaration.  Nominal types and aliases are
	// also values; type functions are not, in which case this is nil.
	ValueSymbol *common.Symbol

	// The declared type.  This is nil for type functions.
	Type typing.Type
}

// NewTypeDef creates a new resolved type definition.
func NewTypeDef(span *report.TextSpan, typeSym common.Symbol, valueSym *common.Symbol, typ typing.Type) *TypeDef {
	return &TypeDef{nodeBase: nodeBase{span}, TypeSymbol: typeSym, ValueSymbol: valueSym, Type: typ}
}

func (td *TypeDef) Symbols() []common.Symbol {
	if td.ValueSymbol == nil {
		return nil
	}

	return []common.Symbol{*td.ValueSymbol}
}

// ClassDef is a resolved class.
type ClassDef struct {
	nodeBase

	// The symbol of the class type.
	TypeSymbol common.Symbol

	// The symbol of the constructor.
	Constructor common.Symbol

	// The type of the constructor: it returns the public type of the class.
	Type *typing.FuncType

	// The symbols of the constructor parameters.
	Params []common.Symbol

	// The symbol of `this` within the methods of the class.
	This common.Symbol

	// The type of `this`: the struct of all the members of the class.
	ThisType *typing.StructType

	Members []*Member
}

// Member is a resolved class member.
type Member struct {
	Public bool
	Def    Def
}

// NewClassDef creates a new resolved class.
func NewClassDef(span *report.TextSpan, typeSym, ctor common.Symbol, typ *typing.FuncType, params []common.Symbol, this common.Symbol, thisType *typing.StructType, members []*Member) *ClassDef {
	return &ClassDef{
		nodeBase:    nodeBase{span},
		TypeSymbol:  typeSym,
		Constructor: ctor,
		Type:        typ,
		Params:      params,
		This:        this,
		ThisType:    thisType,
		Members:     members,
	}
}

func (cd *ClassDef) Symbols() []common.Symbol {
	return []common.Symbol{cd.Constructor}
}

// ImplDef is a resolved implementation block.
type ImplDef struct {
	nodeBase

	// The receiver of all the extensions.
	Receiver typing.Type

	Funcs []*ExtensionDef
}

// ExtensionDef is a resolved extension function.
type ExtensionDef struct {
	FuncDef

	// The symbol the receiver is bound to within the body.
	This common.Symbol
}

// NewImplDef creates a new resolved implementation block.
func NewImplDef(span *report.TextSpan, receiver typing.Type, funcs []*ExtensionDef) *ImplDef {
	return &ImplDef{nodeBase: nodeBase{span}, Receiver: receiver, Funcs: funcs}
}

func (id *ImplDef) Symbols() []common.Symbol {
	syms := make([]common.Symbol, len(id.Funcs))
	for i, fn := range id.Funcs {
		syms[i] = fn.Symbol
	}

	return syms
}

// -----------------------------------------------------------------------------

// Assign is a resolved assignment.
type Assign struct {
	nodeBase

	// The assigned location: an Identifier or an Access.
	Target Expr

	Value Expr
}

// NewAssign creates a new resolved assignment.
func NewAssign(span *report.TextSpan, target, value Expr) *Assign {
	return &Assign{nodeBase: nodeBase{span}, Target: target, Value: value}
}
