package typing

import (
	"math/big"
	"sync/atomic"
)

// Type represents a Bit data type.  Types form a cyclic graph in general: all
// recursive operations over types guard against re-entering a node they are
// already processing.  Types are immutable once constructed and may be freely
// shared between many owners.
type Type interface {
	// Repr returns the representative string for this type.
	Repr() string

	// repr returns the representative string using the given printer so that
	// cyclic references can be detected.
	repr(p *printer) string

	// equals returns whether this type is structurally equal to other. Inner
	// types must be compared through the comparer.
	equals(other Type, c *comparer) bool

	// hash computes the structural hash of the type. Inner types must be
	// hashed through the hasher.
	hash(h *hasher) uint64
}

// -----------------------------------------------------------------------------

// PrimitiveType represents one of the field-less built-in types.
type PrimitiveType int

// Enumeration of primitive types.
const (
	Any PrimitiveType = iota
	Never
	Integer
)

func (pt PrimitiveType) Repr() string {
	return pt.repr(nil)
}

func (pt PrimitiveType) repr(*printer) string {
	switch pt {
	case Any:
		return "Any"
	case Never:
		return "Never"
	default:
		return "Integer"
	}
}

func (pt PrimitiveType) equals(other Type, _ *comparer) bool {
	opt, ok := other.(PrimitiveType)
	return ok && pt == opt
}

func (pt PrimitiveType) hash(*hasher) uint64 {
	return uint64(pt) + 1
}

// -----------------------------------------------------------------------------

// NominalType is an opaque named type.  Nominal types are compared by name.
type NominalType struct {
	Name string
}

// NewNominal creates a new nominal type.
func NewNominal(name string) *NominalType {
	return &NominalType{Name: name}
}

// The built-in nominal singletons.
var (
	None  = NewNominal("None")
	True  = NewNominal("true")
	False = NewNominal("false")
	File  = NewNominal("File")
)

// Boolean is the union of the nominals `true` and `false`.
var Boolean Type

func (nt *NominalType) Repr() string {
	return nt.Name
}

func (nt *NominalType) repr(*printer) string {
	return nt.Name
}

func (nt *NominalType) equals(other Type, _ *comparer) bool {
	ont, ok := other.(*NominalType)
	return ok && nt.Name == ont.Name
}

func (nt *NominalType) hash(*hasher) uint64 {
	return hashString(0x6e6f6d, nt.Name)
}

// -----------------------------------------------------------------------------

// IntegerLiteral is the singleton type of one integer constant.
type IntegerLiteral struct {
	Value *big.Int
}

// NewIntegerLiteral creates an integer literal type from an int64.
func NewIntegerLiteral(v int64) *IntegerLiteral {
	return &IntegerLiteral{Value: big.NewInt(v)}
}

// NewBigIntegerLiteral creates an integer literal type from a big integer.
// The literal takes ownership of v.
func NewBigIntegerLiteral(v *big.Int) *IntegerLiteral {
	return &IntegerLiteral{Value: v}
}

func (il *IntegerLiteral) Repr() string {
	return il.Value.String()
}

func (il *IntegerLiteral) repr(*printer) string {
	return il.Value.String()
}

func (il *IntegerLiteral) equals(other Type, _ *comparer) bool {
	oil, ok := other.(*IntegerLiteral)
	return ok && il.Value.Cmp(oil.Value) == 0
}

func (il *IntegerLiteral) hash(*hasher) uint64 {
	return hashString(0x696e74, il.Value.String())
}

// -----------------------------------------------------------------------------

// StringType is the general string type.  Strings are structural: a string is
// usable wherever a struct its shape extends is expected.  The shape refers
// back to the string type itself.
type StringType struct {
	shape *StructType
}

// String is the general string type.
var String = &StringType{}

// Shape returns the structural shape of strings.
func (st *StringType) Shape() *StructType {
	return st.shape
}

func (st *StringType) Repr() string {
	return "String"
}

func (st *StringType) repr(*printer) string {
	return "String"
}

func (st *StringType) equals(other Type, _ *comparer) bool {
	_, ok := other.(*StringType)
	return ok
}

func (st *StringType) hash(*hasher) uint64 {
	return 0x737472
}

// StringLiteral is the singleton type of one string constant.
type StringLiteral struct {
	Value string
}

// NewStringLiteral creates a new string literal type.
func NewStringLiteral(v string) *StringLiteral {
	return &StringLiteral{Value: v}
}

func (sl *StringLiteral) Repr() string {
	return sl.repr(nil)
}

func (sl *StringLiteral) repr(*printer) string {
	return quote(sl.Value)
}

func (sl *StringLiteral) equals(other Type, _ *comparer) bool {
	osl, ok := other.(*StringLiteral)
	return ok && sl.Value == osl.Value
}

func (sl *StringLiteral) hash(*hasher) uint64 {
	return hashString(0x736c74, sl.Value)
}

// -----------------------------------------------------------------------------

// StructType is a structural record type.  Field order is irrelevant.
type StructType struct {
	Fields map[string]Type
}

// NewStruct creates a new struct type.  The struct takes ownership of fields.
func NewStruct(fields map[string]Type) *StructType {
	if fields == nil {
		fields = make(map[string]Type)
	}

	return &StructType{Fields: fields}
}

func (st *StructType) Repr() string {
	return newPrinter().print(st)
}

func (st *StructType) equals(other Type, c *comparer) bool {
	ost, ok := other.(*StructType)
	if !ok || len(st.Fields) != len(ost.Fields) {
		return false
	}

	for name, ftype := range st.Fields {
		oftype, ok := ost.Fields[name]
		if !ok || !c.equal(ftype, oftype) {
			return false
		}
	}

	return true
}

func (st *StructType) hash(h *hasher) uint64 {
	// Field hashes are summed so the result is independent of map order.
	var sum uint64 = 0x737463
	for name, ftype := range st.Fields {
		sum += mix(hashString(0, name), h.hash(ftype))
	}

	return sum
}

// -----------------------------------------------------------------------------

// UnionType is a normalized union of at least two types.  Use Union to
// construct union types.
type UnionType struct {
	Members []Type
}

func (ut *UnionType) Repr() string {
	return newPrinter().print(ut)
}

func (ut *UnionType) equals(other Type, c *comparer) bool {
	out, ok := other.(*UnionType)
	return ok && sameMembers(ut.Members, out.Members, c)
}

func (ut *UnionType) hash(h *hasher) uint64 {
	return h.hashMembers(0x756e69, ut.Members)
}

// IntersectionType is a normalized intersection of at least two types. Use
// Intersection to construct intersection types.
type IntersectionType struct {
	Members []Type
}

func (it *IntersectionType) Repr() string {
	return newPrinter().print(it)
}

func (it *IntersectionType) equals(other Type, c *comparer) bool {
	oit, ok := other.(*IntersectionType)
	return ok && sameMembers(it.Members, oit.Members, c)
}

func (it *IntersectionType) hash(h *hasher) uint64 {
	return h.hashMembers(0x697378, it.Members)
}

// sameMembers returns whether two member lists contain equal types ignoring
// order.
func sameMembers(a, b []Type, c *comparer) bool {
	if len(a) != len(b) {
		return false
	}

	matched := make([]bool, len(b))
outer:
	for _, am := range a {
		for i, bm := range b {
			if !matched[i] && c.equal(am, bm) {
				matched[i] = true
				continue outer
			}
		}

		return false
	}

	return true
}

// -----------------------------------------------------------------------------

// FuncType represents a function type.
type FuncType struct {
	// The return type of the function.
	ReturnType Type

	// The generic type parameters of the function.
	Generics []*TypeVar

	// The parameter types of the function.
	Params []Type
}

// NewFunc creates a new non-generic function type.
func NewFunc(returnType Type, params ...Type) *FuncType {
	return &FuncType{ReturnType: returnType, Params: params}
}

func (ft *FuncType) Repr() string {
	return newPrinter().print(ft)
}

func (ft *FuncType) equals(other Type, c *comparer) bool {
	oft, ok := other.(*FuncType)
	if !ok || len(ft.Params) != len(oft.Params) || len(ft.Generics) != len(oft.Generics) {
		return false
	}

	for i, gen := range ft.Generics {
		if !c.equal(gen, oft.Generics[i]) {
			return false
		}
	}

	for i, param := range ft.Params {
		if !c.equal(param, oft.Params[i]) {
			return false
		}
	}

	return c.equal(ft.ReturnType, oft.ReturnType)
}

func (ft *FuncType) hash(h *hasher) uint64 {
	sum := mix(0x66756e, h.hash(ft.ReturnType))
	for _, gen := range ft.Generics {
		sum = mix(sum, h.hash(gen))
	}

	for _, param := range ft.Params {
		sum = mix(sum, h.hash(param))
	}

	return sum
}

// -----------------------------------------------------------------------------

// typeVarCounter numbers type variables so they can be hashed by identity.
var typeVarCounter atomic.Uint64

// TypeVar is a placeholder type introduced by a generic declaration.  Two type
// variables are equal only if they are the same variable.
type TypeVar struct {
	// The name of the type variable as it was declared.
	Name string

	// The upper bound of the type variable.
	Bounds Type

	// The unique number of the type variable.
	id uint64
}

// NewTypeVar creates a new type variable with the given bounds.
func NewTypeVar(name string, bounds Type) *TypeVar {
	if bounds == nil {
		bounds = Any
	}

	return &TypeVar{Name: name, Bounds: bounds, id: typeVarCounter.Add(1)}
}

func (tv *TypeVar) Repr() string {
	return newPrinter().print(tv)
}

func (tv *TypeVar) equals(other Type, _ *comparer) bool {
	otv, ok := other.(*TypeVar)
	return ok && tv == otv
}

func (tv *TypeVar) hash(*hasher) uint64 {
	return mix(0x747672, tv.id)
}

// -----------------------------------------------------------------------------

func init() {
	Boolean = Union(True, False)
	String.shape = stringShape(String)
}

// stringShape builds the structural shape of strings:
//
//	[ sequence: () -> [ next: () -> (String | None) ],
//	  size: () -> Integer, get: (Integer) -> String ]
func stringShape(str *StringType) *StructType {
	iterator := NewStruct(map[string]Type{
		"next": NewFunc(Union(str, None)),
	})

	return NewStruct(map[string]Type{
		"sequence": NewFunc(iterator),
		"size":     NewFunc(Integer),
		"get":      NewFunc(str, Integer),
	})
}
