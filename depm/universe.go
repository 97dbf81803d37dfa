package depm

import (
	"bitc/typing"
)

// BuiltinKind classifies a built-in declaration.
type BuiltinKind int

// Enumeration of built-in kinds.
const (
	BuiltinValue BuiltinKind = iota
	BuiltinExtension
	BuiltinType
)

func (bk BuiltinKind) String() string {
	switch bk {
	case BuiltinValue:
		return "value"
	case BuiltinExtension:
		return "extension"
	default:
		return "type"
	}
}

// Builtin is a declaration which is part of every program's universe.  The
// interpreter recognizes built-ins by their name and slot.
type Builtin struct {
	Name string
	Kind BuiltinKind

	// The type of the built-in.  For extensions, this is the signature not
	// counting the receiver.
	Type typing.Type

	// The receiver of an extension built-in.
	Receiver typing.Type
}

// Builtins is the table of built-in declarations in the order they are
// declared.  Value built-ins and extensions take value slots in order; type
// built-ins take type slots in order.  This order must not change: the
// interpreter relies upon it.
var Builtins = []*Builtin{
	{Name: "__read_stdin", Kind: BuiltinValue, Type: typing.NewFunc(typing.String)},
	{Name: "__write_stdout", Kind: BuiltinValue, Type: typing.NewFunc(typing.None, typing.String)},
	{Name: "__file_open_read", Kind: BuiltinValue, Type: typing.NewFunc(typing.File, typing.String)},
	{Name: "__file_open_write", Kind: BuiltinValue, Type: typing.NewFunc(typing.File, typing.String)},
	{Name: "__file_close", Kind: BuiltinValue, Type: typing.NewFunc(typing.None, typing.File)},
	{Name: "__file_read", Kind: BuiltinValue, Type: typing.NewFunc(typing.String, typing.File)},
	{Name: "__file_write", Kind: BuiltinValue, Type: typing.NewFunc(typing.None, typing.File, typing.String)},
	{Name: "print", Kind: BuiltinValue, Type: typing.NewFunc(typing.None, typing.Any)},
	{Name: "None", Kind: BuiltinValue, Type: typing.None},
	{Name: "toString", Kind: BuiltinExtension, Type: typing.NewFunc(typing.String), Receiver: typing.Integer},

	{Name: "Any", Kind: BuiltinType, Type: typing.Any},
	{Name: "Never", Kind: BuiltinType, Type: typing.Never},
	{Name: "Integer", Kind: BuiltinType, Type: typing.Integer},
	{Name: "Boolean", Kind: BuiltinType, Type: typing.Boolean},
	{Name: "String", Kind: BuiltinType, Type: typing.String},
	{Name: "None", Kind: BuiltinType, Type: typing.None},
	{Name: "File", Kind: BuiltinType, Type: typing.File},
}

// NewUniverse creates the root environment of a program pre-seeded with all
// the built-ins.  All environments of the program must allocate from slots.
func NewUniverse(slots *SlotAllocator) *Environment {
	env := NewEnvironment(slots)

	for _, builtin := range Builtins {
		var err error
		switch builtin.Kind {
		case BuiltinValue:
			_, err = env.DeclareValue(builtin.Name, builtin.Type)
		case BuiltinExtension:
			_, err = env.DeclareExtension(builtin.Name, builtin.Receiver, builtin.Type.(*typing.FuncType))
		case BuiltinType:
			_, err = env.DeclareType(builtin.Name, builtin.Type)
		}

		if err != nil {
			// the built-in table is malformed
			panic(err)
		}
	}

	return env
}
