package depm

import (
	"bitc/common"
	"bitc/report"
	"bitc/typing"
)

// Binding is a value visible in an environment.
type Binding struct {
	Symbol common.Symbol
	Type   typing.Type

	// Whether the binding is a variable: ie. it may be reassigned.
	Mutable bool

	// Whether the binding is a refinement of an outer binding.  Refined
	// bindings cannot be assigned to.
	Refined bool
}

// TypeBinding is a named type visible in an environment.
type TypeBinding struct {
	Symbol common.Symbol
	Type   typing.Type
}

// TypeFunc is a parameterized type alias: a function from type arguments to a
// type.
type TypeFunc struct {
	Symbol common.Symbol

	// The number of type arguments the function takes.
	Arity int

	// Apply computes the type for the given arguments.  The number of
	// arguments has already been checked.
	Apply func(args []typing.Type) (typing.Type, error)
}

// Extension is an extension function candidate.
type Extension struct {
	Symbol common.Symbol

	// The type of value the extension is declared on.
	Receiver typing.Type

	// The signature of the extension, not counting the receiver.
	Type *typing.FuncType
}

// -----------------------------------------------------------------------------

// Environment is one lexical scope of a program being resolved.  It owns one
// symbol table for each namespace, each chained to the corresponding table of
// the parent environment.
type Environment struct {
	parent *Environment

	values       *SymbolTable[*Binding]
	types        *SymbolTable[*TypeBinding]
	typeFuncs    *SymbolTable[*TypeFunc]
	constructors *SymbolTable[*Binding]
	extensions   *SymbolTable[[]*Extension]

	// The slot allocator shared by the whole environment tree.
	slots *SlotAllocator
}

// NewEnvironment creates a new root environment allocating slots from slots.
func NewEnvironment(slots *SlotAllocator) *Environment {
	return &Environment{
		values:       NewSymbolTable[*Binding](nil),
		types:        NewSymbolTable[*TypeBinding](nil),
		typeFuncs:    NewSymbolTable[*TypeFunc](nil),
		constructors: NewSymbolTable[*Binding](nil),
		extensions:   NewSymbolTable[[]*Extension](nil),
		slots:        slots,
	}
}

// Child creates a new environment nested inside env.
func (env *Environment) Child() *Environment {
	return &Environment{
		parent:       env,
		values:       NewSymbolTable(env.values),
		types:        NewSymbolTable(env.types),
		typeFuncs:    NewSymbolTable(env.typeFuncs),
		constructors: NewSymbolTable(env.constructors),
		extensions:   NewSymbolTable(env.extensions),
		slots:        env.slots,
	}
}

// WithParent returns a copy of the local declarations of env chained to
// parent.  This is used to make the declarations of an imported package
// visible in the importing package.
func (env *Environment) WithParent(parent *Environment) *Environment {
	return &Environment{
		parent:       parent,
		values:       env.values.WithParent(parent.values),
		types:        env.types.WithParent(parent.types),
		typeFuncs:    env.typeFuncs.WithParent(parent.typeFuncs),
		constructors: env.constructors.WithParent(parent.constructors),
		extensions:   env.extensions.WithParent(parent.extensions),
		slots:        parent.slots,
	}
}

// Parent returns the enclosing environment or nil.
func (env *Environment) Parent() *Environment {
	return env.parent
}

// Slots returns the slot allocator of the environment.
func (env *Environment) Slots() *SlotAllocator {
	return env.slots
}

// -----------------------------------------------------------------------------

// DeclareVariable declares a reassignable value binding.
func (env *Environment) DeclareVariable(name string, typ typing.Type) (common.Symbol, error) {
	return env.declareValue(name, typ, true)
}

// DeclareValue declares a constant value binding.
func (env *Environment) DeclareValue(name string, typ typing.Type) (common.Symbol, error) {
	return env.declareValue(name, typ, false)
}

func (env *Environment) declareValue(name string, typ typing.Type, mutable bool) (common.Symbol, error) {
	if _, ok := env.values.Local(name); ok {
		return common.Symbol{}, report.Errorf(report.DuplicateDeclaration, "multiple values named `%s` declared in the same scope", name)
	}

	sym := common.Symbol{Name: name, ID: env.slots.NextValue()}
	env.values.Declare(name, &Binding{Symbol: sym, Type: typ, Mutable: mutable})
	return sym, nil
}

// LookupValue looks up a value binding by name.
func (env *Environment) LookupValue(name string) (*Binding, error) {
	if binding, ok := env.values.Resolve(name); ok {
		return binding, nil
	}

	return nil, report.Errorf(report.UndeclaredName, "undeclared value: `%s`", name)
}

// LookupVariable looks up a binding which can be assigned to.
func (env *Environment) LookupVariable(name string) (*Binding, error) {
	binding, err := env.LookupValue(name)
	if err != nil {
		return nil, err
	}

	if binding.Refined {
		return nil, report.Errorf(report.NotAssignable, "cannot assign to `%s`: its type has been narrowed in this scope", name)
	} else if !binding.Mutable {
		return nil, report.Errorf(report.NotAssignable, "cannot assign to `%s`: it is not a variable", name)
	}

	return binding, nil
}

// Values returns the value bindings declared directly in this environment in
// declaration order.
func (env *Environment) Values() []*Binding {
	bindings := make([]*Binding, 0, len(env.values.Names()))
	for _, name := range env.values.Names() {
		binding, _ := env.values.Local(name)
		bindings = append(bindings, binding)
	}

	return bindings
}

// -----------------------------------------------------------------------------

// DeclareType declares a named type.
func (env *Environment) DeclareType(name string, typ typing.Type) (common.Symbol, error) {
	if _, ok := env.types.Local(name); ok {
		return common.Symbol{}, report.Errorf(report.DuplicateDeclaration, "multiple types named `%s` declared in the same scope", name)
	}

	sym := common.Symbol{Name: name, ID: env.slots.NextType()}
	env.types.Declare(name, &TypeBinding{Symbol: sym, Type: typ})
	return sym, nil
}

// LookupType looks up a named type.
func (env *Environment) LookupType(name string) (*TypeBinding, error) {
	if binding, ok := env.types.Resolve(name); ok {
		return binding, nil
	}

	return nil, report.Errorf(report.UndeclaredName, "undeclared type: `%s`", name)
}

// DeclareTypeFunc declares a parameterized type alias.
func (env *Environment) DeclareTypeFunc(name string, arity int, apply func([]typing.Type) (typing.Type, error)) (common.Symbol, error) {
	if _, ok := env.typeFuncs.Local(name); ok {
		return common.Symbol{}, report.Errorf(report.DuplicateDeclaration, "multiple type functions named `%s` declared in the same scope", name)
	}

	sym := common.Symbol{Name: name, ID: env.slots.NextType()}
	env.typeFuncs.Declare(name, &TypeFunc{Symbol: sym, Arity: arity, Apply: apply})
	return sym, nil
}

// LookupTypeFunc looks up a parameterized type alias.
func (env *Environment) LookupTypeFunc(name string) (*TypeFunc, error) {
	if tf, ok := env.typeFuncs.Resolve(name); ok {
		return tf, nil
	}

	return nil, report.Errorf(report.UndeclaredName, "undeclared type function: `%s`", name)
}

// DeclareConstructor declares the constructor of a class.
func (env *Environment) DeclareConstructor(name string, typ *typing.FuncType) (common.Symbol, error) {
	if _, ok := env.constructors.Local(name); ok {
		return common.Symbol{}, report.Errorf(report.DuplicateDeclaration, "multiple classes named `%s` declared in the same scope", name)
	}

	sym := common.Symbol{Name: name, ID: env.slots.NextValue()}
	env.constructors.Declare(name, &Binding{Symbol: sym, Type: typ})
	return sym, nil
}

// LookupConstructor looks up the constructor of a class.
func (env *Environment) LookupConstructor(name string) (*Binding, error) {
	if binding, ok := env.constructors.Resolve(name); ok {
		return binding, nil
	}

	return nil, report.Errorf(report.NotConstructor, "`%s` is not a class", name)
}

// DeclareExtension declares an extension function on receiver.  Many
// extensions may share a name.
func (env *Environment) DeclareExtension(name string, receiver typing.Type, typ *typing.FuncType) (common.Symbol, error) {
	sym := common.Symbol{Name: name, ID: env.slots.NextValue()}

	local, _ := env.extensions.Local(name)
	env.extensions.Shadow(name, append(local, &Extension{Symbol: sym, Receiver: receiver, Type: typ}))
	return sym, nil
}

// LookupExtensions returns every visible extension candidate by name.
func (env *Environment) LookupExtensions(name string) []*Extension {
	var candidates []*Extension
	for _, local := range env.extensions.ResolveAll(name) {
		candidates = append(candidates, local...)
	}

	return candidates
}

// -----------------------------------------------------------------------------

// Refine narrows the type of the value bound to sym within this environment to
// its intersection with typ.  The binding is shadowed locally: the enclosing
// environments are unaffected.  Refine does nothing if sym is no longer the
// binding visible by its name.
func (env *Environment) Refine(sym common.Symbol, typ typing.Type) {
	binding, ok := env.values.Resolve(sym.Name)
	if !ok || binding.Symbol != sym {
		return
	}

	env.values.Shadow(sym.Name, &Binding{
		Symbol:  sym,
		Type:    typing.Intersection(binding.Type, typ),
		Mutable: binding.Mutable,
		Refined: true,
	})
}

// -----------------------------------------------------------------------------

// Declares returns whether env declares anything by name in any namespace.
// Only the local declarations are considered.
func (env *Environment) Declares(name string) bool {
	if _, ok := env.values.Local(name); ok {
		return true
	} else if _, ok := env.types.Local(name); ok {
		return true
	} else if _, ok := env.typeFuncs.Local(name); ok {
		return true
	} else if _, ok := env.constructors.Local(name); ok {
		return true
	}

	_, ok := env.extensions.Local(name)
	return ok
}

// Export returns a parentless environment containing the local declarations
// of env whose names are selected.
func (env *Environment) Export(selects func(name string) bool) *Environment {
	exported := NewEnvironment(env.slots)
	exportTable(env.values, exported.values, selects)
	exportTable(env.types, exported.types, selects)
	exportTable(env.typeFuncs, exported.typeFuncs, selects)
	exportTable(env.constructors, exported.constructors, selects)
	exportTable(env.extensions, exported.extensions, selects)
	return exported
}

// exportTable copies the selected local entries of src into dest.
func exportTable[T any](src, dest *SymbolTable[T], selects func(string) bool) {
	for _, name := range src.Names() {
		if selects(name) {
			entry, _ := src.Local(name)
			dest.Shadow(name, entry)
		}
	}
}
