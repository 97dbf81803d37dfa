package depm

import (
	"bitc/report"
	"bitc/typing"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentValues(t *testing.T) {
	env := NewEnvironment(NewSlotAllocator())

	x, err := env.DeclareVariable("x", typing.Integer)
	require.NoError(t, err)
	y, err := env.DeclareValue("y", typing.String)
	require.NoError(t, err)
	assert.Equal(t, 0, x.ID)
	assert.Equal(t, 1, y.ID)

	_, err = env.DeclareValue("x", typing.String)
	assert.True(t, report.IsKind(err, report.DuplicateDeclaration))

	child := env.Child()
	shadow, err := child.DeclareValue("x", typing.String)
	require.NoError(t, err)
	assert.Equal(t, 2, shadow.ID)

	binding, err := child.LookupValue("x")
	require.NoError(t, err)
	assert.Equal(t, shadow, binding.Symbol)

	binding, err = env.LookupVariable("x")
	require.NoError(t, err)
	assert.Equal(t, x, binding.Symbol)

	_, err = env.LookupVariable("y")
	assert.True(t, report.IsKind(err, report.NotAssignable))

	_, err = child.LookupValue("z")
	assert.True(t, report.IsKind(err, report.UndeclaredName))

	assert.Len(t, env.Values(), 2)
	assert.Len(t, child.Values(), 1)
}

func TestEnvironmentTypes(t *testing.T) {
	env := NewEnvironment(NewSlotAllocator())

	sym, err := env.DeclareType("Foo", typing.NewNominal("Foo"))
	require.NoError(t, err)
	assert.Equal(t, 0, sym.ID)

	// types and values live in different namespaces
	_, err = env.DeclareValue("Foo", typing.Integer)
	require.NoError(t, err)

	_, err = env.DeclareType("Foo", typing.Integer)
	assert.True(t, report.IsKind(err, report.DuplicateDeclaration))

	tb, err := env.Child().LookupType("Foo")
	require.NoError(t, err)
	assert.Equal(t, "Foo", tb.Type.Repr())

	_, err = env.LookupType("Bar")
	assert.True(t, report.IsKind(err, report.UndeclaredName))

	_, err = env.DeclareTypeFunc("Pair", 2, func(args []typing.Type) (typing.Type, error) {
		return typing.NewStruct(map[string]typing.Type{"a": args[0], "b": args[1]}), nil
	})
	require.NoError(t, err)

	tf, err := env.LookupTypeFunc("Pair")
	require.NoError(t, err)
	assert.Equal(t, 2, tf.Arity)

	pair, err := tf.Apply([]typing.Type{typing.Integer, typing.String})
	require.NoError(t, err)
	assert.Equal(t, "[ a: Integer, b: String ]", pair.Repr())

	_, err = env.LookupTypeFunc("Foo")
	assert.True(t, report.IsKind(err, report.UndeclaredName))
}

func TestEnvironmentConstructors(t *testing.T) {
	env := NewEnvironment(NewSlotAllocator())
	ctor := typing.NewFunc(typing.NewStruct(nil), typing.Integer)

	_, err := env.DeclareConstructor("Point", ctor)
	require.NoError(t, err)

	binding, err := env.Child().LookupConstructor("Point")
	require.NoError(t, err)
	assert.Same(t, ctor, binding.Type)

	_, err = env.LookupConstructor("Line")
	assert.True(t, report.IsKind(err, report.NotConstructor))

	_, err = env.DeclareConstructor("Point", ctor)
	assert.True(t, report.IsKind(err, report.DuplicateDeclaration))
}

func TestEnvironmentExtensions(t *testing.T) {
	env := NewEnvironment(NewSlotAllocator())
	sig := typing.NewFunc(typing.Integer)

	_, err := env.DeclareExtension("area", typing.Integer, sig)
	require.NoError(t, err)
	_, err = env.DeclareExtension("area", typing.String, sig)
	require.NoError(t, err)

	child := env.Child()
	_, err = child.DeclareExtension("area", typing.None, sig)
	require.NoError(t, err)

	assert.Len(t, env.LookupExtensions("area"), 2)
	assert.Len(t, child.LookupExtensions("area"), 3)
	assert.Empty(t, child.LookupExtensions("perimeter"))

	// innermost candidates come first
	assert.Equal(t, typing.None, child.LookupExtensions("area")[0].Receiver)
}

func TestEnvironmentRefine(t *testing.T) {
	env := NewEnvironment(NewSlotAllocator())
	xType := typing.Union(typing.Integer, typing.String)
	x, err := env.DeclareVariable("x", xType)
	require.NoError(t, err)

	then := env.Child()
	then.Refine(x, typing.Integer)

	binding, err := then.LookupValue("x")
	require.NoError(t, err)
	assert.Equal(t, typing.Integer, binding.Type)
	assert.Equal(t, x, binding.Symbol)
	assert.True(t, typing.Extend(binding.Type, xType))

	// the outer binding is untouched
	binding, err = env.LookupValue("x")
	require.NoError(t, err)
	assert.Same(t, xType, binding.Type)

	_, err = then.LookupVariable("x")
	assert.True(t, report.IsKind(err, report.NotAssignable))

	// refinements compose by intersection
	then.Refine(x, typing.NewIntegerLiteral(4))
	binding, _ = then.LookupValue("x")
	assert.Equal(t, "4", binding.Type.Repr())

	// a refinement of a shadowed symbol does nothing
	inner := then.Child()
	_, err = inner.DeclareValue("x", typing.String)
	require.NoError(t, err)
	inner.Refine(x, typing.Never)
	binding, _ = inner.LookupValue("x")
	assert.Equal(t, typing.String, binding.Type)
}

func TestRefineNarrows(t *testing.T) {
	types := []typing.Type{
		typing.Integer,
		typing.String,
		typing.Boolean,
		typing.Union(typing.Integer, typing.None),
		typing.NewIntegerLiteral(2),
		typing.NewStruct(map[string]typing.Type{"a": typing.Integer}),
	}

	for _, declared := range types {
		for _, refinement := range types {
			env := NewEnvironment(NewSlotAllocator())
			sym, err := env.DeclareValue("v", declared)
			require.NoError(t, err)

			env.Refine(sym, refinement)
			binding, err := env.LookupValue("v")
			require.NoError(t, err)

			assert.True(
				t,
				typing.Extend(binding.Type, declared),
				"refining %s by %s gave %s", declared.Repr(), refinement.Repr(), binding.Type.Repr(),
			)
		}
	}
}

func TestWithParent(t *testing.T) {
	slots := NewSlotAllocator()
	pkg := NewUniverse(slots).Child()
	_, err := pkg.DeclareValue("helper", typing.Integer)
	require.NoError(t, err)

	importer := NewUniverse(slots).Child()
	visible := pkg.WithParent(importer)

	binding, err := visible.LookupValue("helper")
	require.NoError(t, err)
	assert.Equal(t, typing.Integer, binding.Type)

	_, err = visible.LookupValue("print")
	assert.NoError(t, err)
	assert.Same(t, slots, visible.Slots())
}

func TestExport(t *testing.T) {
	env := NewEnvironment(NewSlotAllocator())

	_, err := env.DeclareValue("a", typing.Integer)
	require.NoError(t, err)
	_, err = env.DeclareValue("b", typing.String)
	require.NoError(t, err)
	_, err = env.DeclareType("T", typing.Integer)
	require.NoError(t, err)
	_, err = env.DeclareExtension("size", typing.String, typing.NewFunc(typing.Integer))
	require.NoError(t, err)

	child := env.Child()
	_, err = child.DeclareValue("c", typing.Integer)
	require.NoError(t, err)

	assert.True(t, env.Declares("a"))
	assert.True(t, env.Declares("T"))
	assert.True(t, env.Declares("size"))
	assert.False(t, env.Declares("c"))
	assert.False(t, child.Declares("a"))

	exported := env.Export(func(name string) bool { return name != "b" })
	assert.Nil(t, exported.Parent())

	_, err = exported.LookupValue("a")
	assert.NoError(t, err)
	_, err = exported.LookupValue("b")
	assert.True(t, report.IsKind(err, report.UndeclaredName))
	_, err = exported.LookupType("T")
	assert.NoError(t, err)
	assert.Len(t, exported.LookupExtensions("size"), 1)

	// only local declarations are exported
	_, err = child.Export(func(string) bool { return true }).LookupValue("a")
	assert.True(t, report.IsKind(err, report.UndeclaredName))
}
