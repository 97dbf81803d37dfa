package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertType asserts that two types are structurally equal.
func assertType(t *testing.T, expected, actual Type) {
	t.Helper()
	assert.True(t, Equals(expected, actual), "expected %s but got %s", expected.Repr(), actual.Repr())
}

func TestEquals(t *testing.T) {
	tv := NewTypeVar("T", Any)

	assert.True(t, Equals(lit(3), lit(3)))
	assert.False(t, Equals(lit(3), lit(4)))
	assert.True(t, Equals(Union(lit(1), lit(2)), Union(lit(2), lit(1))))
	assert.True(t, Equals(
		NewStruct(map[string]Type{"a": Integer, "b": String}),
		NewStruct(map[string]Type{"b": String, "a": Integer}),
	))
	assert.False(t, Equals(NewStruct(map[string]Type{"a": Integer}), NewStruct(nil)))
	assert.True(t, Equals(tv, tv))
	assert.False(t, Equals(tv, NewTypeVar("T", Any)))
	assert.True(t, Equals(NewFunc(None, tv), NewFunc(None, tv)))
}

func TestEqualsCyclic(t *testing.T) {
	a := NewStruct(nil)
	a.Fields["self"] = a

	b := NewStruct(nil)
	b.Fields["self"] = b

	assert.True(t, Equals(a, b))
	assert.Equal(t, Hash(a), Hash(b))
	assert.True(t, Equals(String.Shape(), String.Shape()))
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash(lit(42)), Hash(lit(42)))
	assert.Equal(t, Hash(Union(lit(1), str("a"))), Hash(Union(str("a"), lit(1))))
	assert.NotEqual(t, Hash(lit(1)), Hash(lit(2)))
	assert.NotEqual(t, Hash(NewTypeVar("T", Any)), Hash(NewTypeVar("T", Any)))

	// Terminates on cyclic types.
	Hash(String.Shape())
}

func TestRepr(t *testing.T) {
	tv := NewTypeVar("T", Integer)
	cyclic := NewStruct(nil)
	cyclic.Fields["self"] = cyclic

	cases := []struct {
		typ      Type
		expected string
	}{
		{Any, "Any"},
		{Never, "Never"},
		{Integer, "Integer"},
		{String, "String"},
		{lit(-7), "-7"},
		{str("hi"), `"hi"`},
		{Boolean, "(true | false)"},
		{NewStruct(map[string]Type{"b": String, "a": Integer}), "[ a: Integer, b: String ]"},
		{NewStruct(nil), "[]"},
		{Intersection(NewFunc(None, Integer), NewFunc(Integer)), "((Integer) -> None & () -> Integer)"},
		{&FuncType{ReturnType: tv, Generics: []*TypeVar{tv}, Params: []Type{tv}}, "<T: Integer>(T) -> T"},
		{cyclic, "[ self: ... ]"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.typ.Repr())
	}

	assert.Contains(t, String.Shape().Repr(), "next: () -> (String | None)")
}
