package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnion(t *testing.T) {
	assert.Equal(t, Never, Union())
	assert.Equal(t, Any, Union(Integer, Any))
	assertType(t, lit(1), Union(Never, lit(1)))
	assert.Equal(t, Integer, Union(lit(1), Integer, lit(2)))
	assertType(t, Boolean, Union(True, False, True))

	u := Union(lit(1), lit(2))
	require.IsType(t, &UnionType{}, u)
	assert.Len(t, u.(*UnionType).Members, 2)

	// Nested unions are flattened.
	nested := Union(u, Union(lit(3), str("a")))
	require.IsType(t, &UnionType{}, nested)
	assert.Len(t, nested.(*UnionType).Members, 4)
}

func TestIntersection(t *testing.T) {
	assert.Equal(t, Any, Intersection())
	assert.Equal(t, Never, Intersection(Integer, Never))
	assert.Equal(t, Integer, Intersection(Any, Integer))
	assertType(t, lit(1), Intersection(Integer, lit(1)))
	assert.Equal(t, Never, Intersection(lit(1), lit(2)))
	assert.Equal(t, Never, Intersection(Integer, String))
	assert.Equal(t, Never, Intersection(None, NewNominal("Foo")))
	assertType(t, str("a"), Intersection(String, str("a")))

	// Intersection distributes over unions.
	assert.Equal(t, Integer, Intersection(Union(Integer, String), Integer))
	assertType(t, Union(lit(1), lit(2)), Intersection(Union(lit(1), lit(2), str("x")), Integer))
}

func TestIntersectionStructs(t *testing.T) {
	merged := Intersection(
		NewStruct(map[string]Type{"a": Integer}),
		NewStruct(map[string]Type{"b": String}),
	)
	assertType(t, NewStruct(map[string]Type{"a": Integer, "b": String}), merged)

	shared := Intersection(
		NewStruct(map[string]Type{"a": Integer, "b": String}),
		NewStruct(map[string]Type{"a": Union(lit(1), str("x")), "c": None}),
	)
	assertType(t, NewStruct(map[string]Type{"a": lit(1), "b": String, "c": None}), shared)

	conflict := Intersection(
		NewStruct(map[string]Type{"a": lit(1)}),
		NewStruct(map[string]Type{"a": lit(2), "b": String}),
	)
	assert.Equal(t, Never, conflict)

	assert.Equal(t, Never, Intersection(NewStruct(map[string]Type{"a": Integer}), Integer))
}

func TestIntersectionCyclicStructs(t *testing.T) {
	a := NewStruct(nil)
	a.Fields["next"] = a
	a.Fields["x"] = Integer

	b := NewStruct(nil)
	b.Fields["next"] = b
	b.Fields["y"] = String

	merged, ok := Intersection(a, b).(*StructType)
	require.True(t, ok)
	assert.Len(t, merged.Fields, 3)
	assert.Same(t, merged, merged.Fields["next"])
}

func TestNormalForm(t *testing.T) {
	types := sampleTypes()

	for _, a := range types {
		for _, b := range types {
			u := Union(a, b)
			if ut, ok := u.(*UnionType); ok {
				assertNoExtendingMembers(t, ut.Members, func(x, y Type) bool { return Extend(x, y) })
			}

			assertType(t, u, Union(u, u))
			assertType(t, u, Union(u))

			i := Intersection(a, b)
			if it, ok := i.(*IntersectionType); ok {
				assertNoExtendingMembers(t, it.Members, func(x, y Type) bool { return Extend(x, y) })
			}

			assertType(t, i, Intersection(i, i))
		}
	}
}

func assertNoExtendingMembers(t *testing.T, members []Type, extends func(x, y Type) bool) {
	t.Helper()

	for i, x := range members {
		for j, y := range members {
			if i != j {
				assert.False(t, extends(x, y), "member %s extends member %s", x.Repr(), y.Repr())
			}
		}
	}
}
