package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWiden(t *testing.T) {
	assert.Equal(t, Integer, Widen(lit(3)))
	assert.Equal(t, Type(String), Widen(str("a")))
	assertType(t, Boolean, Widen(True))
	assertType(t, Union(Integer, String), Widen(Union(lit(1), lit(2), str("x"))))
	assert.Equal(t, Type(None), Widen(None))

	nested := NewStruct(map[string]Type{
		"x": lit(1),
		"y": NewStruct(map[string]Type{"z": str("a"), "w": True}),
	})
	assertType(t, NewStruct(map[string]Type{
		"x": Integer,
		"y": NewStruct(map[string]Type{"z": String, "w": Boolean}),
	}), Widen(nested))

	cyclic := NewStruct(nil)
	cyclic.Fields["next"] = cyclic
	cyclic.Fields["value"] = lit(2)

	widened, ok := Widen(cyclic).(*StructType)
	require.True(t, ok)
	assert.Equal(t, Type(Integer), widened.Fields["value"])
	assert.Same(t, widened, widened.Fields["next"])
	assertType(t, String.Shape(), Widen(String.Shape()))
}

func TestFieldOf(t *testing.T) {
	a := NewStruct(map[string]Type{"x": lit(1), "y": String})
	b := NewStruct(map[string]Type{"x": lit(2)})

	ftype, ok := FieldOf(a, "y")
	require.True(t, ok)
	assert.Equal(t, Type(String), ftype)

	ftype, ok = FieldOf(Union(a, b), "x")
	require.True(t, ok)
	assertType(t, Union(lit(1), lit(2)), ftype)

	_, ok = FieldOf(Union(a, b), "y")
	assert.False(t, ok)

	ftype, ok = FieldOf(str("abc"), "size")
	require.True(t, ok)
	assertType(t, NewFunc(Integer), ftype)

	_, ok = FieldOf(Integer, "x")
	assert.False(t, ok)
}
