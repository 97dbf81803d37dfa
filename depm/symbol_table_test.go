package depm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTableShadowing(t *testing.T) {
	outer := NewSymbolTable[int](nil)
	require.True(t, outer.Declare("x", 1))
	require.False(t, outer.Declare("x", 2))

	inner := NewSymbolTable(outer)
	require.True(t, inner.Declare("x", 3))

	v, ok := inner.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = outer.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	assert.Equal(t, []int{3, 1}, inner.ResolveAll("x"))

	_, ok = inner.Local("y")
	assert.False(t, ok)
	_, ok = inner.Resolve("y")
	assert.False(t, ok)
}

func TestSymbolTableOrder(t *testing.T) {
	st := NewSymbolTable[string](nil)
	st.Declare("b", "1")
	st.Declare("a", "2")
	st.Shadow("b", "3")

	assert.Equal(t, []string{"b", "a"}, st.Names())

	parent := NewSymbolTable[string](nil)
	parent.Declare("c", "4")

	clone := st.WithParent(parent)
	assert.Equal(t, []string{"b", "a"}, clone.Names())

	v, ok := clone.Resolve("c")
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	// the clone is independent of the original
	clone.Shadow("a", "5")
	v, _ = st.Local("a")
	assert.Equal(t, "2", v)
}

func TestSlotAllocator(t *testing.T) {
	sa := NewSlotAllocator()
	assert.Equal(t, 0, sa.NextValue())
	assert.Equal(t, 1, sa.NextValue())
	assert.Equal(t, 0, sa.NextType())
	assert.Equal(t, 2, sa.ValueCount())
	assert.Equal(t, 1, sa.TypeCount())
}
