package depm

import (
	"bitc/typing"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverseSlots(t *testing.T) {
	slots := NewSlotAllocator()
	env := NewUniverse(slots)

	valueSlots := map[string]int{
		"__read_stdin":      0,
		"__write_stdout":    1,
		"__file_open_read":  2,
		"__file_open_write": 3,
		"__file_close":      4,
		"__file_read":       5,
		"__file_write":      6,
		"print":             7,
		"None":              8,
	}

	for name, slot := range valueSlots {
		binding, err := env.LookupValue(name)
		require.NoError(t, err, name)
		assert.Equal(t, slot, binding.Symbol.ID, name)
	}

	exts := env.LookupExtensions("toString")
	require.Len(t, exts, 1)
	assert.Equal(t, 9, exts[0].Symbol.ID)
	assert.Equal(t, typing.Integer, exts[0].Receiver)
	assert.Equal(t, "() -> String", exts[0].Type.Repr())

	typeSlots := []string{"Any", "Never", "Integer", "Boolean", "String", "None", "File"}
	for i, name := range typeSlots {
		tb, err := env.LookupType(name)
		require.NoError(t, err, name)
		assert.Equal(t, i, tb.Symbol.ID, name)
	}

	assert.Equal(t, 10, slots.ValueCount())
	assert.Equal(t, 7, slots.TypeCount())
}
