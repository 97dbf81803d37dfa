package depm

// SlotAllocator assigns slots to symbols.  One allocator is shared by every
// environment of a program so that each binding gets a program-wide unique
// slot.  Value slots and type slots are counted independently.
type SlotAllocator struct {
	values, types int
}

// NewSlotAllocator creates a new slot allocator starting at slot zero.
func NewSlotAllocator() *SlotAllocator {
	return &SlotAllocator{}
}

// NextValue allocates the next value slot.
func (sa *SlotAllocator) NextValue() int {
	sa.values++
	return sa.values - 1
}

// NextType allocates the next type slot.
func (sa *SlotAllocator) NextType() int {
	sa.types++
	return sa.types - 1
}

// ValueCount returns the number of value slots allocated so far.  This is
// the size of the interpreter's variable store.
func (sa *SlotAllocator) ValueCount() int {
	return sa.values
}

// TypeCount returns the number of type slots allocated so far.
func (sa *SlotAllocator) TypeCount() int {
	return sa.types
}
