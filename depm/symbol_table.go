package depm

// SymbolTable is a scoped table mapping names to entries.  Each table has a
// parent table: lookups which fail locally continue in the parent so inner
// declarations shadow outer ones without overwriting them.
type SymbolTable[T any] struct {
	// The enclosing table.  This is nil for the root table.
	parent *SymbolTable[T]

	// The entries declared in this scope.
	entries map[string]T

	// The names of the local entries in declaration order.
	order []string
}

// NewSymbolTable creates a new symbol table in the scope of parent.  parent
// may be nil.
func NewSymbolTable[T any](parent *SymbolTable[T]) *SymbolTable[T] {
	return &SymbolTable[T]{
		parent:  parent,
		entries: make(map[string]T),
	}
}

// Declare declares a new local entry.  It returns false if an entry by the
// same name is already declared in this scope.
func (st *SymbolTable[T]) Declare(name string, entry T) bool {
	if _, ok := st.entries[name]; ok {
		return false
	}

	st.Shadow(name, entry)
	return true
}

// Shadow sets the local entry for name replacing any existing local entry.
func (st *SymbolTable[T]) Shadow(name string, entry T) {
	if _, ok := st.entries[name]; !ok {
		st.order = append(st.order, name)
	}

	st.entries[name] = entry
}

// Local looks up an entry in this scope only.
func (st *SymbolTable[T]) Local(name string) (T, bool) {
	entry, ok := st.entries[name]
	return entry, ok
}

// Resolve looks up the innermost visible entry by name.
func (st *SymbolTable[T]) Resolve(name string) (T, bool) {
	for table := st; table != nil; table = table.parent {
		if entry, ok := table.entries[name]; ok {
			return entry, true
		}
	}

	var zero T
	return zero, false
}

// ResolveAll returns every visible entry by name from the innermost scope
// outward, including the entries shadowed by inner scopes.
func (st *SymbolTable[T]) ResolveAll(name string) []T {
	var entries []T
	for table := st; table != nil; table = table.parent {
		if entry, ok := table.entries[name]; ok {
			entries = append(entries, entry)
		}
	}

	return entries
}

// Names returns the names declared in this scope in declaration order.
func (st *SymbolTable[T]) Names() []string {
	return st.order
}

// WithParent returns a copy of this table's local entries whose parent is
// parent.
func (st *SymbolTable[T]) WithParent(parent *SymbolTable[T]) *SymbolTable[T] {
	clone := NewSymbolTable(parent)
	for _, name := range st.order {
		clone.Shadow(name, st.entries[name])
	}

	return clone
}
