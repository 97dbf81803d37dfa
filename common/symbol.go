package common

import "fmt"

// Symbol represents a resolved name: the name as it appears in source text and
// the slot it was assigned during resolution.  Value symbols and type symbols
// are numbered by two independent counters so a value symbol and a type symbol
// may share an ID.
type Symbol struct {
	// The name of the symbol.
	Name string

	// The slot of the symbol.  For value symbols, this is the index into the
	// interpreter's variable store.
	ID int
}

func (s Symbol) String() string {
	return fmt.Sprintf("%s#%d", s.Name, s.ID)
}
