package typing

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"
)

// cycleRepr is printed in place of a type which is already being printed.
const cycleRepr = "..."

// printer prints types guarding against cyclic references.
type printer struct {
	// The set of types currently being printed.
	active *set.Set[Type]
}

func newPrinter() *printer {
	return &printer{active: set.New[Type](0)}
}

// print returns the representative string of t.
func (p *printer) print(t Type) string {
	if !p.active.Insert(t) {
		return cycleRepr
	}
	defer p.active.Remove(t)

	return t.repr(p)
}

// -----------------------------------------------------------------------------

func (st *StructType) repr(p *printer) string {
	if len(st.Fields) == 0 {
		return "[]"
	}

	sb := strings.Builder{}
	sb.WriteString("[ ")

	for i, name := range sortedFieldNames(st) {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(p.print(st.Fields[name]))
	}

	sb.WriteString(" ]")
	return sb.String()
}

func (ut *UnionType) repr(p *printer) string {
	return p.printMembers(ut.Members, " | ")
}

func (it *IntersectionType) repr(p *printer) string {
	return p.printMembers(it.Members, " & ")
}

// printMembers prints a parenthesized list of member types.
func (p *printer) printMembers(members []Type, sep string) string {
	sb := strings.Builder{}
	sb.WriteRune('(')

	for i, member := range members {
		if i > 0 {
			sb.WriteString(sep)
		}

		sb.WriteString(p.print(member))
	}

	sb.WriteRune(')')
	return sb.String()
}

func (ft *FuncType) repr(p *printer) string {
	sb := strings.Builder{}

	if len(ft.Generics) > 0 {
		sb.WriteRune('<')

		for i, gen := range ft.Generics {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(gen.Name)
			sb.WriteString(": ")
			sb.WriteString(p.print(gen.Bounds))
		}

		sb.WriteRune('>')
	}

	sb.WriteRune('(')
	for i, param := range ft.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(p.print(param))
	}

	sb.WriteString(") -> ")
	sb.WriteString(p.print(ft.ReturnType))
	return sb.String()
}

func (tv *TypeVar) repr(*printer) string {
	return tv.Name
}

// -----------------------------------------------------------------------------

// sortedFieldNames returns the field names of a struct in lexical order.
func sortedFieldNames(st *StructType) []string {
	names := make([]string, 0, len(st.Fields))
	for name := range st.Fields {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// quote returns the Bit source representation of a string literal.
func quote(s string) string {
	return strconv.Quote(s)
}
