package typing

import "github.com/hashicorp/go-set/v3"

// Extend returns whether a extends b: every value described by a is also
// described by b so a is usable wherever b is expected.
func Extend(a, b Type) bool {
	return newExtender().extend(a, b)
}

// extender computes subtyping guarding against cyclic types.  A pair which is
// already being checked is assumed to extend (co-inductive subtyping).  Results
// are memoized for the duration of one check: refuted pairs permanently and
// proven pairs until a check they were proven under fails.
type extender struct {
	active  *set.Set[typePair]
	proven  *set.Set[typePair]
	refuted *set.Set[typePair]

	// The pairs in proven in the order they were proven.
	provenLog []typePair
}

func newExtender() *extender {
	return &extender{
		active:  set.New[typePair](0),
		proven:  set.New[typePair](0),
		refuted: set.New[typePair](0),
	}
}

func (e *extender) extend(a, b Type) bool {
	if a == b || b == Any || a == Never {
		return true
	} else if a == Any {
		return false
	}

	pair := typePair{a, b}
	if e.proven.Contains(pair) {
		return true
	} else if e.refuted.Contains(pair) {
		return false
	} else if !e.active.Insert(pair) {
		return true
	}

	mark := len(e.provenLog)
	result := e.extendUncached(a, b)
	e.active.Remove(pair)

	if result {
		e.proven.Insert(pair)
		e.provenLog = append(e.provenLog, pair)
	} else {
		// Anything proven during this check may rest on an assumption which
		// has just been refuted.
		for _, p := range e.provenLog[mark:] {
			e.proven.Remove(p)
		}

		e.provenLog = e.provenLog[:mark]
		e.refuted.Insert(pair)
	}

	return result
}

func (e *extender) extendUncached(a, b Type) bool {
	// A union is only as strong as its weakest member.
	if ut, ok := a.(*UnionType); ok {
		for _, member := range ut.Members {
			if !e.extend(member, b) {
				return false
			}
		}

		return true
	}

	if it, ok := b.(*IntersectionType); ok {
		for _, member := range it.Members {
			if !e.extend(a, member) {
				return false
			}
		}

		return true
	}

	if it, ok := a.(*IntersectionType); ok {
		for _, member := range it.Members {
			if e.extend(member, b) {
				return true
			}
		}

		return false
	}

	if ut, ok := b.(*UnionType); ok {
		for _, member := range ut.Members {
			if e.extend(a, member) {
				return true
			}
		}

		// A type variable may still extend the union through its bounds.
		if _, ok := a.(*TypeVar); !ok {
			return false
		}
	}

	if tv, ok := a.(*TypeVar); ok {
		return e.extend(tv.Bounds, b)
	}

	switch at := a.(type) {
	case *NominalType:
		bt, ok := b.(*NominalType)
		return ok && at.Name == bt.Name
	case *IntegerLiteral:
		switch bt := b.(type) {
		case PrimitiveType:
			return bt == Integer
		case *IntegerLiteral:
			return at.Value.Cmp(bt.Value) == 0
		}
	case *StringLiteral:
		if bt, ok := b.(*StringLiteral); ok {
			return at.Value == bt.Value
		}

		return e.extend(String, b)
	case *StringType:
		switch bt := b.(type) {
		case *StringType:
			return true
		case *StructType:
			return e.extend(at.shape, bt)
		}
	case *StructType:
		if bt, ok := b.(*StructType); ok {
			return e.extendStruct(at, bt)
		}
	case *FuncType:
		if bt, ok := b.(*FuncType); ok {
			return e.extendFunc(at, bt)
		}
	}

	return false
}

// extendStruct implements width and depth subtyping: a may have fields b does
// not have.
func (e *extender) extendStruct(a, b *StructType) bool {
	for name, bftype := range b.Fields {
		aftype, ok := a.Fields[name]
		if !ok || !e.extend(aftype, bftype) {
			return false
		}
	}

	return true
}

// extendFunc checks function subtyping.  Parameters are checked covariantly.
func (e *extender) extendFunc(a, b *FuncType) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}

	for i, param := range a.Params {
		if !e.extend(param, b.Params[i]) {
			return false
		}
	}

	return e.extend(a.ReturnType, b.ReturnType)
}
