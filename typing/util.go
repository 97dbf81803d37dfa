package typing

// Widen returns the general type of a literal type: integer literals widen to
// Integer, string literals to String and `true`/`false` to Boolean.  Unions
// and struct fields are widened member-wise.
func Widen(t Type) Type {
	w := &widener{memo: make(map[*StructType]*StructType)}
	return w.widen(t)
}

// widener widens types.  Widened structs are memoized per reference so that
// widening cyclic structs terminates.
type widener struct {
	memo map[*StructType]*StructType
}

func (w *widener) widen(t Type) Type {
	switch v := t.(type) {
	case *IntegerLiteral:
		return Integer
	case *StringLiteral:
		return String
	case *NominalType:
		if isTrue(v) || isFalse(v) {
			return Boolean
		}
	case *StructType:
		if result, ok := w.memo[v]; ok {
			return result
		}

		fields := make(map[string]Type, len(v.Fields))
		result := NewStruct(fields)
		w.memo[v] = result

		for name, ftype := range v.Fields {
			fields[name] = w.widen(ftype)
		}

		return result
	case *UnionType:
		members := make([]Type, len(v.Members))
		for i, member := range v.Members {
			members[i] = w.widen(member)
		}

		return Union(members...)
	}

	return t
}

// FieldOf returns the type of the field of t with the given name.  Strings
// expose the fields of their shape.  A field of a union exists only if every
// member has it.
func FieldOf(t Type, name string) (Type, bool) {
	switch v := t.(type) {
	case *StructType:
		ftype, ok := v.Fields[name]
		return ftype, ok
	case *StringType, *StringLiteral:
		ftype, ok := String.shape.Fields[name]
		return ftype, ok
	case *TypeVar:
		return FieldOf(v.Bounds, name)
	case *UnionType:
		ftypes := make([]Type, len(v.Members))
		for i, member := range v.Members {
			ftype, ok := FieldOf(member, name)
			if !ok {
				return nil, false
			}

			ftypes[i] = ftype
		}

		return Union(ftypes...), true
	case *IntersectionType:
		var ftypes []Type
		for _, member := range v.Members {
			if ftype, ok := FieldOf(member, name); ok {
				ftypes = append(ftypes, ftype)
			}
		}

		if len(ftypes) == 0 {
			return nil, false
		}

		return Intersection(ftypes...), true
	}

	return nil, false
}

// AsFunc returns the function type t describes, if any.
func AsFunc(t Type) (*FuncType, bool) {
	switch v := t.(type) {
	case *FuncType:
		return v, true
	case *TypeVar:
		return AsFunc(v.Bounds)
	}

	return nil, false
}
