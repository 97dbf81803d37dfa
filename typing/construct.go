package typing

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Union returns the normalized union of the given types.  Only the maximal
// types are kept: a type which extends another member is absorbed by it.
func Union(types ...Type) Type {
	var candidates []Type
	for _, t := range types {
		switch v := t.(type) {
		case *UnionType:
			candidates = append(candidates, v.Members...)
		case PrimitiveType:
			if v == Any {
				return Any
			} else if v != Never {
				candidates = append(candidates, v)
			}
		default:
			candidates = append(candidates, t)
		}
	}

	var kept []Type
	for _, c := range candidates {
		if slices.ContainsFunc(kept, func(k Type) bool { return Extend(c, k) }) {
			continue
		}

		kept = slices.DeleteFunc(kept, func(k Type) bool { return Extend(k, c) })
		kept = append(kept, c)
	}

	switch len(kept) {
	case 0:
		return Never
	case 1:
		return kept[0]
	default:
		return &UnionType{Members: kept}
	}
}

// Intersection returns the normalized intersection of the given types. Only
// the minimal types are kept, structs are merged field-wise, and incompatible
// members collapse the whole intersection to Never.
func Intersection(types ...Type) Type {
	it := &intersector{merged: make(map[typePair]*StructType)}
	return it.intersect(types)
}

// intersector computes intersections.  Struct merges are memoized per pair of
// structs so that merging cyclic structs terminates.
type intersector struct {
	merged map[typePair]*StructType
}

func (it *intersector) intersect(types []Type) Type {
	var candidates []Type
	for _, t := range types {
		switch v := t.(type) {
		case *IntersectionType:
			candidates = append(candidates, v.Members...)
		case PrimitiveType:
			if v == Never {
				return Never
			} else if v != Any {
				candidates = append(candidates, v)
			}
		default:
			candidates = append(candidates, t)
		}
	}

	// Intersection distributes over union: (A | B) & C = (A & C) | (B & C).
	for i, c := range candidates {
		if ut, ok := c.(*UnionType); ok {
			rest := slices.Delete(slices.Clone(candidates), i, i+1)

			results := make([]Type, len(ut.Members))
			for j, member := range ut.Members {
				results[j] = it.intersect(append([]Type{member}, rest...))
			}

			return Union(results...)
		}
	}

	var kept []Type
	for _, c := range candidates {
		if slices.ContainsFunc(kept, func(k Type) bool { return Extend(k, c) }) {
			continue
		}

		kept = slices.DeleteFunc(kept, func(k Type) bool { return Extend(c, k) })

		if cst, ok := c.(*StructType); ok {
			if i := slices.IndexFunc(kept, isStruct); i >= 0 {
				merged := it.mergeStructs(kept[i].(*StructType), cst)
				if merged == Never {
					return Never
				}

				kept[i] = merged
				continue
			}
		}

		kept = append(kept, c)
	}

	for i, a := range kept {
		for _, b := range kept[i+1:] {
			if disjoint(a, b) {
				return Never
			}
		}
	}

	switch len(kept) {
	case 0:
		return Any
	case 1:
		return kept[0]
	default:
		return &IntersectionType{Members: kept}
	}
}

// mergeStructs computes the field-wise meet of two structs.  It returns Never
// if a shared field has no common values.
func (it *intersector) mergeStructs(a, b *StructType) Type {
	pair := typePair{a, b}
	if st, ok := it.merged[pair]; ok {
		return st
	}

	fields := maps.Clone(a.Fields)
	result := NewStruct(fields)
	it.merged[pair] = result

	for name, bftype := range b.Fields {
		if aftype, ok := fields[name]; ok {
			meet := it.intersect([]Type{aftype, bftype})
			if meet == Never {
				return Never
			}

			fields[name] = meet
		} else {
			fields[name] = bftype
		}
	}

	return result
}

func isStruct(t Type) bool {
	_, ok := t.(*StructType)
	return ok
}

// -----------------------------------------------------------------------------

// kindClass classifies types whose values can never overlap with the values of
// a type of another class.
type kindClass int

const (
	classUnknown kindClass = iota
	classInteger
	classString
	classNominal
	classStruct
	classFunc
)

// classOf returns the kind class of a type.
func classOf(t Type) kindClass {
	switch v := t.(type) {
	case PrimitiveType:
		if v == Integer {
			return classInteger
		}
	case *IntegerLiteral:
		return classInteger
	case *StringType, *StringLiteral:
		return classString
	case *NominalType:
		return classNominal
	case *StructType:
		return classStruct
	case *FuncType:
		return classFunc
	case *TypeVar:
		return classOf(v.Bounds)
	}

	return classUnknown
}

// disjoint returns whether two reduced intersection members have no values in
// common.
func disjoint(a, b Type) bool {
	ca, cb := classOf(a), classOf(b)
	if ca == classUnknown || cb == classUnknown {
		return false
	} else if ca != cb {
		return true
	}

	switch at := a.(type) {
	case *IntegerLiteral:
		if bt, ok := b.(*IntegerLiteral); ok {
			return at.Value.Cmp(bt.Value) != 0
		}
	case *StringLiteral:
		if bt, ok := b.(*StringLiteral); ok {
			return at.Value != bt.Value
		}
	case *NominalType:
		if bt, ok := b.(*NominalType); ok {
			return at.Name != bt.Name
		}
	}

	return false
}
