package typing

import (
	"github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"
)

// Complete instantiates a generic function type with concrete type arguments.
// Every type argument must extend the bounds of its type variable.  The
// returned function type has no generics of its own.
func Complete(fn *FuncType, args []Type) (*FuncType, error) {
	if len(args) != len(fn.Generics) {
		return nil, &ArityError{Expected: len(fn.Generics), Actual: len(args)}
	}

	s := newSubstituter(make(map[*TypeVar]Type, len(args)))
	for i, gen := range fn.Generics {
		// Bounds may refer to the type variables declared before them.
		if !Extend(args[i], s.substitute(gen.Bounds)) {
			return nil, &BoundsError{Var: gen, Arg: args[i]}
		}

		s.mapping[gen] = args[i]
	}

	params := make([]Type, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = s.substitute(param)
	}

	return &FuncType{ReturnType: s.substitute(fn.ReturnType), Params: params}, nil
}

// Substitute replaces every occurrence of the type variables in mapping
// throughout t.
func Substitute(t Type, mapping map[*TypeVar]Type) Type {
	return newSubstituter(mapping).substitute(t)
}

// substituter replaces type variables.  Substitutions are memoized per type
// reference so that substituting into cyclic types terminates.
type substituter struct {
	mapping map[*TypeVar]Type
	memo    map[Type]Type
}

func newSubstituter(mapping map[*TypeVar]Type) *substituter {
	return &substituter{mapping: mapping, memo: make(map[Type]Type)}
}

func (s *substituter) substitute(t Type) Type {
	if result, ok := s.memo[t]; ok {
		return result
	}

	switch v := t.(type) {
	case *TypeVar:
		if result, ok := s.mapping[v]; ok {
			return result
		}
	case *StructType:
		fields := make(map[string]Type, len(v.Fields))
		result := NewStruct(fields)
		s.memo[t] = result

		for name, ftype := range v.Fields {
			fields[name] = s.substitute(ftype)
		}

		return result
	case *FuncType:
		result := &FuncType{Generics: v.Generics, Params: make([]Type, len(v.Params))}
		s.memo[t] = result

		for i, param := range v.Params {
			result.Params[i] = s.substitute(param)
		}

		result.ReturnType = s.substitute(v.ReturnType)
		return result
	case *UnionType:
		result := Union(s.substituteAll(v.Members)...)
		s.memo[t] = result
		return result
	case *IntersectionType:
		result := Intersection(s.substituteAll(v.Members)...)
		s.memo[t] = result
		return result
	}

	return t
}

func (s *substituter) substituteAll(types []Type) []Type {
	results := make([]Type, len(types))
	for i, t := range types {
		results[i] = s.substitute(t)
	}

	return results
}

// -----------------------------------------------------------------------------

// Unify infers bindings for the type variables occurring in partials by
// structurally matching them against actuals.  A variable met in a covariant
// position is widened with each new match; one met in a contravariant position
// is narrowed.
func Unify(partials, actuals []Type) map[*TypeVar]Type {
	u := &unifier{
		bindings: make(map[*TypeVar]Type),
		active:   set.New[typePair](0),
	}

	for i, partial := range partials {
		if i < len(actuals) {
			u.unify(partial, actuals[i], true)
		}
	}

	return u.bindings
}

// unifier accumulates type variable bindings.
type unifier struct {
	bindings map[*TypeVar]Type
	active   *set.Set[typePair]
}

func (u *unifier) unify(partial, actual Type, covariant bool) {
	pair := typePair{partial, actual}
	if !u.active.Insert(pair) {
		return
	}
	defer u.active.Remove(pair)

	switch p := partial.(type) {
	case *TypeVar:
		if existing, ok := u.bindings[p]; !ok {
			u.bindings[p] = actual
		} else if covariant {
			u.bindings[p] = Union(existing, actual)
		} else {
			u.bindings[p] = Intersection(existing, actual)
		}
	case *UnionType:
		u.unifyUnion(p, actual, covariant)
	case *IntersectionType:
		for _, member := range p.Members {
			u.unify(member, actual, covariant)
		}
	case *FuncType:
		af, _ := actual.(*FuncType)
		if af == nil {
			af = &FuncType{ReturnType: Never}
		}

		for i, gen := range p.Generics {
			if i < len(af.Generics) {
				u.unify(gen, af.Generics[i], !covariant)
			}
		}

		for i, param := range p.Params {
			if i < len(af.Params) {
				u.unify(param, af.Params[i], !covariant)
			} else {
				u.unify(param, Never, !covariant)
			}
		}

		u.unify(p.ReturnType, af.ReturnType, covariant)
	case *StructType:
		as := structShapeOf(actual)
		for name, ftype := range p.Fields {
			if aftype, ok := as.Fields[name]; ok {
				u.unify(ftype, aftype, covariant)
			} else {
				u.unify(ftype, Never, covariant)
			}
		}
	}
}

// unifyUnion unifies a union containing type variables.  The actual members
// already covered by the concrete members of the partial union are removed and
// the variable members are unified against the remainder.
func (u *unifier) unifyUnion(p *UnionType, actual Type, covariant bool) {
	var concrete, variable []Type
	for _, member := range p.Members {
		if ContainsTypeVars(member) {
			variable = append(variable, member)
		} else {
			concrete = append(concrete, member)
		}
	}

	remainder := actual
	if au, ok := actual.(*UnionType); ok {
		remainder = Union(slices.DeleteFunc(slices.Clone(au.Members), func(m Type) bool {
			return slices.ContainsFunc(concrete, func(c Type) bool { return Extend(m, c) })
		})...)
	} else if slices.ContainsFunc(concrete, func(c Type) bool { return Extend(actual, c) }) {
		remainder = Never
	}

	for _, member := range variable {
		u.unify(member, remainder, covariant)
	}
}

// structShapeOf returns the struct describing the fields of t, or an empty
// struct if t has no fields.
func structShapeOf(t Type) *StructType {
	switch v := t.(type) {
	case *StructType:
		return v
	case *StringType:
		return v.shape
	case *StringLiteral:
		return String.shape
	}

	return NewStruct(nil)
}

// ContainsTypeVars returns whether a type variable occurs anywhere within t.
func ContainsTypeVars(t Type) bool {
	return containsTypeVars(t, set.New[Type](0))
}

func containsTypeVars(t Type, visited *set.Set[Type]) bool {
	if !visited.Insert(t) {
		return false
	}

	switch v := t.(type) {
	case *TypeVar:
		return true
	case *StructType:
		for _, ftype := range v.Fields {
			if containsTypeVars(ftype, visited) {
				return true
			}
		}
	case *UnionType:
		return slices.ContainsFunc(v.Members, func(m Type) bool { return containsTypeVars(m, visited) })
	case *IntersectionType:
		return slices.ContainsFunc(v.Members, func(m Type) bool { return containsTypeVars(m, visited) })
	case *FuncType:
		if containsTypeVars(v.ReturnType, visited) {
			return true
		}

		return slices.ContainsFunc(v.Params, func(m Type) bool { return containsTypeVars(m, visited) })
	}

	return false
}
