package walk

import (
	"bitc/ast"
	"bitc/common"
	"bitc/depm"
	"bitc/sem"
	"bitc/typing"

	"golang.org/x/exp/slices"
)

// refinement narrows the type of a symbol to a type.
type refinement struct {
	sym common.Symbol
	typ typing.Type
}

// refineEnvs applies the refinements proven by cond to the environment of
// the branch taken when cond is true and to that taken when it is false.
// Either environment may be nil, in which case its refinements are dropped.
func refineEnvs(cond sem.Expr, thenEnv, elseEnv *depm.Environment) {
	thenRefs, elseRefs := conditionRefinements(cond)

	if thenEnv != nil {
		for _, ref := range thenRefs {
			thenEnv.Refine(ref.sym, ref.typ)
		}
	}

	if elseEnv != nil {
		for _, ref := range elseRefs {
			elseEnv.Refine(ref.sym, ref.typ)
		}
	}
}

// conditionRefinements computes what a condition proves about the symbols it
// mentions when it is true and when it is false.
func conditionRefinements(cond sem.Expr) (thenRefs, elseRefs []refinement) {
	switch v := cond.(type) {
	case *sem.BinaryOp:
		switch v.Op {
		case ast.OpEq:
			return equalityRefinements(v.Lhs, v.Rhs)
		case ast.OpNeq:
			elseRefs, thenRefs = equalityRefinements(v.Lhs, v.Rhs)
			return
		case ast.OpAnd:
			lhsThen, lhsElse := conditionRefinements(v.Lhs)
			rhsThen, rhsElse := conditionRefinements(v.Rhs)

			// `not (a and b)` is `not a or not b` so the else side is combined
			// like the then side of `or` rather than accumulated.
			return append(lhsThen, rhsThen...), combineRefinements(lhsElse, rhsElse)
		case ast.OpOr:
			lhsThen, lhsElse := conditionRefinements(v.Lhs)
			rhsThen, rhsElse := conditionRefinements(v.Rhs)
			return combineRefinements(lhsThen, rhsThen), append(lhsElse, rhsElse...)
		}
	case *sem.UnaryOp:
		if v.Op == ast.OpNot {
			elseRefs, thenRefs = conditionRefinements(v.Operand)
			return
		}
	case *sem.Is:
		return leafRefinements(v.Expr, v.Target), exclusionRefinements(v.Expr, v.Target)
	}

	return nil, nil
}

// equalityRefinements computes the refinements proven by `lhs == rhs`.  When
// true, each side has the type of the other.  When false, a side may only
// exclude the other if the other is a single value.
func equalityRefinements(lhs, rhs sem.Expr) (thenRefs, elseRefs []refinement) {
	thenRefs = append(leafRefinements(lhs, rhs.Type()), leafRefinements(rhs, lhs.Type())...)

	if isSingleton(rhs.Type()) {
		elseRefs = append(elseRefs, exclusionRefinements(lhs, rhs.Type())...)
	}

	if isSingleton(lhs.Type()) {
		elseRefs = append(elseRefs, exclusionRefinements(rhs, lhs.Type())...)
	}

	return
}

// combineRefinements computes the refinements which hold when either of two
// sets of refinements holds.  Only symbols refined by both sets are refined:
// to the union of what each set proves about them.
func combineRefinements(a, b []refinement) []refinement {
	var combined []refinement
	for _, ref := range a {
		if slices.ContainsFunc(combined, func(c refinement) bool { return c.sym == ref.sym }) {
			continue
		}

		bType, ok := refinedType(b, ref.sym)
		if !ok {
			continue
		}

		aType, _ := refinedType(a, ref.sym)
		combined = append(combined, refinement{sym: ref.sym, typ: typing.Union(aType, bType)})
	}

	return combined
}

// refinedType returns the intersection of all the refinements of sym.
func refinedType(refs []refinement, sym common.Symbol) (typing.Type, bool) {
	var types []typing.Type
	for _, ref := range refs {
		if ref.sym == sym {
			types = append(types, ref.typ)
		}
	}

	if len(types) == 0 {
		return nil, false
	}

	return typing.Intersection(types...), true
}

// -----------------------------------------------------------------------------

// leafRefinements computes the refinements which make expr have type typ.
// Identifiers are refined directly.  Refinements propagate through addition,
// subtraction, multiplication and negation by inverting the operator.  Integer
// division cannot be inverted and is never refined through.
func leafRefinements(expr sem.Expr, typ typing.Type) []refinement {
	switch v := expr.(type) {
	case *sem.Identifier:
		return []refinement{{sym: v.Symbol, typ: typ}}
	case *sem.BinaryOp:
		target := typing.Intersection(typ, typing.Integer)

		switch v.Op {
		case ast.OpAdd:
			return append(
				invertRefinements(v.Lhs, typing.Subtract, target, v.Rhs.Type()),
				invertRefinements(v.Rhs, typing.Subtract, target, v.Lhs.Type())...,
			)
		case ast.OpSub:
			return append(
				invertRefinements(v.Lhs, typing.Add, target, v.Rhs.Type()),
				invertRefinements(v.Rhs, typing.Subtract, v.Lhs.Type(), target)...,
			)
		case ast.OpMul:
			return append(
				invertRefinements(v.Lhs, typing.DivideExact, target, v.Rhs.Type()),
				invertRefinements(v.Rhs, typing.DivideExact, target, v.Lhs.Type())...,
			)
		}
	case *sem.UnaryOp:
		if v.Op == ast.OpNeg {
			if operandType, err := typing.Negate(typing.Intersection(typ, typing.Integer)); err == nil {
				return leafRefinements(v.Operand, operandType)
			}
		}
	}

	return nil
}

// invertRefinements refines operand to inverse(a, b).  Nothing is refined if
// the inverse is undefined: eg. a division by zero.
func invertRefinements(operand sem.Expr, inverse func(a, b typing.Type) (typing.Type, error), a, b typing.Type) []refinement {
	operandType, err := inverse(a, b)
	if err != nil {
		return nil
	}

	return leafRefinements(operand, operandType)
}

// exclusionRefinements computes the refinements which make expr not have type
// typ: the members of the type of expr which extend typ are excluded.  Only
// identifiers are refined.
func exclusionRefinements(expr sem.Expr, typ typing.Type) []refinement {
	ident, ok := expr.(*sem.Identifier)
	if !ok {
		return nil
	}

	var remaining []typing.Type
	if ut, ok := ident.Type().(*typing.UnionType); ok {
		for _, member := range ut.Members {
			if !typing.Extend(member, typ) {
				remaining = append(remaining, member)
			}
		}
	} else if !typing.Extend(ident.Type(), typ) {
		return nil
	}

	return []refinement{{sym: ident.Symbol, typ: typing.Union(remaining...)}}
}

// isSingleton returns whether typ has exactly one value.  Every nominal
// except File is the type of a single value.
func isSingleton(typ typing.Type) bool {
	switch v := typ.(type) {
	case *typing.IntegerLiteral, *typing.StringLiteral:
		return true
	case *typing.NominalType:
		return v != typing.File
	}

	return false
}
