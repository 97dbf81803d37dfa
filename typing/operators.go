package typing

import "math/big"

// The type-level operators below are total functions over types.  Integer
// operands must extend Integer, boolean operands must extend Boolean.  When
// both operands are literals the result is folded; when either operand is a
// union the operator is applied pairwise across the members; otherwise the
// result widens to the general type.

// Add returns the type of `a + b`.
func Add(a, b Type) (Type, error) {
	return liftInteger("+", a, b, Integer, func(x, y *big.Int) (Type, error) {
		return NewBigIntegerLiteral(new(big.Int).Add(x, y)), nil
	})
}

// Subtract returns the type of `a - b`.
func Subtract(a, b Type) (Type, error) {
	return liftInteger("-", a, b, Integer, func(x, y *big.Int) (Type, error) {
		return NewBigIntegerLiteral(new(big.Int).Sub(x, y)), nil
	})
}

// Multiply returns the type of `a * b`.
func Multiply(a, b Type) (Type, error) {
	return liftInteger("*", a, b, Integer, func(x, y *big.Int) (Type, error) {
		return NewBigIntegerLiteral(new(big.Int).Mul(x, y)), nil
	})
}

// Divide returns the type of `a / b`.  Division truncates toward zero.
func Divide(a, b Type) (Type, error) {
	return liftInteger("/", a, b, Integer, func(x, y *big.Int) (Type, error) {
		if y.Sign() == 0 {
			return nil, ErrDivisionByZero
		}

		return NewBigIntegerLiteral(new(big.Int).Quo(x, y)), nil
	})
}

// DivideExact returns the type of `a / b` assuming the division has no
// remainder.  A literal division with a remainder is impossible: Never.
func DivideExact(a, b Type) (Type, error) {
	return liftInteger("/", a, b, Integer, func(x, y *big.Int) (Type, error) {
		if y.Sign() == 0 {
			return nil, ErrDivisionByZero
		}

		q, r := new(big.Int).QuoRem(x, y, new(big.Int))
		if r.Sign() != 0 {
			return Never, nil
		}

		return NewBigIntegerLiteral(q), nil
	})
}

// Negate returns the type of `-a`.
func Negate(a Type) (Type, error) {
	if !Extend(a, Integer) {
		return nil, &OperandError{Op: "-", Operand: a, Expected: Integer}
	}

	return distributeUnary(a, func(x Type) Type {
		if xl, ok := x.(*IntegerLiteral); ok {
			return NewBigIntegerLiteral(new(big.Int).Neg(xl.Value))
		}

		return Integer
	}), nil
}

// LessThan returns the type of `a < b`.
func LessThan(a, b Type) (Type, error) {
	return compareIntegers("<", a, b, func(c int) bool { return c < 0 })
}

// LessThanOrEqual returns the type of `a <= b`.
func LessThanOrEqual(a, b Type) (Type, error) {
	return compareIntegers("<=", a, b, func(c int) bool { return c <= 0 })
}

// GreaterThan returns the type of `a > b`.
func GreaterThan(a, b Type) (Type, error) {
	return compareIntegers(">", a, b, func(c int) bool { return c > 0 })
}

// GreaterThanOrEqual returns the type of `a >= b`.
func GreaterThanOrEqual(a, b Type) (Type, error) {
	return compareIntegers(">=", a, b, func(c int) bool { return c >= 0 })
}

// Equal returns the type of `a == b`.  Any two types can be compared.
func Equal(a, b Type) Type {
	result, _ := distribute(a, b, func(x, y Type) (Type, error) {
		switch xl := x.(type) {
		case *IntegerLiteral:
			if yl, ok := y.(*IntegerLiteral); ok {
				return boolLiteral(xl.Value.Cmp(yl.Value) == 0), nil
			}
		case *StringLiteral:
			if yl, ok := y.(*StringLiteral); ok {
				return boolLiteral(xl.Value == yl.Value), nil
			}
		}

		return Boolean, nil
	})

	return result
}

// NotEqual returns the type of `a != b`.
func NotEqual(a, b Type) Type {
	result, _ := Not(Equal(a, b))
	return result
}

// And returns the type of `a and b`.
func And(a, b Type) (Type, error) {
	return liftBoolean("and", a, b, func(x, y Type) Type {
		if isFalse(x) || isFalse(y) {
			return False
		} else if isTrue(x) && isTrue(y) {
			return True
		}

		return Boolean
	})
}

// Or returns the type of `a or b`.
func Or(a, b Type) (Type, error) {
	return liftBoolean("or", a, b, func(x, y Type) Type {
		if isTrue(x) || isTrue(y) {
			return True
		} else if isFalse(x) && isFalse(y) {
			return False
		}

		return Boolean
	})
}

// Not returns the type of `not a`.
func Not(a Type) (Type, error) {
	if !Extend(a, Boolean) {
		return nil, &OperandError{Op: "not", Operand: a, Expected: Boolean}
	}

	return distributeUnary(a, func(x Type) Type {
		if isTrue(x) {
			return False
		} else if isFalse(x) {
			return True
		}

		return Boolean
	}), nil
}

// -----------------------------------------------------------------------------

// liftInteger lifts a binary operation over integer constants to types.
func liftInteger(op string, a, b, widened Type, fold func(x, y *big.Int) (Type, error)) (Type, error) {
	if !Extend(a, Integer) {
		return nil, &OperandError{Op: op, Operand: a, Expected: Integer}
	} else if !Extend(b, Integer) {
		return nil, &OperandError{Op: op, Operand: b, Expected: Integer}
	}

	return distribute(a, b, func(x, y Type) (Type, error) {
		xl, xok := x.(*IntegerLiteral)
		yl, yok := y.(*IntegerLiteral)
		if xok && yok {
			return fold(xl.Value, yl.Value)
		}

		return widened, nil
	})
}

// compareIntegers lifts an integer comparison to types.
func compareIntegers(op string, a, b Type, test func(c int) bool) (Type, error) {
	return liftInteger(op, a, b, Boolean, func(x, y *big.Int) (Type, error) {
		return boolLiteral(test(x.Cmp(y))), nil
	})
}

// liftBoolean lifts a binary boolean operation to types.
func liftBoolean(op string, a, b Type, apply func(x, y Type) Type) (Type, error) {
	if !Extend(a, Boolean) {
		return nil, &OperandError{Op: op, Operand: a, Expected: Boolean}
	} else if !Extend(b, Boolean) {
		return nil, &OperandError{Op: op, Operand: b, Expected: Boolean}
	}

	return distribute(a, b, func(x, y Type) (Type, error) {
		return apply(x, y), nil
	})
}

// distribute applies a binary operator pairwise across the members of union
// operands and unions the results.  Never operands yield Never.
func distribute(a, b Type, apply func(x, y Type) (Type, error)) (Type, error) {
	if a == Never || b == Never {
		return Never, nil
	}

	if ut, ok := a.(*UnionType); ok {
		results := make([]Type, len(ut.Members))
		for i, member := range ut.Members {
			result, err := distribute(member, b, apply)
			if err != nil {
				return nil, err
			}

			results[i] = result
		}

		return Union(results...), nil
	}

	if ut, ok := b.(*UnionType); ok {
		results := make([]Type, len(ut.Members))
		for i, member := range ut.Members {
			result, err := distribute(a, member, apply)
			if err != nil {
				return nil, err
			}

			results[i] = result
		}

		return Union(results...), nil
	}

	return apply(a, b)
}

// distributeUnary applies a unary operator across the members of a union.
func distributeUnary(a Type, apply func(x Type) Type) Type {
	if a == Never {
		return Never
	}

	if ut, ok := a.(*UnionType); ok {
		results := make([]Type, len(ut.Members))
		for i, member := range ut.Members {
			results[i] = distributeUnary(member, apply)
		}

		return Union(results...)
	}

	return apply(a)
}

func boolLiteral(b bool) Type {
	if b {
		return True
	}

	return False
}

func isTrue(t Type) bool {
	nt, ok := t.(*NominalType)
	return ok && nt.Name == True.Name
}

func isFalse(t Type) bool {
	nt, ok := t.(*NominalType)
	return ok && nt.Name == False.Name
}
