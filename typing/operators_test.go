package typing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralFolding(t *testing.T) {
	cases := []struct {
		op       func(a, b Type) (Type, error)
		a, b     Type
		expected Type
	}{
		{Add, lit(3), lit(4), lit(7)},
		{Subtract, lit(3), lit(4), lit(-1)},
		{Multiply, lit(6), lit(7), lit(42)},
		{Divide, lit(7), lit(2), lit(3)},
		{Divide, lit(-7), lit(2), lit(-3)},
		{DivideExact, lit(7), lit(2), Never},
		{DivideExact, lit(6), lit(2), lit(3)},
		{LessThan, lit(1), lit(2), True},
		{LessThanOrEqual, lit(2), lit(2), True},
		{GreaterThan, lit(1), lit(2), False},
		{GreaterThanOrEqual, lit(3), lit(2), True},
		{Add, Integer, lit(1), Integer},
		{Multiply, NewTypeVar("T", Integer), lit(2), Integer},
		{LessThan, Integer, lit(1), Boolean},
		{Add, Never, lit(1), Never},
		{And, True, False, False},
		{And, True, Boolean, Boolean},
		{Or, False, True, True},
		{Or, Boolean, False, Boolean},
	}

	for _, tc := range cases {
		result, err := tc.op(tc.a, tc.b)
		require.NoError(t, err)
		assertType(t, tc.expected, result)
	}
}

func TestUnionDistribution(t *testing.T) {
	sum, err := Add(Union(lit(1), lit(2)), lit(3))
	require.NoError(t, err)
	assertType(t, Union(lit(4), lit(5)), sum)

	product, err := Multiply(Union(lit(1), lit(2)), Union(lit(10), lit(20)))
	require.NoError(t, err)
	assertType(t, Union(lit(10), lit(20), lit(40)), product)

	cmp, err := LessThan(Union(lit(1), lit(5)), lit(3))
	require.NoError(t, err)
	assertType(t, Boolean, cmp)

	neg, err := Negate(Union(lit(1), lit(-2)))
	require.NoError(t, err)
	assertType(t, Union(lit(-1), lit(2)), neg)
}

func TestOperatorErrors(t *testing.T) {
	_, err := Divide(lit(1), lit(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = DivideExact(Union(lit(4), lit(2)), Union(lit(2), lit(0)))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	var operr *OperandError
	_, err = Add(String, lit(1))
	require.ErrorAs(t, err, &operr)
	assert.Equal(t, "+", operr.Op)

	_, err = Negate(None)
	assert.ErrorAs(t, err, &operr)

	_, err = And(lit(1), True)
	assert.ErrorAs(t, err, &operr)

	_, err = Not(Integer)
	assert.ErrorAs(t, err, &operr)
}

func TestEquality(t *testing.T) {
	assertType(t, True, Equal(lit(1), lit(1)))
	assertType(t, False, Equal(lit(1), lit(2)))
	assertType(t, True, Equal(str("a"), str("a")))
	assertType(t, Boolean, Equal(Integer, lit(1)))
	assertType(t, Boolean, Equal(Union(lit(1), lit(2)), lit(1)))
	assertType(t, False, NotEqual(lit(1), lit(1)))
	assertType(t, True, NotEqual(str("a"), str("b")))
	assertType(t, Boolean, Equal(String, None))
}

func TestNot(t *testing.T) {
	result, err := Not(True)
	require.NoError(t, err)
	assertType(t, False, result)

	result, err = Not(Boolean)
	require.NoError(t, err)
	assertType(t, Boolean, result)
}
