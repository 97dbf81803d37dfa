package typing

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned when a literal type is divided by the literal
// zero.
var ErrDivisionByZero = errors.New("division by the literal zero")

// OperandError is returned when a type-level operator is applied to an operand
// that does not extend the type the operator works over.
type OperandError struct {
	Op       string
	Operand  Type
	Expected Type
}

func (oe *OperandError) Error() string {
	return fmt.Sprintf("operator `%s` expects an operand of type %s but got %s", oe.Op, oe.Expected.Repr(), oe.Operand.Repr())
}

// ArityError is returned when a generic function is completed with the wrong
// number of type arguments.
type ArityError struct {
	Expected, Actual int
}

func (ae *ArityError) Error() string {
	return fmt.Sprintf("expected %d type arguments but got %d", ae.Expected, ae.Actual)
}

// BoundsError is returned when a type argument does not extend the bounds of
// its type variable.
type BoundsError struct {
	Var *TypeVar
	Arg Type
}

func (be *BoundsError) Error() string {
	return fmt.Sprintf("type %s does not satisfy the bounds %s of type parameter `%s`", be.Arg.Repr(), be.Var.Bounds.Repr(), be.Var.Name)
}
