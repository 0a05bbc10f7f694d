// Package calc implements the calculator interaction engine.
//
// The engine evaluates strictly left to right in the style of a desk
// calculator: every operator press resolves the pending operation before
// arming the next one, so "2 + 3 × 4" is (2+3)×4. Arithmetic domain errors
// never surface as Go errors to the user; they become the ErrorMarker
// display value and are cleared by the next digit or by Clear.
package calc

import (
	"errors"
	"fmt"
)

// Operator is a binary arithmetic operator. The zero value means no
// operation is pending.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

var (
	// ErrDivideByZero is returned by Evaluate for a zero divisor.
	ErrDivideByZero = errors.New("division by zero")
	// ErrNegativeRoot marks the square root of a negative number.
	ErrNegativeRoot = errors.New("square root of negative number")
	// ErrUnknownOperator is returned for OpNone or out-of-range operators.
	ErrUnknownOperator = errors.New("unknown operator")
)

// String returns the symbol used in history entries and labels.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// ID returns the command identifier for the operator key.
func (op Operator) ID() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return ""
	}
}

// Valid reports whether op is one of the four arithmetic operators.
func (op Operator) Valid() bool {
	return op >= OpAdd && op <= OpDivide
}

// Evaluate applies op to a and b. It has no state and no side effects.
func Evaluate(a, b float64, op Operator) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	default:
		return a, fmt.Errorf("evaluate %d: %w", int(op), ErrUnknownOperator)
	}
}
