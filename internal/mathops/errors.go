package mathops

import "errors"

// Error kind labels recorded alongside failed attempts.
const (
	KindDivisionByZero  = "division_by_zero"
	KindNegativeOperand = "negative_operand"
	KindUnexpected      = "unexpected"
)

// DivisionByZeroError reports a division whose divisor is exactly zero.
type DivisionByZeroError struct {
	Dividend float64
}

func (e *DivisionByZeroError) Error() string {
	return "division by zero detected"
}

// NegativeOperandError reports an operation on a negative operand.
type NegativeOperandError struct {
	Operand float64
}

func (e *NegativeOperandError) Error() string {
	return "negative number not allowed in this operation"
}

// IsDomainError reports whether err is one of the recognized validation
// errors, as opposed to an unexpected failure.
func IsDomainError(err error) bool {
	var dz *DivisionByZeroError
	var neg *NegativeOperandError
	return errors.As(err, &dz) || errors.As(err, &neg)
}

// Kind maps err to its recorded error kind label.
func Kind(err error) string {
	var dz *DivisionByZeroError
	if errors.As(err, &dz) {
		return KindDivisionByZero
	}
	var neg *NegativeOperandError
	if errors.As(err, &neg) {
		return KindNegativeOperand
	}
	return KindUnexpected
}
