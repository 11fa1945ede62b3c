// Package mathops implements the validated arithmetic operations the
// demo monitors. Operations are pure: they either return a result or a
// typed validation error, and never touch the journal or counters.
package mathops

import "math"

// Divide returns a / b. The zero-divisor check runs before the
// negative-operand check, so a negative dividend with a zero divisor
// reports division by zero. The divisor comparison is exact.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &DivisionByZeroError{Dividend: a}
	}
	if a < 0 || b < 0 {
		op := a
		if a >= 0 {
			op = b
		}
		return 0, &NegativeOperandError{Operand: op}
	}
	return a / b, nil
}

// SquareRoot returns the non-negative real square root of x.
func SquareRoot(x float64) (float64, error) {
	if x < 0 {
		return 0, &NegativeOperandError{Operand: x}
	}
	return math.Sqrt(x), nil
}
