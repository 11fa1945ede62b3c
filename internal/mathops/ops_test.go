package mathops

import (
	"errors"
	"fmt"
	"testing"
)

func TestDivideValid(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{100, 5, 20},
		{81, 9, 9},
		{200, 10, 20},
		{144, 12, 12},
		{0, 7, 0},
		{7, 2, 3.5},
	}
	for _, tc := range cases {
		got, err := Divide(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Divide(%v, %v): unexpected error %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Fatalf("Divide(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDivideByZero(t *testing.T) {
	for _, a := range []float64{50, 7, 0, -5} {
		_, err := Divide(a, 0)
		var dz *DivisionByZeroError
		if !errors.As(err, &dz) {
			t.Fatalf("Divide(%v, 0): got %v, want DivisionByZeroError", a, err)
		}
	}
}

// A negative dividend with a zero divisor reports division by zero, not
// a negative operand: the zero-divisor check runs first.
func TestDivideNegativeWithZeroDivisor(t *testing.T) {
	_, err := Divide(-5, 0)
	var neg *NegativeOperandError
	if errors.As(err, &neg) {
		t.Fatalf("Divide(-5, 0): classified as negative operand, want division by zero")
	}
	var dz *DivisionByZeroError
	if !errors.As(err, &dz) {
		t.Fatalf("Divide(-5, 0): got %v, want DivisionByZeroError", err)
	}
}

func TestDivideNegativeOperands(t *testing.T) {
	cases := []struct{ a, b float64 }{
		{-10, 2},
		{5, -2},
		{-50, -5},
	}
	for _, tc := range cases {
		_, err := Divide(tc.a, tc.b)
		var neg *NegativeOperandError
		if !errors.As(err, &neg) {
			t.Fatalf("Divide(%v, %v): got %v, want NegativeOperandError", tc.a, tc.b, err)
		}
	}
}

func TestSquareRoot(t *testing.T) {
	got, err := SquareRoot(81)
	if err != nil {
		t.Fatalf("SquareRoot(81): %v", err)
	}
	if got != 9 {
		t.Fatalf("SquareRoot(81) = %v, want 9", got)
	}

	_, err = SquareRoot(-1)
	var neg *NegativeOperandError
	if !errors.As(err, &neg) {
		t.Fatalf("SquareRoot(-1): got %v, want NegativeOperandError", err)
	}
}

func TestKindClassification(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&DivisionByZeroError{Dividend: 50}, KindDivisionByZero},
		{&NegativeOperandError{Operand: -10}, KindNegativeOperand},
		{fmt.Errorf("attempt: %w", &DivisionByZeroError{}), KindDivisionByZero},
		{errors.New("disk on fire"), KindUnexpected},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
	if IsDomainError(errors.New("nope")) {
		t.Fatal("IsDomainError: arbitrary error classified as domain error")
	}
	if !IsDomainError(&NegativeOperandError{}) {
		t.Fatal("IsDomainError: NegativeOperandError not recognized")
	}
}
