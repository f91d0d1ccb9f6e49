// Package scalar provides the numeric substrate the rest of the physics
// core is parameterized over. Three concrete types satisfy Number:
// Float32, Float64, and Fixed, a deterministic fixed-point type backed
// by a scaled big.Int.
package scalar

import "errors"

// ErrDivisionByZero is returned when dividing by the additive identity.
var ErrDivisionByZero = errors.New("scalar: division by zero")

// ErrArithmeticOverflow signals a result outside the representable
// domain. Every Number's Sqrt returns it for a negative input; Fixed's
// arithmetic panics with it when a result exceeds the 128-bit bound,
// which indicates a bug in scalar range sizing.
var ErrArithmeticOverflow = errors.New("scalar: arithmetic overflow")

// Number is a self-referential constraint: every concrete scalar type T
// implements arithmetic and transcendentals returning T, so the rest of
// the physics core (Vector3[T], Particle[T], ...) can be written once
// and instantiated per scalar type at compile time instead of relying on
// interface dispatch for the hot collision path.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) (T, error)
	Sqrt() (T, error)
	// Pow raises the receiver to an integer power. Only -1, 0, and 2 are
	// required by the physics core.
	Pow(n int) T
	Sin() T
	Cos() T
	Abs() T
	Neg() T
	// FromInt64 constructs a new value of the same concrete type from a
	// whole number; the receiver's own value is irrelevant; it exists
	// only so generic code has a concrete type T to construct without
	// needing a constraint on T itself (Go generics can't call T(n)).
	FromInt64(n int64) T
	// FromFloat64 is FromInt64's counterpart for irrational constants
	// (e.g. pi) that can't be expressed exactly as a whole number.
	FromFloat64(f float64) T
	// Cmp returns -1, 0, or +1 as the receiver is less than, equal to, or
	// greater than other.
	Cmp(other T) int
	// Float64 exposes a lossy approximation, used only by callers that
	// need to interoperate with float64-only libraries (e.g. a renderer).
	Float64() float64
	String() string
}

// IsZero reports whether a Number compares equal to the zero value of
// its own type. zero must be the additive identity for T.
func IsZero[T Number[T]](v T, zero T) bool {
	return v.Cmp(zero) == 0
}
