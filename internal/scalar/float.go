package scalar

import (
	"math"
	"strconv"
)

// Float64 is the Number[Float64] realization backed by a float64.
type Float64 float64

func NewFloat64(v float64) Float64 { return Float64(v) }

func (f Float64) Add(o Float64) Float64 { return f + o }
func (f Float64) Sub(o Float64) Float64 { return f - o }
func (f Float64) Mul(o Float64) Float64 { return f * o }

func (f Float64) Div(o Float64) (Float64, error) {
	if o == 0 {
		return 0, ErrDivisionByZero
	}
	return f / o, nil
}

func (f Float64) Sqrt() (Float64, error) {
	if f < 0 {
		return 0, ErrArithmeticOverflow
	}
	return Float64(math.Sqrt(float64(f))), nil
}

func (f Float64) Pow(n int) Float64 {
	switch n {
	case 0:
		return 1
	case -1:
		return 1 / f
	default:
		return Float64(math.Pow(float64(f), float64(n)))
	}
}

func (f Float64) Sin() Float64 { return Float64(math.Sin(float64(f))) }
func (f Float64) Cos() Float64 { return Float64(math.Cos(float64(f))) }
func (f Float64) Abs() Float64 { return Float64(math.Abs(float64(f))) }
func (f Float64) Neg() Float64 { return -f }

func (f Float64) Cmp(o Float64) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

func (f Float64) Float64() float64          { return float64(f) }
func (f Float64) FromInt64(n int64) Float64 { return Float64(n) }
func (f Float64) FromFloat64(v float64) Float64 { return Float64(v) }
func (f Float64) String() string            { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Float32 is the Number[Float32] realization backed by a float32.
type Float32 float32

func NewFloat32(v float32) Float32 { return Float32(v) }

func (f Float32) Add(o Float32) Float32 { return f + o }
func (f Float32) Sub(o Float32) Float32 { return f - o }
func (f Float32) Mul(o Float32) Float32 { return f * o }

func (f Float32) Div(o Float32) (Float32, error) {
	if o == 0 {
		return 0, ErrDivisionByZero
	}
	return f / o, nil
}

func (f Float32) Sqrt() (Float32, error) {
	if f < 0 {
		return 0, ErrArithmeticOverflow
	}
	return Float32(math.Sqrt(float64(f))), nil
}

func (f Float32) Pow(n int) Float32 {
	switch n {
	case 0:
		return 1
	case -1:
		return 1 / f
	default:
		return Float32(math.Pow(float64(f), float64(n)))
	}
}

func (f Float32) Sin() Float32 { return Float32(math.Sin(float64(f))) }
func (f Float32) Cos() Float32 { return Float32(math.Cos(float64(f))) }
func (f Float32) Abs() Float32 { return Float32(math.Abs(float64(f))) }
func (f Float32) Neg() Float32 { return -f }

func (f Float32) Cmp(o Float32) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

func (f Float32) Float64() float64          { return float64(f) }
func (f Float32) FromInt64(n int64) Float32 { return Float32(n) }
func (f Float32) FromFloat64(v float64) Float32 { return Float32(v) }
func (f Float32) String() string            { return strconv.FormatFloat(float64(f), 'g', -1, 32) }
