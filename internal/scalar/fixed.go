package scalar

import (
	"math"
	"math/big"
)

// fixedScale is the scaling factor K described by the specification: a
// value v stored internally denotes the rational v/K.
const fixedScale = 10_000_000

var (
	bigScale = big.NewInt(fixedScale)
	bigTwo   = big.NewInt(2)

	// fixedMax/fixedMin bound the internal representation to a signed
	// 128-bit integer, matching the reference implementation's
	// __int128_t. big.Int itself has no such bound, so every arithmetic
	// op that can grow the magnitude checks against these explicitly and
	// panics with ErrArithmeticOverflow if exceeded -- per the
	// specification, overflow "indicates a bug in scalar range sizing"
	// and is treated as a program-fatal condition, not a recoverable one.
	fixedMax = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	fixedMin = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Fixed is a deterministic fixed-point Number, scaled by fixedScale over
// a (conceptually) 128-bit signed integer. Two Fixed values compare and
// arithmetic-combine bit-for-bit identically across platforms, which is
// the property the reference source built FixedPoint for: simulations
// can be replayed/compared without float rounding divergence.
type Fixed struct {
	v big.Int
}

// FixedEpsilon is the smallest representable positive Fixed, 1/K.
var FixedEpsilon = fixedFromRaw(big.NewInt(1))

func fixedFromRaw(v *big.Int) Fixed {
	checkBounds(v)
	var f Fixed
	f.v.Set(v)
	return f
}

func checkBounds(v *big.Int) {
	if v.Cmp(fixedMax) > 0 || v.Cmp(fixedMin) < 0 {
		panic(ErrArithmeticOverflow)
	}
}

// NewFixedFromInt64 constructs an exact Fixed from a whole number.
func NewFixedFromInt64(whole int64) Fixed {
	v := new(big.Int).Mul(big.NewInt(whole), bigScale)
	return fixedFromRaw(v)
}

// NewFixedFromFloat64 constructs a Fixed approximating f, splitting the
// integer and fractional parts before scaling so that the fractional
// part retains full K-precision instead of compounding float rounding
// on the combined magnitude.
func NewFixedFromFloat64(f float64) Fixed {
	whole, frac := math.Modf(f)
	v := new(big.Int).Mul(big.NewInt(int64(whole)), bigScale)
	fracScaled := big.NewInt(int64(math.Round(frac * fixedScale)))
	v.Add(v, fracScaled)
	return fixedFromRaw(v)
}

func (f Fixed) Add(o Fixed) Fixed {
	v := new(big.Int).Add(&f.v, &o.v)
	return fixedFromRaw(v)
}

func (f Fixed) Sub(o Fixed) Fixed {
	v := new(big.Int).Sub(&f.v, &o.v)
	return fixedFromRaw(v)
}

// Mul multiplies then divides by K, using a wide intermediate so the
// pre-division product never loses precision.
func (f Fixed) Mul(o Fixed) Fixed {
	product := new(big.Int).Mul(&f.v, &o.v)
	v := new(big.Int).Quo(product, bigScale)
	return fixedFromRaw(v)
}

// Div multiplies the dividend by K before dividing, for the same reason
// Mul widens first.
func (f Fixed) Div(o Fixed) (Fixed, error) {
	if o.v.Sign() == 0 {
		return Fixed{}, ErrDivisionByZero
	}
	scaled := new(big.Int).Mul(&f.v, bigScale)
	v := new(big.Int).Quo(scaled, &o.v)
	return fixedFromRaw(v), nil
}

func (f Fixed) Pow(n int) Fixed {
	switch n {
	case 0:
		return NewFixedFromInt64(1)
	case -1:
		result, err := NewFixedFromInt64(1).Div(f)
		if err != nil {
			panic(err)
		}
		return result
	default:
		result := f
		for i := 1; i < n; i++ {
			result = result.Mul(f)
		}
		return result
	}
}

// Sqrt seeds Newton-Raphson from a precomputed range table keyed on the
// integer part of x (the same strategy as the reference's
// util/range.h::locate_root), then iterates r <- r - (r*r - x)/(2r)
// until the step magnitude is at most one internal unit (1/K).
func (f Fixed) Sqrt() (Fixed, error) {
	if f.v.Sign() < 0 {
		return Fixed{}, ErrArithmeticOverflow
	}
	if f.v.Sign() == 0 {
		return Fixed{}, nil
	}

	whole := new(big.Int).Quo(&f.v, bigScale).Int64()
	r := NewFixedFromFloat64(seedSqrt(whole))
	if r.v.Sign() == 0 {
		r = FixedEpsilon
	}

	for i := 0; i < 64; i++ {
		rSquared := r.Mul(r)
		numerator := rSquared.Sub(f)
		denominator := bigTwoFixed.Mul(r)
		step, err := numerator.Div(denominator)
		if err != nil {
			return Fixed{}, err
		}
		next := r.Sub(step)
		delta := next.Sub(r).Abs()
		r = next
		if delta.Cmp(FixedEpsilon) <= 0 {
			break
		}
	}
	return r, nil
}

var bigTwoFixed = NewFixedFromInt64(2)

// Sin/Cos round-trip through float64, as the specification allows: the
// reference implementation does the same rather than implementing a
// fixed-point CORDIC or Taylor series, accepting up to 1e-4 error.
func (f Fixed) Sin() Fixed { return NewFixedFromFloat64(math.Sin(f.Float64())) }
func (f Fixed) Cos() Fixed { return NewFixedFromFloat64(math.Cos(f.Float64())) }

func (f Fixed) Abs() Fixed {
	v := new(big.Int).Abs(&f.v)
	return fixedFromRaw(v)
}

func (f Fixed) Neg() Fixed {
	v := new(big.Int).Neg(&f.v)
	return fixedFromRaw(v)
}

func (f Fixed) Cmp(o Fixed) int {
	return f.v.Cmp(&o.v)
}

func (f Fixed) FromInt64(n int64) Fixed     { return NewFixedFromInt64(n) }
func (f Fixed) FromFloat64(v float64) Fixed { return NewFixedFromFloat64(v) }

func (f Fixed) Float64() float64 {
	whole := new(big.Int).Quo(&f.v, bigScale)
	mantissa := new(big.Int).Rem(&f.v, bigScale)
	wf, _ := new(big.Float).SetInt(whole).Float64()
	mf, _ := new(big.Float).SetInt(mantissa).Float64()
	return wf + mf/float64(fixedScale)
}

// String renders the exact decimal form at K's precision.
func (f Fixed) String() string {
	negative := f.v.Sign() < 0
	abs := new(big.Int).Abs(&f.v)
	whole := new(big.Int).Quo(abs, bigScale)
	mantissa := new(big.Int).Rem(abs, bigScale)

	digits := fmtPadded(mantissa.String(), fixedPrecision)
	sign := ""
	if negative {
		sign = "-"
	}
	return sign + whole.String() + "." + digits
}

const fixedPrecision = 7 // digits of precision carried by fixedScale = 1e7

func fmtPadded(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// seedSqrt returns an initial Newton-Raphson guess for sqrt(x) given the
// integer part of x, by locating x within a table of exponentially
// growing ranges and returning that range's precomputed average root --
// mirroring the binary search over Range{min,max,avg} bins in the
// reference's util/range.h.
func seedSqrt(xWhole int64) float64 {
	ranges := sqrtSeedRanges
	lo, hi := 0, len(ranges)-1
	idx := len(ranges) / 2
	for {
		r := ranges[idx]
		if xWhole >= r.min && xWhole <= r.max {
			return r.avg
		}
		if xWhole < r.min {
			hi = idx
		} else {
			lo = idx
		}
		next := (lo + hi) / 2
		if next == idx {
			return r.avg
		}
		idx = next
	}
}

type sqrtRange struct {
	min, max int64
	avg      float64
}

var sqrtSeedRanges = buildSqrtSeedRanges()

// buildSqrtSeedRanges constructs exponentially doubling bins covering
// the magnitudes this simulator's scalar values actually take (box
// widths ~1e3, squared velocities ~1e4), with a final catch-all bin for
// anything larger.
func buildSqrtSeedRanges() []sqrtRange {
	var ranges []sqrtRange
	lo := int64(0)
	hi := int64(1)
	for hi < 1_000_000_000 {
		mid := (float64(lo) + float64(hi)) / 2
		ranges = append(ranges, sqrtRange{min: lo, max: hi, avg: math.Sqrt(mid)})
		lo = hi
		hi *= 2
	}
	ranges = append(ranges, sqrtRange{min: lo, max: math.MaxInt64, avg: math.Sqrt(float64(lo))})
	return ranges
}
