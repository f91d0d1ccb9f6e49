package scalar

import (
	"math"
	"testing"
)

func TestAlgebraicLaws(t *testing.T) {
	t.Run("Float64", func(t *testing.T) { testAlgebraicLaws[Float64](t, func(n int64) Float64 { return Float64(n) }) })
	t.Run("Float32", func(t *testing.T) { testAlgebraicLaws[Float32](t, func(n int64) Float32 { return Float32(n) }) })
	t.Run("Fixed", func(t *testing.T) { testAlgebraicLaws[Fixed](t, func(n int64) Fixed { return NewFixedFromInt64(n) }) })
}

func testAlgebraicLaws[T Number[T]](t *testing.T, from func(int64) T) {
	a, b, c := from(3), from(5), from(7)

	if got := a.Add(b); got.Cmp(b.Add(a)) != 0 {
		t.Errorf("addition not commutative: %v vs %v", got, b.Add(a))
	}

	left := a.Add(b).Add(c)
	right := a.Add(b.Add(c))
	if left.Cmp(right) != 0 {
		t.Errorf("addition not associative: %v vs %v", left, right)
	}

	zero := from(0)
	if a.Add(zero).Cmp(a) != 0 {
		t.Errorf("zero is not additive identity: %v", a.Add(zero))
	}

	one := from(1)
	if a.Mul(one).Cmp(a) != 0 {
		t.Errorf("one is not multiplicative identity: %v", a.Mul(one))
	}

	quotient, err := a.Div(a)
	if err != nil {
		t.Fatalf("a/a returned error: %v", err)
	}
	if quotient.Cmp(one) != 0 {
		t.Errorf("a/a = %v, want 1", quotient)
	}

	if _, err := a.Div(zero); err != ErrDivisionByZero {
		t.Errorf("division by zero = %v, want ErrDivisionByZero", err)
	}
}

func TestSqrtAccuracy(t *testing.T) {
	inputs := []float64{0.25, 1, 2, 4, 9, 100, 1e4, 1e6}

	t.Run("Float64", func(t *testing.T) {
		for _, x := range inputs {
			got, err := Float64(x).Sqrt()
			if err != nil {
				t.Fatalf("Sqrt(%v) error: %v", x, err)
			}
			want := math.Sqrt(x)
			if math.Abs(got.Float64()-want) > 1e-9 {
				t.Errorf("Sqrt(%v) = %v, want %v", x, got, want)
			}
		}
	})

	t.Run("Fixed", func(t *testing.T) {
		for _, x := range inputs {
			got, err := NewFixedFromFloat64(x).Sqrt()
			if err != nil {
				t.Fatalf("Sqrt(%v) error: %v", x, err)
			}
			want := math.Sqrt(x)
			if math.Abs(got.Float64()-want) > 1e-3 {
				t.Errorf("Sqrt(%v) = %v, want ~%v", x, got.Float64(), want)
			}
		}
	})

	if _, err := Float64(-1).Sqrt(); err != ErrArithmeticOverflow {
		t.Errorf("Sqrt(-1) = %v, want ErrArithmeticOverflow", err)
	}
}

func TestFixedOverflowPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r != ErrArithmeticOverflow {
			t.Fatalf("expected panic ErrArithmeticOverflow, got %v", r)
		}
	}()

	huge := NewFixedFromInt64(1)
	for i := 0; i < 200; i++ {
		huge = huge.Mul(huge.Add(NewFixedFromInt64(2)))
	}
}

func TestFromInt64FromFloat64(t *testing.T) {
	var zero Fixed
	five := zero.FromInt64(5)
	if five.Float64() != 5 {
		t.Errorf("FromInt64(5).Float64() = %v, want 5", five.Float64())
	}

	half := zero.FromFloat64(0.5)
	if math.Abs(half.Float64()-0.5) > 1e-6 {
		t.Errorf("FromFloat64(0.5).Float64() = %v, want 0.5", half.Float64())
	}
}
