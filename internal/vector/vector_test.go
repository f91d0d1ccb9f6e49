package vector

import (
	"math"
	"testing"

	"github.com/satisfiedghost/elasticbox/internal/scalar"
)

func f(v float64) scalar.Float64 { return scalar.Float64(v) }

func TestMagnitude(t *testing.T) {
	v := New(f(3), f(4), f(0))
	if got := v.Magnitude(); got.Float64() != 5 {
		t.Errorf("Magnitude() = %v, want 5", got)
	}
}

func TestMagnitudeIsLazyAndCached(t *testing.T) {
	v := New(f(3), f(4), f(0))
	if v.magnitudeValid {
		t.Fatal("magnitude computed before first call to Magnitude()")
	}
	first := v.Magnitude()
	if !v.magnitudeValid {
		t.Fatal("magnitudeValid not set after Magnitude()")
	}
	if second := v.Magnitude(); second.Cmp(first) != 0 {
		t.Errorf("second Magnitude() call = %v, want cached %v", second, first)
	}
}

func TestTriangleInequality(t *testing.T) {
	a := New(f(1), f(2), f(3))
	b := New(f(-4), f(0.5), f(2))

	sum := a.Add(b)
	if sum.Magnitude().Float64() > a.Magnitude().Float64()+b.Magnitude().Float64()+1e-9 {
		t.Errorf("|a+b| = %v exceeds |a|+|b| = %v", sum.Magnitude(), a.Magnitude().Float64()+b.Magnitude().Float64())
	}
}

func TestDotAndCross(t *testing.T) {
	x := New(f(1), f(0), f(0))
	y := New(f(0), f(1), f(0))

	if got := x.Dot(y); got.Float64() != 0 {
		t.Errorf("orthogonal dot product = %v, want 0", got)
	}

	z := x.Cross(y)
	if !z.Equal(New(f(0), f(0), f(1))) {
		t.Errorf("x cross y = %v, want (0,0,1)", z)
	}
}

func TestUnit(t *testing.T) {
	v := New(f(0), f(5), f(0))
	u, err := v.Unit()
	if err != nil {
		t.Fatalf("Unit() error: %v", err)
	}
	if math.Abs(u.Magnitude().Float64()-1) > 1e-9 {
		t.Errorf("unit vector magnitude = %v, want 1", u.Magnitude())
	}

	zero := New(f(0), f(0), f(0))
	if _, err := zero.Unit(); err == nil {
		t.Error("Unit() of the zero vector should error, got nil")
	}
}

func TestAbsolute(t *testing.T) {
	v := New(f(-1), f(2), f(-3))
	got := v.Absolute()
	if !got.Equal(New(f(1), f(2), f(3))) {
		t.Errorf("Absolute() = %v, want (1,2,3)", got)
	}
}
