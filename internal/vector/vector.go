// Package vector implements Vector3, a three-component vector
// parameterized over a scalar.Number, with a lazily-computed and cached
// magnitude. This generalizes the teacher's eager, float64-only Vec3
// (internal/physics/vec3.go in the reference repo) to the compile-time
// scalar parameterization the physics core requires.
package vector

import "github.com/satisfiedghost/elasticbox/internal/scalar"

// Vector3 is a triple (x, y, z) over scalar type T. The zero value is
// the zero vector. Magnitude caching means Vector3 should be passed by
// value and reconstructed on mutation, not mutated in place by callers
// outside this package -- exactly as the reference's Vector<T> requires
// its `m_magnitude` cache be invalidated on construction/assignment.
type Vector3[T scalar.Number[T]] struct {
	x, y, z T

	magnitude      T
	magnitudeValid bool
}

// New constructs a Vector3 with a not-yet-computed magnitude cache.
func New[T scalar.Number[T]](x, y, z T) Vector3[T] {
	return Vector3[T]{x: x, y: y, z: z}
}

func (v Vector3[T]) X() T { return v.x }
func (v Vector3[T]) Y() T { return v.y }
func (v Vector3[T]) Z() T { return v.z }

// Magnitude returns sqrt(x^2+y^2+z^2), computing and caching it on first
// call. Because Vector3 is immutable once constructed, every subsequent
// call on a copy of this value returns the cached result without
// recomputing the sqrt -- the point being that many vectors (e.g. a
// velocity untouched by a bounce this tick) are never queried for
// magnitude at all, so eager computation would waste a sqrt + three
// multiplies on the common case.
func (v *Vector3[T]) Magnitude() T {
	if v.magnitudeValid {
		return v.magnitude
	}
	sumSquares := v.x.Mul(v.x).Add(v.y.Mul(v.y)).Add(v.z.Mul(v.z))
	m, err := sumSquares.Sqrt()
	if err != nil {
		panic(err)
	}
	v.magnitude = m
	v.magnitudeValid = true
	return m
}

// Add returns the componentwise sum.
func (v Vector3[T]) Add(o Vector3[T]) Vector3[T] {
	return New(v.x.Add(o.x), v.y.Add(o.y), v.z.Add(o.z))
}

// Sub returns the componentwise difference.
func (v Vector3[T]) Sub(o Vector3[T]) Vector3[T] {
	return New(v.x.Sub(o.x), v.y.Sub(o.y), v.z.Sub(o.z))
}

// Scale returns the vector scaled by a scalar.
func (v Vector3[T]) Scale(s T) Vector3[T] {
	return New(v.x.Mul(s), v.y.Mul(s), v.z.Mul(s))
}

// Div returns the vector divided by a scalar.
func (v Vector3[T]) Div(s T) (Vector3[T], error) {
	x, err := v.x.Div(s)
	if err != nil {
		return Vector3[T]{}, err
	}
	y, err := v.y.Div(s)
	if err != nil {
		return Vector3[T]{}, err
	}
	z, err := v.z.Div(s)
	if err != nil {
		return Vector3[T]{}, err
	}
	return New(x, y, z), nil
}

// Mul is the componentwise product, used only for axis masks (e.g. a
// wall's normal or velocity-inversion vector) -- not a mathematical
// vector product.
func (v Vector3[T]) Mul(o Vector3[T]) Vector3[T] {
	return New(v.x.Mul(o.x), v.y.Mul(o.y), v.z.Mul(o.z))
}

// Dot returns the scalar dot product.
func (v Vector3[T]) Dot(o Vector3[T]) T {
	return v.x.Mul(o.x).Add(v.y.Mul(o.y)).Add(v.z.Mul(o.z))
}

// Cross returns the standard cross product.
func (v Vector3[T]) Cross(o Vector3[T]) Vector3[T] {
	return New(
		v.y.Mul(o.z).Sub(v.z.Mul(o.y)),
		v.z.Mul(o.x).Sub(v.x.Mul(o.z)),
		v.x.Mul(o.y).Sub(v.y.Mul(o.x)),
	)
}

// Unit returns self / magnitude.
func (v Vector3[T]) Unit() (Vector3[T], error) {
	m := v.Magnitude()
	return v.Div(m)
}

// Absolute returns the componentwise absolute value.
func (v Vector3[T]) Absolute() Vector3[T] {
	return New(v.x.Abs(), v.y.Abs(), v.z.Abs())
}

// CollinearWithMagnitude returns a vector in the same direction as v,
// scaled so its magnitude equals otherMag: (otherMag / |v|) * v.
func (v Vector3[T]) CollinearWithMagnitude(otherMag T) (Vector3[T], error) {
	m := v.Magnitude()
	ratio, err := otherMag.Div(m)
	if err != nil {
		return Vector3[T]{}, err
	}
	return v.Scale(ratio), nil
}

// Sum returns x+y+z, used to collapse an axis-masked vector (e.g.
// velocity componentwise-multiplied by a wall's |normal|) down to the
// single relevant scalar component.
func (v Vector3[T]) Sum() T {
	return v.x.Add(v.y).Add(v.z)
}

// Equal reports componentwise equality.
func (v Vector3[T]) Equal(o Vector3[T]) bool {
	return v.x.Cmp(o.x) == 0 && v.y.Cmp(o.y) == 0 && v.z.Cmp(o.z) == 0
}

func (v Vector3[T]) String() string {
	return "{ " + v.x.String() + " : " + v.y.String() + " : " + v.z.String() + " }"
}
