// Package render adapts the physics core's generic Vector3 to raylib's
// float32 Vector3, the boundary an external renderer reading the
// published snapshots crosses. Grounded on the reference repository's internal/physics/vec3.go
// ToRaylib/FromRaylib pair, generalized from a single float64 Vec3 to
// any scalar.Number instantiation via the lossy Float64() escape hatch
// every Number implementation provides.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/satisfiedghost/elasticbox/internal/scalar"
	"github.com/satisfiedghost/elasticbox/internal/vector"
)

// Vector3ToRaylib narrows v's components to float32 via the scalar's
// Float64 escape hatch. Only ever used at the render boundary; the
// physics core never calls this itself.
func Vector3ToRaylib[T scalar.Number[T]](v vector.Vector3[T]) rl.Vector3 {
	return rl.Vector3{
		X: float32(v.X().Float64()),
		Y: float32(v.Y().Float64()),
		Z: float32(v.Z().Float64()),
	}
}

// Vector3FromRaylib widens a raylib Vector3 into a Vector3[T] via T's
// FromFloat64 constructor, using zero as the type witness.
func Vector3FromRaylib[T scalar.Number[T]](v rl.Vector3, zero T) vector.Vector3[T] {
	return vector.New(
		zero.FromFloat64(float64(v.X)),
		zero.FromFloat64(float64(v.Y)),
		zero.FromFloat64(float64(v.Z)),
	)
}
