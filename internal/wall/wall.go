// Package wall implements the six axis-aligned planes bounding the
// simulation box, ported from the reference implementation's
// internal/wall.h.
package wall

import (
	"github.com/satisfiedghost/elasticbox/internal/scalar"
	"github.com/satisfiedghost/elasticbox/internal/vector"
)

// Index identifies which of the six bounding planes a Wall is.
type Index int

const (
	Left Index = iota
	Right
	Bottom
	Top
	Back
	Front
	numWalls
)

func (i Index) String() string {
	switch i {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Bottom:
		return "BOTTOM"
	case Top:
		return "TOP"
	case Back:
		return "BACK"
	case Front:
		return "FRONT"
	default:
		return "UNKNOWN"
	}
}

// Wall is a pure value: a signed position along the axis it is normal
// to, an inward unit normal, and a velocity-inversion mask (one
// axis-matching component -1, the rest +1).
type Wall[T scalar.Number[T]] struct {
	index   Index
	pos     T
	normal  vector.Vector3[T]
	inverse vector.Vector3[T]
}

func New[T scalar.Number[T]](index Index, position T, normal, inverse vector.Vector3[T]) Wall[T] {
	return Wall[T]{index: index, pos: position, normal: normal, inverse: inverse}
}

func (w Wall[T]) Index() Index                { return w.index }
func (w Wall[T]) Position() T                 { return w.pos }
func (w Wall[T]) Normal() vector.Vector3[T]   { return w.normal }
func (w Wall[T]) Inverse() vector.Vector3[T]  { return w.inverse }

// Boundaries builds the six walls of a rectangular prism of the given
// full width/height/depth, centered on the origin -- the Go realization
// of the reference's SimulationContext::set_boundaries.
func Boundaries[T scalar.Number[T]](width, height, depth T) [6]Wall[T] {
	var zero T
	one := zero.FromInt64(1)
	negOne := one.Neg()

	half := func(v T) T {
		h, err := v.Div(zero.FromInt64(2))
		if err != nil {
			panic(err)
		}
		return h
	}

	xHalf, yHalf, zHalf := half(width), half(height), half(depth)

	var walls [6]Wall[T]
	walls[Left] = New(Left, xHalf.Neg(), vector.New(one, zero, zero), vector.New(negOne, one, one))
	walls[Right] = New(Right, xHalf, vector.New(negOne, zero, zero), vector.New(negOne, one, one))
	walls[Bottom] = New(Bottom, yHalf.Neg(), vector.New(zero, one, zero), vector.New(one, negOne, one))
	walls[Top] = New(Top, yHalf, vector.New(zero, negOne, zero), vector.New(one, negOne, one))
	walls[Back] = New(Back, zHalf.Neg(), vector.New(zero, zero, one), vector.New(one, one, negOne))
	walls[Front] = New(Front, zHalf, vector.New(zero, zero, negOne), vector.New(one, one, negOne))
	return walls
}
