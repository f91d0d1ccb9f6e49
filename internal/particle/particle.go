// Package particle implements the rigid sphere the physics core moves
// and collides, parameterized over the same scalar.Number as vector.
// Grounded on the reference implementation's internal/particle.h and
// component/particle.h (velocity/position/mass/radius, a write-once
// UID, and lazily-cached kinetic energy and inverse mass).
package particle

import (
	"errors"

	"github.com/satisfiedghost/elasticbox/internal/scalar"
	"github.com/satisfiedghost/elasticbox/internal/util"
	"github.com/satisfiedghost/elasticbox/internal/vector"
)

// ErrNonPositiveMass is returned by New when mass <= 0 (invariant I1).
var ErrNonPositiveMass = errors.New("particle: mass must be positive")

// VelocitySetPolicy controls whether SetVelocity invalidates the cached
// kinetic energy.
type VelocitySetPolicy int

const (
	// Invalidate recomputes kinetic energy lazily on next access. Used
	// whenever velocity changes by an amount that could change |v|
	// (gravity, collision impulse).
	Invalidate VelocitySetPolicy = iota
	// Keep leaves the kinetic energy cache untouched. Reserved for the
	// wall-bounce case, where the new velocity is a sign-flip of one
	// component and |v| is unchanged by construction.
	Keep
)

// Particle is a rigid sphere: position, velocity, radius, mass, plus
// the UID latch and on-demand caches (I2, I3).
type Particle[T scalar.Number[T]] struct {
	position vector.Vector3[T]
	velocity vector.Vector3[T]
	radius   T
	mass     T

	inverseMass      T
	inverseMassValid bool

	kineticEnergy      T
	kineticEnergyValid bool

	uid util.Latch[uint64]
}

// New constructs a Particle. mass must be > 0 (invariant I1); the UID
// is unset (zero, unlatched) until the simulator latches it.
func New[T scalar.Number[T]](position, velocity vector.Vector3[T], radius, mass T) (*Particle[T], error) {
	var zero T
	if mass.Cmp(zero) <= 0 {
		return nil, ErrNonPositiveMass
	}
	return &Particle[T]{
		position: position,
		velocity: velocity,
		radius:   radius,
		mass:     mass,
	}, nil
}

func (p *Particle[T]) Position() vector.Vector3[T] { return p.position }
func (p *Particle[T]) Velocity() vector.Vector3[T] { return p.velocity }
func (p *Particle[T]) Radius() T                   { return p.radius }
func (p *Particle[T]) Mass() T                     { return p.mass }

// SetPosition writes position only; it never touches any cache.
func (p *Particle[T]) SetPosition(pos vector.Vector3[T]) {
	p.position = pos
}

// SetVelocity writes velocity, then invalidates the kinetic-energy
// cache iff policy is Invalidate (I3).
func (p *Particle[T]) SetVelocity(v vector.Vector3[T], policy VelocitySetPolicy) {
	p.velocity = v
	if policy == Invalidate {
		p.kineticEnergyValid = false
	}
}

// InverseMass returns 1/mass, computed and cached on first access.
func (p *Particle[T]) InverseMass() T {
	if p.inverseMassValid {
		return p.inverseMass
	}
	one := p.mass.FromInt64(1)
	inv, err := one.Div(p.mass)
	if err != nil {
		panic(err)
	}
	p.inverseMass = inv
	p.inverseMassValid = true
	return inv
}

// KineticEnergy returns 1/2 * m * |v|^2, computed and cached on first
// access after the last SetVelocity(..., Invalidate).
func (p *Particle[T]) KineticEnergy() T {
	if p.kineticEnergyValid {
		return p.kineticEnergy
	}
	speedSquared := p.velocity.Dot(p.velocity)
	half, err := speedSquared.FromInt64(1).Div(speedSquared.FromInt64(2))
	if err != nil {
		panic(err)
	}
	ke := half.Mul(p.mass).Mul(speedSquared)
	p.kineticEnergy = ke
	p.kineticEnergyValid = true
	return ke
}

// LatchUID assigns the particle's UID the first time it is called with
// u > 0; subsequent calls are no-ops (I2).
func (p *Particle[T]) LatchUID(u uint64) {
	if u == 0 {
		return
	}
	p.uid.Latch(u)
}

// UID returns the particle's latched UID, or 0 if unset.
func (p *Particle[T]) UID() uint64 {
	return p.uid.Get()
}
