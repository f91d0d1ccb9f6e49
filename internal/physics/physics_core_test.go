package physics

import (
	"math"
	"testing"
	"time"

	"github.com/satisfiedghost/elasticbox/internal/particle"
	"github.com/satisfiedghost/elasticbox/internal/scalar"
	"github.com/satisfiedghost/elasticbox/internal/vector"
	"github.com/satisfiedghost/elasticbox/internal/wall"
)

func f(v float64) scalar.Float64 { return scalar.Float64(v) }

// fakeView is a minimal physics.View for tests that never exercise the
// correction path (or that pre-seed the snapshot it reads from).
type fakeView struct {
	last       []particle.Particle[scalar.Float64]
	boundaries [6]wall.Wall[scalar.Float64]
}

func (v *fakeView) LastPublished() []particle.Particle[scalar.Float64] { return v.last }
func (v *fakeView) Boundaries() [6]wall.Wall[scalar.Float64]           { return v.boundaries }

func newTestParticle(t *testing.T, pos, vel vector.Vector3[scalar.Float64], radius, mass float64) *particle.Particle[scalar.Float64] {
	p, err := particle.New(pos, vel, f(radius), f(mass))
	if err != nil {
		t.Fatalf("particle.New() error: %v", err)
	}
	return p
}

func newTestContext(view View[scalar.Float64]) *Context[scalar.Float64] {
	return NewContext(Settings[scalar.Float64]{
		Gravity:         f(0),
		GravityAngle:    f(0),
		EnergyTolerance: f(0.1),
		TickDuration:    10 * time.Millisecond,
	}, view)
}

func TestManhattanGateEarlyOut(t *testing.T) {
	ctx := newTestContext(&fakeView{})

	a := newTestParticle(t, vector.New(f(0), f(0), f(0)), vector.New(f(0), f(0), f(0)), 1, 1)
	b := newTestParticle(t, vector.New(f(100), f(100), f(0)), vector.New(f(0), f(0), f(0)), 1, 1)

	if status := ctx.Collide(a, b); status != None {
		t.Errorf("Collide() on far-apart particles = %v, want None", status)
	}
}

func TestCollideMiss(t *testing.T) {
	ctx := newTestContext(&fakeView{})

	// Close in Manhattan distance but not within combined radius.
	a := newTestParticle(t, vector.New(f(0), f(0), f(0)), vector.New(f(0), f(0), f(0)), 1, 1)
	b := newTestParticle(t, vector.New(f(1.9), f(1.9), f(0)), vector.New(f(0), f(0), f(0)), 1, 1)

	if status := ctx.Collide(a, b); status != None {
		t.Errorf("Collide() on a near miss = %v, want None", status)
	}
}

func TestHeadOnEqualMassSwapsVelocity(t *testing.T) {
	ctx := newTestContext(&fakeView{})

	a := newTestParticle(t, vector.New(f(-1), f(0), f(0)), vector.New(f(1), f(0), f(0)), 1, 1)
	b := newTestParticle(t, vector.New(f(1), f(0), f(0)), vector.New(f(-1), f(0), f(0)), 1, 1)

	status := ctx.Collide(a, b)
	if status != Success {
		t.Fatalf("Collide() = %v, want Success", status)
	}

	if math.Abs(a.Velocity().X().Float64()-(-1)) > 1e-9 {
		t.Errorf("a.Velocity().X() = %v, want -1", a.Velocity().X())
	}
	if math.Abs(b.Velocity().X().Float64()-1) > 1e-9 {
		t.Errorf("b.Velocity().X() = %v, want 1", b.Velocity().X())
	}
}

func TestCollisionConservesEnergyWithinTolerance(t *testing.T) {
	ctx := newTestContext(&fakeView{})

	a := newTestParticle(t, vector.New(f(-0.5), f(0.1), f(0)), vector.New(f(2), f(-0.3), f(0)), 1, 1.5)
	b := newTestParticle(t, vector.New(f(0.6), f(-0.2), f(0)), vector.New(f(-1), f(0.2), f(0)), 1, 2.5)

	keBefore := a.KineticEnergy().Float64() + b.KineticEnergy().Float64()

	status := ctx.Collide(a, b)
	if status == Inconsistent {
		t.Fatal("Collide() reported Inconsistent for a clean elastic collision")
	}

	keAfter := a.KineticEnergy().Float64() + b.KineticEnergy().Float64()
	if math.Abs(keAfter-keBefore) > 0.1+1e-9 {
		t.Errorf("kinetic energy drifted by %v, want <= tolerance 0.1", math.Abs(keAfter-keBefore))
	}
}

func TestBounceSingleAxisPreservesMagnitude(t *testing.T) {
	ctx := newTestContext(&fakeView{})
	boundaries := wall.Boundaries(f(10), f(10), f(10))
	right := boundaries[wall.Right]

	p := newTestParticle(t, vector.New(f(4.5), f(0), f(0)), vector.New(f(1), f(0.5), f(0)), 1, 1)
	before := p.Velocity()

	status := ctx.Bounce(p, right)
	if status != Success {
		t.Fatalf("Bounce() = %v, want Success", status)
	}

	after := p.Velocity()
	if after.X().Float64() != -before.X().Float64() {
		t.Errorf("bounced X velocity = %v, want %v", after.X(), -before.X().Float64())
	}
	if after.Y().Cmp(before.Y()) != 0 {
		t.Errorf("bounce changed the Y component: %v vs %v", after.Y(), before.Y())
	}
	if math.Abs(after.Magnitude().Float64()-before.Magnitude().Float64()) > 1e-9 {
		t.Errorf("bounce changed |v|: %v vs %v", after.Magnitude(), before.Magnitude())
	}
}

func TestBounceNoOpWhenMovingAway(t *testing.T) {
	ctx := newTestContext(&fakeView{})
	boundaries := wall.Boundaries(f(10), f(10), f(10))
	right := boundaries[wall.Right]

	p := newTestParticle(t, vector.New(f(4.5), f(0), f(0)), vector.New(f(-1), f(0), f(0)), 1, 1)
	if status := ctx.Bounce(p, right); status != None {
		t.Errorf("Bounce() while moving away from wall = %v, want None", status)
	}
}

func TestBounceNoOpWhenOutOfRange(t *testing.T) {
	ctx := newTestContext(&fakeView{})
	boundaries := wall.Boundaries(f(10), f(10), f(10))
	right := boundaries[wall.Right]

	p := newTestParticle(t, vector.New(f(0), f(0), f(0)), vector.New(f(1), f(0), f(0)), 1, 1)
	if status := ctx.Bounce(p, right); status != None {
		t.Errorf("Bounce() far from wall = %v, want None", status)
	}
}

func TestGravityAndStep(t *testing.T) {
	ctx := NewContext(Settings[scalar.Float64]{
		Gravity:         f(10),
		GravityAngle:    f(270), // straight down
		EnergyTolerance: f(0.1),
		TickDuration:    time.Second,
	}, &fakeView{})

	p := newTestParticle(t, vector.New(f(0), f(0), f(0)), vector.New(f(0), f(0), f(0)), 1, 1)

	ctx.Gravity(p, time.Second)
	if math.Abs(p.Velocity().Y().Float64()-(-10)) > 1e-6 {
		t.Errorf("velocity Y after 1s of gravity = %v, want -10", p.Velocity().Y())
	}

	ctx.Step(p, time.Second)
	if math.Abs(p.Position().Y().Float64()-(-10)) > 1e-6 {
		t.Errorf("position Y after step = %v, want -10", p.Position().Y())
	}
}

func TestCorrectionRecoversFromClip(t *testing.T) {
	last := []particle.Particle[scalar.Float64]{
		*newTestParticle(t, vector.New(f(-1.005), f(0), f(0)), vector.New(f(2), f(0), f(0)), 1, 1),
		*newTestParticle(t, vector.New(f(1.005), f(0), f(0)), vector.New(f(-2), f(0), f(0)), 1, 1),
	}
	last[0].LatchUID(1)
	last[1].LatchUID(2)

	view := &fakeView{last: last, boundaries: wall.Boundaries(f(100), f(100), f(100))}
	ctx := NewContext(Settings[scalar.Float64]{
		Gravity:         f(0),
		GravityAngle:    f(0),
		EnergyTolerance: f(1e-6),
		TickDuration:    10 * time.Millisecond,
	}, view)

	// Simulate particles overlapping deeply this tick, as if the tick's
	// step overshot contact. Replaying from the snapshot (surfaces 0.01 apart) at
	// T/2 brings them into a clean head-on contact on the first sub-step.
	a := newTestParticle(t, vector.New(f(-0.2), f(0), f(0)), vector.New(f(2), f(0), f(0)), 1, 1)
	b := newTestParticle(t, vector.New(f(0.2), f(0), f(0)), vector.New(f(-2), f(0), f(0)), 1, 1)
	a.LatchUID(1)
	b.LatchUID(2)

	status := ctx.correct(a, b)
	if status != Corrected {
		t.Fatalf("correct() = %v, want Corrected", status)
	}
}
