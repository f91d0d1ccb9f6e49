// Package simulation drives the per-tick loop described by the
// reference implementation's context/simulation.h and
// src/simulation/simulation.cpp: apply gravity, integrate, resolve
// collisions and bounces, publish a snapshot, repeat. Grounded
// structurally on the teacher's internal/simulation.Simulation (the
// same role -- owner of particle state and the per-frame Update -- but
// generalized from a GR/FFT-gravity field solver to the rigid-body
// collision resolver this repository implements.
package simulation

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/satisfiedghost/elasticbox/internal/config"
	"github.com/satisfiedghost/elasticbox/internal/particle"
	"github.com/satisfiedghost/elasticbox/internal/physics"
	"github.com/satisfiedghost/elasticbox/internal/ring"
	"github.com/satisfiedghost/elasticbox/internal/scalar"
	"github.com/satisfiedghost/elasticbox/internal/vector"
	"github.com/satisfiedghost/elasticbox/internal/wall"
)

// State is the simulator's coarse-grained state machine position,
// per the spec's Idle -> Stepping -> Publishing -> Idle cycle.
type State int

const (
	Idle State = iota
	Stepping
	Publishing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Stepping:
		return "Stepping"
	case Publishing:
		return "Publishing"
	default:
		return "Unknown"
	}
}

// Counters tallies tick and collision/bounce outcomes for periodic
// reporting. Simulator-local, guarded by a plain mutex since readers
// are debugging/logging code, not a hot path -- the same tradeoff the
// reference repository's gpu.FallbackManager makes for its own
// low-frequency state (internal/gpu/fallback.go).
type Counters struct {
	Ticks                 uint64
	CollisionSuccess      uint64
	CollisionCorrected    uint64
	CollisionInconsistent uint64
	Bounces               uint64
}

// Simulation owns particle state, the box boundaries, the physics
// context, and the publish ring. It implements physics.View so the
// physics package can read back the last published snapshot during
// collision repair without holding a pointer to Simulation itself.
type Simulation[T scalar.Number[T]] struct {
	cfg *config.Config

	walls   [6]wall.Wall[T]
	ring    *ring.SnapshotRing[T]
	physics *physics.Context[T]

	mu       sync.RWMutex
	counters Counters
	state    State

	nextUID uint64

	lastTick      time.Time
	stepRequested bool
	paused        bool
}

// New builds a Simulation from cfg: it constructs the six walls, the
// physics context, generates cfg.NumParticles particles per the
// configured sampling ranges (rejecting overlapping placements up to a
// fixed retry budget), and publishes the initial state so the first
// Latest() call never returns an empty slice.
func New[T scalar.Number[T]](cfg *config.Config) (*Simulation[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var zero T
	s := &Simulation[T]{
		cfg:  cfg,
		ring: ring.New[T](),
	}
	s.walls = wall.Boundaries(
		zero.FromInt64(int64(cfg.BoxWidth)),
		zero.FromInt64(int64(cfg.BoxHeight)),
		zero.FromInt64(int64(cfg.BoxDepth)),
	)
	s.physics = physics.NewContext(physics.Settings[T]{
		Gravity:         zero.FromFloat64(cfg.Gravity),
		GravityAngle:    zero.FromFloat64(cfg.GravityAngle),
		EnergyTolerance: zero.FromFloat64(cfg.EnergyTolerance),
		TickDuration:    cfg.TickDuration,
	}, s)

	if err := s.generateParticles(); err != nil {
		return nil, err
	}
	s.ring.Put()

	return s, nil
}

// LastPublished and Boundaries satisfy physics.View.
func (s *Simulation[T]) LastPublished() []particle.Particle[T] { return s.ring.Latest() }
func (s *Simulation[T]) Boundaries() [6]wall.Wall[T]           { return s.walls }

// Particles returns the most recently published snapshot -- the
// reference's get_particles(), a reference to ring.latest() valid
// until the next publication.
func (s *Simulation[T]) Particles() []particle.Particle[T] { return s.ring.Latest() }

// Counters returns a copy of the current tick/collision/bounce tallies.
func (s *Simulation[T]) Counters() Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters
}

// SetPaused toggles whether Tick requires a single-step trigger.
func (s *Simulation[T]) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// RequestStep arms a single Stepping pass the next time Tick is called
// while paused.
func (s *Simulation[T]) RequestStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepRequested = true
}

// generateParticles samples cfg.NumParticles particles into the ring's
// working buffer, rejecting placements that violate OverlapDetection
// against already-placed particles.
func (s *Simulation[T]) generateParticles() error {
	const maxAttemptsPerParticle = 1000

	var placed []particle.Particle[T]
	for i := 0; i < s.cfg.NumParticles; i++ {
		var p *particle.Particle[T]
		for attempt := 0; attempt < maxAttemptsPerParticle; attempt++ {
			candidate, err := s.sampleParticle()
			if err != nil {
				return err
			}
			if !s.overlaps(candidate, placed) {
				p = candidate
				break
			}
		}
		if p == nil {
			p, _ = s.sampleParticle() // accept the overlap rather than fail startup
		}

		s.nextUID++
		p.LatchUID(s.nextUID)
		placed = append(placed, *p)
		s.ring.PushBack(p)
	}
	return nil
}

func (s *Simulation[T]) overlaps(p *particle.Particle[T], placed []particle.Particle[T]) bool {
	var zero T
	threshold := zero.FromFloat64(s.cfg.OverlapDetection)
	for i := range placed {
		minDist := p.Radius().Add(placed[i].Radius()).Mul(threshold)
		delta := p.Position().Sub(placed[i].Position())
		if delta.Magnitude().Cmp(minDist) < 0 {
			return true
		}
	}
	return false
}

func (s *Simulation[T]) sampleParticle() (*particle.Particle[T], error) {
	var zero T
	cfg := s.cfg

	halfW := float64(cfg.BoxWidth) / 2
	halfH := float64(cfg.BoxHeight) / 2
	halfD := float64(cfg.BoxDepth) / 2

	pos := vector.New(
		zero.FromFloat64((rand.Float64()*2-1)*halfW),
		zero.FromFloat64((rand.Float64()*2-1)*halfH),
		zero.FromFloat64((rand.Float64()*2-1)*halfD),
	)

	speed := sample(cfg.VMin, cfg.VMax, cfg.VAll)
	if cfg.DisplayMode {
		speed = 0
	}
	angleDeg := rand.Float64() * 360
	if cfg.StartAngle != nil {
		angleDeg = *cfg.StartAngle
	}
	angleRad := angleDeg * math.Pi / 180
	vel := vector.New(
		zero.FromFloat64(speed*math.Cos(angleRad)),
		zero.FromFloat64(speed*math.Sin(angleRad)),
		zero,
	)

	mass := sample(cfg.MassMin, cfg.MassMax, cfg.MassAll)
	radius := sample(cfg.RadiusMin, cfg.RadiusMax, cfg.RadiusAll)

	return particle.New(pos, vel, zero.FromFloat64(radius), zero.FromFloat64(mass))
}

func sample(min, max float64, all *float64) float64 {
	if all != nil {
		return *all
	}
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}

// Tick runs one iteration of the loop described in the reference
// source's simulation.cpp run(): gravity, integration, pairwise
// collision, wall bounce, publish. It blocks only on the ring's
// GetWriteable call, per the concurrency model's single suspension
// point for the simulator thread.
func (s *Simulation[T]) Tick(now time.Time) {
	s.mu.Lock()
	paused := s.paused
	step := s.stepRequested
	s.mu.Unlock()

	if paused && !step {
		return
	}

	elapsed := now.Sub(s.lastTick)
	shouldStep := elapsed >= s.cfg.TickDuration || s.cfg.FreeRun || step
	if !shouldStep {
		return
	}

	s.setState(Stepping)

	var working []*particle.Particle[T]
	for {
		w, err := s.ring.GetWriteable()
		if err == nil {
			working = w
			break
		}
		time.Sleep(50 * time.Microsecond)
	}

	s.mu.Lock()
	s.stepRequested = false
	s.mu.Unlock()
	s.lastTick = now

	for _, p := range working {
		s.physics.Gravity(p, s.cfg.TickDuration)
		s.physics.Step(p, s.cfg.TickDuration)
	}

	var success, corrected, inconsistent, bounces uint64
	for j := 0; j < len(working); j++ {
		for k := j + 1; k < len(working); k++ {
			switch s.physics.Collide(working[j], working[k]) {
			case physics.Success:
				success++
			case physics.Corrected:
				corrected++
			case physics.Inconsistent:
				inconsistent++
			}
		}
	}

	for _, p := range working {
		for _, w := range s.walls {
			if s.physics.Bounce(p, w) == physics.Success {
				bounces++
			}
		}
	}

	s.setState(Publishing)
	s.ring.Put()

	s.mu.Lock()
	s.counters.Ticks++
	s.counters.CollisionSuccess += success
	s.counters.CollisionCorrected += corrected
	s.counters.CollisionInconsistent += inconsistent
	s.counters.Bounces += bounces
	s.mu.Unlock()

	s.setState(Idle)
}

func (s *Simulation[T]) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// StateString reports the current coarse-grained state, for diagnostic
// logging.
func (s *Simulation[T]) StateString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.String()
}
