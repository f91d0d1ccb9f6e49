// Package config holds the simulator's runtime configuration: particle
// generation ranges, box dimensions, gravity, and the energy tolerance
// and tick duration the physics core uses. Shaped on the reference
// repository's internal/config (Config/DefaultConfig/Validate/Clone).
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrConfigurationInvalid wraps every Validate failure so callers (the
// driver binary) can test for it with errors.Is regardless of which
// field failed.
var ErrConfigurationInvalid = errors.New("config: configuration invalid")

// Config holds every tunable of a simulation run.
type Config struct {
	NumParticles int

	// Velocity generation range; VAll, if non-nil, overrides VMin/VMax
	// and assigns every particle the same speed.
	VMin, VMax float64
	VAll       *float64
	// StartAngle, if non-nil, gives every particle the same initial
	// heading (degrees); nil means a random heading per particle.
	StartAngle *float64

	MassMin, MassMax float64
	MassAll          *float64

	RadiusMin, RadiusMax float64
	RadiusAll            *float64

	Gravity      float64
	GravityAngle float64

	BoxWidth, BoxHeight, BoxDepth int

	// OverlapDetection is the minimum separation sought between
	// particle centers at generation time, as a fraction of the sum of
	// their radii. A particle that cannot be placed clear of the others
	// within the generator's retry budget is placed anyway.
	OverlapDetection float64

	DisplayMode bool
	Delay       time.Duration
	TraceUIDs   []uint64
	Info        bool

	TickDuration    time.Duration
	EnergyTolerance float64

	// FreeRun disables per-tick pacing: the simulation loop steps on
	// every call rather than waiting for TickDuration to elapse.
	FreeRun bool
}

// DefaultConfig returns the configuration the driver binary starts from
// absent any flags.
func DefaultConfig() *Config {
	return &Config{
		NumParticles: 10,

		VMin: 1.0,
		VMax: 5.0,

		MassMin: 1.0,
		MassMax: 10.0,

		RadiusMin: 1.0,
		RadiusMax: 3.0,

		Gravity:      0,
		GravityAngle: 270, // straight down

		BoxWidth:  200,
		BoxHeight: 200,
		BoxDepth:  200,

		OverlapDetection: 1.0,

		DisplayMode: false,
		Delay:       16 * time.Millisecond,
		Info:        false,

		TickDuration:    10 * time.Millisecond,
		EnergyTolerance: 0.1,

		FreeRun: false,
	}
}

// Validate reports the first configuration inconsistency found, each
// wrapped in ErrConfigurationInvalid so callers can classify the
// failure with errors.Is without string matching.
func (c *Config) Validate() error {
	if c.BoxWidth <= 0 || c.BoxHeight <= 0 || c.BoxDepth <= 0 {
		return fmt.Errorf("%w: box dimensions must be positive, got %dx%dx%d",
			ErrConfigurationInvalid, c.BoxWidth, c.BoxHeight, c.BoxDepth)
	}
	if c.NumParticles < 0 {
		return fmt.Errorf("%w: num particles must be non-negative, got %d",
			ErrConfigurationInvalid, c.NumParticles)
	}
	if c.MassMin > c.MassMax {
		return fmt.Errorf("%w: mass min %.4f exceeds mass max %.4f",
			ErrConfigurationInvalid, c.MassMin, c.MassMax)
	}
	if c.RadiusMin > c.RadiusMax {
		return fmt.Errorf("%w: radius min %.4f exceeds radius max %.4f",
			ErrConfigurationInvalid, c.RadiusMin, c.RadiusMax)
	}
	if c.VMin > c.VMax {
		return fmt.Errorf("%w: velocity min %.4f exceeds velocity max %.4f",
			ErrConfigurationInvalid, c.VMin, c.VMax)
	}
	if c.TickDuration <= 0 {
		return fmt.Errorf("%w: tick duration must be positive, got %s",
			ErrConfigurationInvalid, c.TickDuration)
	}
	if c.EnergyTolerance < 0 {
		return fmt.Errorf("%w: energy tolerance must be non-negative, got %.6f",
			ErrConfigurationInvalid, c.EnergyTolerance)
	}
	return nil
}

// Clone returns a deep copy: the pointer and slice fields are copied
// rather than shared, so mutating the clone never affects the original.
func (c *Config) Clone() *Config {
	clone := *c
	if c.VAll != nil {
		v := *c.VAll
		clone.VAll = &v
	}
	if c.StartAngle != nil {
		a := *c.StartAngle
		clone.StartAngle = &a
	}
	if c.MassAll != nil {
		m := *c.MassAll
		clone.MassAll = &m
	}
	if c.RadiusAll != nil {
		r := *c.RadiusAll
		clone.RadiusAll = &r
	}
	if c.TraceUIDs != nil {
		clone.TraceUIDs = make([]uint64, len(c.TraceUIDs))
		copy(clone.TraceUIDs, c.TraceUIDs)
	}
	return &clone
}
