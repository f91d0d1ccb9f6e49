package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satisfiedghost/elasticbox/internal/config"
	"github.com/satisfiedghost/elasticbox/internal/scalar"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.NumParticles = 6
	cfg.BoxWidth, cfg.BoxHeight, cfg.BoxDepth = 50, 50, 50
	cfg.TickDuration = time.Millisecond
	return cfg
}

func TestNewPublishesInitialParticles(t *testing.T) {
	sim, err := New[scalar.Float64](testConfig())
	require.NoError(t, err)
	assert.Len(t, sim.Particles(), 6)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.BoxWidth = 0
	_, err := New[scalar.Float64](cfg)
	assert.Error(t, err)
}

func TestTickAdvancesCountersOverManyIterations(t *testing.T) {
	sim, err := New[scalar.Float64](testConfig())
	require.NoError(t, err)

	now := time.Now()
	for i := 0; i < 500; i++ {
		now = now.Add(2 * time.Millisecond)
		sim.Tick(now)
	}

	assert.Greater(t, sim.Counters().Ticks, uint64(0))
	assert.Len(t, sim.Particles(), 6)
}

func TestPausedSimulationDoesNotTickWithoutStep(t *testing.T) {
	sim, err := New[scalar.Float64](testConfig())
	require.NoError(t, err)
	sim.SetPaused(true)

	now := time.Now().Add(time.Second)
	sim.Tick(now)
	assert.Equal(t, uint64(0), sim.Counters().Ticks, "ticked while paused without a step request")

	sim.RequestStep()
	sim.Tick(now.Add(time.Millisecond))
	assert.Equal(t, uint64(1), sim.Counters().Ticks, "did not advance on a single requested step")
}
