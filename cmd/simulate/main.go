// Command simulate drives the collision simulator headlessly: it
// constructs a Float64-scalar Simulation from the default
// configuration, runs its tick loop, and periodically logs counters.
// Grounded on the reference repository's render loop driver shape
// (internal/renderer/render_loop.go's timed Run loop) minus the
// raylib window -- this binary is the "info" / batch-run path the
// spec describes, not the interactive renderer.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/satisfiedghost/elasticbox/internal/config"
	"github.com/satisfiedghost/elasticbox/internal/scalar"
	"github.com/satisfiedghost/elasticbox/internal/simulation"
)

func main() {
	numParticles := flag.Int("particles", 0, "override the default particle count (0 = use default)")
	duration := flag.Duration("duration", 10*time.Second, "how long to run before exiting")
	info := flag.Bool("info", true, "periodically log tick/collision/bounce counters")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *numParticles > 0 {
		cfg.NumParticles = *numParticles
	}
	cfg.Info = *info

	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration invalid: %v", err)
	}

	sim, err := simulation.New[scalar.Float64](cfg)
	if err != nil {
		log.Fatalf("failed to start simulation: %v", err)
	}

	log.Printf("starting simulation: %d particles, box %dx%dx%d, tick %s",
		cfg.NumParticles, cfg.BoxWidth, cfg.BoxHeight, cfg.BoxDepth, cfg.TickDuration)

	var lastReport time.Time
	deadline := time.Now().Add(*duration)
	for time.Now().Before(deadline) {
		now := time.Now()
		sim.Tick(now)

		if cfg.Info && now.Sub(lastReport) >= time.Second {
			c := sim.Counters()
			log.Printf("ticks=%d success=%d corrected=%d inconsistent=%d bounces=%d",
				c.Ticks, c.CollisionSuccess, c.CollisionCorrected, c.CollisionInconsistent, c.Bounces)
			lastReport = now
		}
	}

	log.Printf("done: %+v", sim.Counters())
}
