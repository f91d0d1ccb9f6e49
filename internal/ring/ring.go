// Package ring implements the fixed-depth snapshot ring the simulator
// publishes post-tick particle state into, and a renderer reads from
// without ever blocking the simulator. Ported from the reference
// implementation's util/ring_buffer.h (ThreadedRingBuffer/ring_thread):
// a single producer (the simulator) and a single dedicated publisher
// goroutine, handed off through an atomic index and commit flag instead
// of locks.
package ring

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/satisfiedghost/elasticbox/internal/particle"
	"github.com/satisfiedghost/elasticbox/internal/scalar"
)

// Depth is the number of published slots retained. The correction
// subroutine only ever looks back one published state (Latest()), so
// Depth >= 2 is required; the rest of the depth exists purely to give
// a slow renderer latency tolerance, as in the reference source.
const Depth = 10

// pollInterval is how often the publisher goroutine checks for a
// pending commit, matching the reference's 50us cadence.
const pollInterval = 50 * time.Microsecond

// ErrNotReady is returned by GetWriteable when a commit is still
// pending; callers are expected to retry briefly.
var ErrNotReady = errors.New("ring: working buffer not ready, commit pending")

// SnapshotRing is safe for exactly one writer (the simulator) calling
// PushBack/GetWriteable/Put, and any number of readers calling Latest
// concurrently with the writer and with each other.
type SnapshotRing[T scalar.Number[T]] struct {
	working []*particle.Particle[T]

	slots [Depth][]particle.Particle[T]

	currentIdx      atomic.Uint32
	commitRequested atomic.Bool
}

// New constructs an empty ring and starts its dedicated publisher
// goroutine. The goroutine runs for the lifetime of the process, the
// same "detached thread" lifecycle the reference source uses.
func New[T scalar.Number[T]]() *SnapshotRing[T] {
	r := &SnapshotRing[T]{}
	go r.publish()
	return r
}

// PushBack appends p to both the working buffer and the current slot,
// so the first published state mirrors what the simulator saw before
// any tick ran. Used only during initial-condition construction, before
// the simulation loop starts pulling writeable handles.
func (r *SnapshotRing[T]) PushBack(p *particle.Particle[T]) {
	r.working = append(r.working, p)
	idx := r.currentIdx.Load()
	r.slots[idx] = append(r.slots[idx], *p)
}

// GetWriteable returns the working buffer for in-place mutation, or
// ErrNotReady if a commit from a prior Put is still pending. Once a
// handle is returned, the simulator may freely mutate the particles it
// points to until it calls Put again.
func (r *SnapshotRing[T]) GetWriteable() ([]*particle.Particle[T], error) {
	if r.commitRequested.Load() {
		return nil, ErrNotReady
	}
	return r.working, nil
}

// Put raises the commit request. Non-blocking: the publisher goroutine
// performs the actual copy asynchronously.
func (r *SnapshotRing[T]) Put() {
	r.commitRequested.Store(true)
}

// Latest returns a read-only view of the most recently published slot.
// The returned slice must not be mutated by the caller; it is shared
// with future readers until the next publication.
func (r *SnapshotRing[T]) Latest() []particle.Particle[T] {
	idx := r.currentIdx.Load()
	return r.slots[idx]
}

func (r *SnapshotRing[T]) nextIdx() uint32 {
	return (r.currentIdx.Load() + 1) % Depth
}

// publish is the single dedicated publisher: it polls the commit flag,
// and on seeing it raised copies the working buffer into the next slot,
// advances the index, then clears the flag. Because there is exactly
// one producer and one publisher, and readers only observe a new index
// after the copy that produced it has completed, this requires only
// atomic release/acquire ordering on (currentIdx, commitRequested), not
// a lock.
func (r *SnapshotRing[T]) publish() {
	for {
		if !r.commitRequested.Load() {
			time.Sleep(pollInterval)
			continue
		}

		next := r.nextIdx()
		snapshot := make([]particle.Particle[T], len(r.working))
		for i, p := range r.working {
			snapshot[i] = *p
		}
		r.slots[next] = snapshot

		r.currentIdx.Store(next)
		r.commitRequested.Store(false)
	}
}
