// Package clock abstracts wall time so timed farm actions and the
// background sweeps can run against a virtual clock in tests.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	Since(t time.Time) time.Duration
}

type Real struct{}

func (Real) Now() time.Time                  { return time.Now() }
func (Real) Sleep(d time.Duration)           { time.Sleep(d) }
func (Real) Since(t time.Time) time.Duration { return time.Since(t) }

// Virtual is a manually advanced clock. Sleep advances it immediately, so a
// 30s plow completes without a wall-clock wait while timestamps still move.
type Virtual struct {
	mu  sync.Mutex
	now time.Time
}

func NewVirtual(start time.Time) *Virtual { return &Virtual{now: start} }

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) Sleep(d time.Duration) { v.Advance(d) }

func (v *Virtual) Since(t time.Time) time.Duration { return v.Now().Sub(t) }

func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	v.now = v.now.Add(d)
	v.mu.Unlock()
}
