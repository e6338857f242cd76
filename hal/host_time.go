package hal

import "time"

// Clock reports time since the run started.
type Clock interface {
	Now() time.Duration
}

type hostClock struct {
	start time.Time
}

func newHostClock() *hostClock { return &hostClock{start: time.Now()} }

func (c *hostClock) Now() time.Duration { return time.Since(c.start) }

// StepClock is a virtual clock that only moves when stepped. Headless runs
// use it so every frame sees the same delta.
type StepClock struct {
	step time.Duration
	now  time.Duration
}

// NewStepClock returns a clock that advances by step per Advance.
func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{step: step}
}

func (c *StepClock) Now() time.Duration { return c.now }

// Advance moves the clock forward one step.
func (c *StepClock) Advance() { c.now += c.step }
