// Package tween runs fire-and-forget eased transitions of 3-axis values.
//
// A transition adds a fixed delta to its target over a duration. Progress is
// applied incrementally each frame, so other writers of the same value (idle
// rotation, for instance) keep their contribution.
package tween

import (
	"fmt"
	"strings"

	"scrollscene/quarkgl"
)

// Policy decides what happens when a transition is started on a target that
// is already animating. Transitions on different targets always run
// concurrently.
type Policy uint8

const (
	// Override drops the running transition and any queued ones; the new
	// transition starts from the current value.
	Override Policy = iota
	// Queue starts the new transition when the earlier ones finish.
	Queue
)

func (p Policy) String() string {
	switch p {
	case Override:
		return "override"
	case Queue:
		return "queue"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy resolves "override" or "queue".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "override":
		return Override, nil
	case "queue":
		return Queue, nil
	}
	return Override, fmt.Errorf("tween: unknown overlap policy %q", s)
}

// Transition is a relative change of a vector over time.
type Transition struct {
	Duration float64 // seconds
	Ease     Ease
	Delta    quarkgl.Vec3
}

type run struct {
	tr      Transition
	start   float64
	started bool
	applied float64 // eased progress already added to the target
}

type track struct {
	target  *quarkgl.Vec3
	running []*run // head is active, the rest wait (Queue policy only)
}

// Engine schedules and advances transitions. It is single-threaded: call
// Animate and Advance from the frame loop.
type Engine struct {
	policy Policy
	now    float64
	tracks []*track
}

// New returns an engine using the given overlap policy.
func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the overlap policy.
func (e *Engine) Policy() Policy { return e.policy }

// Animate schedules a transition on target. It begins on the next Advance.
func (e *Engine) Animate(target *quarkgl.Vec3, tr Transition) {
	if e == nil || target == nil {
		return
	}
	if tr.Ease == nil {
		tr.Ease = Linear
	}
	r := &run{tr: tr}
	tk := e.find(target)
	if tk == nil {
		e.tracks = append(e.tracks, &track{target: target, running: []*run{r}})
		return
	}
	switch e.policy {
	case Queue:
		tk.running = append(tk.running, r)
	default:
		tk.running = []*run{r}
	}
}

// Advance moves every transition to time now (seconds, same clock for all
// calls). Finished transitions are removed.
func (e *Engine) Advance(now float64) {
	if e == nil {
		return
	}
	if now < e.now {
		now = e.now
	}
	e.now = now

	kept := e.tracks[:0]
	for _, tr := range e.tracks {
		tr.advance(now)
		if len(tr.running) > 0 {
			kept = append(kept, tr)
		}
	}
	for i := len(kept); i < len(e.tracks); i++ {
		e.tracks[i] = nil
	}
	e.tracks = kept
}

func (tr *track) advance(now float64) {
	for len(tr.running) > 0 {
		r := tr.running[0]
		if !r.started {
			r.start = now
			r.started = true
		}
		p := 1.0
		if r.tr.Duration > 0 {
			p = (now - r.start) / r.tr.Duration
		}
		eased := 1.0
		if p < 1 {
			eased = r.tr.Ease(max(p, 0))
		}
		step := eased - r.applied
		r.applied = eased
		d := r.tr.Delta
		tr.target.X += quarkgl.Scalar(float64(d.X) * step)
		tr.target.Y += quarkgl.Scalar(float64(d.Y) * step)
		tr.target.Z += quarkgl.Scalar(float64(d.Z) * step)

		if p < 1 {
			return
		}
		end := r.start + max(r.tr.Duration, 0)
		tr.running[0] = nil
		tr.running = tr.running[1:]
		if len(tr.running) > 0 {
			// Queued runs start where the previous one ended.
			tr.running[0].start = end
			tr.running[0].started = true
		}
	}
}

func (e *Engine) find(target *quarkgl.Vec3) *track {
	for _, tr := range e.tracks {
		if tr.target == target {
			return tr
		}
	}
	return nil
}

// Pending returns how many transitions (running plus queued) target has.
func (e *Engine) Pending(target *quarkgl.Vec3) int {
	if e == nil {
		return 0
	}
	if tk := e.find(target); tk != nil {
		return len(tk.running)
	}
	return 0
}
