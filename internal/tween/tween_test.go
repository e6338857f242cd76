package tween

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollscene/quarkgl"
)

var burst = Transition{Duration: 1.5, Ease: PowerInOut(2), Delta: quarkgl.V3(6, 3, 1.5)}

func TestEaseEndpoints(t *testing.T) {
	for _, name := range []string{"none", "power1.in", "power2.out", "power2.inOut", "power3.inOut", "power4", "sine.in", "sine.out", "sine.inOut"} {
		e, err := Parse(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 0, e(0), 1e-12, name)
		assert.InDelta(t, 1, e(1), 1e-12, name)
	}
}

func TestPower2InOutIsCubic(t *testing.T) {
	e := PowerInOut(2)
	assert.InDelta(t, 4*0.25*0.25*0.25, e(0.25), 1e-12)
	assert.InDelta(t, 0.5, e(0.5), 1e-12)
	assert.InDelta(t, 1-0.5*0.5*0.5/2, e(0.75), 1e-12)
	// Symmetric around the midpoint.
	assert.InDelta(t, 1-e(0.2), e(0.8), 1e-12)
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("bounce.out")
	assert.ErrorIs(t, err, ErrUnknownEase)
	_, err = Parse("power2.sideways")
	assert.ErrorIs(t, err, ErrUnknownEase)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("Queue")
	require.NoError(t, err)
	assert.Equal(t, Queue, p)
	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Override, p)
	_, err = ParsePolicy("merge")
	assert.Error(t, err)
	assert.Equal(t, "queue", Queue.String())
}

func TestAnimateAppliesFullDeltaRelativeToStart(t *testing.T) {
	e := New(Override)
	rot := quarkgl.V3(1, 2, 3)
	e.Animate(&rot, burst)
	assert.Equal(t, 1, e.Pending(&rot))

	e.Advance(10) // begins here
	assert.Equal(t, quarkgl.V3(1, 2, 3), rot)

	e.Advance(10.75)
	assert.InDelta(t, 1+6*0.5, rot.X, 1e-5)
	assert.InDelta(t, 2+3*0.5, rot.Y, 1e-5)
	assert.InDelta(t, 3+1.5*0.5, rot.Z, 1e-5)

	e.Advance(12)
	assert.InDelta(t, 7, rot.X, 1e-5)
	assert.InDelta(t, 5, rot.Y, 1e-5)
	assert.InDelta(t, 4.5, rot.Z, 1e-5)
	assert.Zero(t, e.Pending(&rot))
}

func TestAnimateComposesWithOtherWriters(t *testing.T) {
	e := New(Override)
	var rot quarkgl.Vec3
	e.Animate(&rot, burst)
	e.Advance(0)
	for i := 1; i <= 30; i++ {
		rot.X += 0.01 // idle spin between frames
		e.Advance(float64(i) * 0.1)
	}
	assert.InDelta(t, 6+0.3, rot.X, 1e-4)
}

func TestDifferentTargetsRunConcurrently(t *testing.T) {
	e := New(Override)
	var a, b quarkgl.Vec3
	e.Animate(&a, burst)
	e.Advance(0)
	e.Advance(1)
	e.Animate(&b, burst)
	assert.Equal(t, 1, e.Pending(&a))
	assert.Equal(t, 1, e.Pending(&b))

	e.Advance(1.5)
	assert.InDelta(t, 6, a.X, 1e-5)
	assert.Zero(t, b.X)
	e.Advance(3)
	assert.InDelta(t, 6, b.X, 1e-5)
	assert.Zero(t, e.Pending(&a))
	assert.Zero(t, e.Pending(&b))
}

func TestOverrideDropsRunningTransition(t *testing.T) {
	e := New(Override)
	var rot quarkgl.Vec3
	e.Animate(&rot, burst)
	e.Advance(0)
	e.Advance(0.75) // halfway: +3 on x
	e.Animate(&rot, burst)
	assert.Equal(t, 1, e.Pending(&rot))

	e.Advance(0.75)
	e.Advance(5)
	assert.InDelta(t, 3+6, rot.X, 1e-4)
}

func TestQueueRunsSequentially(t *testing.T) {
	e := New(Queue)
	var rot quarkgl.Vec3
	e.Animate(&rot, burst)
	e.Advance(0)
	e.Advance(0.75)
	e.Animate(&rot, burst)
	assert.Equal(t, 2, e.Pending(&rot))

	// First run ends at 1.5, the second starts there.
	e.Advance(2.25)
	assert.InDelta(t, 6+3, rot.X, 1e-4)
	assert.Equal(t, 1, e.Pending(&rot))

	e.Advance(3)
	assert.InDelta(t, 12, rot.X, 1e-4)
	assert.Zero(t, e.Pending(&rot))
}

func TestZeroDurationJumps(t *testing.T) {
	e := New(Override)
	var rot quarkgl.Vec3
	e.Animate(&rot, Transition{Delta: quarkgl.V3(1, 1, 1)})
	e.Advance(0)
	assert.Equal(t, quarkgl.V3(1, 1, 1), rot)
	assert.Zero(t, e.Pending(&rot))
}

func TestClockNeverRunsBackwards(t *testing.T) {
	e := New(Override)
	var rot quarkgl.Vec3
	e.Animate(&rot, burst)
	e.Advance(1)
	e.Advance(1.75)
	x := rot.X
	e.Advance(0.5)
	assert.Equal(t, x, rot.X)
}

func TestRepeatedAnimateSharesTrack(t *testing.T) {
	e := New(Queue)
	var rot quarkgl.Vec3
	e.Animate(&rot, burst)
	e.Animate(&rot, burst)
	e.Animate(&rot, burst)
	assert.Equal(t, 3, e.Pending(&rot))
	require.Len(t, e.tracks, 1)

	e.Advance(0)
	e.Advance(4.5)
	assert.InDelta(t, 18, rot.X, 1e-4)
	assert.Empty(t, e.tracks)
}

func TestSineEases(t *testing.T) {
	for _, ease := range []Ease{SineIn, SineOut, SineInOut} {
		assert.InDelta(t, 0, ease(0), 1e-12)
		assert.InDelta(t, 1, ease(1), 1e-12)
	}
	assert.InDelta(t, 1-math.Sqrt2/2, SineIn(0.5), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, SineOut(0.5), 1e-12)
	assert.InDelta(t, 0.5, SineInOut(0.5), 1e-12)
}
