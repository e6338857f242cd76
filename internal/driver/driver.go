// Package driver maps scroll, pointer and clock input to scene transforms.
//
// The Driver owns the scroll, cursor and clock state. Input handlers only
// store what they are given; Tick derives the per-frame transforms, and a
// section change hands a rotation burst to an Animator.
package driver

import (
	"errors"
	"math"

	"scrollscene/internal/tween"
	"scrollscene/quarkgl"
)

// ErrInvalidViewport is returned when a width or height is not positive.
// The call is ignored and driver state stays as it was.
var ErrInvalidViewport = errors.New("driver: viewport dimensions must be positive")

// ErrNoSections is returned by New when there is nothing to scroll through.
var ErrNoSections = errors.New("driver: at least one section object is required")

// IdleRate is the constant angular velocity (rad/s) every section object
// spins at.
var IdleRate = quarkgl.V3(
	quarkgl.Scalar(math.Sin(0.1)),
	quarkgl.Scalar(math.Cos(5)),
	quarkgl.Scalar(math.Sin(1)),
)

// Animator schedules a fire-and-forget transition. *tween.Engine implements it.
type Animator interface {
	Animate(target *quarkgl.Vec3, tr tween.Transition)
}

// Config holds the motion constants.
type Config struct {
	// ObjectsDistance is the vertical spacing between sections in world units.
	ObjectsDistance float64
	// Smoothing is the exponential approach rate of the camera rig.
	Smoothing float64
	// MaxDelta caps the per-frame delta used for motion. Zero disables it.
	MaxDelta float64
	// Transition is started on the object of each newly entered section.
	Transition tween.Transition
}

// DefaultConfig returns the constants of the original page.
func DefaultConfig() Config {
	return Config{
		ObjectsDistance: 4,
		Smoothing:       1.2,
		Transition: tween.Transition{
			Duration: 1.5,
			Ease:     tween.PowerInOut(2),
			Delta:    quarkgl.V3(6, 3, 1.5),
		},
	}
}

// Viewport is the host surface size in pixels.
type Viewport struct {
	Width, Height float64
}

// ScrollState is the page scroll position and the section it rounds to.
type ScrollState struct {
	Offset  float64
	Section int
}

// CursorState is the pointer position normalized to about -0.5..0.5.
type CursorState struct {
	X, Y float64
}

// ClockState is the frame clock in seconds since the first Tick.
type ClockState struct {
	Elapsed  float64
	Previous float64
	Delta    float64

	epoch   float64
	started bool
}

// SectionChange is delivered to listeners when the rounded scroll position
// enters a different section.
type SectionChange struct {
	From, To int
	Offset   float64
}

// Driver turns input into transforms of the section objects and the camera.
// It is not safe for concurrent use; call it from the frame loop.
type Driver struct {
	cfg      Config
	sections []*quarkgl.Node
	camera   *quarkgl.Node
	rig      *quarkgl.Node
	anim     Animator

	listeners []func(SectionChange)

	viewport Viewport
	scroll   ScrollState
	cursor   CursorState
	clock    ClockState
}

// New returns a driver for the given section objects. camera is moved
// vertically with the scroll offset; rig, the camera's parent, carries the
// cursor parallax. Either may be nil. anim may be nil to disable transitions.
func New(cfg Config, sections []*quarkgl.Node, camera, rig *quarkgl.Node, anim Animator) (*Driver, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	for _, s := range sections {
		if s == nil {
			return nil, ErrNoSections
		}
	}
	return &Driver{
		cfg:      cfg,
		sections: sections,
		camera:   camera,
		rig:      rig,
		anim:     anim,
	}, nil
}

// OnSectionChange registers fn to be called on every section change.
func (d *Driver) OnSectionChange(fn func(SectionChange)) {
	if fn != nil {
		d.listeners = append(d.listeners, fn)
	}
}

// OnResize records the viewport size.
func (d *Driver) OnResize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return ErrInvalidViewport
	}
	d.viewport = Viewport{Width: width, Height: height}
	return nil
}

// OnScroll records the scroll offset and fires a section change when the
// rounded section index differs from the current one. Offsets past the last
// section clamp to it; negative offsets count as zero.
func (d *Driver) OnScroll(offset, viewportHeight float64) error {
	if !(viewportHeight > 0) {
		return ErrInvalidViewport
	}
	if math.IsNaN(offset) || offset < 0 {
		offset = 0
	}
	d.viewport.Height = viewportHeight
	d.scroll.Offset = offset

	next := d.sectionFor(offset, viewportHeight)
	if next == d.scroll.Section {
		return nil
	}
	ev := SectionChange{From: d.scroll.Section, To: next, Offset: offset}
	d.scroll.Section = next
	if d.anim != nil {
		d.anim.Animate(&d.sections[next].Rotation, d.cfg.Transition)
	}
	for _, fn := range d.listeners {
		fn(ev)
	}
	return nil
}

func (d *Driver) sectionFor(offset, height float64) int {
	idx := math.Round(offset / height)
	last := float64(len(d.sections) - 1)
	if idx > last {
		idx = last
	}
	if idx < 0 {
		idx = 0
	}
	return int(idx)
}

// OnPointerMove stores the pointer position normalized to the viewport.
func (d *Driver) OnPointerMove(x, y, width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return ErrInvalidViewport
	}
	d.viewport = Viewport{Width: width, Height: height}
	d.cursor = CursorState{X: x/width - 0.5, Y: y/height - 0.5}
	return nil
}

// Tick advances the clock to now (seconds, any fixed epoch) and updates the
// idle rotation, the camera height and the cursor parallax. The first call
// sets the epoch. A clock that does not advance yields a zero delta, which
// leaves every transform unchanged.
func (d *Driver) Tick(now float64) {
	c := &d.clock
	if !c.started {
		c.started = true
		c.epoch = now
	}
	elapsed := now - c.epoch
	if elapsed < c.Elapsed {
		elapsed = c.Elapsed
	}
	c.Previous = c.Elapsed
	c.Elapsed = elapsed
	c.Delta = c.Elapsed - c.Previous

	dt := c.Delta
	if d.cfg.MaxDelta > 0 && dt > d.cfg.MaxDelta {
		dt = d.cfg.MaxDelta
	}

	if dt > 0 {
		spin := IdleRate.Mul(quarkgl.Scalar(dt))
		for _, s := range d.sections {
			s.Rotation = s.Rotation.Add(spin)
		}
	}

	if d.camera != nil && d.viewport.Height > 0 {
		d.camera.Position.Y = quarkgl.Scalar(-d.scroll.Offset / d.viewport.Height * d.cfg.ObjectsDistance)
	}

	if d.rig != nil && dt > 0 {
		tx, ty := d.CameraTarget()
		k := d.cfg.Smoothing * dt
		p := &d.rig.Position
		p.X += quarkgl.Scalar((tx - float64(p.X)) * k)
		p.Y += quarkgl.Scalar((ty - float64(p.Y)) * k)
	}
}

// CameraTarget returns the rig position the parallax smooths toward.
func (d *Driver) CameraTarget() (x, y float64) {
	return d.cursor.X, -d.cursor.Y
}

// Section returns the current section index.
func (d *Driver) Section() int { return d.scroll.Section }

// SectionCount returns the number of section objects.
func (d *Driver) SectionCount() int { return len(d.sections) }

// Scroll returns the scroll state.
func (d *Driver) Scroll() ScrollState { return d.scroll }

// Cursor returns the normalized cursor.
func (d *Driver) Cursor() CursorState { return d.cursor }

// Clock returns the frame clock.
func (d *Driver) Clock() ClockState { return d.clock }

// Viewport returns the last recorded viewport size.
func (d *Driver) Viewport() Viewport { return d.viewport }
