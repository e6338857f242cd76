// Package hal hosts an App on a desktop window, a terminal or no display
// at all. Every runner feeds the App the same events and clock and presents
// the same RGBA framebuffer.
package hal

import (
	"errors"
	"time"
)

// ErrQuit is returned by an App to end the run. Runners pass it through so
// callers can tell a requested exit from a failure.
var ErrQuit = errors.New("hal: quit")

// Event is an input event delivered to an App.
type Event interface{ event() }

// WheelEvent is a mouse wheel movement in notches. Positive DY scrolls the
// page down.
type WheelEvent struct{ DY float64 }

// ScrollEvent moves the page by DY viewport pixels.
type ScrollEvent struct{ DY float64 }

// PointerEvent is a pointer position in viewport pixels.
type PointerEvent struct{ X, Y float64 }

// ResizeEvent reports the viewport size in pixels.
type ResizeEvent struct{ Width, Height int }

// KeyEvent is a key press. Printable keys carry Rune with Code KeyRune.
type KeyEvent struct {
	Code KeyCode
	Rune rune
}

func (WheelEvent) event()   {}
func (ScrollEvent) event()  {}
func (PointerEvent) event() {}
func (ResizeEvent) event()  {}
func (KeyEvent) event()     {}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEscape
)

// App is driven by a runner, one frame at a time: pending events first,
// then Step, then Draw.
type App interface {
	HandleEvent(ev Event) error
	Step(now time.Duration) error
	Draw(fb *Framebuffer)
}
