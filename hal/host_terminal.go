package hal

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal runner.
type TerminalConfig struct {
	// Screen is used instead of the process terminal when set. The caller
	// then owns its Init and Fini.
	Screen tcell.Screen
	Hz     int
	// Ticks stops the run after that many frames. Zero runs until quit.
	Ticks uint64
}

// upperHalf draws the top pixel as foreground and the bottom one as
// background, so each cell shows two framebuffer rows.
const upperHalf = '▀'

// RunTerminal drives app on a character terminal. The viewport is one pixel
// per column and two per row.
func RunTerminal(ctx context.Context, app App, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("hal: invalid terminal hz: %d", cfg.Hz)
	}

	s := cfg.Screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("hal: terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("hal: terminal: %w", err)
		}
		defer s.Fini()
	}
	s.EnableMouse()
	defer s.DisableMouse()
	s.HideCursor()

	term := &hostTerminal{s: s, app: app, fb: NewFramebuffer(1, 1)}

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	clock := newHostClock()
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if err := term.handle(ev); err != nil {
				return err
			}
		case <-t.C:
			if err := term.syncSize(); err != nil {
				return err
			}
			if err := app.Step(clock.Now()); err != nil {
				return err
			}
			app.Draw(term.fb)
			term.present()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

type hostTerminal struct {
	s    tcell.Screen
	app  App
	fb   *Framebuffer
	snap *image.RGBA

	cols, rows int
}

// syncSize reports a changed terminal size to the app.
func (t *hostTerminal) syncSize() error {
	cols, rows := t.s.Size()
	if (cols == t.cols && rows == t.rows) || cols <= 0 || rows <= 0 {
		return nil
	}
	t.cols, t.rows = cols, rows
	t.fb.Resize(cols, rows*2)
	return t.app.HandleEvent(ResizeEvent{Width: cols, Height: rows * 2})
}

func (t *hostTerminal) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.s.Sync()
		return t.syncSize()

	case *tcell.EventMouse:
		x, y := ev.Position()
		if err := t.app.HandleEvent(PointerEvent{X: float64(x), Y: float64(y*2 + 1)}); err != nil {
			return err
		}
		btn := ev.Buttons()
		switch {
		case btn&tcell.WheelDown != 0:
			return t.app.HandleEvent(WheelEvent{DY: 1})
		case btn&tcell.WheelUp != 0:
			return t.app.HandleEvent(WheelEvent{DY: -1})
		}

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return ErrQuit
		}
		return t.app.HandleEvent(terminalKey(ev))
	}
	return nil
}

func terminalKey(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyRune:
		return KeyEvent{Code: KeyRune, Rune: ev.Rune()}
	case tcell.KeyUp:
		return KeyEvent{Code: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Code: KeyDown}
	case tcell.KeyPgUp:
		return KeyEvent{Code: KeyPageUp}
	case tcell.KeyPgDn:
		return KeyEvent{Code: KeyPageDown}
	case tcell.KeyHome:
		return KeyEvent{Code: KeyHome}
	case tcell.KeyEnd:
		return KeyEvent{Code: KeyEnd}
	case tcell.KeyEscape:
		return KeyEvent{Code: KeyEscape}
	}
	return KeyEvent{Code: KeyUnknown}
}

func (t *hostTerminal) present() {
	t.snap = t.fb.Snapshot(t.snap)
	img := t.snap
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y+1 < h; y += 2 {
		for x := 0; x < w; x++ {
			style := tcell.StyleDefault.
				Foreground(rgbaColor(img, x, y)).
				Background(rgbaColor(img, x, y+1))
			t.s.SetContent(x, y/2, upperHalf, nil, style)
		}
	}
	t.s.Show()
}

func rgbaColor(img *image.RGBA, x, y int) tcell.Color {
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return tcell.NewRGBColor(int32(p[0]), int32(p[1]), int32(p[2]))
}
