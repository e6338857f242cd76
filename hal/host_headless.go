package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// HeadlessConfig controls the no-display runner.
type HeadlessConfig struct {
	Width, Height int
	RenderScale   float64
	Hz            int
	// Ticks stops the run after that many frames. Zero runs until ctx ends.
	Ticks uint64
	// Autoscroll moves the page by this many viewport pixels per second.
	Autoscroll float64
	// Snapshot, when set, receives a PNG of the last frame.
	Snapshot string
}

// RunHeadless runs app without a display. Frames are paced by a real ticker
// but the app sees a virtual clock advancing exactly 1/Hz per frame.
func RunHeadless(ctx context.Context, app App, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("hal: invalid headless size %dx%d", cfg.Width, cfg.Height)
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("hal: invalid headless hz: %d", cfg.Hz)
	}

	fb := NewFramebuffer(scaledSize(cfg.Width, cfg.Height, cfg.RenderScale))
	if cfg.Snapshot != "" {
		defer func() {
			if serr := writeSnapshot(cfg.Snapshot, fb); serr != nil && err == nil {
				err = serr
			}
		}()
	}

	if err := app.HandleEvent(ResizeEvent{Width: cfg.Width, Height: cfg.Height}); err != nil {
		return err
	}

	clock := NewStepClock(d)
	t := time.NewTicker(d)
	defer t.Stop()

	perFrame := cfg.Autoscroll / float64(cfg.Hz)
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if perFrame != 0 {
				if err := app.HandleEvent(ScrollEvent{DY: perFrame}); err != nil {
					return err
				}
			}
			if err := app.Step(clock.Now()); err != nil {
				return err
			}
			app.Draw(fb)
			clock.Advance()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func writeSnapshot(path string, fb *Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	if err := fb.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("hal: snapshot %s: %w", path, err)
	}
	return f.Close()
}
