//go:build cgo

package hal

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title         string
	Width, Height int
	// RenderScale is the framebuffer resolution relative to the window.
	RenderScale float64
	TPS         int
}

// RunWindow opens a resizable window and drives app from the ebiten game
// loop. It blocks until the window closes, app returns ErrQuit or ctx ends.
func RunWindow(ctx context.Context, app App, cfg WindowConfig) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	g := &hostGame{
		ctx:   ctx,
		app:   app,
		cfg:   cfg,
		clock: newHostClock(),
		fb:    NewFramebuffer(scaledSize(cfg.Width, cfg.Height, cfg.RenderScale)),
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	err := ebiten.RunGame(g)
	if g.err != nil {
		return g.err
	}
	return err
}

type hostGame struct {
	ctx   context.Context
	app   App
	cfg   WindowConfig
	clock *hostClock
	fb    *Framebuffer

	outW, outH   int // latest Layout size
	viewW, viewH int // size last reported to the app
	cursorX      int
	cursorY      int

	snap  *image.RGBA
	fbImg *ebiten.Image
	err   error
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyEscape, KeyEscape},
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := g.pollInput(); err != nil {
		return g.finish(err)
	}
	if err := g.app.Step(g.clock.Now()); err != nil {
		return g.finish(err)
	}
	return nil
}

// finish records err for RunWindow and stops the loop.
func (g *hostGame) finish(err error) error {
	g.err = err
	return ebiten.Termination
}

func (g *hostGame) pollInput() error {
	if g.outW > 0 && g.outH > 0 && (g.outW != g.viewW || g.outH != g.viewH) {
		g.viewW, g.viewH = g.outW, g.outH
		g.fb.Resize(scaledSize(g.viewW, g.viewH, g.cfg.RenderScale))
		if err := g.app.HandleEvent(ResizeEvent{Width: g.viewW, Height: g.viewH}); err != nil {
			return err
		}
	}

	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		if err := g.app.HandleEvent(PointerEvent{X: float64(x), Y: float64(y)}); err != nil {
			return err
		}
	}

	// ebiten reports wheel-up as positive.
	if _, dy := ebiten.Wheel(); dy != 0 {
		if err := g.app.HandleEvent(WheelEvent{DY: -dy}); err != nil {
			return err
		}
	}

	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			if err := g.app.HandleEvent(KeyEvent{Code: k.code}); err != nil {
				return err
			}
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if err := g.app.HandleEvent(KeyEvent{Code: KeyRune, Rune: r}); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.app.Draw(g.fb)
	g.snap = g.fb.Snapshot(g.snap)

	w, h := g.snap.Rect.Dx(), g.snap.Rect.Dy()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.fbImg.WritePixels(g.snap.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.fbImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
