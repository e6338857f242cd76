// Package app is the scrolling page: it turns host events into page scroll,
// feeds the motion driver and draws the scene with its captions.
package app

import (
	"image"
	"log/slog"
	"math"
	"reflect"
	"runtime/debug"
	"time"

	"scrollscene/hal"
	"scrollscene/internal/config"
	"scrollscene/internal/driver"
	"scrollscene/internal/logx"
	"scrollscene/internal/overlay"
	"scrollscene/internal/stage"
	"scrollscene/internal/tween"
	"scrollscene/quarkgl"
)

// Key steps at the configured window height. They scale with the viewport.
const lineStep = 40

// Options configures New.
type Options struct {
	Config config.Config
	Log    *slog.Logger
	// Updates delivers reloaded configs. Only the colors are applied live.
	Updates <-chan config.Config
}

// App implements hal.App.
type App struct {
	cfg     config.Config
	log     *slog.Logger
	updates <-chan config.Config

	stage    *stage.Stage
	tweens   *tween.Engine
	driver   *driver.Driver
	renderer *quarkgl.Renderer
	overlay  *overlay.Overlay

	width, height float64
	offset        float64
	wireframe     bool

	crash *crash
}

var _ hal.App = (*App)(nil)

// New builds the page described by opts.Config, which must be valid.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	st, err := stage.New(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      logx.OrDiscard(opts.Log),
		updates:  opts.Updates,
		stage:    st,
		tweens:   tween.New(cfg.OverlapPolicy()),
		renderer: quarkgl.NewRenderer(1, 1, true),
		overlay:  overlay.New(),
		width:    float64(cfg.Window.Width),
		height:   float64(cfg.Window.Height),
	}
	a.overlay.SetActive(cfg.Palette().Particle)

	a.driver, err = driver.New(driver.Config{
		ObjectsDistance: cfg.Scene.ObjectsDistance,
		Smoothing:       cfg.Motion.Smoothing,
		MaxDelta:        cfg.Motion.MaxDelta,
		Transition:      cfg.Transition(),
	}, st.Sections(), st.Camera(), st.Rig, a.tweens)
	if err != nil {
		return nil, err
	}
	a.driver.OnSectionChange(func(ev driver.SectionChange) {
		pending := a.tweens.Pending(&st.Sections()[ev.To].Rotation)
		a.log.Debug("section changed", "from", ev.From, "to", ev.To, "offset", ev.Offset, "pending", pending)
	})
	if err := a.driver.OnResize(a.width, a.height); err != nil {
		return nil, err
	}
	return a, nil
}

// HandleEvent applies one host event. It returns hal.ErrQuit when the user
// asks to leave.
func (a *App) HandleEvent(ev hal.Event) error {
	switch ev := ev.(type) {
	case hal.ResizeEvent:
		a.resize(float64(ev.Width), float64(ev.Height))
	case hal.WheelEvent:
		a.scrollTo(a.offset + ev.DY*a.unit(a.cfg.Motion.ScrollStep))
	case hal.ScrollEvent:
		a.scrollTo(a.offset + ev.DY)
	case hal.PointerEvent:
		_ = a.driver.OnPointerMove(ev.X, ev.Y, a.width, a.height)
	case hal.KeyEvent:
		return a.key(ev)
	}
	return nil
}

func (a *App) key(ev hal.KeyEvent) error {
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyUp:
		a.scrollTo(a.offset - a.unit(lineStep))
	case hal.KeyDown:
		a.scrollTo(a.offset + a.unit(lineStep))
	case hal.KeyPageUp:
		a.scrollTo(a.offset - a.height)
	case hal.KeyPageDown:
		a.scrollTo(a.offset + a.height)
	case hal.KeyHome:
		a.scrollTo(0)
	case hal.KeyEnd:
		a.scrollTo(a.maxOffset())
	case hal.KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			return hal.ErrQuit
		case 'w', 'W':
			a.wireframe = !a.wireframe
			if a.wireframe {
				a.renderer.SetRenderMode(quarkgl.RenderWireframe)
			} else {
				a.renderer.SetRenderMode(quarkgl.RenderSolidFlat)
			}
		case ' ':
			a.scrollTo(a.offset + a.height)
		}
	}
	return nil
}

// unit scales a distance given at the configured window height to the
// current viewport.
func (a *App) unit(px float64) float64 {
	return px * a.height / float64(a.cfg.Window.Height)
}

func (a *App) maxOffset() float64 {
	return float64(a.driver.SectionCount()-1) * a.height
}

// scrollTo moves the page, clamped like a document that is one viewport
// tall per section.
func (a *App) scrollTo(offset float64) {
	if math.IsNaN(offset) {
		return
	}
	a.offset = min(max(offset, 0), a.maxOffset())
	_ = a.driver.OnScroll(a.offset, a.height)
}

func (a *App) resize(w, h float64) {
	if err := a.driver.OnResize(w, h); err != nil {
		a.log.Warn("ignoring resize", "width", w, "height", h, "err", err)
		return
	}
	// Keep the same page position.
	page := a.offset / a.height
	a.width, a.height = w, h
	a.scrollTo(page * h)
}

// Step advances the page to now.
func (a *App) Step(now time.Duration) error {
	if a.crash != nil {
		return nil
	}
	defer a.recoverPanic()

	a.applyUpdates()
	a.driver.Tick(now.Seconds())
	a.tweens.Advance(a.driver.Clock().Elapsed)
	return nil
}

func (a *App) applyUpdates() {
	if a.updates == nil {
		return
	}
	select {
	case next := <-a.updates:
		a.applyConfig(next)
	default:
	}
}

func (a *App) applyConfig(next config.Config) {
	rest := next
	rest.Scene.MaterialColor = a.cfg.Scene.MaterialColor
	rest.Scene.ParticleColor = a.cfg.Scene.ParticleColor
	rest.Scene.LightColor = a.cfg.Scene.LightColor
	rest.Scene.Background = a.cfg.Scene.Background
	if !reflect.DeepEqual(rest, a.cfg) {
		a.log.Warn("config changes other than colors apply on restart")
	}

	a.cfg.Scene.MaterialColor = next.Scene.MaterialColor
	a.cfg.Scene.ParticleColor = next.Scene.ParticleColor
	a.cfg.Scene.LightColor = next.Scene.LightColor
	a.cfg.Scene.Background = next.Scene.Background

	p := a.cfg.Palette()
	a.stage.ApplyPalette(p)
	a.overlay.SetActive(p.Particle)
	a.log.Info("palette applied",
		"material", a.cfg.Scene.MaterialColor,
		"particle", a.cfg.Scene.ParticleColor,
		"light", a.cfg.Scene.LightColor,
		"background", a.cfg.Scene.Background)
}

// Draw renders the scene and captions into fb.
func (a *App) Draw(fb *hal.Framebuffer) {
	fb.Draw(func(img *image.RGBA) {
		t := &quarkgl.RGBATarget{Pix: img.Pix, Stride: img.Stride, W: img.Rect.Dx(), H: img.Rect.Dy()}
		if a.crash != nil {
			a.crash.draw(t)
			return
		}
		defer a.recoverPanic()
		a.renderer.Render(t, a.stage.Scene)
		a.overlay.Draw(t, a.stage.Titles(), a.driver.Section(), a.offset/a.height)
	})
}

func (a *App) recoverPanic() {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	a.log.Error("panic", "value", v, "stack", string(stack))
	a.crash = newCrash(v, stack)
}

// Err reports the panic that stopped the page, if any.
func (a *App) Err() error {
	if a.crash == nil {
		return nil
	}
	return a.crash.err
}

// Offset returns the page scroll offset in viewport pixels.
func (a *App) Offset() float64 { return a.offset }

// Section returns the current section index.
func (a *App) Section() int { return a.driver.Section() }

// Wireframe reports whether wireframe rendering is on.
func (a *App) Wireframe() bool { return a.wireframe }

// Stage returns the scene being drawn.
func (a *App) Stage() *stage.Stage { return a.stage }
