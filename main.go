package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"scrollscene/app"
	"scrollscene/hal"
	"scrollscene/internal/buildinfo"
	"scrollscene/internal/config"
	"scrollscene/internal/logx"
)

type options struct {
	configPath string
	backend    string
	logPath    string
	hz         int
	ticks      uint64
	autoscroll float64
	snapshot   string
	vv, v, q   bool
	version    bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Config file (default "+config.DefaultPath+" if present).")
	flag.StringVar(&o.backend, "backend", "window", "Host: window, terminal or headless.")
	flag.StringVar(&o.logPath, "log", "", "Write logs to this file instead of stderr.")
	flag.IntVar(&o.hz, "hz", 0, "Frame rate (0 = config window.tps; terminal defaults to 30).")
	flag.Uint64Var(&o.ticks, "ticks", 0, "Stop after N frames in terminal and headless mode (0 = run until quit).")
	flag.Float64Var(&o.autoscroll, "autoscroll", 0, "Headless: scroll the page by this many pixels per second.")
	flag.StringVar(&o.snapshot, "snapshot", "", "Headless: write the last frame to this PNG file.")
	flag.BoolVar(&o.vv, "vv", false, "Debug logging.")
	flag.BoolVar(&o.v, "v", false, "Verbose logging.")
	flag.BoolVar(&o.q, "q", false, "Only log errors.")
	flag.BoolVar(&o.version, "version", false, "Print the version and exit.")
	flag.Parse()

	if o.version {
		fmt.Println(buildinfo.String())
		return
	}
	if err := run(o); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(o options) error {
	log, closeLog, err := openLog(o)
	if err != nil {
		return err
	}
	defer closeLog()

	path, required := o.configPath, o.configPath != ""
	if !required {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if o.hz > 0 {
		cfg.Window.TPS = o.hz
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var updates <-chan config.Config
	if _, err := os.Stat(path); err == nil {
		w, err := config.NewWatcher(path, log)
		if err != nil {
			return err
		}
		updates = w.Updates()
		g.Go(func() error { return w.Run(ctx) })
	}

	a, err := app.New(app.Options{Config: cfg, Log: log, Updates: updates})
	if err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	log.Info("starting", "backend", o.backend, "version", buildinfo.Short(), "sections", len(cfg.Sections))
	runErr := runBackend(ctx, a, cfg, o)
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}

	switch {
	case errors.Is(runErr, hal.ErrQuit), errors.Is(runErr, context.Canceled):
		runErr = nil
	}
	if runErr != nil {
		log.Error("run failed", "err", runErr)
		return runErr
	}
	return a.Err()
}

// runBackend runs on the main goroutine; the window backend requires it.
func runBackend(ctx context.Context, a *app.App, cfg config.Config, o options) error {
	switch o.backend {
	case "window":
		return hal.RunWindow(ctx, a, hal.WindowConfig{
			Title:       cfg.Window.Title + " (" + buildinfo.Short() + ")",
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
			RenderScale: cfg.Window.RenderScale,
			TPS:         cfg.Window.TPS,
		})
	case "terminal":
		return hal.RunTerminal(ctx, a, hal.TerminalConfig{Hz: o.hz, Ticks: o.ticks})
	case "headless":
		return hal.RunHeadless(ctx, a, hal.HeadlessConfig{
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
			RenderScale: cfg.Window.RenderScale,
			Hz:          cfg.Window.TPS,
			Ticks:       o.ticks,
			Autoscroll:  o.autoscroll,
			Snapshot:    o.snapshot,
		})
	}
	return fmt.Errorf("unknown backend %q (want window, terminal or headless)", o.backend)
}

// openLog picks the log destination. The terminal backend owns the screen,
// so without -log its logs are dropped.
func openLog(o options) (*slog.Logger, func(), error) {
	level := logx.LevelFromFlags(o.vv, o.v, o.q)
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log: %w", err)
		}
		return logx.New(f, level), func() { f.Close() }, nil
	}
	var w io.Writer = os.Stderr
	if o.backend == "terminal" {
		w = io.Discard
	}
	return logx.New(w, level), func() {}, nil
}
