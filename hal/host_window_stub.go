//go:build !cgo

package hal

import (
	"context"
	"errors"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Title         string
	Width, Height int
	RenderScale   float64
	TPS           int
}

var errNoWindow = errors.New("hal: window mode requires cgo (build/run with CGO_ENABLED=1)")

func RunWindow(_ context.Context, _ App, _ WindowConfig) error {
	return errNoWindow
}
