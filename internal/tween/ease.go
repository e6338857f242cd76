package tween

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownEase is returned by Parse for names outside the catalogue.
var ErrUnknownEase = errors.New("tween: unknown ease")

// Ease maps linear progress in 0..1 to eased progress. Every Ease returns 0
// at 0 and 1 at 1.
type Ease func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 { return t }

// PowerIn returns the GSAP powerN.in curve, t^(n+1).
func PowerIn(n int) Ease {
	e := float64(n + 1)
	return func(t float64) float64 { return math.Pow(t, e) }
}

// PowerOut returns the GSAP powerN.out curve.
func PowerOut(n int) Ease {
	e := float64(n + 1)
	return func(t float64) float64 { return 1 - math.Pow(1-t, e) }
}

// PowerInOut returns the GSAP powerN.inOut curve. PowerInOut(2) is the
// cubic ease-in-out used for section transitions.
func PowerInOut(n int) Ease {
	e := float64(n + 1)
	k := math.Pow(2, float64(n))
	return func(t float64) float64 {
		if t < 0.5 {
			return k * math.Pow(t, e)
		}
		return 1 - math.Pow(-2*t+2, e)/2
	}
}

// SineIn starts slow along a quarter cosine.
func SineIn(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// SineOut ends slow along a quarter sine.
func SineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// SineInOut is slow at both ends along half a cosine.
func SineInOut(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

// Parse resolves a GSAP style ease name such as "power2.inOut", "sine.out"
// or "none". A bare "powerN" or "sine" means the .out variant.
func Parse(name string) (Ease, error) {
	family, mode, _ := strings.Cut(strings.TrimSpace(name), ".")
	if mode == "" {
		mode = "out"
	}
	switch family {
	case "none", "linear", "power0":
		return Linear, nil
	case "sine":
		switch mode {
		case "in":
			return SineIn, nil
		case "out":
			return SineOut, nil
		case "inOut":
			return SineInOut, nil
		}
	case "power1", "power2", "power3", "power4":
		n := int(family[len(family)-1] - '0')
		switch mode {
		case "in":
			return PowerIn(n), nil
		case "out":
			return PowerOut(n), nil
		case "inOut":
			return PowerInOut(n), nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEase, name)
}
