package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollscene/internal/tween"
	"scrollscene/quarkgl"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[scene]
material_color = "#ff0000"
particle_count = 50

[tween]
overlap = "queue"
`))
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", cfg.Scene.MaterialColor)
	assert.Equal(t, 50, cfg.Scene.ParticleCount)
	assert.Equal(t, "#f4afba", cfg.Scene.ParticleColor)
	assert.Equal(t, 4.0, cfg.Scene.ObjectsDistance)
	assert.Equal(t, tween.Queue, cfg.OverlapPolicy())
	assert.Len(t, cfg.Sections, 3)
}

func TestDecodeSectionsReplaceDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[[section]]
title = "One"

[[section]]
title = "Two"
shape = "torusknot"
`))
	require.NoError(t, err)
	require.Len(t, cfg.Sections, 2)
	assert.Equal(t, Section{Title: "One", Shape: ShapeTorus}, cfg.Sections[0])
	assert.Equal(t, Section{Title: "Two", Shape: ShapeTorusKnot}, cfg.Sections[1])
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[scene]\nmaterial_colour = \"#fff\"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode(strings.NewReader("[scene\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Scene.MaterialColor = "teal-ish"
	cfg.Tween.Ease = "elastic.out"
	cfg.Tween.Overlap = "merge"
	cfg.Sections = append(cfg.Sections, Section{Title: "x", Shape: "sphere"})

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	msg := err.Error()
	for _, want := range []string{"window size", "scene.material_color", "tween.ease", "tween.overlap", "sphere"} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadNamesFileInErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[motion]\nscroll_step = -1\n"), 0o644))

	_, err := Load(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.toml")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTransition(t *testing.T) {
	tr := Default().Transition()
	assert.Equal(t, 1.5, tr.Duration)
	assert.Equal(t, quarkgl.V3(6, 3, 1.5), tr.Delta)
	assert.InDelta(t, 4*0.001, tr.Ease(0.1), 1e-12)
}

func TestPalette(t *testing.T) {
	p := Default().Palette()
	assert.Equal(t, quarkgl.Hex(0x59d2f3), p.Material)
	assert.Equal(t, quarkgl.Hex(0xf4afba), p.Particle)
	assert.Equal(t, quarkgl.Hex(0xaae1d8), p.Light)
	assert.Equal(t, quarkgl.Hex(0x1e1a20), p.Background)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0f0")
	require.NoError(t, err)
	assert.Equal(t, quarkgl.RGB(0, 0xFF, 0), c)

	_, err = ParseColor("59d2f3")
	assert.Error(t, err)
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "scrollscene.toml.example"), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
