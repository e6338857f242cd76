package stage

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollscene/internal/config"
	"scrollscene/quarkgl"
)

func TestNewPlacesSections(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Seed = 7
	st, err := New(cfg)
	require.NoError(t, err)

	secs := st.Sections()
	require.Len(t, secs, 3)
	assert.Equal(t, quarkgl.V3(2, 0, 0), secs[0].Position)
	assert.Equal(t, quarkgl.V3(-2, -4, 0), secs[1].Position)
	assert.Equal(t, quarkgl.V3(2, -8, 0), secs[2].Position)
	assert.Equal(t, []string{"My Portfolio", "My projects", "Contact me"}, st.Titles())

	// One material drives every section.
	require.Equal(t, 3, st.Scene.MeshCount())
	for i := 0; i < 3; i++ {
		assert.Same(t, st.Material, st.Scene.Mesh(i).Material)
	}
}

func TestCameraRig(t *testing.T) {
	st, err := New(config.Default())
	require.NoError(t, err)

	cam := st.Camera()
	assert.Same(t, st.Rig, cam.Parent())
	assert.Same(t, st.Scene.Root, st.Rig.Parent())
	assert.Equal(t, quarkgl.V3(0, 0, 6), cam.Position)
	assert.InDelta(t, 35*3.14159265/180, float64(st.Scene.Camera.FOVYRad), 1e-5)

	st.Rig.Position = quarkgl.V3(0.25, -0.5, 0)
	assert.InDelta(t, 0.25, float64(cam.WorldPosition().X), 1e-6)
	assert.InDelta(t, -0.5, float64(cam.WorldPosition().Y), 1e-6)
}

func TestLightPointsAwayFromPosition(t *testing.T) {
	st, err := New(config.Default())
	require.NoError(t, err)

	l := st.Scene.Light
	assert.InDelta(t, -0.70710677, float64(l.Dir.X), 1e-6)
	assert.InDelta(t, -0.70710677, float64(l.Dir.Y), 1e-6)
	assert.Zero(t, l.Dir.Z)
	assert.Equal(t, quarkgl.Hex(0xaae1d8), l.Color)
}

func TestScatterBounds(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	pts := Scatter(r, 500, 4, 3)
	require.Len(t, pts, 500)
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.X, quarkgl.Scalar(-5))
		assert.Less(t, p.X, quarkgl.Scalar(5))
		assert.GreaterOrEqual(t, p.Z, quarkgl.Scalar(-5))
		assert.Less(t, p.Z, quarkgl.Scalar(5))
		assert.LessOrEqual(t, p.Y, quarkgl.Scalar(2))
		assert.Greater(t, p.Y, quarkgl.Scalar(-10))
	}
	assert.Nil(t, Scatter(r, 0, 4, 3))
}

func TestSeedIsReproducible(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Seed = 42
	a, err := New(cfg)
	require.NoError(t, err)
	b, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Particles.Positions, b.Particles.Positions)
}

func TestApplyPalette(t *testing.T) {
	st, err := New(config.Default())
	require.NoError(t, err)

	p := config.Palette{
		Material:   quarkgl.Hex(0x112233),
		Particle:   quarkgl.Hex(0x445566),
		Light:      quarkgl.Hex(0x778899),
		Background: quarkgl.Hex(0x000000),
	}
	st.ApplyPalette(p)
	assert.Equal(t, p.Material, st.Scene.Mesh(1).Material.BaseColor)
	assert.Equal(t, p.Particle, st.Particles.Color)
	assert.Equal(t, p.Light, st.Scene.Light.Color)
	assert.Equal(t, p.Background, st.Scene.Background)
}

func TestRenderShowsFirstSection(t *testing.T) {
	st, err := New(config.Default())
	require.NoError(t, err)
	st.Particles.Enabled = false

	tgt := quarkgl.NewRGBATarget(200, 160)
	quarkgl.NewRenderer(200, 160, true).Render(tgt, st.Scene)

	bg := st.Scene.Background
	var left, right int
	for y := 0; y < 160; y++ {
		for x := 0; x < 200; x++ {
			if tgt.Pixel(x, y) == bg {
				continue
			}
			if x < 100 {
				left++
			} else {
				right++
			}
		}
	}
	// The torus sits at x = +2, to the right of the camera.
	assert.Positive(t, right)
	assert.Greater(t, right, left)
}
