package quarkgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBackground = Hex(0x1e1a20)

func newTestScene() *Scene {
	s := CreateScene(4)
	s.Background = testBackground
	s.Camera.FOVYRad = Radians(35)
	s.Camera.Node.Position = V3(0, 0, 6)
	s.Light.Dir = Normalize(V3(-1, -1, 0))
	return s
}

func TestRenderClearsToBackground(t *testing.T) {
	s := newTestScene()
	tgt := NewRGBATarget(32, 24)
	NewRenderer(32, 24, true).Render(tgt, s)

	assert.Equal(t, testBackground, tgt.Pixel(0, 0))
	assert.Equal(t, testBackground, tgt.Pixel(31, 23))
}

func TestRenderMeshCoversCentre(t *testing.T) {
	s := newTestScene()
	mat := &Material{BaseColor: Hex(0x59d2f3), ToonSteps: 5}
	id := s.AddMesh(Torus(1, 0.4, 16, 60).NewMesh(NewNode("torus"), mat))
	require.Equal(t, 0, id)

	tgt := NewRGBATarget(64, 64)
	r := NewRenderer(64, 64, true)
	r.Render(tgt, s)

	// The tube crosses the horizontal centre line at x = ±1.
	var hit bool
	for x := 0; x < 64; x++ {
		if tgt.Pixel(x, 32) != testBackground {
			hit = true
			break
		}
	}
	assert.True(t, hit, "torus not drawn")
	assert.Equal(t, testBackground, tgt.Pixel(0, 0))

	s.SetMeshEnabled(id, false)
	r.Render(tgt, s)
	for x := 0; x < 64; x++ {
		require.Equal(t, testBackground, tgt.Pixel(x, 32))
	}
}

func TestRenderSkipsGeometryBehindCamera(t *testing.T) {
	s := newTestScene()
	n := NewNode("behind")
	n.Position = V3(0, 0, 10)
	s.AddMesh(Cone(1, 2, 16).NewMesh(n, nil))

	tgt := NewRGBATarget(16, 16)
	NewRenderer(16, 16, true).Render(tgt, s)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, testBackground, tgt.Pixel(x, y))
		}
	}
}

func TestRenderPointsBlend(t *testing.T) {
	s := newTestScene()
	s.AddPoints(&Points{
		Positions: []Vec3{V3(0, 0, 0)},
		Color:     Hex(0xf4afba),
		Size:      4,
	})
	tgt := NewRGBATarget(33, 33)
	NewRenderer(33, 33, true).Render(tgt, s)

	c := tgt.Pixel(16, 16)
	assert.NotEqual(t, testBackground, c)
	assert.Equal(t, Hex(0xf4afba), c)
	assert.Equal(t, testBackground, tgt.Pixel(0, 0))
}

func TestPointsHiddenByMesh(t *testing.T) {
	s := newTestScene()
	wall := NewNode("wall")
	wall.Scale = V3(3, 3, 3)
	s.AddMesh(Cone(1, 2, 16).NewMesh(wall, &Material{BaseColor: RGB(0xFF, 0, 0)}))
	s.AddPoints(&Points{Positions: []Vec3{V3(0, 0, -5)}, Color: RGB(0, 0xFF, 0), Size: 3})

	tgt := NewRGBATarget(33, 33)
	NewRenderer(33, 33, true).Render(tgt, s)
	assert.Zero(t, tgt.Pixel(16, 16).G)
}

func TestWireframeDraws(t *testing.T) {
	s := newTestScene()
	s.AddMesh(Torus(1, 0.4, 8, 16).NewMesh(NewNode("torus"), nil))

	solid := NewRGBATarget(48, 48)
	wire := NewRGBATarget(48, 48)
	r := NewRenderer(48, 48, true)
	r.Render(solid, s)
	r.SetRenderMode(RenderWireframe)
	r.Render(wire, s)

	count := func(tgt *RGBATarget) int {
		n := 0
		for y := 0; y < 48; y++ {
			for x := 0; x < 48; x++ {
				if tgt.Pixel(x, y) != testBackground {
					n++
				}
			}
		}
		return n
	}
	assert.Positive(t, count(wire))
	assert.Positive(t, count(solid))
}

func TestToonBand(t *testing.T) {
	assert.Equal(t, Scalar(0), toonBand(0.1, 5))
	assert.Equal(t, Scalar(1), toonBand(1, 5))
	assert.InDelta(t, 0.5, toonBand(0.5, 5), 1e-6)
	assert.InDelta(t, 0.37, toonBand(0.37, 1), 1e-6)
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, RGB(0x59, 0xd2, 0xf3), Hex(0x59d2f3))
	assert.Equal(t, RGB(0, 0, 0), RGB(10, 20, 30).MulScalar(-1))
	assert.Equal(t, RGB(0x80, 0x80, 0x80), RGB(0xFF, 0xFF, 0xFF).Modulate(RGB(0x80, 0x80, 0x80)))
	assert.Equal(t, RGB(100, 100, 100), Over(RGB(0, 0, 0), RGB(200, 200, 200), 0.5))
}
