package quarkgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkIndices(t *testing.T, g Geometry) {
	t.Helper()
	require.Zero(t, len(g.Indices)%3)
	for _, i := range g.Indices {
		require.Less(t, int(i), len(g.Vertices))
	}
}

func TestTorusCounts(t *testing.T) {
	g := Torus(1, 0.4, 16, 60)
	assert.Len(t, g.Vertices, 17*61)
	assert.Equal(t, 16*60*2, g.Triangles())
	checkIndices(t, g)

	for _, v := range g.Vertices {
		r := Len(V3(v.Pos.X, v.Pos.Y, 0))
		assert.InDelta(t, 1, r, 0.4+1e-5)
		assert.LessOrEqual(t, v.Pos.Z, Scalar(0.4+1e-5))
	}
}

func TestConeShape(t *testing.T) {
	g := Cone(1, 2, 32)
	checkIndices(t, g)
	assert.Equal(t, 64, g.Triangles())
	assert.Equal(t, V3(0, 1, 0), g.Vertices[0].Pos)
	for _, v := range g.Vertices[2:] {
		assert.InDelta(t, -1, v.Pos.Y, 1e-6)
		assert.InDelta(t, 1, Len(V3(v.Pos.X, 0, v.Pos.Z)), 1e-5)
	}
}

func TestTorusKnotCounts(t *testing.T) {
	g := TorusKnot(0.8, 0.35, 100, 16, 2, 3)
	assert.Len(t, g.Vertices, 101*17)
	assert.Equal(t, 100*16*2, g.Triangles())
	checkIndices(t, g)
}

func TestSegmentsClamped(t *testing.T) {
	g := Torus(1, 0.4, 0, 1)
	assert.Equal(t, 3*3*2, g.Triangles())
	checkIndices(t, g)
}
