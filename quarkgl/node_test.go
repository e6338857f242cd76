package quarkgl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeWorldComposesParents(t *testing.T) {
	rig := NewNode("rig")
	rig.Position = V3(0.5, -0.25, 0)
	cam := NewNode("camera")
	cam.Position = V3(0, -8, 6)
	assert.True(t, cam.SetParent(rig))

	p := cam.WorldPosition()
	assert.InDelta(t, 0.5, p.X, 1e-6)
	assert.InDelta(t, -8.25, p.Y, 1e-6)
	assert.InDelta(t, 6, p.Z, 1e-6)
}

func TestNodeRejectsCycles(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	assert.True(t, b.SetParent(a))
	assert.False(t, a.SetParent(b))
	assert.False(t, a.SetParent(a))
	assert.Nil(t, a.Parent())
}

func TestZeroScaleIsIdentity(t *testing.T) {
	var n Node
	assert.Equal(t, Mat4Identity(), n.Local())

	var nilNode *Node
	assert.Equal(t, Mat4Identity(), nilNode.World())
}
