package quarkgl

// Node is a transform in the scene hierarchy.
//
// Rotation holds Euler angles in radians applied in XYZ order. A zero Scale is
// treated as (1, 1, 1) so a literal Node{} is a valid identity transform.
type Node struct {
	Name     string
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	parent *Node
}

// NewNode returns a node with unit scale at the origin.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: V3(1, 1, 1)}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// SetParent attaches n below p. Passing nil detaches it. Attaching a node
// below itself or one of its descendants is ignored and reports false.
func (n *Node) SetParent(p *Node) bool {
	if n == nil {
		return false
	}
	for q := p; q != nil; q = q.parent {
		if q == n {
			return false
		}
	}
	n.parent = p
	return true
}

// Local returns the node transform relative to its parent.
func (n *Node) Local() Mat4 {
	if n == nil {
		return Mat4Identity()
	}
	scale := n.Scale
	if scale == (Vec3{}) {
		scale = V3(1, 1, 1)
	}
	return Mat4Compose(n.Position, n.Rotation, scale)
}

// World returns the node transform in scene space.
func (n *Node) World() Mat4 {
	if n == nil {
		return Mat4Identity()
	}
	m := n.Local()
	for p := n.parent; p != nil; p = p.parent {
		m = Mat4Mul(p.Local(), m)
	}
	return m
}

// WorldPosition returns the node origin in scene space.
func (n *Node) WorldPosition() Vec3 {
	w := n.World()
	return V3(w[12], w[13], w[14])
}
