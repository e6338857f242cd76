package quarkgl

// Material is a minimal surface description.
//
// Meshes hold a pointer so several meshes can share one material and change
// color together.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.

	// ToonSteps quantizes diffuse lighting into this many bands.
	// Values below 2 disable banding.
	ToonSteps int
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Color     Color
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Camera is a perspective camera attached to a node. It looks down the
// node's local -Z axis.
type Camera struct {
	Node *Node

	FOVYRad Scalar
	Near    Scalar
	Far     Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	w := c.Node.World()
	eye := V3(w[12], w[13], w[14])
	forward := Normalize(V3(-w[8], -w[9], -w[10]))
	up := Normalize(V3(w[4], w[5], w[6]))
	if forward == (Vec3{}) {
		forward = V3(0, 0, -1)
	}
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(eye, eye.Add(forward), up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 100
	}
	return Mat4Perspective(fov, aspect, near, far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is a triangle mesh placed by a node.
type Mesh struct {
	Enabled bool

	Node     *Node
	Vertices []Vertex
	Indices  []uint16 // triangle list
	Material *Material
}

// Points is a cloud of square sprites, used for particles.
type Points struct {
	Enabled bool

	Node      *Node
	Positions []Vec3
	Color     Color

	// Size is the sprite size in world units when Attenuate is set,
	// otherwise in pixels.
	Size      Scalar
	Attenuate bool
}

// Scene is a collection of objects to render.
type Scene struct {
	Root   *Node
	Camera Camera
	Light  Light

	// Background is used to clear the target before drawing.
	Background Color

	meshes []*Mesh
	points []*Points
	max    int
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	root := NewNode("root")
	cam := NewNode("camera")
	cam.Position = V3(0, 0, 3)
	cam.SetParent(root)
	return &Scene{
		Root: root,
		Camera: Camera{
			Node:    cam,
			FOVYRad: Scalar(1.0),
			Near:    Scalar(0.05),
			Far:     Scalar(100),
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Color:     RGB(0xFF, 0xFF, 0xFF),
			Ambient:   Scalar(0.25),
			Dir:       Normalize(V3(-1, -1, -1)),
			DirAmount: Scalar(0.75),
		},
		meshes: make([]*Mesh, 0, maxMeshes),
		max:    maxMeshes,
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m *Mesh) int {
	if s == nil || m == nil || len(s.meshes) >= s.max {
		return -1
	}
	if m.Node == nil {
		m.Node = NewNode("")
	}
	if m.Node.Parent() == nil && m.Node != s.Root {
		m.Node.SetParent(s.Root)
	}
	if m.Material == nil {
		m.Material = &Material{}
	}
	if m.Material.Opacity == 0 {
		m.Material.Opacity = 0xFF
	}
	if m.Material.BaseColor == (Color{}) {
		m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
	}
	m.Enabled = true
	s.meshes = append(s.meshes, m)
	return len(s.meshes) - 1
}

// Mesh returns the mesh with the given id, or nil.
func (s *Scene) Mesh(id int) *Mesh {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return nil
	}
	return s.meshes[id]
}

// MeshCount returns the number of meshes in the scene.
func (s *Scene) MeshCount() int {
	if s == nil {
		return 0
	}
	return len(s.meshes)
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if m := s.Mesh(id); m != nil {
		m.Enabled = enabled
	}
}

// AddPoints adds a point cloud to the scene.
func (s *Scene) AddPoints(p *Points) {
	if s == nil || p == nil {
		return
	}
	if p.Node == nil {
		p.Node = NewNode("")
	}
	if p.Node.Parent() == nil && p.Node != s.Root {
		p.Node.SetParent(s.Root)
	}
	if p.Color == (Color{}) {
		p.Color = RGB(0xFF, 0xFF, 0xFF)
	}
	p.Enabled = true
	s.points = append(s.points, p)
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for _, m := range s.meshes {
		if m == nil || !m.Enabled {
			continue
		}
		fn(m)
	}
}

func (s *Scene) eachPoints(fn func(p *Points)) {
	for _, p := range s.points {
		if p == nil || !p.Enabled {
			continue
		}
		fn(p)
	}
}
