// Package stage builds the scrolling scene: one object per page section,
// a particle field spanning every section, a single directional light and a
// camera carried by a parallax rig.
package stage

import (
	"fmt"
	"math/rand/v2"
	"time"

	"scrollscene/internal/config"
	"scrollscene/quarkgl"
)

// Section object spacing on the x axis, alternating right and left.
const sideOffset = 2

// Stage is the built scene plus the nodes the driver moves.
type Stage struct {
	Scene     *quarkgl.Scene
	Rig       *quarkgl.Node
	Material  *quarkgl.Material
	Particles *quarkgl.Points

	sections []*quarkgl.Node
	titles   []string
}

// New builds the scene described by cfg. cfg must be valid.
func New(cfg config.Config) (*Stage, error) {
	sc := cfg.Scene
	n := len(cfg.Sections)
	pal := cfg.Palette()

	scene := quarkgl.CreateScene(n)
	scene.Background = pal.Background

	mat := &quarkgl.Material{
		BaseColor: pal.Material,
		Opacity:   0xFF,
		ToonSteps: sc.ToonSteps,
	}

	st := &Stage{
		Scene:    scene,
		Material: mat,
		sections: make([]*quarkgl.Node, 0, n),
		titles:   make([]string, 0, n),
	}

	dist := quarkgl.Scalar(sc.ObjectsDistance)
	for i, sec := range cfg.Sections {
		geo, err := geometryFor(sec.Shape)
		if err != nil {
			return nil, fmt.Errorf("stage: section %d: %w", i, err)
		}
		node := quarkgl.NewNode(string(sec.Shape))
		node.Position = quarkgl.V3(sideFor(i), -dist*quarkgl.Scalar(i), 0)
		if scene.AddMesh(geo.NewMesh(node, mat)) < 0 {
			return nil, fmt.Errorf("stage: section %d: scene full", i)
		}
		st.sections = append(st.sections, node)
		st.titles = append(st.titles, sec.Title)
	}

	st.Particles = &quarkgl.Points{
		Node:      quarkgl.NewNode("particles"),
		Positions: Scatter(newRand(sc.Seed), sc.ParticleCount, sc.ObjectsDistance, n),
		Color:     pal.Particle,
		Size:      quarkgl.Scalar(sc.ParticleSize),
		Attenuate: true,
	}
	scene.AddPoints(st.Particles)

	p := sc.LightPosition
	scene.Light = quarkgl.Light{
		Mode:      quarkgl.LightAmbientDirectional,
		Color:     pal.Light,
		Ambient:   quarkgl.Scalar(sc.Ambient),
		Dir:       quarkgl.Normalize(quarkgl.V3(-quarkgl.Scalar(p[0]), -quarkgl.Scalar(p[1]), -quarkgl.Scalar(p[2]))),
		DirAmount: quarkgl.Scalar(sc.LightIntensity),
	}

	st.Rig = quarkgl.NewNode("rig")
	st.Rig.SetParent(scene.Root)
	cam := scene.Camera.Node
	cam.SetParent(st.Rig)
	cam.Position = quarkgl.V3(0, 0, quarkgl.Scalar(sc.CameraDistance))
	scene.Camera.FOVYRad = quarkgl.Radians(quarkgl.Scalar(sc.FOV))
	scene.Camera.Near = 0.1
	scene.Camera.Far = 100

	return st, nil
}

func sideFor(i int) quarkgl.Scalar {
	if i%2 == 0 {
		return sideOffset
	}
	return -sideOffset
}

func geometryFor(s config.Shape) (quarkgl.Geometry, error) {
	switch s {
	case config.ShapeTorus:
		return quarkgl.Torus(1, 0.4, 16, 60), nil
	case config.ShapeCone:
		return quarkgl.Cone(1, 2, 32), nil
	case config.ShapeTorusKnot:
		return quarkgl.TorusKnot(0.8, 0.35, 100, 16, 2, 3), nil
	}
	return quarkgl.Geometry{}, fmt.Errorf("unknown shape %q", s)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Scatter places count particles in a 10x10 column that runs from half a
// section above the first object down to the bottom of the last section.
func Scatter(r *rand.Rand, count int, distance float64, sections int) []quarkgl.Vec3 {
	if count <= 0 {
		return nil
	}
	out := make([]quarkgl.Vec3, count)
	for i := range out {
		out[i] = quarkgl.V3(
			quarkgl.Scalar((r.Float64()-0.5)*10),
			quarkgl.Scalar(distance*0.5-r.Float64()*distance*float64(sections)),
			quarkgl.Scalar((r.Float64()-0.5)*10),
		)
	}
	return out
}

// Sections returns the section object nodes in page order.
func (s *Stage) Sections() []*quarkgl.Node { return s.sections }

// Titles returns the section captions in page order.
func (s *Stage) Titles() []string { return s.titles }

// Camera returns the camera node. Its parent is Rig.
func (s *Stage) Camera() *quarkgl.Node { return s.Scene.Camera.Node }

// ApplyPalette recolors the scene in place.
func (s *Stage) ApplyPalette(p config.Palette) {
	s.Material.BaseColor = p.Material
	s.Particles.Color = p.Particle
	s.Scene.Light.Color = p.Light
	s.Scene.Background = p.Background
}
