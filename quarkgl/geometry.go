package quarkgl

import "github.com/chewxy/math32"

// Geometry is an indexed triangle list without placement or material.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// NewMesh wraps g into a mesh placed by node and shaded with mat.
func (g Geometry) NewMesh(node *Node, mat *Material) *Mesh {
	return &Mesh{Node: node, Vertices: g.Vertices, Indices: g.Indices, Material: mat}
}

// Triangles returns the number of triangles in g.
func (g Geometry) Triangles() int { return len(g.Indices) / 3 }

const twoPi = 2 * math32.Pi

// Torus builds a ring of the given radius around the Z axis with a circular
// tube cross-section.
func Torus(radius, tube Scalar, radialSegments, tubularSegments int) Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	g := Geometry{
		Vertices: make([]Vertex, 0, (radialSegments+1)*(tubularSegments+1)),
		Indices:  make([]uint16, 0, radialSegments*tubularSegments*6),
	}
	for j := 0; j <= radialSegments; j++ {
		v := Scalar(j) / Scalar(radialSegments) * twoPi
		sv, cv := math32.Sincos(v)
		for i := 0; i <= tubularSegments; i++ {
			u := Scalar(i) / Scalar(tubularSegments) * twoPi
			su, cu := math32.Sincos(u)
			g.Vertices = append(g.Vertices, Vertex{Pos: V3(
				(radius+tube*cv)*cu,
				(radius+tube*cv)*su,
				tube*sv,
			)})
		}
	}

	row := tubularSegments + 1
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := uint16(row*j + i - 1)
			b := uint16(row*(j-1) + i - 1)
			c := uint16(row*(j-1) + i)
			d := uint16(row*j + i)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// Cone builds a cone along the Y axis centred on the origin, apex up, with a
// closed base.
func Cone(radius, height Scalar, radialSegments int) Geometry {
	radialSegments = max(radialSegments, 3)
	half := height / 2

	g := Geometry{
		Vertices: make([]Vertex, 0, radialSegments+3),
		Indices:  make([]uint16, 0, radialSegments*6),
	}
	g.Vertices = append(g.Vertices,
		Vertex{Pos: V3(0, half, 0)},  // apex
		Vertex{Pos: V3(0, -half, 0)}, // base centre
	)
	for x := 0; x <= radialSegments; x++ {
		theta := Scalar(x) / Scalar(radialSegments) * twoPi
		s, c := math32.Sincos(theta)
		g.Vertices = append(g.Vertices, Vertex{Pos: V3(radius*s, -half, radius*c)})
	}
	for x := 0; x < radialSegments; x++ {
		a := uint16(2 + x)
		b := uint16(3 + x)
		g.Indices = append(g.Indices, 0, a, b) // side
		g.Indices = append(g.Indices, 1, b, a) // base
	}
	return g
}

// TorusKnot builds a (p, q) torus knot tube.
func TorusKnot(radius, tube Scalar, tubularSegments, radialSegments, p, q int) Geometry {
	tubularSegments = max(tubularSegments, 3)
	radialSegments = max(radialSegments, 3)
	if p <= 0 {
		p = 2
	}
	if q <= 0 {
		q = 3
	}

	curve := func(u Scalar) Vec3 {
		su, cu := math32.Sincos(u)
		quOverP := Scalar(q) / Scalar(p) * u
		sq, cq := math32.Sincos(quOverP)
		return V3(
			radius*(2+cq)*0.5*cu,
			radius*(2+cq)*su*0.5,
			radius*sq*0.5,
		)
	}

	g := Geometry{
		Vertices: make([]Vertex, 0, (tubularSegments+1)*(radialSegments+1)),
		Indices:  make([]uint16, 0, tubularSegments*radialSegments*6),
	}
	for i := 0; i <= tubularSegments; i++ {
		u := Scalar(i) / Scalar(tubularSegments) * Scalar(p) * twoPi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := Normalize(Cross(t, n))
		n = Normalize(Cross(b, t))

		for j := 0; j <= radialSegments; j++ {
			v := Scalar(j) / Scalar(radialSegments) * twoPi
			sv, cv := math32.Sincos(v)
			cx := -tube * cv
			cy := tube * sv
			g.Vertices = append(g.Vertices, Vertex{Pos: p1.Add(n.Mul(cx)).Add(b.Mul(cy))})
		}
	}

	row := radialSegments + 1
	for i := 1; i <= tubularSegments; i++ {
		for j := 1; j <= radialSegments; j++ {
			a := uint16(row*(i-1) + j - 1)
			b := uint16(row*i + j - 1)
			c := uint16(row*i + j)
			d := uint16(row*(i-1) + j)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}
