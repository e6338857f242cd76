package quarkgl

import "github.com/chewxy/math32"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode  RenderMode
	Depth bool

	depthBuf []float32
}

// minClipW rejects geometry on or behind the camera plane.
const minClipW = 1e-4

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:  RenderSolidFlat,
		Depth: enableDepth,
	}
	if enableDepth {
		r.Resize(w, h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Resize sizes the depth buffer for a w*h target.
func (r *Renderer) Resize(w, h int) {
	if !r.Depth || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// frame carries the per-frame state shared by every draw call.
type frame struct {
	t    Target
	w, h int
	vp   Mat4 // projection * view
	eye  Vec3
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(s.Background)

	if r.Depth {
		if len(r.depthBuf) != w*h {
			r.Resize(w, h)
		}
		r.clearDepth()
	}

	aspect := Scalar(w) / Scalar(h)
	f := frame{
		t:   t,
		w:   w,
		h:   h,
		vp:  Mat4Mul(s.Camera.Projection(aspect), s.Camera.View()),
		eye: s.Camera.Node.WorldPosition(),
	}

	s.eachMesh(func(m *Mesh) {
		r.renderMesh(f, m, s.Light)
	})
	// Sprites blend over the shaded meshes and never write depth.
	s.eachPoints(func(p *Points) {
		r.renderPoints(f, p)
	})
}

func (r *Renderer) renderMesh(f frame, m *Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 || m.Material == nil {
		return
	}
	model := m.Node.World()
	mat := *m.Material
	base := mat.BaseColor
	if light.Mode != LightOff && light.Color != (Color{}) {
		base = base.Modulate(light.Color)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		w0 := Mat4MulPoint(model, m.Vertices[i0].Pos)
		w1 := Mat4MulPoint(model, m.Vertices[i1].Pos)
		w2 := Mat4MulPoint(model, m.Vertices[i2].Pos)

		p0 := Mat4MulV4(f.vp, Vec4{X: w0.X, Y: w0.Y, Z: w0.Z, W: 1})
		p1 := Mat4MulV4(f.vp, Vec4{X: w1.X, Y: w1.Y, Z: w1.Z, W: 1})
		p2 := Mat4MulV4(f.vp, Vec4{X: w2.X, Y: w2.Y, Z: w2.Z, W: 1})

		// Trivial clip: drop any triangle that touches the camera plane.
		if p0.W < minClipW || p1.W < minClipW || p2.W < minClipW {
			continue
		}

		ndc0 := clipToNDC(p0)
		ndc1 := clipToNDC(p1)
		ndc2 := clipToNDC(p2)

		x0, y0 := ndcToScreen(ndc0, f.w, f.h)
		x1, y1 := ndcToScreen(ndc1, f.w, f.h)
		x2, y2 := ndcToScreen(ndc2, f.w, f.h)

		c := base
		if light.Mode == LightAmbientDirectional {
			n := triangleNormal(w0, w1, w2)
			// Two-sided: face the normal towards the viewer.
			if Dot(n, f.eye.Sub(w0)) < 0 {
				n = n.Mul(-1)
			}
			c = base.MulScalar(lightIntensity(light, n, mat.ToonSteps))
		}

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(f.t, x0, y0, x1, y1, c)
			r.drawLine(f.t, x1, y1, x2, y2, c)
			r.drawLine(f.t, x2, y2, x0, y0, c)
		default:
			r.fillTriangleFlat(f, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c, mat.Opacity)
		}
	}
}

func (r *Renderer) renderPoints(f frame, p *Points) {
	if len(p.Positions) == 0 || p.Size <= 0 {
		return
	}
	model := p.Node.World()
	mvp := Mat4Mul(f.vp, model)
	alpha := Scalar(p.Color.A) / 255
	if p.Color.A == 0 {
		alpha = 1
	}
	half := Scalar(f.h) / 2

	for _, pos := range p.Positions {
		c := Mat4MulV4(mvp, Vec4{X: pos.X, Y: pos.Y, Z: pos.Z, W: 1})
		if c.W < minClipW {
			continue
		}
		ndc := clipToNDC(c)
		if ndc.Z < -1 || ndc.Z > 1 {
			continue
		}
		size := p.Size
		if p.Attenuate {
			size = p.Size * half / c.W
		}
		if size < 1 {
			size = 1
		}
		x, y := ndcToScreen(ndc, f.w, f.h)
		r.splat(f, x, y, size/2, ndc.Z, p.Color, alpha)
	}
}

// splat draws a round sprite with a soft edge. It depth-tests but never
// writes depth.
func (r *Renderer) splat(f frame, cx, cy int, radius Scalar, z float32, c Color, alpha Scalar) {
	ir := int(math32.Ceil(radius))
	if cx+ir < 0 || cy+ir < 0 || cx-ir >= f.w || cy-ir >= f.h {
		return
	}
	r2 := radius * radius
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= f.w || y >= f.h {
				continue
			}
			d2 := Scalar(dx*dx + dy*dy)
			if d2 > r2 {
				continue
			}
			if !r.depthTest(f.w, x, y, z, false) {
				continue
			}
			a := alpha
			if r2 > 1 {
				a *= 1 - d2/r2
			}
			f.t.SetPixel(x, y, Over(f.t.Pixel(x, y), c, a))
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) ndcPoint {
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(math32.Floor(sx + 0.5)), int(math32.Floor(sy + 0.5))
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3, toonSteps int) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + toonBand(d, toonSteps)*dir)
}

// toonBand quantizes v (0..1) into steps bands spread over 0..1.
func toonBand(v Scalar, steps int) Scalar {
	if steps < 2 {
		return v
	}
	b := math32.Floor(Clamp01(v) * Scalar(steps))
	if b > Scalar(steps-1) {
		b = Scalar(steps - 1)
	}
	return b / Scalar(steps-1)
}

func (r *Renderer) depthTest(w int, x, y int, z float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := Clamp01(z*0.5 + 0.5)
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangleFlat(f frame, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color, opacity uint8) {
	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, f.w-1)
	maxY = min(maxY, f.h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Accept both windings.
	sign := 1
	if area < 0 {
		sign = -1
		area = -area
	}
	invArea := 1.0 / float32(area)
	alpha := Scalar(opacity) / 255
	blend := opacity != 0xFF

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := sign * edgeFn(x1, y1, x2, y2, x, y)
			w1 := sign * edgeFn(x2, y2, x0, y0, x, y)
			w2 := sign * edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(f.w, x, y, z, !blend) {
				continue
			}
			if blend {
				f.t.SetPixel(x, y, Over(f.t.Pixel(x, y), c, alpha))
				continue
			}
			f.t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int { return min(a, b, c) }

func max3(a, b, c int) int { return max(a, b, c) }
