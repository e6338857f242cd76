package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Pixel(x, y int) Color
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)

// RGBATarget renders into a packed 8-bit RGBA buffer such as image.RGBA.Pix.
type RGBATarget struct {
	Pix    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// NewRGBATarget allocates a w*h target.
func NewRGBATarget(w, h int) *RGBATarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBATarget{Pix: make([]byte, w*h*4), Stride: w * 4, W: w, H: h}
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil {
		return 0, 0
	}
	return t.W, t.H
}

func (t *RGBATarget) offset(x, y int) int {
	if t == nil || t.Pix == nil || t.Stride <= 0 {
		return -1
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return -1
	}
	off := y*t.Stride + x*4
	if off+3 >= len(t.Pix) {
		return -1
	}
	return off
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Pix == nil || t.Stride <= 0 {
		return
	}
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*4
			if off+3 >= len(t.Pix) {
				return
			}
			t.Pix[off+0] = c.R
			t.Pix[off+1] = c.G
			t.Pix[off+2] = c.B
			t.Pix[off+3] = 0xFF
		}
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	off := t.offset(x, y)
	if off < 0 {
		return
	}
	t.Pix[off+0] = c.R
	t.Pix[off+1] = c.G
	t.Pix[off+2] = c.B
	t.Pix[off+3] = 0xFF
}

func (t *RGBATarget) Pixel(x, y int) Color {
	off := t.offset(x, y)
	if off < 0 {
		return Color{}
	}
	return Color{R: t.Pix[off], G: t.Pix[off+1], B: t.Pix[off+2], A: t.Pix[off+3]}
}
