package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex builds an opaque color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// MulScalar scales the color channels by s, clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Modulate multiplies two colors channel by channel (alpha is kept from c).
func (c Color) Modulate(o Color) Color {
	mul := func(a, b uint8) uint8 { return uint8((uint32(a) * uint32(b)) / 255) }
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: c.A}
}

// Over composites src over dst using alpha 0..1.
func Over(dst, src Color, alpha Scalar) Color {
	a := Clamp01(alpha)
	mix := func(d, s uint8) uint8 {
		return uint8(Scalar(d) + (Scalar(s)-Scalar(d))*a + 0.5)
	}
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }
