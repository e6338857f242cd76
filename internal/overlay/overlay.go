// Package overlay draws the section captions over a rendered frame.
//
// Captions scroll with the page like the headings of the sections they
// belong to, on the side opposite the section object.
package overlay

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"scrollscene/quarkgl"
)

// Overlay renders captions with a bitmap font. Text is scaled up in whole
// pixels so it stays legible on large targets.
type Overlay struct {
	font tinyfont.Fonter

	Normal color.RGBA
	Active color.RGBA

	// PixelsPerScale is the target height that maps to one font pixel.
	PixelsPerScale int
}

// New returns an overlay with the default caption colors.
func New() *Overlay {
	return &Overlay{
		font:           &proggy.TinySZ8pt7b,
		Normal:         color.RGBA{R: 0xff, G: 0xed, B: 0xed, A: 0xff},
		Active:         color.RGBA{R: 0xf4, G: 0xaf, B: 0xba, A: 0xff},
		PixelsPerScale: 160,
	}
}

// SetActive sets the highlight color.
func (o *Overlay) SetActive(c quarkgl.Color) {
	o.Active = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Scale returns the font scale used for a target of height h.
func (o *Overlay) Scale(h int) int {
	if o.PixelsPerScale <= 0 {
		return 1
	}
	return max(1, h/o.PixelsPerScale)
}

// Draw writes one caption per title. page is the scroll position in
// sections (offset / viewport height); active is highlighted.
func (o *Overlay) Draw(t quarkgl.Target, titles []string, active int, page float64) {
	if o == nil || t == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s := o.Scale(h)
	d := &targetDisplay{t: t, scale: s}

	lineH := int(o.font.GetYAdvance())
	for i, title := range titles {
		// Vertical centre of section i on screen, in target pixels.
		cy := int((float64(i)-page)*float64(h) + float64(h)/2)
		if cy+lineH*s < 0 || cy-lineH*s > h {
			continue
		}
		tw, _ := tinyfont.LineWidth(o.font, title)
		textW := int(tw) * s

		x := w / 10
		if i%2 == 1 {
			x = w - w/10 - textW
		}
		c := o.Normal
		if i == active {
			c = o.Active
		}
		baseline := cy + lineH*s/2
		tinyfont.WriteLine(d, o.font, int16(x/s), int16(baseline/s), title, c)
	}
}

// targetDisplay adapts a quarkgl target to the drivers.Displayer that
// tinyfont draws on. Each font pixel becomes a scale x scale block.
type targetDisplay struct {
	t     quarkgl.Target
	scale int
}

var _ drivers.Displayer = (*targetDisplay)(nil)

func (d *targetDisplay) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w / d.scale), int16(h / d.scale)
}

func (d *targetDisplay) SetPixel(x, y int16, c color.RGBA) {
	col := quarkgl.RGB(c.R, c.G, c.B)
	px, py := int(x)*d.scale, int(y)*d.scale
	for dy := 0; dy < d.scale; dy++ {
		for dx := 0; dx < d.scale; dx++ {
			d.t.SetPixel(px+dx, py+dy, col)
		}
	}
}

func (d *targetDisplay) Display() error { return nil }
