package hal

import (
	"image"
	"image/png"
	"io"
	"math"
	"sync"
)

// Framebuffer is the RGBA image an App draws into and a runner presents.
type Framebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

// NewFramebuffer allocates a width x height framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Rect.Dx()
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.Rect.Dy()
}

// Resize reallocates the buffer when the size changes and reports whether
// it did.
func (f *Framebuffer) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img.Rect.Dx() == width && f.img.Rect.Dy() == height {
		return false
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

// Draw calls fn with exclusive access to the image.
func (f *Framebuffer) Draw(fn func(img *image.RGBA)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.img)
}

// Snapshot copies the current image into dst, reallocating it when the size
// differs, and returns it.
func (f *Framebuffer) Snapshot(dst *image.RGBA) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dst == nil || dst.Rect != f.img.Rect {
		dst = image.NewRGBA(f.img.Rect)
	}
	copy(dst.Pix, f.img.Pix)
	return dst
}

// WritePNG encodes the current image.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, f.Snapshot(nil))
}

// scaledSize returns the framebuffer size for a viewport at the given
// render scale, at least 1x1.
func scaledSize(width, height int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(width) * scale))
	h := int(math.Ceil(float64(height) * scale))
	return max(w, 1), max(h, 1)
}
