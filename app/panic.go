package app

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"scrollscene/quarkgl"
)

// ErrPanicked is wrapped by App.Err after a frame panicked.
var ErrPanicked = errors.New("app: panic")

// crash is the panic screen shown once a frame has panicked. The page stops
// updating; the user can still quit.
type crash struct {
	err   error
	lines []string
}

func newCrash(v any, stack []byte) *crash {
	lines := []string{
		"scrollscene panic:",
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	lines = append(lines, "", "press q to quit")
	return &crash{err: fmt.Errorf("%w: %v", ErrPanicked, v), lines: lines}
}

func (c *crash) draw(t quarkgl.Target) {
	t.Clear(quarkgl.RGB(0xFF, 0xFF, 0xFF))

	font := &proggy.TinySZ8pt7b
	fontHeight := int16(font.GetYAdvance())
	fontOffset := fontHeight - 2
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)

	maxW, maxH := t.Size()
	if fontWidth <= 0 || fontHeight <= 0 {
		return
	}
	cols := int16(maxW) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	d := panicDisplay{t: t}
	fg := color.RGBA{A: 255}
	y := int16(0)
	for _, line := range c.lines {
		for {
			if y+fontHeight > int16(maxH) {
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, font, fontWidth, fontOffset, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
			if line == "" {
				break
			}
		}
	}
}

func drawTextLine(
	d panicDisplay,
	font tinyfont.Fonter,
	fontWidth, fontOffset int16,
	x0, y0 int16,
	s string,
	fg color.RGBA,
) {
	var drawX = x0
	for _, r := range s {
		tinyfont.DrawChar(d, font, drawX, y0+fontOffset, r, fg)
		drawX += fontWidth
	}
}

type panicDisplay struct {
	t quarkgl.Target
}

func (d panicDisplay) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), quarkgl.RGB(c.R, c.G, c.B))
}

func (d panicDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
