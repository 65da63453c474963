/*
Package canvas is an in-memory RGBA surface for composited glyphs.

A canvas starts filled with a background color. Gray glyph bitmaps are
treated as coverage masks and painted in the foreground color; color
bitmaps are drawn as they are. Both are blended with the Over operator.
Whatever falls outside of the canvas is clipped.

The result may be exported as PNG or handed to a window backend.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package canvas

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
)

// tracer traces with key 'glyphpeek.backend'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.backend")
}

// Default canvas geometry.
const (
	DefaultWidth  = 512
	DefaultHeight = 128
)

// Canvas is an RGBA surface. It is not safe for concurrent use.
type Canvas struct {
	img *image.RGBA
	fg  *image.Uniform
}

// New creates a canvas of the given size, filled with bg. A nil bg is black.
// Non-positive dimensions fall back to the defaults.
func New(w, h int, bg color.Color) *Canvas {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if bg == nil {
		bg = color.Black
	}
	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		fg:  image.NewUniform(color.White),
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	tracer().Debugf("canvas %dx%d", w, h)
	return c
}

// SetForeground sets the color gray glyphs are painted in. Default is white.
func (c *Canvas) SetForeground(fg color.Color) {
	c.fg = image.NewUniform(fg)
}

// Bounds is the extent of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image returns the canvas' pixels. The image is shared with the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Composite draws a glyph bitmap with its top left corner at (x, y).
// Parts outside the canvas are silently dropped.
func (c *Canvas) Composite(bm *glyph.Bitmap, x, y int) {
	if bm.Empty() {
		return
	}
	r := image.Rect(x, y, x+bm.Width, y+bm.Rows)
	if !r.Overlaps(c.img.Rect) {
		tracer().Debugf("glyph at (%d,%d) is outside the canvas", x, y)
		return
	}
	switch bm.Mode {
	case glyph.PixelModeGray:
		draw.DrawMask(c.img, r, c.fg, image.Point{}, bm.Image(), image.Point{}, draw.Over)
	case glyph.PixelModeColor:
		draw.Draw(c.img, r, bm.Image(), image.Point{}, draw.Over)
	}
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return core.WrapError(err, core.ESURFACE, "cannot encode canvas as PNG")
	}
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.ESURFACE, "cannot create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = core.WrapError(cerr, core.ESURFACE, "cannot write %s", path)
		}
	}()
	w := bufio.NewWriter(f)
	if err = c.WritePNG(w); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return core.WrapError(err, core.ESURFACE, "cannot write %s", path)
	}
	tracer().Infof("canvas saved to %s", path)
	return nil
}
