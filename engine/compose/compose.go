package compose

import (
	"fmt"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/glyphpeek/core/runescan"
)

// Surface receives glyph bitmaps. x and y locate the bitmap's top left
// corner; they may be negative or beyond the surface's extent.
type Surface interface {
	Composite(bm *glyph.Bitmap, x, y int)
}

// Placement records where a glyph has been set.
type Placement struct {
	Scalar      runescan.Scalar
	Glyph       glyph.Index
	X, Y        int // top left corner of the bitmap
	Advance     int // pixels the pen moved after this glyph
	Width, Rows int
	Mode        glyph.PixelMode
}

func (p Placement) String() string {
	return fmt.Sprintf("%s→#%d@(%d,%d)+%d", p.Scalar, p.Glyph, p.X, p.Y, p.Advance)
}

// Result summarizes a composition run.
type Result struct {
	Placements []Placement
	Pen        int             // pen position after the last glyph
	Consumed   int             // bytes of input decoded
	Reason     runescan.Reason // why decoding stopped
}

type options struct {
	mode     runescan.Mode
	observer func(Placement)
	bearing  bool
}

// Option configures a composition run.
type Option func(*options)

// WithMode sets the decoding mode, runescan.Lenient by default.
func WithMode(m runescan.Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithObserver registers a function called for every glyph before it is
// composited.
func WithObserver(f func(Placement)) Option {
	return func(o *options) {
		o.observer = f
	}
}

// WithBearing applies the left bearing of bitmaps horizontally. Without it,
// every bitmap starts at the pen position.
func WithBearing(on bool) Option {
	return func(o *options) {
		o.bearing = on
	}
}

// VerticalPlacement is the y coordinate of a glyph's top row for a line
// height and the glyph's top bearing.
func VerticalPlacement(lineHeight, top int) int {
	return lineHeight - top
}

// Run composes text onto a surface. Decoding stops at the end of the input,
// at a NUL byte or at the first undecodable sequence; none of these is an
// error, and Result.Reason tells which one occurred.
//
// If a scalar has no glyph in the font, Run stops and returns an error with
// code core.EGLYPHMISSING. Rasterizer errors are returned as they are.
// Result reflects the glyphs set up to the error.
func Run(text []byte, r raster.Rasterizer, s Surface, lineHeight int, opts ...Option) (Result, error) {
	o := options{mode: runescan.Lenient}
	for _, opt := range opts {
		opt(&o)
	}
	var res Result
	sc := runescan.NewScanner(text, o.mode)
	for scalar, ok := sc.Next(); ok; scalar, ok = sc.Next() {
		res.Consumed = sc.Pos()
		gid, found := r.GlyphIndex(rune(scalar))
		if !found {
			tracer().Errorf("no glyph for %s", scalar)
			res.Reason = sc.Reason()
			return res, core.Error(core.EGLYPHMISSING, "glyph not found in font: %s", scalar)
		}
		bm, err := r.RenderGlyph(gid)
		if err != nil {
			res.Reason = sc.Reason()
			return res, err
		}
		p := Placement{
			Scalar:  scalar,
			Glyph:   gid,
			X:       res.Pen,
			Y:       VerticalPlacement(lineHeight, bm.Top),
			Advance: bm.AdvancePixels(),
			Width:   bm.Width,
			Rows:    bm.Rows,
			Mode:    bm.Mode,
		}
		if o.bearing {
			p.X += bm.Left
		}
		if o.observer != nil {
			o.observer(p)
		}
		if !bm.Empty() {
			s.Composite(bm, p.X, p.Y)
		}
		bm.Release()
		tracer().Debugf("placed %s", p)
		res.Placements = append(res.Placements, p)
		res.Pen += p.Advance
	}
	res.Consumed = sc.Pos()
	res.Reason = sc.Reason()
	return res, nil
}
