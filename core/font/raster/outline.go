package raster

import (
	"image"
	"sync"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/glyph"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// outlineFace renders glyph outlines with x/image/vector.
type outlineFace struct {
	font       *font.ScalableFont
	sfnt       *sfnt.Font
	buf        sfnt.Buffer
	ppem       fixed.Int26_6
	size       int
	lineHeight int
	z          *vector.Rasterizer
	pool       sync.Pool // of *[]byte, coverage buffers
}

func openOutline(f *font.ScalableFont, size int) (*outlineFace, error) {
	// single fonts parse as a collection of one
	coll, err := sfnt.ParseCollection(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTFORMAT, "cannot load outlines of font %s", f.Fontname)
	}
	sf, err := coll.Font(0)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTFORMAT, "cannot load outlines of font %s", f.Fontname)
	}
	face := &outlineFace{
		font:       f,
		sfnt:       sf,
		ppem:       fixed.I(size),
		size:       size,
		lineHeight: scaledLineHeight(f, size),
		z:          vector.NewRasterizer(0, 0),
	}
	tracer().Debugf("outline face at %dpx, line height %d", size, face.lineHeight)
	return face, nil
}

func (face *outlineFace) Kind() Kind               { return Normal }
func (face *outlineFace) PixelSize() int           { return face.size }
func (face *outlineFace) LineHeight() int          { return face.lineHeight }
func (face *outlineFace) Font() *font.ScalableFont { return face.font }

func (face *outlineFace) GlyphIndex(r rune) (glyph.Index, bool) {
	return glyphIndex(face.font, r)
}

// RenderGlyph loads the glyph's outline scaled to the face's size and fills
// it into a coverage mask just large enough to hold it.
func (face *outlineFace) RenderGlyph(gid glyph.Index) (*glyph.Bitmap, error) {
	adv, err := face.sfnt.GlyphAdvance(&face.buf, sfnt.GlyphIndex(gid), face.ppem, xfont.HintingNone)
	if err != nil {
		return nil, rasterError(err, gid)
	}
	segs, err := face.sfnt.LoadGlyph(&face.buf, sfnt.GlyphIndex(gid), face.ppem, nil)
	if err != nil {
		return nil, rasterError(err, gid)
	}
	// sfnt segments have the y axis pointing down, with the baseline at 0.
	b := segs.Bounds()
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	w, h := b.Max.X.Ceil()-minX, b.Max.Y.Ceil()-minY
	if len(segs) == 0 || w <= 0 || h <= 0 {
		return glyph.NewBitmap(image.NewAlpha(image.Rectangle{}), 0, 0, adv, nil), nil
	}
	mask := &image.Alpha{Pix: face.coverage(w * h), Stride: w, Rect: image.Rect(0, 0, w, h)}
	face.z.Reset(w, h)
	dx, dy := float32(minX), float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - dx, float32(p.Y)/64 - dy
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo: // starts a new contour
			face.z.ClosePath()
			face.z.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			face.z.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			face.z.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			x3, y3 := pt(seg.Args[2])
			face.z.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	face.z.ClosePath()
	face.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return glyph.NewBitmap(mask, minX, -minY, adv, face.recycle), nil
}

// coverage returns a zeroed buffer of n bytes.
func (face *outlineFace) coverage(n int) []byte {
	if p, ok := face.pool.Get().(*[]byte); ok && cap(*p) >= n {
		pix := (*p)[:n]
		for i := range pix {
			pix[i] = 0
		}
		return pix
	}
	return make([]byte, n)
}

func (face *outlineFace) recycle(pix []byte) {
	face.pool.Put(&pix)
}
