package raster

import (
	"image"

	"github.com/golang/freetype/truetype"
	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// freetypeFace renders glyphs with the pure Go port of FreeType.
//
// The truetype face renders by code-point, not by glyph index. GlyphIndex
// therefore remembers which code-point a glyph has been requested for, and
// RenderGlyph only accepts glyphs handed out by GlyphIndex.
type freetypeFace struct {
	font       *font.ScalableFont
	face       xfont.Face
	size       int
	lineHeight int
	runes      map[glyph.Index]rune
}

func openFreeType(f *font.ScalableFont, size int) (*freetypeFace, error) {
	// truetype.Parse takes the first font of a collection
	tt, err := truetype.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTFORMAT, "freetype cannot load font %s", f.Fontname)
	}
	face := &freetypeFace{
		font: f,
		face: truetype.NewFace(tt, &truetype.Options{
			Size:    float64(size),
			DPI:     72, // 1pt = 1px
			Hinting: xfont.HintingNone,
		}),
		size:       size,
		lineHeight: scaledLineHeight(f, size),
		runes:      make(map[glyph.Index]rune),
	}
	return face, nil
}

func (face *freetypeFace) Kind() Kind               { return Normal }
func (face *freetypeFace) PixelSize() int           { return face.size }
func (face *freetypeFace) LineHeight() int          { return face.lineHeight }
func (face *freetypeFace) Font() *font.ScalableFont { return face.font }

func (face *freetypeFace) GlyphIndex(r rune) (glyph.Index, bool) {
	gid, ok := glyphIndex(face.font, r)
	if ok {
		face.runes[gid] = r
	}
	return gid, ok
}

func (face *freetypeFace) RenderGlyph(gid glyph.Index) (*glyph.Bitmap, error) {
	r, ok := face.runes[gid]
	if !ok {
		return nil, core.Error(core.ERASTER, "freetype engine cannot render glyph %d without its code-point", gid)
	}
	dr, mask, maskp, adv, ok := face.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, core.Error(core.ERASTER, "freetype cannot render glyph %d", gid)
	}
	// The mask is owned by the face and overwritten by the next call.
	cov := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.Draw(cov, cov.Bounds(), mask, maskp, draw.Src)
	// dr is relative to a dot on the baseline, y pointing down.
	return glyph.NewBitmap(cov, dr.Min.X, -dr.Min.Y, adv, nil), nil
}
