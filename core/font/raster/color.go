package raster

import (
	"errors"
	"image"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/font/colorglyph"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"golang.org/x/image/math/fixed"
)

// colorFace delivers the bitmaps of one strike of a color font, unscaled.
type colorFace struct {
	font   *font.ScalableFont
	table  colorglyph.Table
	strike int
	info   colorglyph.Strike
}

func openColor(f *font.ScalableFont, size int) (*colorFace, error) {
	tab, err := colorglyph.Open(f.OT)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTFORMAT, "cannot read color glyphs of font %s", f.Fontname)
	}
	strike := colorglyph.SelectStrike(tab.Strikes(), size)
	if strike < 0 {
		return nil, core.Error(core.EFONTFORMAT, "color font %s has no bitmap strikes", f.Fontname)
	}
	face := &colorFace{
		font:   f,
		table:  tab,
		strike: strike,
		info:   tab.Strikes()[strike],
	}
	tracer().Infof("%s: selected %s %s (of %d)", f.Fontname, tab.Kind(), face.info, len(tab.Strikes()))
	return face, nil
}

func (face *colorFace) Kind() Kind               { return Color }
func (face *colorFace) PixelSize() int           { return face.info.PPEM }
func (face *colorFace) Font() *font.ScalableFont { return face.font }

// LineHeight is the height of the selected strike.
func (face *colorFace) LineHeight() int {
	return face.info.Height
}

func (face *colorFace) GlyphIndex(r rune) (glyph.Index, bool) {
	return glyphIndex(face.font, r)
}

// RenderGlyph decodes the glyph's image from the selected strike. Glyphs
// without an image in the strike, e.g. spaces, yield an empty bitmap which
// still advances the pen.
func (face *colorFace) RenderGlyph(gid glyph.Index) (*glyph.Bitmap, error) {
	img, err := face.table.Lookup(gid, face.strike)
	if errors.Is(err, colorglyph.ErrGlyphNotInStrike) {
		tracer().Debugf("glyph %d has no bitmap in strike", gid)
		adv, err := face.hmtxAdvance(gid)
		if err != nil {
			return nil, rasterError(err, gid)
		}
		return glyph.NewBitmap(image.NewRGBA(image.Rectangle{}), 0, 0, adv, nil), nil
	} else if err != nil {
		return nil, rasterError(err, gid)
	}
	rgba, err := img.Decode()
	if err != nil {
		return nil, rasterError(err, gid)
	}
	adv := fixed.I(img.Advance)
	if img.Advance < 0 {
		if adv, err = face.hmtxAdvance(gid); err != nil {
			return nil, rasterError(err, gid)
		}
	}
	return glyph.NewBitmap(rgba, img.Left, img.Top, adv, nil), nil
}

// hmtxAdvance scales the glyph's advance from table 'hmtx' to the strike.
func (face *colorFace) hmtxAdvance(gid glyph.Index) (fixed.Int26_6, error) {
	units, err := face.font.OT.GlyphAdvance(gid)
	if err != nil {
		return 0, err
	}
	upem := int(face.font.OT.Head.UnitsPerEm)
	return fixed.Int26_6(units * face.info.PPEM * 64 / upem), nil
}
