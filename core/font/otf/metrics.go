package otf

import (
	"fmt"

	"github.com/npillmayer/glyphpeek/core/glyph"
)

// GlyphAdvance returns the horizontal advance of a glyph in font units, as
// recorded in table 'hmtx'.
//
// "In a font with TrueType outlines, the hmtx table […] has a
// longHorMetric record for the first numberOfHMetrics glyphs. If
// numberOfHMetrics is less than the total number of glyphs, then that array
// is followed by an array for the left side bearing values of the remaining
// glyphs", which all share the advance of the last longHorMetric record.
func (otf *Font) GlyphAdvance(gid glyph.Index) (int, error) {
	hmtx := otf.Table(T("hmtx"))
	if hmtx == nil {
		return 0, errFontFormat("font has no hmtx table")
	}
	n := otf.HHea.NumberOfHMetrics
	if n == 0 {
		return 0, errFontFormat("hhea reports no horizontal metrics")
	}
	if int(gid) >= otf.NumGlyphs {
		return 0, errFontFormat(fmt.Sprintf("glyph index %d out of range", gid))
	}
	i := int(gid)
	if i >= n {
		i = n - 1
	}
	adv, err := hmtx.data.u16(4 * i)
	if err != nil {
		return 0, errFontFormat("hmtx table too short")
	}
	return int(adv), nil
}

// AvgCharWidth returns xAvgCharWidth from table 'OS/2', in font units, or 0
// if the font has no OS/2 table.
func (otf *Font) AvgCharWidth() int {
	os2 := otf.Table(T("OS/2"))
	if os2 == nil {
		return 0
	}
	w, err := os2.data.i16(2)
	if err != nil {
		return 0
	}
	return int(w)
}

// LineHeight returns ascender minus descender plus line gap, in font units.
func (otf *Font) LineHeight() int {
	h := otf.HHea
	return int(h.Ascender) - int(h.Descender) + int(h.LineGap)
}
