package colorglyph

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/npillmayer/glyphpeek/core/font/otf"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"golang.org/x/image/draw"
)

// Table is a color bitmap table of a font, either sbix or CBLC/CBDT.
type Table interface {
	// Kind is the tag of the table, "sbix" or "CBDT".
	Kind() string
	// Strikes lists the bitmap sizes of the table, in table order.
	Strikes() []Strike
	// Lookup finds the bitmap for a glyph in a strike.
	Lookup(gid glyph.Index, strike int) (*Image, error)
}

// Strike is one size of bitmap glyphs.
//
// Width and Height are the nominal cell size of the strike in pixels: Height
// is the line height (ascender minus descender), Width the average character
// width, both scaled to the strike's pixels-per-em.
type Strike struct {
	PPEM          int
	PPI           int // sbix only
	Width, Height int
}

func (s Strike) String() string {
	return fmt.Sprintf("strike[%dppem %dx%d]", s.PPEM, s.Width, s.Height)
}

// SelectStrike returns the index of the strike whose width is closest to
// target. Of strikes with equal distance, the first one wins. If strikes is
// empty, SelectStrike returns -1.
func SelectStrike(strikes []Strike, target int) int {
	best, diff := -1, 0
	for i, s := range strikes {
		d := s.Width - target
		if d < 0 {
			d = -d
		}
		if best < 0 || d < diff {
			best, diff = i, d
		}
	}
	return best
}

// Open returns the color bitmap table of a font. An sbix table takes
// precedence over CBLC/CBDT tables. If the font has neither, Open returns
// ErrNoColorTable.
func Open(ot *otf.Font) (Table, error) {
	m := metricsOf(ot)
	if ot.HasTable(otf.T("sbix")) {
		tracer().Debugf("font has sbix table")
		sbix, err := ParseSBIX(ot.Table(otf.T("sbix")).Binary(), ot.NumGlyphs, m)
		if err != nil {
			return nil, err
		}
		return sbix, nil
	}
	if ot.HasTable(otf.T("CBDT")) {
		tracer().Debugf("font has CBDT table")
		cbdt, err := ParseCBDT(ot.Table(otf.T("CBDT")).Binary(), ot.Table(otf.T("CBLC")).Binary(), m)
		if err != nil {
			return nil, err
		}
		return cbdt, nil
	}
	return nil, ErrNoColorTable
}

// FontMetrics are the font-wide values needed to derive strike sizes, in
// font units.
type FontMetrics struct {
	UnitsPerEm          int
	Ascender, Descender int
	AvgCharWidth        int
}

func metricsOf(ot *otf.Font) FontMetrics {
	return FontMetrics{
		UnitsPerEm:   int(ot.Head.UnitsPerEm),
		Ascender:     int(ot.HHea.Ascender),
		Descender:    int(ot.HHea.Descender),
		AvgCharWidth: ot.AvgCharWidth(),
	}
}

// scale converts font units to pixels at ppem, rounding to nearest.
func (m FontMetrics) scale(units, ppem int) int {
	if m.UnitsPerEm == 0 {
		return 0
	}
	v := units * ppem
	if v < 0 {
		return -((-v + m.UnitsPerEm/2) / m.UnitsPerEm)
	}
	return (v + m.UnitsPerEm/2) / m.UnitsPerEm
}

// strikeWidth is the average character width at ppem, or ppem if the font
// does not tell its average character width.
func (m FontMetrics) strikeWidth(ppem int) int {
	if m.AvgCharWidth <= 0 {
		return ppem
	}
	return m.scale(m.AvgCharWidth, ppem)
}

// --- Images ----------------------------------------------------------------

// Format indicates how the data of a bitmap glyph is encoded.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

func (f Format) String() string {
	if f == FormatJPEG {
		return "JPEG"
	}
	return "PNG"
}

// Image is the encoded bitmap of a glyph in a strike.
//
// Left is the offset of the bitmap's first column from the pen position,
// Top the distance from the baseline up to its first row. Advance is the
// horizontal advance in pixels; it is -1 if the table does not record it,
// which is the case for sbix.
type Image struct {
	Glyph         glyph.Index
	Strike        int
	Data          []byte
	Format        Format
	Width, Height int
	Left, Top     int
	Advance       int
}

// Decode decodes the bitmap data to a premultiplied RGBA image with bounds
// starting at (0,0). If Width and Height have not been set from table
// metrics, they are set from the decoded image.
func (img *Image) Decode() (*image.RGBA, error) {
	var src image.Image
	var err error
	switch img.Format {
	case FormatPNG:
		src, err = png.Decode(bytes.NewReader(img.Data))
	case FormatJPEG:
		src, err = jpeg.Decode(bytes.NewReader(img.Data))
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("colorglyph: decoding %s bitmap of glyph %d: %w", img.Format, img.Glyph, err)
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	if img.Width == 0 || img.Height == 0 {
		img.Width, img.Height = b.Dx(), b.Dy()
	}
	return rgba, nil
}
