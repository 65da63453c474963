/*
Package otf reads the tables of an OpenType font needed to map code-points
to glyphs and to measure glyphs.

Package otf does not rasterize. It exposes the table directory of a font
and interprets a small set of tables:

▪︎ cmap: character to glyph mapping (formats 4 and 12)

▪︎ head, hhea, maxp, hmtx: units per em, line metrics, glyph count and
advance widths

▪︎ name: the font's full name

Every other table is kept as raw bytes, to be interpreted by clients. For
example, color glyph tables (sbix, CBLC, CBDT) are handed to package
colorglyph:

	otf, err := otf.Parse(data)
	…
	if otf.HasTable(otf.T("sbix")) {
		sbix := otf.Table(otf.T("sbix")).Binary()
		…
	}

Fonts with bitmap glyphs only (no glyf or CFF table) are fine for package
otf, as long as the mandatory tables cmap, head and maxp are present.

Code comments often cite passages from the OpenType specification version
1.8.4; see https://docs.microsoft.com/en-us/typography/opentype/spec/.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otf

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpeek.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.fonts")
}

// ErrFontFormat is the parent of all errors about malformed fonts.
var ErrFontFormat = errors.New("OpenType font format")

type formatError string

func (e formatError) Error() string {
	return "OpenType font format: " + string(e)
}

func (e formatError) Unwrap() error {
	return ErrFontFormat
}

func errFontFormat(x string) error {
	return formatError(x)
}
