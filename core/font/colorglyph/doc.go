/*
Package colorglyph extracts color bitmap glyphs from OpenType fonts.

Color emoji fonts carry pre-rendered glyph images in one of two table
formats:

▪︎ sbix: Apple's format, one table holding strikes of PNG (or JPEG) images

▪︎ CBLC/CBDT: Google's format, a location table (CBLC) indexing into a data
table (CBDT) of PNG images with small or big glyph metrics

Both formats organize bitmaps into strikes, i.e. sets of glyph images for
one pixel size. Clients select a strike first and then look up glyphs in it:

	tab, err := colorglyph.Open(otf)
	…
	strike := colorglyph.SelectStrike(tab.Strikes(), 64)
	img, err := tab.Lookup(gid, strike)
	rgba, err := img.Decode()

Bitmaps are never scaled; a glyph is drawn at the size of its strike.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package colorglyph

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpeek.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.fonts")
}

// Color glyph table errors.
var (
	// ErrNoColorTable indicates the font has neither sbix nor CBLC/CBDT tables.
	ErrNoColorTable = errors.New("colorglyph: font has no color bitmap table")

	// ErrInvalidData indicates a malformed sbix, CBLC or CBDT table.
	ErrInvalidData = errors.New("colorglyph: invalid color bitmap table data")

	// ErrGlyphNotInStrike indicates the strike has no bitmap for a glyph.
	ErrGlyphNotInStrike = errors.New("colorglyph: glyph not found in strike")

	// ErrUnsupportedFormat indicates an index or image format we cannot read.
	ErrUnsupportedFormat = errors.New("colorglyph: unsupported bitmap format")
)
