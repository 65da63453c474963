/*
Package raster turns glyphs of a font into bitmaps.

A Face is a font prepared for rasterization at one pixel size. Opening a
face decides between two kinds of fonts:

▪︎ color fonts carry bitmap strikes (tables sbix or CBLC/CBDT). The strike
closest to the requested size is selected and glyph images are delivered
unscaled as RGBA bitmaps.

▪︎ normal fonts are scaled to the requested pixel size and their outlines
are rendered to 8-bit coverage masks.

Outlines may be rendered by one of two engines: the default engine uses
golang.org/x/image/font/sfnt and golang.org/x/image/vector, the other one
uses github.com/golang/freetype/truetype (TrueType outlines only) and is
mostly useful for comparing results.

	face, err := raster.Open(f, raster.WithPixelSize(64))
	…
	gid, ok := face.GlyphIndex('g')
	bm, err := face.RenderGlyph(gid)
	…
	bm.Release()

A face is not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpeek.render'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.render")
}

// Rasterizer maps code-points to glyphs and renders glyphs to bitmaps.
type Rasterizer interface {
	// GlyphIndex returns the glyph for a code-point; false if the font
	// has no glyph for it.
	GlyphIndex(r rune) (glyph.Index, bool)
	// RenderGlyph rasterizes a glyph. Clients call Release on the bitmap
	// when done with it.
	RenderGlyph(gid glyph.Index) (*glyph.Bitmap, error)
	// LineHeight is the distance in pixels from the top of a line to its
	// baseline reference used for vertical placement.
	LineHeight() int
}
