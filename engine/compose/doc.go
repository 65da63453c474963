/*
Package compose sets a line of text, glyph by glyph, onto a surface.

Composition is a single pass over the input bytes: decode the next scalar,
find its glyph, rasterize the glyph, hand the bitmap to the surface at a
position on a common baseline, then move the pen by the glyph's advance.
There is no shaping, kerning or line breaking; every scalar maps to exactly
one glyph.

Vertically, a glyph is placed so that its top row lands at line height
minus the glyph's top bearing. Glyphs extending below the baseline, or
beyond the surface on the right, are clipped by the surface.

A code-point without a glyph in the font stops composition with an error of
code core.EGLYPHMISSING.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package compose

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpeek.render'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.render")
}
