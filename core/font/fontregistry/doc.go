/*
Package fontregistry manages a registry for loaded fonts and the faces
prepared from them.

Loading and parsing a font, and selecting a strike or setting up a
rasterizer, is done once per font and pixel size. Later requests are served
from the registry.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphpeek.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.fonts")
}
