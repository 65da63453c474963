package main

import (
	"errors"
	"flag"
	"io"
	"strconv"

	"github.com/npillmayer/glyphpeek/backend/canvas"
	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/schuko/schukonf/testconfig"
)

const usage = "usage: glyphpeek <fontfile> <string>"

var errUsage = errors.New(usage)

// Configuration keys. Trace levels live under 'trace', everything about the
// rendering under 'render'.
const (
	keyFont     = "render.font"
	keyText     = "render.text"
	keySize     = "render.size"
	keyWidth    = "render.width"
	keyHeight   = "render.height"
	keyEngine   = "render.engine"
	keyStrict   = "render.strict"
	keyFg       = "render.fg"
	keyOutput   = "render.output"
	keyHeadless = "render.headless"
)

var traceKeys = []string{"glyphpeek.fonts", "glyphpeek.render", "glyphpeek.backend"}

// parseArgs folds command line flags and positional arguments into a
// configuration. Values are stored as strings, the way a configuration file
// would deliver them.
func parseArgs(args []string, errout io.Writer) (testconfig.Conf, error) {
	fs := flag.NewFlagSet("glyphpeek", flag.ContinueOnError)
	fs.SetOutput(errout)
	size := fs.Int("size", raster.DefaultPixelSize, "Pixel size (ppem) to render glyphs at")
	width := fs.Int("width", canvas.DefaultWidth, "Width of the canvas in pixels")
	height := fs.Int("height", canvas.DefaultHeight, "Height of the canvas in pixels")
	engine := fs.String("engine", raster.EngineOutline.String(), "Rasterizer for outline fonts [outline|freetype]")
	strict := fs.Bool("strict", false, "Reject malformed UTF-8 instead of decoding it structurally")
	fg := fs.String("fg", "#ffffff", "Foreground color for gray glyphs")
	output := fs.String("o", "", "Write the canvas to a PNG file")
	headless := fs.Bool("headless", false, "Do not open a terminal window")
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() != 2 {
		return nil, errUsage
	}
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		keyFont:           fs.Arg(0),
		keyText:           fs.Arg(1),
		keySize:           strconv.Itoa(*size),
		keyWidth:          strconv.Itoa(*width),
		keyHeight:         strconv.Itoa(*height),
		keyEngine:         *engine,
		keyStrict:         strconv.FormatBool(*strict),
		keyFg:             *fg,
		keyOutput:         *output,
		keyHeadless:       strconv.FormatBool(*headless),
	}
	for _, k := range traceKeys {
		conf["trace."+k] = *tlevel
	}
	return conf, nil
}
