/*
Command glyphpeek renders a string with a font and shows the result.

	glyphpeek [flags] <fontfile> <string>

The string is decoded as UTF-8, every scalar is mapped to a glyph of the
font, and the glyphs are set side by side on a common baseline. Color
fonts (sbix or CBDT bitmaps) are drawn in color, outline fonts in the
foreground color. The result is displayed in the terminal until Escape is
pressed, and optionally written to a PNG file.

There is no shaping: combining marks, ZWJ sequences and the like are drawn
glyph by glyph.

Exit codes are 1 for usage errors, 3 if the font cannot be used, 4 if a
glyph is missing or cannot be rendered, and 5 if output fails.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/glyphpeek/backend/canvas"
	"github.com/npillmayer/glyphpeek/backend/terminal"
	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font/fontregistry"
	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/glyphpeek/core/runescan"
	"github.com/npillmayer/glyphpeek/engine/compose"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphpeek.render'
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.render")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	initDisplay()
	conf, err := parseArgs(args, os.Stderr)
	if err != nil {
		fmt.Println(usage)
		return 1
	}
	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		return 1
	}
	tracing.SetTraceSelector(trace2go.Selector())
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := peek(ctx, conf); err != nil {
		return reportFailure(err)
	}
	return 0
}

// reportFailure traces and prints err and returns the exit code for it.
func reportFailure(err error) int {
	tracer().Errorf("%v", err)
	pterm.Error.Println(core.UserMessage(err))
	return exitCode(err)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// exitCode maps error codes to process exit codes.
func exitCode(err error) int {
	switch core.Code(err) {
	case core.NOERROR:
		return 0
	case core.EMISSING, core.EFONTFORMAT:
		return 3
	case core.EGLYPHMISSING, core.ERASTER, core.EINTERNAL:
		return 4
	case core.ESURFACE:
		return 5
	}
	return 1
}

// peek renders the configured text and presents it.
func peek(ctx context.Context, conf schuko.Configuration) error {
	cv, title, err := render(conf)
	if err != nil {
		return err
	}
	if out := conf.GetString(keyOutput); out != "" {
		if err := cv.SavePNG(out); err != nil {
			return err
		}
		pterm.Info.Printfln("canvas written to %s", out)
	}
	if conf.GetBool(keyHeadless) {
		return nil
	}
	win, err := terminal.New()
	if err != nil {
		return err
	}
	defer win.Close()
	win.Show(cv.Image(), title+" (Esc to quit)")
	if err := win.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return core.WrapError(err, core.ESURFACE, "terminal window failed")
	}
	return nil
}

// render loads the font, rasterizes the text onto a fresh canvas and returns
// the canvas together with a title for display.
func render(conf schuko.Configuration) (*canvas.Canvas, string, error) {
	engine, err := raster.ParseEngine(conf.GetString(keyEngine))
	if err != nil {
		return nil, "", err
	}
	fg, err := colorful.Hex(conf.GetString(keyFg))
	if err != nil {
		return nil, "", core.WrapError(err, core.EINVALID, "invalid foreground color %q", conf.GetString(keyFg))
	}
	fonts := fontregistry.GlobalRegistry()
	face, err := fonts.Face(conf.GetString(keyFont), conf.GetInt(keySize), engine)
	if err != nil {
		return nil, "", err
	}
	fonts.LogFontList()
	if face.Kind() == raster.Color {
		pterm.Info.Println("using color font")
	} else {
		pterm.Info.Println("using normal font")
	}
	text := conf.GetString(keyText)
	for _, cluster := range multiScalarClusters(text) {
		pterm.Warning.Printfln("%s is drawn as %d separate glyphs", describeCluster(cluster), len([]rune(cluster)))
	}
	cv := canvas.New(conf.GetInt(keyWidth), conf.GetInt(keyHeight), nil)
	cv.SetForeground(fg)
	mode := runescan.Lenient
	if conf.GetBool(keyStrict) {
		mode = runescan.Strict
	}
	res, err := compose.Run([]byte(text), face, cv, face.LineHeight(),
		compose.WithMode(mode),
		compose.WithObserver(glyphReporter(face.Kind())))
	if err != nil {
		return nil, "", err
	}
	switch res.Reason {
	case runescan.Truncated:
		pterm.Warning.Printfln("input truncated after %d bytes", res.Consumed)
	case runescan.Malformed:
		pterm.Warning.Printfln("malformed UTF-8 at byte %d", res.Consumed)
	}
	if res.Pen > cv.Bounds().Dx() {
		pterm.Warning.Printfln("text is %d pixels wide, canvas clipped at %d", res.Pen, cv.Bounds().Dx())
	}
	tracer().Infof("%d glyphs set, pen at %d", len(res.Placements), res.Pen)
	return cv, fmt.Sprintf("%s @ %dpx", face.Font().Fontname, face.PixelSize()), nil
}
