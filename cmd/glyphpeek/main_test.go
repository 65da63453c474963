package main

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/glyphpeek/engine/compose"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegularFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func TestParseArgs(t *testing.T) {
	conf, err := parseArgs([]string{"-size", "32", "-strict", "font.ttf", "Hi"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "font.ttf", conf.GetString(keyFont))
	assert.Equal(t, "Hi", conf.GetString(keyText))
	assert.Equal(t, 32, conf.GetInt(keySize))
	assert.Equal(t, 512, conf.GetInt(keyWidth))
	assert.True(t, conf.GetBool(keyStrict))
	assert.False(t, conf.GetBool(keyHeadless))
	assert.Equal(t, "Error", conf.GetString("trace.glyphpeek.render"))
}

func TestParseArgsUsage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"font.ttf"},
		{"font.ttf", "a", "b"},
		{"-nosuchflag", "font.ttf", "a"},
	} {
		_, err := parseArgs(args, io.Discard)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}
	assert.Equal(t, 1, run(nil))
}

func TestRenderHeadless(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	out := filepath.Join(t.TempDir(), "out.png")
	code := run([]string{"-headless", "-o", out, "-fg", "#ff0000", goRegularFile(t), "Hello"})
	require.Equal(t, 0, code)
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
	var red int
	for y := 0; y < 128; y++ {
		for x := 0; x < 512; x++ {
			r, g, _, _ := img.At(x, y).RGBA()
			if r > 0x8000 && g == 0 {
				red++
			}
		}
	}
	assert.Greater(t, red, 100, "glyphs are painted in the foreground color")
}

func TestExitCodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	fontfile := goRegularFile(t)
	assert.Equal(t, 3, run([]string{"-headless", filepath.Join(t.TempDir(), "nope.ttf"), "A"}))
	assert.Equal(t, 4, run([]string{"-headless", fontfile, "A😀"}))
	assert.Equal(t, 1, run([]string{"-headless", "-engine", "cairo", fontfile, "A"}))
	assert.Equal(t, 1, run([]string{"-headless", "-fg", "red", fontfile, "A"}))
	assert.Equal(t, 5, run([]string{"-headless", "-o", filepath.Join(t.TempDir(), "x", "y.png"), fontfile, "A"}))
	assert.Equal(t, 0, run([]string{"-headless", "-engine", "freetype", fontfile, "A"}))
}

func TestReportFailureKeepsPercentSigns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	err := core.Error(core.EMISSING, "cannot find font %q", "100%d.ttf")
	assert.Equal(t, `cannot find font "100%d.ttf"`, core.UserMessage(err))
	assert.Equal(t, 3, reportFailure(err))
	assert.Equal(t, 3, run([]string{"-headless", filepath.Join(t.TempDir(), "100%d%s.ttf"), "A"}))
}

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 3, exitCode(core.Error(core.EFONTFORMAT, "x")))
	assert.Equal(t, 4, exitCode(core.Error(core.EGLYPHMISSING, "x")))
	assert.Equal(t, 5, exitCode(core.Error(core.ESURFACE, "x")))
	assert.Equal(t, 1, exitCode(core.Error(core.EINVALID, "x")))
}

func TestGlyphLine(t *testing.T) {
	p := compose.Placement{Scalar: 0x1F600, Mode: glyph.PixelModeColor}
	assert.Equal(t, "drawing color glyph: U+1F600 GRINNING FACE", glyphLine(p, raster.Color))
	p = compose.Placement{Scalar: 'A', Mode: glyph.PixelModeGray}
	assert.Equal(t, "drawing normal glyph: U+0041 LATIN CAPITAL LETTER A", glyphLine(p, raster.Normal))
	// empty glyphs take the kind of their face
	p = compose.Placement{Scalar: ' ', Mode: glyph.PixelModeNone}
	assert.Equal(t, "drawing color glyph: U+0020 SPACE", glyphLine(p, raster.Color))
	assert.Equal(t, "drawing normal glyph: U+0020 SPACE", glyphLine(p, raster.Normal))
	assert.Equal(t, "U+10FFFF", describe(0x10FFFF))
}

func TestMultiScalarClusters(t *testing.T) {
	assert.Empty(t, multiScalarClusters("Hello"))
	clusters := multiScalarClusters("e\u0301 👍🏽 x")
	require.Len(t, clusters, 2)
	assert.Equal(t, "e\u0301", clusters[0])
	assert.Equal(t, "U+0065 U+0301", describeCluster(clusters[0]))
}
