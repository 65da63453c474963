package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

var black = color.RGBA{A: 0xff}

func grayBitmap(w, h int, a uint8) *glyph.Bitmap {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = a
	}
	return glyph.NewBitmap(mask, 0, h, fixed.I(w), nil)
}

func colorBitmap(w, h int, c color.RGBA) *glyph.Bitmap {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return glyph.NewBitmap(img, 0, h, fixed.I(w), nil)
}

func TestNewCanvasIsBlack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	c := New(0, 0, nil)
	assert.Equal(t, image.Rect(0, 0, 512, 128), c.Bounds())
	assert.Equal(t, black, c.Image().RGBAAt(0, 0))
	assert.Equal(t, black, c.Image().RGBAAt(511, 127))
}

func TestCompositeGray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	c := New(16, 16, nil)
	c.Composite(grayBitmap(4, 4, 0xff), 2, 3)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c.Image().RGBAAt(2, 3))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c.Image().RGBAAt(5, 6))
	assert.Equal(t, black, c.Image().RGBAAt(6, 6))
	assert.Equal(t, black, c.Image().RGBAAt(1, 3))
	//
	c.SetForeground(color.RGBA{R: 0xff, A: 0xff})
	c.Composite(grayBitmap(1, 1, 0x80), 10, 10)
	px := c.Image().RGBAAt(10, 10)
	assert.InDelta(t, 0x80, int(px.R), 1)
	assert.Equal(t, uint8(0), px.G)
}

func TestCompositeColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	c := New(16, 16, nil)
	green := color.RGBA{G: 0xff, A: 0xff}
	c.Composite(colorBitmap(3, 3, green), 0, 0)
	assert.Equal(t, green, c.Image().RGBAAt(2, 2))
	// transparent pixels leave the background untouched
	c.Composite(colorBitmap(3, 3, color.RGBA{}), 0, 0)
	assert.Equal(t, green, c.Image().RGBAAt(1, 1))
}

func TestCompositeClips(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	c := New(8, 8, nil)
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	c.Composite(grayBitmap(4, 4, 0xff), -2, -2)
	assert.Equal(t, white, c.Image().RGBAAt(0, 0))
	assert.Equal(t, white, c.Image().RGBAAt(1, 1))
	assert.Equal(t, black, c.Image().RGBAAt(2, 2))
	c.Composite(grayBitmap(4, 4, 0xff), 6, 6)
	assert.Equal(t, white, c.Image().RGBAAt(7, 7))
	// entirely outside
	c.Composite(grayBitmap(4, 4, 0xff), 100, 0)
	c.Composite(grayBitmap(4, 4, 0xff), 0, -10)
	assert.Equal(t, black, c.Image().RGBAAt(4, 0))
	// empty bitmaps are ignored
	c.Composite(glyph.NewBitmap(image.NewAlpha(image.Rectangle{}), 0, 0, 0, nil), 0, 0)
	c.Composite(nil, 0, 0)
}

func TestWritePNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	c := New(20, 10, color.RGBA{B: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
}

func TestSavePNG(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	c := New(4, 4, nil)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, c.SavePNG(path))
	err := c.SavePNG(filepath.Join(t.TempDir(), "no", "such", "dir.png"))
	assert.Equal(t, core.ESURFACE, core.Code(err))
}
