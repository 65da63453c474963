package raster

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOutlineFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	f := font.FallbackFont()
	face, err := Open(f)
	require.NoError(t, err)
	assert.Equal(t, Normal, face.Kind())
	assert.Equal(t, DefaultPixelSize, face.PixelSize())
	ot := f.OT
	upem := int(ot.Head.UnitsPerEm)
	want := (ot.LineHeight()*64 + upem - 1) / upem
	assert.Equal(t, want, face.LineHeight())
	assert.Greater(t, face.LineHeight(), 64)
	// small sizes keep a proper line height
	small, err := Open(f, WithPixelSize(12))
	require.NoError(t, err)
	assert.Equal(t, (ot.LineHeight()*12+upem-1)/upem, small.LineHeight())
	assert.Greater(t, small.LineHeight(), 12)
}

func TestOutlineRenderGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	face, err := Open(font.FallbackFont(), WithPixelSize(64))
	require.NoError(t, err)
	gid, ok := face.GlyphIndex('H')
	require.True(t, ok)
	bm, err := face.RenderGlyph(gid)
	require.NoError(t, err)
	defer bm.Release()
	assert.Equal(t, glyph.PixelModeGray, bm.Mode)
	// cap height of Go Regular is about 0.7 em
	assert.InDelta(t, 46, bm.Top, 4)
	assert.InDelta(t, 46, bm.Rows, 4)
	assert.Greater(t, bm.AdvancePixels(), bm.Width)
	img := bm.Image().(*image.Alpha)
	// left stem of the H is solid at half height
	assert.Equal(t, uint8(0xff), img.AlphaAt(2, bm.Rows/2).A)
	//
	gid, ok = face.GlyphIndex('g') // descender
	require.True(t, ok)
	g, err := face.RenderGlyph(gid)
	require.NoError(t, err)
	assert.Greater(t, g.Rows, g.Top, "glyph 'g' should reach below the baseline")
	g.Release()
}

func TestOutlineSpaceIsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	face, err := Open(font.FallbackFont())
	require.NoError(t, err)
	gid, ok := face.GlyphIndex(' ')
	require.True(t, ok)
	bm, err := face.RenderGlyph(gid)
	require.NoError(t, err)
	assert.True(t, bm.Empty())
	assert.Greater(t, bm.AdvancePixels(), 0)
}

func TestGlyphIndexMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	face, err := Open(font.FallbackFont())
	require.NoError(t, err)
	_, ok := face.GlyphIndex(0x1F600)
	assert.False(t, ok)
}

func TestFreeTypeMatchesOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	outline, err := Open(font.FallbackFont(), WithEngine(EngineOutline))
	require.NoError(t, err)
	ft, err := Open(font.FallbackFont(), WithEngine(EngineFreeType))
	require.NoError(t, err)
	assert.Equal(t, outline.LineHeight(), ft.LineHeight())
	for _, r := range "Ag" {
		gid, _ := outline.GlyphIndex(r)
		a, err := outline.RenderGlyph(gid)
		require.NoError(t, err)
		gid, _ = ft.GlyphIndex(r)
		b, err := ft.RenderGlyph(gid)
		require.NoError(t, err)
		assert.InDelta(t, a.Width, b.Width, 2, "width of %q", r)
		assert.InDelta(t, a.Rows, b.Rows, 2, "height of %q", r)
		assert.InDelta(t, a.Top, b.Top, 1, "top of %q", r)
		assert.InDelta(t, a.AdvancePixels(), b.AdvancePixels(), 1, "advance of %q", r)
		a.Release()
	}
	_, err = ft.RenderGlyph(999) // never resolved via GlyphIndex
	assert.Equal(t, core.ERASTER, core.Code(err))
}

func TestFacesOfFontCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	ttf := font.FallbackFont().Binary
	const hdr = 16
	ttc := make([]byte, hdr+len(ttf))
	copy(ttc, "ttcf")
	binary.BigEndian.PutUint32(ttc[4:], 0x00010000)
	binary.BigEndian.PutUint32(ttc[8:], 1)
	binary.BigEndian.PutUint32(ttc[12:], hdr)
	copy(ttc[hdr:], ttf)
	for i := 0; i < int(binary.BigEndian.Uint16(ttf[4:6])); i++ {
		rec := ttc[hdr+12+16*i:]
		binary.BigEndian.PutUint32(rec[8:12], binary.BigEndian.Uint32(rec[8:12])+hdr)
	}
	f, err := font.ParseFont(ttc)
	require.NoError(t, err)
	for _, engine := range []Engine{EngineOutline, EngineFreeType} {
		face, err := Open(f, WithEngine(engine), WithPixelSize(32))
		require.NoError(t, err, "engine %s", engine)
		gid, ok := face.GlyphIndex('H')
		require.True(t, ok)
		bm, err := face.RenderGlyph(gid)
		require.NoError(t, err, "engine %s", engine)
		assert.False(t, bm.Empty(), "engine %s", engine)
		bm.Release()
	}
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("FreeType")
	assert.NoError(t, err)
	assert.Equal(t, EngineFreeType, e)
	_, err = ParseEngine("cairo")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, "outline", EngineOutline.String())
}

// --- Color fonts -----------------------------------------------------------

// colorFont assembles a minimal sbix font: 1000 units per em, glyph 1 for
// 'A' with a 40×40 red bitmap, glyph 2 for ' ' without a bitmap.
func colorFont(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{0xff, 0, 0, 0xff})
	}
	var pngData bytes.Buffer
	require.NoError(t, png.Encode(&pngData, img))
	//
	be := binary.BigEndian
	u16 := func(v ...int) (b []byte) {
		for _, x := range v {
			b = be.AppendUint16(b, uint16(x))
		}
		return
	}
	u32 := func(v ...int) (b []byte) {
		for _, x := range v {
			b = be.AppendUint32(b, uint32(x))
		}
		return
	}
	cat := func(parts ...[]byte) []byte { return bytes.Join(parts, nil) }
	//
	head := make([]byte, 54)
	be.PutUint16(head[18:], 1000)
	hhea := make([]byte, 36)
	be.PutUint16(hhea[4:], 800)
	be.PutUint16(hhea[6:], uint16(0xffff-200+1)) // -200
	be.PutUint16(hhea[34:], 3)
	os2 := u16(0, 1000) // version, xAvgCharWidth
	cmap := cat(
		u16(0, 1), u16(3, 1), u32(12),
		u16(4, 40, 0, 6, 0, 0, 0),
		u16(0x20, 0x41, 0xffff), u16(0),
		u16(0x20, 0x41, 0xffff),
		u16((2-0x20)&0xffff, (1-0x41)&0xffff, 1),
		u16(0, 0, 0),
	)
	sbix := cat(
		u16(1, 1), u32(1, 12),
		u16(64, 72), u32(20, 20, 28+pngData.Len(), 28+pngData.Len()),
		u16(0, 0xfff8), []byte("png "), pngData.Bytes(),
	)
	tables := []struct {
		tag  string
		data []byte
	}{
		{"OS/2", os2},
		{"cmap", cmap},
		{"head", head},
		{"hhea", hhea},
		{"hmtx", u16(500, 0, 500, 0, 250, 0)},
		{"maxp", u16(0, 0x5000, 3)},
		{"sbix", sbix},
	}
	dir := cat(u32(0x00010000), u16(len(tables), 0, 0, 0))
	var body []byte
	offset := 12 + 16*len(tables)
	for _, tab := range tables {
		for len(tab.data)%4 != 0 {
			tab.data = append(tab.data, 0)
		}
		dir = cat(dir, []byte(tab.tag), u32(0, offset+len(body), len(tab.data)))
		body = append(body, tab.data...)
	}
	return cat(dir, body)
}

func TestColorFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.render")
	defer teardown()
	//
	f, err := font.ParseFont(colorFont(t))
	require.NoError(t, err)
	require.True(t, f.IsColorFont())
	face, err := Open(f, WithPixelSize(64))
	require.NoError(t, err)
	assert.Equal(t, Color, face.Kind())
	assert.Equal(t, 64, face.PixelSize())
	assert.Equal(t, 64, face.LineHeight())
	//
	gid, ok := face.GlyphIndex('A')
	require.True(t, ok)
	assert.Equal(t, glyph.Index(1), gid)
	bm, err := face.RenderGlyph(gid)
	require.NoError(t, err)
	assert.Equal(t, glyph.PixelModeColor, bm.Mode)
	assert.Equal(t, 40, bm.Width)
	assert.Equal(t, 40, bm.Rows)
	assert.Equal(t, 32, bm.Top) // origin -8 plus height 40
	assert.Equal(t, 32, bm.AdvancePixels())
	rgba := bm.Image().(*image.RGBA)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, rgba.RGBAAt(20, 20))
	//
	gid, ok = face.GlyphIndex(' ')
	require.True(t, ok)
	bm, err = face.RenderGlyph(gid)
	require.NoError(t, err)
	assert.True(t, bm.Empty())
	assert.Equal(t, 16, bm.AdvancePixels())
	//
	_, ok = face.GlyphIndex('B')
	assert.False(t, ok)
}
