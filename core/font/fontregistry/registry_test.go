package fontregistry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestRegistryStoresFontOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.fonts")
	defer teardown()
	//
	fr := NewRegistry()
	fb := font.FallbackFont()
	fr.StoreFont("go_sans", fb)
	other, err := font.ParseFont(goregular.TTF)
	require.NoError(t, err)
	fr.StoreFont("go_sans", other)
	f, err := fr.Font("Go Sans")
	require.NoError(t, err)
	assert.Same(t, fb, f)
	fr.StoreFont("nil", nil)
	fr.LogFontList()
}

func TestRegistryCachesFaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.fonts")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	fr := NewRegistry()
	f1, err := fr.Face(path, 32, raster.EngineOutline)
	require.NoError(t, err)
	assert.Equal(t, 32, f1.PixelSize())
	f2, err := fr.Face(path, 32, raster.EngineOutline)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	f3, err := fr.Face(path, 48, raster.EngineOutline)
	require.NoError(t, err)
	assert.NotSame(t, f1, f3)
	assert.Same(t, f1.Font(), f3.Font(), "font is loaded once")
	fr.LogFontList()
}

func TestRegistryMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.fonts")
	defer teardown()
	//
	_, err := NewRegistry().Face(filepath.Join(t.TempDir(), "missing.ttf"), 0, raster.EngineOutline)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestGlobalRegistry(t *testing.T) {
	assert.Same(t, GlobalRegistry(), GlobalRegistry())
	assert.Equal(t, "go_sans-64-outline", faceKey("go_sans", 0, raster.EngineOutline))
}
