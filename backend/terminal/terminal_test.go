package terminal

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simWindow(t *testing.T, cols, rows int) (*Window, tcell.SimulationScreen) {
	sim := tcell.NewSimulationScreen("UTF-8")
	w, err := NewWithScreen(sim)
	require.NoError(t, err)
	sim.SetSize(cols, rows)
	t.Cleanup(w.Close)
	return w, sim
}

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestShowDrawsHalfBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	w, sim := simWindow(t, 20, 6)
	img := filled(4, 3, color.RGBA{G: 0xff, A: 0xff})
	w.Show(img, "Go Sans")
	mainc, _, style, _ := sim.GetContent(0, 1) //nolint:staticcheck
	assert.Equal(t, upperHalfBlock, mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0xff, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0xff, 0), bg)
	// odd number of rows: the last cell's lower half is black
	_, _, style, _ = sim.GetContent(3, 2) //nolint:staticcheck
	fg, bg, _ = style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0xff, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), bg)
	// small images are not enlarged
	mainc, _, _, _ = sim.GetContent(4, 1) //nolint:staticcheck
	assert.NotEqual(t, upperHalfBlock, mainc)
	// title
	mainc, _, _, _ = sim.GetContent(1, 0) //nolint:staticcheck
	assert.Equal(t, 'G', mainc)
}

func TestScaleToFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	img := filled(512, 128, color.RGBA{R: 0xff, A: 0xff})
	fit := scaleToFit(img, 80, 46)
	assert.Equal(t, 80, fit.Rect.Dx())
	assert.Equal(t, 20, fit.Rect.Dy())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, fit.RGBAAt(40, 10))
	fit = scaleToFit(img, 600, 10)
	assert.Equal(t, 40, fit.Rect.Dx())
	assert.Equal(t, 10, fit.Rect.Dy())
	assert.True(t, scaleToFit(img, 0, 10).Rect.Empty())
}

func TestRunQuitsOnEscape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	w, sim := simWindow(t, 20, 6)
	w.Show(filled(8, 8, color.RGBA{A: 0xff}), "test")
	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	errc := make(chan error, 1)
	go func() { errc <- w.Run(context.Background()) }()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("window did not quit on Escape")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpeek.backend")
	defer teardown()
	//
	w, _ := simWindow(t, 20, 6)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("window did not stop on cancellation")
	}
}
