/*
Package terminal shows an image in a terminal window.

The image is scaled to fit the terminal and drawn with upper-half-block
cells, each cell carrying two pixels: the upper one as foreground color and
the lower one as background color. The first terminal row holds a title.

Run blocks until the user presses Escape or the context is cancelled.
Terminal resizes trigger a redraw.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package terminal

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/schuko/tracing"
	"github.com/rivo/uniseg"
	"golang.org/x/image/draw"
)

// tracer traces with key 'glyphpeek.backend'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.backend")
}

const upperHalfBlock = '▀'

// Window is a full-screen terminal view of an image.
type Window struct {
	screen tcell.Screen
	mu     sync.Mutex
	img    image.Image
	title  string
}

// New opens a window on the controlling terminal.
func New() (*Window, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, core.WrapError(err, core.ESURFACE, "cannot open terminal")
	}
	return NewWithScreen(screen)
}

// NewWithScreen opens a window on a given tcell screen and initializes it.
func NewWithScreen(screen tcell.Screen) (*Window, error) {
	if err := screen.Init(); err != nil {
		return nil, core.WrapError(err, core.ESURFACE, "cannot initialize terminal")
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	return &Window{screen: screen}, nil
}

// Close restores the terminal.
func (w *Window) Close() {
	w.screen.Fini()
}

// Show sets the image and title and draws them.
func (w *Window) Show(img image.Image, title string) {
	w.mu.Lock()
	w.img, w.title = img, title
	w.mu.Unlock()
	w.redraw()
}

// Run handles terminal events until Escape is pressed, which returns nil,
// or ctx is done, which returns ctx.Err().
func (w *Window) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()
	for {
		ev := w.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			tracer().Debugf("terminal screen finalized")
			return nil
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				tracer().Debugf("quit on %s", ev.Name())
				return nil
			}
		case *tcell.EventResize:
			w.screen.Sync()
			w.redraw()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func (w *Window) redraw() {
	w.mu.Lock()
	img, title := w.img, w.title
	w.mu.Unlock()
	w.screen.Clear()
	cols, rows := w.screen.Size()
	drawTitle(w.screen, title, cols)
	if img != nil && rows > 1 {
		fit := scaleToFit(img, cols, 2*(rows-1))
		drawHalfBlocks(w.screen, fit, 1)
	}
	w.screen.Show()
}

func drawTitle(s tcell.Screen, title string, cols int) {
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < cols; x++ {
		s.SetContent(x, 0, ' ', nil, style)
	}
	x, state := 1, -1
	for len(title) > 0 && x < cols {
		var cluster string
		var width int
		cluster, title, width, state = uniseg.FirstGraphemeClusterInString(title, state)
		runes := []rune(cluster)
		s.SetContent(x, 0, runes[0], runes[1:], style)
		x += width
	}
}

// scaleToFit scales img into a w×h box, keeping its aspect ratio. Images
// already fitting are not enlarged.
func scaleToFit(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	if b.Empty() || w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	dw, dh := b.Dx(), b.Dy()
	if dw > w || dh > h {
		sx, sy := float64(w)/float64(dw), float64(h)/float64(dh)
		s := min(sx, sy)
		dw, dh = max(1, int(float64(dw)*s)), max(1, int(float64(dh)*s))
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	if dw == b.Dx() && dh == b.Dy() {
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	}
	tracer().Debugf("image %dx%d scaled to %dx%d", b.Dx(), b.Dy(), dw, dh)
	return dst
}

// drawHalfBlocks puts two image rows into each terminal row, starting at
// terminal row top.
func drawHalfBlocks(s tcell.Screen, img *image.RGBA, top int) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			upper := img.RGBAAt(x, y)
			lower := color.RGBA{A: 0xff}
			if y+1 < b.Dy() {
				lower = img.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.Foreground(cellColor(upper)).Background(cellColor(lower))
			s.SetContent(x, top+y/2, upperHalfBlock, nil, style)
		}
	}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
