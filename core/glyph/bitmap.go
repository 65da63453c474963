/*
Package glyph holds the rasterized form of a single glyph.

A Bitmap is what a rasterizer hands out for one glyph: a pixel buffer with
width, height and row pitch, a pixel-mode tag, and the metrics needed to
place it on a baseline. Bitmaps are short-lived; clients release them once
they have been composited.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyph

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// Index is a glyph index in a font. Index 0 is the 'missing character'.
type Index uint16

// PixelMode tags the layout of a bitmap's pixel buffer.
type PixelMode int8

const (
	PixelModeNone  PixelMode = iota // no pixels, e.g. for a space
	PixelModeGray                   // one byte of coverage per pixel
	PixelModeColor                  // four bytes per pixel, premultiplied RGBA
)

func (m PixelMode) String() string {
	switch m {
	case PixelModeGray:
		return "gray"
	case PixelModeColor:
		return "color"
	}
	return "none"
}

// Bitmap is a rasterized glyph.
//
// Left and Top are the bearings of the bitmap relative to the pen position
// on the baseline: Left is the horizontal offset of the first column, Top
// is the distance from the baseline up to the first row (negative for
// glyphs entirely below the baseline).
type Bitmap struct {
	Width, Rows int
	Pitch       int    // bytes per row
	Pix         []byte // Rows*Pitch bytes
	Mode        PixelMode
	Left, Top   int
	Advance     fixed.Int26_6 // horizontal advance
	release     func([]byte)
}

// NewBitmap wraps a mask or color image as a glyph bitmap. img must be an
// *image.Alpha or an *image.RGBA; every other type yields an empty bitmap.
// release, if not nil, receives the pixel buffer on Release.
func NewBitmap(img image.Image, left, top int, advance fixed.Int26_6, release func([]byte)) *Bitmap {
	bm := &Bitmap{Left: left, Top: top, Advance: advance, release: release}
	switch im := img.(type) {
	case *image.Alpha:
		bm.Width, bm.Rows = im.Rect.Dx(), im.Rect.Dy()
		bm.Pitch, bm.Pix = im.Stride, im.Pix
		bm.Mode = PixelModeGray
	case *image.RGBA:
		bm.Width, bm.Rows = im.Rect.Dx(), im.Rect.Dy()
		bm.Pitch, bm.Pix = im.Stride, im.Pix
		bm.Mode = PixelModeColor
	}
	if bm.Width == 0 || bm.Rows == 0 {
		bm.Mode = PixelModeNone
	}
	return bm
}

// AdvancePixels is the advance rounded to whole pixels.
func (bm *Bitmap) AdvancePixels() int {
	return bm.Advance.Round()
}

// Empty is true if the bitmap has no pixels to draw.
func (bm *Bitmap) Empty() bool {
	return bm == nil || bm.Mode == PixelModeNone || bm.Width == 0 || bm.Rows == 0
}

// Image returns a view of the pixel buffer, anchored at (0,0). Empty
// bitmaps return nil.
func (bm *Bitmap) Image() image.Image {
	if bm.Empty() {
		return nil
	}
	r := image.Rect(0, 0, bm.Width, bm.Rows)
	switch bm.Mode {
	case PixelModeGray:
		return &image.Alpha{Pix: bm.Pix, Stride: bm.Pitch, Rect: r}
	case PixelModeColor:
		return &image.RGBA{Pix: bm.Pix, Stride: bm.Pitch, Rect: r}
	}
	return nil
}

// Release hands the pixel buffer back to its producer. The bitmap must not
// be used afterwards.
func (bm *Bitmap) Release() {
	if bm == nil {
		return
	}
	if bm.release != nil && bm.Pix != nil {
		bm.release(bm.Pix)
	}
	bm.Pix = nil
	bm.Mode = PixelModeNone
	bm.release = nil
}
