package colorglyph

import (
	"bytes"
	"encoding/binary"
	"image/jpeg"
	"image/png"

	"github.com/npillmayer/glyphpeek/core/glyph"
)

// SBIX is Apple's Standard Bitmap Graphics table.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/sbix
type SBIX struct {
	data      []byte
	numGlyphs int
	offsets   []uint32 // strike offsets from start of table
	strikes   []Strike
}

// ParseSBIX parses the header and strike records of an sbix table.
// numGlyphs is taken from table 'maxp'.
func ParseSBIX(data []byte, numGlyphs int, m FontMetrics) (*SBIX, error) {
	if len(data) < 8 {
		return nil, ErrInvalidData
	}
	if version := binary.BigEndian.Uint16(data[0:2]); version != 1 {
		return nil, ErrInvalidData
	}
	numStrikes := int(binary.BigEndian.Uint32(data[4:8]))
	if 8+4*numStrikes > len(data) || numStrikes < 0 {
		return nil, ErrInvalidData
	}
	sbix := &SBIX{
		data:      data,
		numGlyphs: numGlyphs,
		offsets:   make([]uint32, numStrikes),
		strikes:   make([]Strike, numStrikes),
	}
	for i := range sbix.offsets {
		off := binary.BigEndian.Uint32(data[8+4*i:])
		// a strike has ppem, ppi and numGlyphs+1 glyph data offsets
		if int(off)+4+4*(numGlyphs+1) > len(data) {
			return nil, ErrInvalidData
		}
		sbix.offsets[i] = off
		ppem := int(binary.BigEndian.Uint16(data[off:]))
		sbix.strikes[i] = Strike{
			PPEM:   ppem,
			PPI:    int(binary.BigEndian.Uint16(data[off+2:])),
			Width:  m.strikeWidth(ppem),
			Height: m.scale(m.Ascender-m.Descender, ppem),
		}
		tracer().Debugf("sbix %s", sbix.strikes[i])
	}
	return sbix, nil
}

// Kind returns "sbix".
func (sbix *SBIX) Kind() string {
	return "sbix"
}

// Strikes lists the strikes of the table.
func (sbix *SBIX) Strikes() []Strike {
	return sbix.strikes
}

// Lookup finds the bitmap for a glyph in a strike. Glyphs of graphic type
// 'dupe' are resolved to the glyph they reference.
//
// sbix does not record advance widths, so Advance is -1. Left and Top are
// derived from the glyph's origin offsets and the bitmap height.
func (sbix *SBIX) Lookup(gid glyph.Index, strike int) (*Image, error) {
	img, err := sbix.lookup(gid, strike, 0)
	if err != nil {
		return nil, err
	}
	img.Glyph = gid
	return img, nil
}

func (sbix *SBIX) lookup(gid glyph.Index, strike int, depth int) (*Image, error) {
	if strike < 0 || strike >= len(sbix.strikes) || int(gid) >= sbix.numGlyphs {
		return nil, ErrGlyphNotInStrike
	}
	base := sbix.offsets[strike]
	pos := int(base) + 4 + 4*int(gid)
	start := binary.BigEndian.Uint32(sbix.data[pos:])
	end := binary.BigEndian.Uint32(sbix.data[pos+4:])
	if end <= start {
		return nil, ErrGlyphNotInStrike
	}
	from, to := int(base)+int(start), int(base)+int(end)
	if to > len(sbix.data) || to-from < 8 {
		return nil, ErrInvalidData
	}
	rec := sbix.data[from:to]
	originX := int(int16(binary.BigEndian.Uint16(rec[0:2])))
	originY := int(int16(binary.BigEndian.Uint16(rec[2:4])))
	payload := rec[8:]
	img := &Image{
		Glyph:   gid,
		Strike:  strike,
		Data:    payload,
		Advance: -1,
	}
	switch string(rec[4:8]) {
	case "png ":
		cfg, err := png.DecodeConfig(bytes.NewReader(payload))
		if err != nil {
			return nil, ErrInvalidData
		}
		img.Format, img.Width, img.Height = FormatPNG, cfg.Width, cfg.Height
	case "jpg ":
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(payload))
		if err != nil {
			return nil, ErrInvalidData
		}
		img.Format, img.Width, img.Height = FormatJPEG, cfg.Width, cfg.Height
	case "dupe":
		if depth > 0 || len(payload) < 2 {
			return nil, ErrInvalidData
		}
		ref := glyph.Index(binary.BigEndian.Uint16(payload))
		tracer().Debugf("sbix glyph %d is a duplicate of glyph %d", gid, ref)
		return sbix.lookup(ref, strike, depth+1)
	default:
		tracer().Infof("sbix glyph %d has unsupported graphic type %q", gid, string(rec[4:8]))
		return nil, ErrUnsupportedFormat
	}
	// The origin offsets locate the lower left corner of the image
	// relative to the glyph origin.
	img.Left = originX
	img.Top = originY + img.Height
	return img, nil
}
