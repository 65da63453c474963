package colorglyph

import (
	"encoding/binary"

	"github.com/npillmayer/glyphpeek/core/glyph"
)

// CBDT is Google's color bitmap table pair: CBLC holds the strikes and an
// index per strike, CBDT holds the glyph images.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/cblc
type CBDT struct {
	cbdt, cblc []byte
	sizes      []bitmapSize
	strikes    []Strike
}

// bitmapSize is the part of a CBLC BitmapSize record we need.
type bitmapSize struct {
	listOffset           uint32 // offset of the IndexSubtableArray
	numSubtables         uint32
	startGlyph, endGlyph glyph.Index
}

const bitmapSizeRecordSize = 48

// ParseCBDT parses the strike records of a CBLC table.
func ParseCBDT(cbdt, cblc []byte, m FontMetrics) (*CBDT, error) {
	if len(cbdt) < 4 || len(cblc) < 8 {
		return nil, ErrInvalidData
	}
	// CBLC is version 3.0; we also accept EBLC-compatible 2.0
	if major := binary.BigEndian.Uint16(cblc[0:2]); major != 2 && major != 3 {
		return nil, ErrInvalidData
	}
	numSizes := int(binary.BigEndian.Uint32(cblc[4:8]))
	if numSizes < 0 || 8+numSizes*bitmapSizeRecordSize > len(cblc) {
		return nil, ErrInvalidData
	}
	t := &CBDT{
		cbdt:    cbdt,
		cblc:    cblc,
		sizes:   make([]bitmapSize, numSizes),
		strikes: make([]Strike, numSizes),
	}
	for i := range t.sizes {
		rec := cblc[8+i*bitmapSizeRecordSize:]
		t.sizes[i] = bitmapSize{
			listOffset:   binary.BigEndian.Uint32(rec[0:4]),
			numSubtables: binary.BigEndian.Uint32(rec[8:12]),
			startGlyph:   glyph.Index(binary.BigEndian.Uint16(rec[40:42])),
			endGlyph:     glyph.Index(binary.BigEndian.Uint16(rec[42:44])),
		}
		// horizontal SbitLineMetrics start at 16: ascender, descender
		asc, desc := int(int8(rec[16])), int(int8(rec[17]))
		ppem := int(rec[44])
		height := asc - desc
		if height <= 0 {
			height = m.scale(m.Ascender-m.Descender, ppem)
		}
		t.strikes[i] = Strike{
			PPEM:   ppem,
			Width:  m.strikeWidth(ppem),
			Height: height,
		}
		tracer().Debugf("CBLC %s", t.strikes[i])
	}
	return t, nil
}

// Kind returns "CBDT".
func (t *CBDT) Kind() string {
	return "CBDT"
}

// Strikes lists the strikes of the table.
func (t *CBDT) Strikes() []Strike {
	return t.strikes
}

// Lookup finds the bitmap for a glyph in a strike. Index subtable formats 1
// to 5 and image formats 17, 18 and 19 are supported.
func (t *CBDT) Lookup(gid glyph.Index, strike int) (*Image, error) {
	if strike < 0 || strike >= len(t.sizes) {
		return nil, ErrGlyphNotInStrike
	}
	size := &t.sizes[strike]
	if gid < size.startGlyph || gid > size.endGlyph {
		return nil, ErrGlyphNotInStrike
	}
	list := int(size.listOffset)
	if list+8*int(size.numSubtables) > len(t.cblc) {
		return nil, ErrInvalidData
	}
	// IndexSubtableArray: firstGlyphIndex, lastGlyphIndex, additionalOffset
	for i := 0; i < int(size.numSubtables); i++ {
		rec := t.cblc[list+8*i:]
		first := glyph.Index(binary.BigEndian.Uint16(rec[0:2]))
		last := glyph.Index(binary.BigEndian.Uint16(rec[2:4]))
		if gid < first || gid > last {
			continue
		}
		sub := list + int(binary.BigEndian.Uint32(rec[4:8]))
		loc, err := t.locate(gid, first, last, sub)
		if err != nil {
			return nil, err
		}
		img, err := t.image(loc)
		if err != nil {
			return nil, err
		}
		img.Glyph, img.Strike = gid, strike
		return img, nil
	}
	return nil, ErrGlyphNotInStrike
}

// glyphLocation is where in CBDT a glyph's image data lives.
type glyphLocation struct {
	offset, size uint32
	imageFormat  uint16
	metrics      *bigGlyphMetrics // shared metrics of index formats 2 and 5
}

// bigGlyphMetrics holds the horizontal part of BigGlyphMetrics.
// SmallGlyphMetrics map onto the same fields.
type bigGlyphMetrics struct {
	height, width      int
	bearingX, bearingY int
	advance            int
}

func parseBigGlyphMetrics(b []byte) *bigGlyphMetrics {
	return &bigGlyphMetrics{
		height:   int(b[0]),
		width:    int(b[1]),
		bearingX: int(int8(b[2])),
		bearingY: int(int8(b[3])),
		advance:  int(b[4]),
	}
}

// SmallGlyphMetrics have the same layout as the first five bytes of
// BigGlyphMetrics.
var parseSmallGlyphMetrics = parseBigGlyphMetrics

func (t *CBDT) locate(gid, first, last glyph.Index, sub int) (loc glyphLocation, err error) {
	data := t.cblc
	if sub+8 > len(data) || sub < 0 {
		return loc, ErrInvalidData
	}
	// IndexSubHeader
	indexFormat := binary.BigEndian.Uint16(data[sub:])
	loc.imageFormat = binary.BigEndian.Uint16(data[sub+2:])
	imageDataOffset := binary.BigEndian.Uint32(data[sub+4:])
	body := sub + 8
	idx := int(gid - first)
	n := int(last-first) + 1
	need := func(k int) bool { return body+k <= len(data) }
	switch indexFormat {
	case 1: // variable metrics, 32-bit offsets
		if !need(4 * (n + 1)) {
			return loc, ErrInvalidData
		}
		a := binary.BigEndian.Uint32(data[body+4*idx:])
		b := binary.BigEndian.Uint32(data[body+4*idx+4:])
		if b < a {
			return loc, ErrInvalidData
		}
		loc.offset, loc.size = imageDataOffset+a, b-a
	case 2: // constant metrics, all glyphs same size
		if !need(12) {
			return loc, ErrInvalidData
		}
		imageSize := binary.BigEndian.Uint32(data[body:])
		loc.metrics = parseBigGlyphMetrics(data[body+4:])
		loc.offset, loc.size = imageDataOffset+uint32(idx)*imageSize, imageSize
	case 3: // variable metrics, 16-bit offsets
		if !need(2 * (n + 1)) {
			return loc, ErrInvalidData
		}
		a := binary.BigEndian.Uint16(data[body+2*idx:])
		b := binary.BigEndian.Uint16(data[body+2*idx+2:])
		if b < a {
			return loc, ErrInvalidData
		}
		loc.offset, loc.size = imageDataOffset+uint32(a), uint32(b-a)
	case 4: // variable metrics, sparse glyph IDs
		if !need(4) {
			return loc, ErrInvalidData
		}
		numGlyphs := int(binary.BigEndian.Uint32(data[body:]))
		if numGlyphs < 0 || !need(4+4*(numGlyphs+1)) {
			return loc, ErrInvalidData
		}
		pairs := data[body+4:]
		found := false
		for i := 0; i < numGlyphs; i++ {
			if glyph.Index(binary.BigEndian.Uint16(pairs[4*i:])) != gid {
				continue
			}
			a := binary.BigEndian.Uint16(pairs[4*i+2:])
			b := binary.BigEndian.Uint16(pairs[4*i+6:])
			if b < a {
				return loc, ErrInvalidData
			}
			loc.offset, loc.size = imageDataOffset+uint32(a), uint32(b-a)
			found = true
			break
		}
		if !found {
			return loc, ErrGlyphNotInStrike
		}
	case 5: // constant metrics, sparse glyph IDs
		if !need(16) {
			return loc, ErrInvalidData
		}
		imageSize := binary.BigEndian.Uint32(data[body:])
		loc.metrics = parseBigGlyphMetrics(data[body+4:])
		numGlyphs := int(binary.BigEndian.Uint32(data[body+12:]))
		if numGlyphs < 0 || !need(16+2*numGlyphs) {
			return loc, ErrInvalidData
		}
		found := false
		for i := 0; i < numGlyphs; i++ {
			if glyph.Index(binary.BigEndian.Uint16(data[body+16+2*i:])) == gid {
				loc.offset, loc.size = imageDataOffset+uint32(i)*imageSize, imageSize
				found = true
				break
			}
		}
		if !found {
			return loc, ErrGlyphNotInStrike
		}
	default:
		tracer().Infof("CBLC index subtable format %d not supported", indexFormat)
		return loc, ErrUnsupportedFormat
	}
	if loc.size == 0 {
		return loc, ErrGlyphNotInStrike
	}
	return loc, nil
}

func (t *CBDT) image(loc glyphLocation) (*Image, error) {
	if uint64(loc.offset)+uint64(loc.size) > uint64(len(t.cbdt)) {
		return nil, ErrInvalidData
	}
	data := t.cbdt[loc.offset : loc.offset+loc.size]
	var m *bigGlyphMetrics
	var payload []byte
	switch loc.imageFormat {
	case 17: // SmallGlyphMetrics, data length, PNG data
		if len(data) < 9 {
			return nil, ErrInvalidData
		}
		m = parseSmallGlyphMetrics(data[0:5])
		payload = data[5:]
	case 18: // BigGlyphMetrics, data length, PNG data
		if len(data) < 12 {
			return nil, ErrInvalidData
		}
		m = parseBigGlyphMetrics(data[0:8])
		payload = data[8:]
	case 19: // metrics in CBLC, data length, PNG data
		if loc.metrics == nil || len(data) < 4 {
			return nil, ErrInvalidData
		}
		m = loc.metrics
		payload = data
	default:
		tracer().Infof("CBDT image format %d not supported", loc.imageFormat)
		return nil, ErrUnsupportedFormat
	}
	n := binary.BigEndian.Uint32(payload)
	if uint64(n)+4 > uint64(len(payload)) {
		return nil, ErrInvalidData
	}
	return &Image{
		Data:    payload[4 : 4+n],
		Format:  FormatPNG,
		Width:   m.width,
		Height:  m.height,
		Left:    m.bearingX,
		Top:     m.bearingY,
		Advance: m.advance,
	}, nil
}
