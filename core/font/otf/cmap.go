package otf

import (
	"fmt"

	"github.com/npillmayer/glyphpeek/core/glyph"
)

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
type CMapTable struct {
	GlyphIndexMap CMapGlyphIndex
	Format        uint16 // format of the subtable in use, 4 or 12
}

// CMapGlyphIndex represents a CMap table index to receive a glyph index from
// a code-point.
type CMapGlyphIndex interface {
	Lookup(rune) glyph.Index
}

// Platform IDs and Platform Specific IDs as per
// https://www.microsoft.com/typography/otspec/name.htm
const (
	pidUnicode   = 0
	pidMacintosh = 1
	pidWindows   = 3

	psidUnicode2BMPOnly        = 3
	psidUnicode2FullRepertoire = 4
	psidMacintoshRoman         = 0
	psidWindowsSymbol          = 0
	psidWindowsUCS2            = 1
	psidWindowsUCS4            = 10
)

// This value is arbitrary, but defends against parsing malicious font
// files causing excessive memory allocations. For reference, Adobe's
// SourceHanSansSC-Regular.otf has 65535 glyphs and:
//   - its format-4  cmap table has  1581 segments.
//   - its format-12 cmap table has 16498 segments.
const maxCMapSegments = 20000

// platformEncodingWidth returns the number of bytes per character assumed by
// the given Platform ID and Platform Specific ID.
//
// Very old fonts, from before Unicode was widely adopted, assume only 1 byte
// per character: a character map.
//
// Old fonts, from when Unicode meant the Basic Multilingual Plane (BMP),
// assume that 2 bytes per character is sufficient.
//
// Recent fonts naturally support the full range of Unicode code points, which
// can take up to 4 bytes per character.
func platformEncodingWidth(pid, psid uint16) int {
	switch pid {
	case pidUnicode:
		switch psid {
		case psidUnicode2BMPOnly:
			return 2
		case psidUnicode2FullRepertoire:
			return 4
		}
	case pidMacintosh:
		if psid == psidMacintoshRoman {
			return 1
		}
	case pidWindows:
		switch psid {
		case psidWindowsSymbol, psidWindowsUCS2:
			return 2
		case psidWindowsUCS4:
			return 4
		}
	}
	return 0
}

// We only support the following platform/encoding/format combinations:
//
//	0 (Unicode)  3    4   Unicode BMP
//	0 (Unicode)  4    12  Unicode full
//	3 (Win)      1    4   Unicode BMP
//	3 (Win)      10   12  Unicode full
func supportedCmapFormat(format, pid, psid uint16) bool {
	return (pid == pidUnicode && psid == psidUnicode2BMPOnly && format == 4) ||
		(pid == pidUnicode && psid == psidUnicode2FullRepertoire && format == 12) ||
		(pid == pidWindows && psid == psidWindowsUCS2 && format == 4) ||
		(pid == pidWindows && psid == psidWindowsUCS4 && format == 12)
}

// parseCMap selects the widest supported subtable of a cmap table and
// prepares it for lookups.
func parseCMap(b binarySegm) (*CMapTable, error) {
	numTables, err := b.u16(2)
	if err != nil {
		return nil, errFontFormat("cmap header")
	}
	records, err := b.view(4, 8*int(numTables))
	if err != nil {
		return nil, errFontFormat("cmap encoding records")
	}
	bestWidth, bestOffset, bestFormat := 0, uint32(0), uint16(0)
	for r := records; len(r) > 0; r = r[8:] {
		pid, psid := u16(r), u16(r[2:])
		offset := u32(r[4:])
		format, err := b.u16(int(offset))
		if err != nil {
			return nil, errFontFormat("cmap subtable offset")
		}
		if !supportedCmapFormat(format, pid, psid) {
			continue
		}
		if w := platformEncodingWidth(pid, psid); w > bestWidth {
			bestWidth, bestOffset, bestFormat = w, offset, format
		}
	}
	if bestWidth == 0 {
		return nil, errFontFormat("no supported cmap subtable")
	}
	tracer().Debugf("cmap: using subtable format %d at offset %d", bestFormat, bestOffset)
	cmap := &CMapTable{Format: bestFormat}
	sub := b[bestOffset:]
	switch bestFormat {
	case 4:
		cmap.GlyphIndexMap, err = makeGlyphIndexFormat4(sub)
	case 12:
		cmap.GlyphIndexMap, err = makeGlyphIndexFormat12(sub)
	}
	if err != nil {
		return nil, err
	}
	return cmap, nil
}

// --- Format 4 --------------------------------------------------------------

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
//
// The format-dependent data is divided into three parts, which must occur in the following
// order:
// - A four-word header gives parameters for an optimized search of the segment list;
// - Four parallel arrays describe the segments (one segment for each contiguous range of codes);
// - A variable-length array of glyph IDs (unsigned words).
type cmapEntry16 struct {
	end, start, delta, offset uint16
}

type format4Index struct {
	entries []cmapEntry16
	data    binarySegm // the complete subtable
	rangeAt int        // position of idRangeOffset[0] in data
}

func makeGlyphIndexFormat4(b binarySegm) (*format4Index, error) {
	const headerSize = 14
	length, err := b.u16(2)
	if err != nil || int(length) > len(b) || length < headerSize {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	b = b[:length]
	segCountX2, _ := b.u16(6)
	if segCountX2&1 != 0 {
		return nil, errFontFormat("cmap table format, illegal segment count")
	}
	segCount := int(segCountX2 / 2)
	if segCount > maxCMapSegments {
		return nil, errFontFormat(fmt.Sprintf("more than %d cmap segments not supported", maxCMapSegments))
	}
	segs, err := b.view(headerSize, 8*segCount+2)
	if err != nil {
		return nil, errFontFormat("cmap internal structure")
	}
	entries := make([]cmapEntry16, segCount)
	for i := range entries {
		entries[i] = cmapEntry16{
			end:    u16(segs[0*segCount+2*i:]),
			start:  u16(segs[2*segCount+2+2*i:]),
			delta:  u16(segs[4*segCount+2+2*i:]),
			offset: u16(segs[6*segCount+2+2*i:]),
		}
	}
	return &format4Index{
		entries: entries,
		data:    b,
		rangeAt: headerSize + 6*segCount + 2,
	}, nil
}

func (f4 *format4Index) Lookup(r rune) glyph.Index {
	if r < 0 || r > 0xffff {
		return 0
	}
	c := uint16(r)
	for i, j := 0, len(f4.entries); i < j; {
		h := i + (j-i)/2
		entry := &f4.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else if entry.offset == 0 {
			return glyph.Index(c + entry.delta)
		} else {
			// idRangeOffset is relative to its own position in the table
			pos := f4.rangeAt + 2*h + int(entry.offset) + 2*int(c-entry.start)
			g, err := f4.data.u16(pos)
			if err != nil || g == 0 {
				return 0
			}
			return glyph.Index(g + entry.delta)
		}
	}
	return 0
}

// --- Format 12 -------------------------------------------------------------

// Format 12: Segmented coverage
// This is the standard character-to-glyph-index mapping subtable for fonts
// supporting Unicode character repertoires that include supplementary-plane
// characters (U+10000 to U+10FFFF).
type cmapEntry32 struct {
	start, end, delta uint32
}

type format12Index struct {
	entries []cmapEntry32
}

func makeGlyphIndexFormat12(b binarySegm) (*format12Index, error) {
	const headerSize = 16
	if len(b) < headerSize {
		return nil, errFontFormat("cmap bounds overflow")
	}
	length, _ := b.u32(4)
	if int(length) > len(b) {
		return nil, errFontFormat("cmap bounds overflow")
	}
	numGroups, _ := b.u32(12)
	if numGroups > maxCMapSegments {
		return nil, errFontFormat(fmt.Sprintf("more than %d cmap segments not supported", maxCMapSegments))
	}
	eLength := 12 * numGroups
	if headerSize+eLength != length {
		return nil, errFontFormat("cmap table format")
	}
	buf, err := b.view(headerSize, int(eLength))
	if err != nil {
		return nil, errFontFormat("cmap table format")
	}
	entries := make([]cmapEntry32, numGroups)
	for i := range entries {
		entries[i] = cmapEntry32{
			start: u32(buf[0+12*i:]),
			end:   u32(buf[4+12*i:]),
			delta: u32(buf[8+12*i:]),
		}
	}
	return &format12Index{entries: entries}, nil
}

func (f12 *format12Index) Lookup(r rune) glyph.Index {
	if r < 0 {
		return 0
	}
	c := uint32(r)
	for i, j := 0, len(f12.entries); i < j; {
		h := i + (j-i)/2
		entry := &f12.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else {
			return glyph.Index(c - entry.start + entry.delta)
		}
	}
	return 0
}
