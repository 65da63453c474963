package otf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Parse parses an OpenType font from a byte slice.
// An otf.Font needs ongoing access to the font's byte-data after the Parse
// function returns. Its elements are assumed immutable while the otf.Font
// remains in use.
//
// For a font collection (TTC) the first font of the collection is parsed.
func Parse(font []byte) (*Font, error) {
	src := binarySegm(font)
	base, err := collectionOffset(src)
	if err != nil {
		return nil, err
	}
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font[base:])
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, errFontFormat("font header: " + err.Error())
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]*Table)}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	// Table offsets are from the start of the file, in collections as well.
	buf, err := src.view(base+12, 16*int(h.TableCount))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b := buf; len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		off, size := u32(b[8:12]), u32(b[12:16])
		data, err := src.view(int(off), int(size))
		if err != nil {
			return nil, errFontFormat(fmt.Sprintf("table %s exceeds font data", tag))
		}
		otf.tables[tag] = &Table{Tag: tag, Offset: off, Length: size, data: data}
	}
	if err := interpretTables(otf); err != nil {
		return nil, err
	}
	return otf, nil
}

// collectionOffset returns the offset of the first font's offset table. It
// is 0 for single fonts.
func collectionOffset(src binarySegm) (int, error) {
	if tag, err := src.u32(0); err != nil || tag != 0x74746366 { // ttcf
		return 0, nil
	}
	// TTC header: tag, version, numFonts, then numFonts offsets
	numFonts, err := src.u32(8)
	if err != nil || numFonts == 0 {
		return 0, errFontFormat("font collection header")
	}
	off, err := src.u32(12)
	if err != nil || int(off) >= len(src) {
		return 0, errFontFormat("font collection offset table")
	}
	tracer().Debugf("font collection with %d fonts, using the first one", numFonts)
	return int(off), nil
}

// RequiredTables are the tables we cannot do without: mapping code-points
// to glyphs, scaling font units and knowing the number of glyphs.
var RequiredTables = []string{
	"cmap", "head", "maxp",
}

func interpretTables(otf *Font) error {
	for _, tag := range RequiredTables {
		if !otf.HasTable(T(tag)) {
			return errFontFormat("missing required table " + tag)
		}
	}
	var err error
	if otf.Head, err = parseHead(otf.tables[T("head")].data); err != nil {
		return err
	}
	if otf.NumGlyphs, err = parseMaxP(otf.tables[T("maxp")].data); err != nil {
		return err
	}
	if hh := otf.Table(T("hhea")); hh != nil {
		if otf.HHea, err = parseHHea(hh.data); err != nil {
			return err
		}
	}
	if otf.CMap, err = parseCMap(otf.tables[T("cmap")].data); err != nil {
		return err
	}
	return nil
}

// --- Head table ------------------------------------------------------------

func parseHead(b binarySegm) (HeadInfo, error) {
	if len(b) < 54 {
		return HeadInfo{}, errFontFormat("size of head table")
	}
	info := HeadInfo{}
	info.UnitsPerEm, _ = b.u16(18)
	if info.UnitsPerEm < 16 || info.UnitsPerEm > 16384 {
		return info, errFontFormat(fmt.Sprintf("units per em out of range: %d", info.UnitsPerEm))
	}
	return info, nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts with CFF data
// must use Version 0.5 of this table, specifying only the numGlyphs field. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is required.
func parseMaxP(b binarySegm) (int, error) {
	n, err := b.u16(4)
	if err != nil {
		return 0, errFontFormat("size of maxp table")
	}
	return int(n), nil
}

// --- HHea table ------------------------------------------------------------

// The horizontal header holds line metrics for horizontal layout and the
// number of entries of table 'hmtx'.
func parseHHea(b binarySegm) (HHeaInfo, error) {
	tracer().Debugf("HHea table has size %d", len(b))
	if len(b) < 36 {
		return HHeaInfo{}, errFontFormat("hhea table incomplete")
	}
	info := HHeaInfo{}
	info.Ascender, _ = b.i16(4)
	info.Descender, _ = b.i16(6)
	info.LineGap, _ = b.i16(8)
	n, _ := b.u16(34)
	info.NumberOfHMetrics = int(n)
	return info, nil
}
