package otf

import (
	"sort"

	"github.com/npillmayer/glyphpeek/core/glyph"
)

// Font represents the table structure of an OpenType font.
type Font struct {
	Header *FontHeader
	tables map[Tag]*Table
	CMap   *CMapTable // CMAP table is mandatory
	Head   HeadInfo
	HHea   HHeaInfo
	// NumGlyphs is taken from table 'maxp'.
	NumGlyphs int
}

// FontHeader is a directory of the top-level tables in a font.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Table tag names are case-sensitive, following the names in the OpenType
// specification, e.g. "OS/2", "cmap", "CBDT" or "sbix".
func (otf *Font) Table(tag Tag) *Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// HasTable is a predicate: does the font contain a non-empty table for tag?
func (otf *Font) HasTable(tag Tag) bool {
	t := otf.Table(tag)
	return t != nil && t.Length > 0
}

// TableTags returns a list of tags, one for each table contained in the font,
// in ascending order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// GlyphIndex returns the glyph index for a code-point, or 0 if the font
// does not map the code-point.
func (otf *Font) GlyphIndex(r rune) glyph.Index {
	if otf.CMap == nil {
		return 0
	}
	return otf.CMap.GlyphIndexMap.Lookup(r)
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes.
// If b is shorter or longer, it will be silently extended or cut as appropriate
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table is one of the tables of a font, as listed in the table directory.
type Table struct {
	Tag    Tag
	Offset uint32 // from start of font data
	Length uint32
	data   binarySegm
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (t *Table) Binary() []byte {
	if t == nil {
		return nil
	}
	return t.data
}

// HeadInfo holds the fields of table 'head' we need.
type HeadInfo struct {
	UnitsPerEm uint16 // values 16 … 16384 are valid
}

// HHeaInfo holds the fields of table 'hhea' we need.
// Ascender, Descender and LineGap are in font units; Descender is negative
// for descents below the baseline.
type HHeaInfo struct {
	Ascender, Descender, LineGap int16
	NumberOfHMetrics             int
}
