/*
Package font is for locating and loading font files.

A ScalableFont is a font file in memory together with its interpreted
OpenType table structure. It does not carry a size: scaling to pixels is the
business of package raster.

Fonts may be given as a file path or as the name of a font installed on the
system:

	f, err := font.LoadFont("/Library/Fonts/Apple Color Emoji.ttc")
	f, err := font.LoadFont("DejaVuSans")

Utility to view a character map of a font: http://torinak.com/font/lsfont.html

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font/otf"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer traces with key 'glyphpeek.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpeek.fonts")
}

// ScalableFont is a font, i.e. a variant of a typeface with a certain weight,
// slant, etc. An example is "Helvetica regular".
type ScalableFont struct {
	Fontname string
	Filepath string    // file path, or "internal"
	Binary   []byte    // raw data
	OT       *otf.Font // the font's table structure
}

// LoadFont loads a font from a file path. If nameOrPath does not denote an
// existing file, it is looked up as a system font.
//
// Errors are core.AppErrors with code core.EMISSING if the font cannot be
// found and core.EFONTFORMAT if it cannot be parsed.
func LoadFont(nameOrPath string) (*ScalableFont, error) {
	fpath := nameOrPath
	if _, err := os.Stat(fpath); errors.Is(err, fs.ErrNotExist) {
		tracer().Debugf("%s is not a file, trying system fonts", nameOrPath)
		if fpath, err = findfont.Find(nameOrPath); err != nil || fpath == "" {
			return nil, core.WrapError(err, core.EMISSING, "cannot find font %q", nameOrPath)
		}
		tracer().Debugf("%s is a system font: %s", nameOrPath, fpath)
	}
	bytez, err := os.ReadFile(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %q", fpath)
	}
	f, err := ParseFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fpath
	if f.Fontname == "" {
		f.Fontname = filepath.Base(fpath)
	}
	return f, nil
}

// ParseFont interprets the bytes of an OpenType font.
func ParseFont(fbytes []byte) (*ScalableFont, error) {
	ot, err := otf.Parse(fbytes)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTFORMAT, "cannot parse font")
	}
	f := &ScalableFont{Binary: fbytes, OT: ot}
	f.Fontname = ot.FullName()
	tracer().Infof("loaded font %q with %d glyphs", f.Fontname, ot.NumGlyphs)
	return f, nil
}

// IsColorFont is true if the font carries color bitmap glyphs, either as an
// Apple sbix table or as a Google CBDT table.
func (sf *ScalableFont) IsColorFont() bool {
	return sf.OT.HasTable(otf.T("sbix")) || sf.OT.HasTable(otf.T("CBDT"))
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns the built-in Go Sans font. It is always present and
// serves as a default fixture for tests and tools. LoadFont never falls back
// to it: a font which cannot be found or parsed is an error.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		var err error
		fallbackFont, err = ParseFont(goregular.TTF)
		if err != nil {
			panic("cannot load default font") // this cannot happen
		}
		fallbackFont.Fontname = "Go Sans"
		fallbackFont.Filepath = "internal"
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

// NormalizeFontname returns a lower-case font name without spaces or file
// suffix, suitable as a key.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = filepath.Base(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}
