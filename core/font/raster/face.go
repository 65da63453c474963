package raster

import (
	"strings"

	"github.com/npillmayer/glyphpeek/core"
	"github.com/npillmayer/glyphpeek/core/font"
	"github.com/npillmayer/glyphpeek/core/glyph"
)

// DefaultPixelSize is the pixel size faces are opened with if no other size
// is requested.
const DefaultPixelSize = 64

// Kind tells color fonts from normal ones.
type Kind int8

const (
	Normal Kind = iota // outline font
	Color              // bitmap strikes
)

func (k Kind) String() string {
	if k == Color {
		return "color"
	}
	return "normal"
}

// Engine selects the renderer for outline fonts.
type Engine int8

const (
	EngineOutline  Engine = iota // x/image sfnt + vector
	EngineFreeType               // golang/freetype
)

var engineNames = [...]string{"outline", "freetype"}

func (e Engine) String() string {
	if int(e) < len(engineNames) {
		return engineNames[e]
	}
	return "unknown"
}

// ParseEngine returns the engine for a name, case-insensitively.
func ParseEngine(name string) (Engine, error) {
	for i, n := range engineNames {
		if strings.EqualFold(n, name) {
			return Engine(i), nil
		}
	}
	return EngineOutline, core.Error(core.EINVALID, "unknown rasterizer engine %q", name)
}

// Face is a font prepared for rasterization at a pixel size.
type Face interface {
	Rasterizer
	Kind() Kind
	// PixelSize is the size glyphs are rendered at. For color fonts this is
	// the ppem of the selected strike.
	PixelSize() int
	Font() *font.ScalableFont
}

type config struct {
	size   int
	engine Engine
}

// Option configures opening of a face.
type Option func(*config)

// WithPixelSize sets the requested pixel size, DefaultPixelSize if not set.
// For color fonts it selects the strike with the closest width.
func WithPixelSize(px int) Option {
	return func(c *config) {
		if px > 0 {
			c.size = px
		}
	}
}

// WithEngine sets the engine for outline fonts.
func WithEngine(e Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// Open prepares a font for rasterization. If the font has an sbix table or
// a CBDT table, it is treated as a color font, otherwise as an outline font.
func Open(f *font.ScalableFont, opts ...Option) (Face, error) {
	if f == nil || f.OT == nil {
		return nil, core.Error(core.EMISSING, "no font to open")
	}
	cfg := config{size: DefaultPixelSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if f.IsColorFont() {
		tracer().Infof("%s is a color font", f.Fontname)
		return openColor(f, cfg.size)
	}
	tracer().Infof("%s is an outline font, engine %s", f.Fontname, cfg.engine)
	switch cfg.engine {
	case EngineFreeType:
		return openFreeType(f, cfg.size)
	default:
		return openOutline(f, cfg.size)
	}
}

// glyphIndex resolves a code-point through the font's cmap. Glyph 0 is the
// 'missing character' and reported as not found.
func glyphIndex(f *font.ScalableFont, r rune) (glyph.Index, bool) {
	gid := f.OT.GlyphIndex(r)
	return gid, gid != 0
}

// scaledLineHeight is ascender minus descender plus line gap, scaled to
// ppem and rounded up. This is the exact scaled height; it deliberately
// differs from FreeType's product of separately truncated values,
// (height>>6)*(y_scale>>16), which collapses to 0 at small sizes.
func scaledLineHeight(f *font.ScalableFont, ppem int) int {
	upem := int(f.OT.Head.UnitsPerEm)
	lh := f.OT.LineHeight()
	if lh <= 0 {
		lh = upem
	}
	return (lh*ppem + upem - 1) / upem
}

func rasterError(err error, gid glyph.Index) error {
	return core.WrapError(err, core.ERASTER, "cannot render glyph %d", gid)
}
