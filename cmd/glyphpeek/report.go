package main

import (
	"strings"

	"github.com/npillmayer/glyphpeek/core/font/raster"
	"github.com/npillmayer/glyphpeek/core/glyph"
	"github.com/npillmayer/glyphpeek/core/runescan"
	"github.com/npillmayer/glyphpeek/engine/compose"
	"github.com/pterm/pterm"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/runenames"
)

// glyphReporter returns an observer printing one line per glyph set by a
// face of the given kind.
func glyphReporter(kind raster.Kind) func(compose.Placement) {
	return func(p compose.Placement) {
		pterm.Println(glyphLine(p, kind))
	}
}

// glyphLine labels a glyph by its pixel mode. Glyphs without pixels, like a
// space, take the kind of their face.
func glyphLine(p compose.Placement, kind raster.Kind) string {
	color := p.Mode == glyph.PixelModeColor
	if p.Mode == glyph.PixelModeNone {
		color = kind == raster.Color
	}
	label := "normal"
	if color {
		label = "color"
	}
	return "drawing " + label + " glyph: " + describe(p.Scalar)
}

// describe formats a scalar as code-point and Unicode name.
func describe(s runescan.Scalar) string {
	name := runenames.Name(rune(s))
	if name == "" {
		return s.String()
	}
	return s.String() + " " + name
}

func describeCluster(cluster string) string {
	parts := make([]string, 0, len(cluster))
	for _, r := range cluster {
		parts = append(parts, runescan.Scalar(r).String())
	}
	return strings.Join(parts, " ")
}

// multiScalarClusters lists the grapheme clusters of text made of more than
// one code-point, like a base letter with combining marks or an emoji ZWJ
// sequence.
func multiScalarClusters(text string) []string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if len(g.Runes()) > 1 {
			clusters = append(clusters, g.Str())
		}
	}
	return clusters
}
