package premium

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
)

// KDP-recommended ebook cover dimensions.
const (
	coverWidth  = 1600
	coverHeight = 2400

	accentBarHeight = 200
	titleFontPts    = 120
	titleLineStep   = 140
	subtitleFontPts = 50
	authorFontPts   = 60
)

type colorScheme struct {
	bg, accent, text string
}

var coverSchemes = map[string]colorScheme{
	"romance":   {"#FFE5E5", "#FF69B4", "#8B0000"},
	"thriller":  {"#000000", "#FF0000", "#FFFFFF"},
	"fantasy":   {"#4A0080", "#FFD700", "#000000"},
	"self-help": {"#00A8E8", "#FFFFFF", "#003459"},
	"business":  {"#1A365D", "#F97316", "#FFFFFF"},
}

var defaultScheme = colorScheme{"#1A365D", "#F97316", "#FFFFFF"}

// CoverSpec describes a cover to render. FontPath points at a TTF file;
// when empty or unloadable the built-in face is used at its native size.
type CoverSpec struct {
	Title    string
	Subtitle string
	Author   string
	Genre    string
	FontPath string
}

// RenderCover draws the templated cover: solid genre-scheme background, a
// full-width accent bar across the middle, the uppercased title one word
// per line, an optional subtitle, and the author near the bottom.
func RenderCover(spec CoverSpec) image.Image {
	scheme, ok := coverSchemes[spec.Genre]
	if !ok {
		scheme = defaultScheme
	}

	dc := gg.NewContext(coverWidth, coverHeight)
	dc.SetHexColor(scheme.bg)
	dc.Clear()

	dc.SetHexColor(scheme.accent)
	dc.DrawRectangle(0, float64(coverHeight-accentBarHeight)/2, coverWidth, accentBarHeight)
	dc.Fill()

	setFace := func(points float64) {
		if spec.FontPath == "" {
			return
		}
		// Best effort: keep the default face when the font cannot load.
		_ = dc.LoadFontFace(spec.FontPath, points)
	}

	dc.SetHexColor(scheme.text)

	setFace(titleFontPts)
	y := float64(coverHeight) / 3
	for _, word := range strings.Fields(strings.ToUpper(spec.Title)) {
		dc.DrawStringAnchored(word, coverWidth/2, y, 0.5, 0.5)
		y += titleLineStep
	}

	if spec.Subtitle != "" {
		setFace(subtitleFontPts)
		dc.DrawStringAnchored(spec.Subtitle, coverWidth/2, y+30, 0.5, 0.5)
	}

	setFace(authorFontPts)
	dc.DrawStringAnchored(strings.ToUpper(spec.Author), coverWidth/2, coverHeight-200, 0.5, 0.5)

	return dc.Image()
}

// WriteCoverPNG renders the cover and writes it to path as PNG.
func WriteCoverPNG(spec CoverSpec, path string) error {
	img := RenderCover(spec)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}
	return nil
}
