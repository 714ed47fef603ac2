package watermark

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// MinFontSize keeps the label legible on small thumbnails.
	MinFontSize = 14

	// Font size is 3% of the target width; bottom padding is 80% of the
	// font size.
	fontScale = 0.03
	padScale  = 0.8
)

// brandFont is embedded so overlays render identically on every host.
var brandFont = mustParseFont()

func mustParseFont() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return f
}

// Generator renders brand label overlays for compositing onto catalog images.
type Generator struct {
	label string
}

// NewGenerator creates a generator for the given brand label.
func NewGenerator(label string) *Generator {
	return &Generator{label: label}
}

// FontSize returns the label size for a target width, rounded to the nearest
// integer and never below MinFontSize.
func FontSize(width int) float64 {
	size := math.Round(float64(width) * fontScale)
	if size < MinFontSize {
		return MinFontSize
	}
	return size
}

// Overlay renders a transparent canvas of the given dimensions with the label
// centered horizontally near the bottom edge. The result is a pure function
// of the dimensions and the label text.
func (g *Generator) Overlay(width, height int) image.Image {
	size := FontSize(width)
	padding := size * padScale

	dc := gg.NewContext(width, height)
	face := truetype.NewFace(brandFont, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	dc.SetFontFace(face)

	// Semi-transparent white so the label reads on both light and dark
	// product shots. The baseline sits padding pixels above the bottom edge.
	dc.SetColor(color.NRGBA{R: 255, G: 255, B: 255, A: 166})
	dc.DrawStringAnchored(g.label, float64(width)/2, float64(height)-padding, 0.5, 0)

	return dc.Image()
}
