package watermark

import (
	"bytes"
	"image"
	"testing"
)

func TestFontSize(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  float64
	}{
		{"tiny thumbnail stays at floor", 100, MinFontSize},
		{"floor boundary", 400, MinFontSize},
		{"scales with width", 1000, 30},
		{"large original", 2000, 60},
		{"rounds to nearest", 1010, 30}, // 30.3 -> 30
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FontSize(tt.width); got != tt.want {
				t.Errorf("FontSize(%d) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestOverlayDimensions(t *testing.T) {
	g := NewGenerator("© Catalog")

	overlay := g.Overlay(640, 480)
	bounds := overlay.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Errorf("overlay is %dx%d, want 640x480", bounds.Dx(), bounds.Dy())
	}
}

func TestOverlayDrawsLabel(t *testing.T) {
	g := NewGenerator("© Catalog")

	overlay := g.Overlay(400, 300)
	rgba, ok := overlay.(*image.RGBA)
	if !ok {
		t.Fatalf("overlay is %T, want *image.RGBA", overlay)
	}

	opaque := 0
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Fatal("overlay is fully transparent, label was not drawn")
	}
	// The label covers only a small band near the bottom edge.
	if opaque > 400*300/4 {
		t.Errorf("overlay has %d non-transparent pixels, label should be a small band", opaque)
	}
}

func TestOverlayDeterministic(t *testing.T) {
	g := NewGenerator("© Catalog")

	a := g.Overlay(800, 600).(*image.RGBA)
	b := g.Overlay(800, 600).(*image.RGBA)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two overlays with identical inputs differ")
	}
}
