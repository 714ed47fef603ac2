package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"github.com/tendant/catalog-image-pipeline/internal/watermark"
	"github.com/tendant/catalog-image-pipeline/pkg/catalog"
)

// SourceReader provides read access to source images.
type SourceReader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// DerivedWriter provides write access for derived outputs.
type DerivedWriter interface {
	Put(ctx context.Context, kind catalog.Kind, name string, r io.Reader) (string, error)
}

// Converter produces watermarked webp derivatives of catalog source images.
type Converter struct {
	source    SourceReader
	derived   DerivedWriter
	generator *watermark.Generator
	thumbSize int
	quality   int
}

// New creates a converter. thumbSize is the square thumbnail bounding box in
// pixels; quality is the webp encoding quality for both output kinds.
func New(source SourceReader, derived DerivedWriter, generator *watermark.Generator, thumbSize, quality int) *Converter {
	return &Converter{
		source:    source,
		derived:   derived,
		generator: generator,
		thumbSize: thumbSize,
		quality:   quality,
	}
}

// Optimize produces the full-size watermarked output for the named source
// file. It reports whether an output was written: a source already in the
// target format is an idempotent skip, not an error. Tracking the result is
// the caller's decision.
func (c *Converter) Optimize(ctx context.Context, name string) (bool, error) {
	if strings.EqualFold(filepath.Ext(name), catalog.TargetExt) {
		return false, nil
	}

	img, err := c.decode(ctx, name)
	if err != nil {
		return false, err
	}

	bounds := img.Bounds()
	overlay := c.generator.Overlay(bounds.Dx(), bounds.Dy())
	stamped := imaging.Overlay(img, overlay, image.Pt(0, 0), 1.0)

	buf, err := c.encode(stamped)
	if err != nil {
		return false, err
	}

	if _, err := c.derived.Put(ctx, catalog.KindOptimized, name, buf); err != nil {
		return false, err
	}

	return true, nil
}

// Thumbnail produces the bounded-box thumbnail for the named source file,
// overwriting any previous one. The resize never enlarges images already
// smaller than the box, so the watermark is sized from the actual bounds of
// the resized image rather than the nominal box.
func (c *Converter) Thumbnail(ctx context.Context, name string) error {
	img, err := c.decode(ctx, name)
	if err != nil {
		return err
	}

	thumb := imaging.Fit(img, c.thumbSize, c.thumbSize, imaging.Lanczos)

	bounds := thumb.Bounds()
	overlay := c.generator.Overlay(bounds.Dx(), bounds.Dy())
	stamped := imaging.Overlay(thumb, overlay, image.Pt(0, 0), 1.0)

	buf, err := c.encode(stamped)
	if err != nil {
		return err
	}

	if _, err := c.derived.Put(ctx, catalog.KindThumbnail, name, buf); err != nil {
		return err
	}

	return nil
}

func (c *Converter) decode(ctx context.Context, name string) (image.Image, error) {
	r, err := c.source.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	return img, nil
}

func (c *Converter) encode(img image.Image) (*bytes.Buffer, error) {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(c.quality))
	if err != nil {
		return nil, fmt.Errorf("webp encoder options: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("webp encode failed: %w", err)
	}
	return &buf, nil
}
