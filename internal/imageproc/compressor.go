// Package imageproc normalizes client-supplied images so they fit the
// constraints of the vision completion provider.
package imageproc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultMaxPixels is the pixel budget applied before an image is downscaled.
const DefaultMaxPixels = 1700000

// jpegQuality is the fixed re-encoding quality.
const jpegQuality = 85

// ProcessError wraps any failure while decoding, resizing, or encoding an image.
type ProcessError struct {
	Err error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("image processing failed: %v", e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Compressor re-encodes base64 images as bounded-size JPEG.
// A Compressor is immutable after construction and safe for concurrent use.
type Compressor struct {
	MaxPixels int
	Quality   int
}

// NewCompressor creates a Compressor with the given pixel budget.
func NewCompressor(maxPixels int) *Compressor {
	return &Compressor{
		MaxPixels: maxPixels,
		Quality:   jpegQuality,
	}
}

// Compress decodes a base64 image, drops any alpha channel, downscales the
// image if it exceeds the pixel budget, and re-encodes it as base64 JPEG.
// Images at or under budget keep their dimensions. Alpha is dropped rather
// than composited against a background, which is lossy for transparent input.
func (c *Compressor) Compress(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", &ProcessError{Err: fmt.Errorf("invalid base64 image data: %w", err)}
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", &ProcessError{Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	img = dropAlpha(img)

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	numPixels := width * height

	if numPixels > c.MaxPixels {
		scale := math.Sqrt(float64(c.MaxPixels) / float64(numPixels))
		newWidth := int(float64(width) * scale)
		newHeight := int(float64(height) * scale)
		img = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.Quality)); err != nil {
		return "", &ProcessError{Err: fmt.Errorf("failed to encode JPEG: %w", err)}
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// dropAlpha forces every pixel opaque, keeping the unpremultiplied color
// samples as-is. Fully opaque images pass through untouched.
func dropAlpha(img image.Image) image.Image {
	type opaquer interface {
		Opaque() bool
	}
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return img
	}

	flat := imaging.Clone(img)
	for i := 3; i < len(flat.Pix); i += 4 {
		flat.Pix[i] = 0xff
	}
	return flat
}
