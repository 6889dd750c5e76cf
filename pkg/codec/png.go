// Package codec converts raw clipboard pixels to and from the portable image
// encoding stored in history items (base64 of a PNG stream).
package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/berrythewa/clipdeck/internal/types"
)

// PNG is the portable image codec. The zero value uses default compression.
type PNG struct {
	Level png.CompressionLevel
}

// Encode converts raw RGBA pixels to base64-encoded PNG.
func (c PNG) Encode(img types.RawImage) (string, error) {
	data, err := c.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode converts base64-encoded PNG back to raw RGBA pixels.
func (c PNG) Decode(encoded string) (types.RawImage, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return types.RawImage{}, fmt.Errorf("%w: base64: %v", types.ErrDecoding, err)
	}
	return c.DecodePNG(data)
}

// EncodePNG converts raw RGBA pixels to a PNG stream.
func (c PNG) EncodePNG(img types.RawImage) ([]byte, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", types.ErrEncoding, img.Width, img.Height)
	}
	if want := img.Width * img.Height * 4; len(img.Pixels) != want {
		return nil, fmt.Errorf("%w: %dx%d image needs %d bytes, got %d",
			types.ErrEncoding, img.Width, img.Height, want, len(img.Pixels))
	}

	rgba := &image.NRGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: c.Level}
	if err := enc.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

// DecodePNG converts a PNG stream to raw RGBA pixels.
func (c PNG) DecodePNG(data []byte) (types.RawImage, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return types.RawImage{}, fmt.Errorf("%w: png: %v", types.ErrDecoding, err)
	}

	b := src.Bounds()
	dst, ok := src.(*image.NRGBA)
	if !ok || dst.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	}
	return types.RawImage{Pixels: dst.Pix, Width: b.Dx(), Height: b.Dy()}, nil
}
