// Package common contains plain data types and math helpers shared by the engine packages.
// Nothing in here touches the GPU, so every package may import it freely.
package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// The renderer turns it into a GPU texture the first time the owning plane is drawn.
type TextureStagingData struct {
	// Pixels is the pixel data in RGBA format, 4 bytes per pixel, rows top to bottom.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Aspect returns width / height, or 1 when either dimension is unknown.
//
// Returns:
//   - float32: the aspect ratio of the texture
func (t TextureStagingData) Aspect() float32 {
	if t.Width == 0 || t.Height == 0 {
		return 1
	}
	return float32(t.Width) / float32(t.Height)
}

// ImageToStaging copies any image.Image into tightly packed RGBA staging data.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: the RGBA pixels and dimensions of img
func ImageToStaging(img image.Image) TextureStagingData {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}

// DecodeTexture decodes an encoded image stream into RGBA staging data.
// Supports PNG, JPEG, GIF, BMP and WebP.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - r: reader over the encoded image bytes
//
// Returns:
//   - TextureStagingData: the decoded pixels
//   - error: error if the stream is not a supported image
func DecodeTexture(r io.Reader) (TextureStagingData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}
	staging := ImageToStaging(img)
	if staging.Width == 0 || staging.Height == 0 {
		return TextureStagingData{}, fmt.Errorf("decoded %s image is empty", format)
	}
	return staging, nil
}
