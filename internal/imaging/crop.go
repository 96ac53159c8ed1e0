package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Region is a rectangular area of a hologram; (X1,Y1) inclusive, (X2,Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// validate checks r against bounds the same way for every caller.
func (r Region) validate(bounds image.Rectangle) error {
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	return nil
}

// SubGray returns the region of img as a view sharing img's pixels. The view
// keeps the parent's stride, so its rows are padded whenever the region is
// narrower than img.
func SubGray(img *image.Gray, r Region) (*image.Gray, error) {
	if err := r.validate(img.Bounds()); err != nil {
		return nil, err
	}
	return img.SubImage(r.Rect()).(*image.Gray), nil
}

// ImageResult is an image returned to a client as base64-encoded PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG scales img by scale (1.0 keeps the size) and encodes it.
// Scaling uses Lanczos resampling for photographs of the hologram and
// nearest-neighbor when crisp is set, which keeps spectrum bins and phase
// wraps sharp.
func EncodePNG(img image.Image, scale float64, crisp bool) (*ImageResult, error) {
	if scale != 1.0 && scale > 0 {
		newWidth := max(int(float64(img.Bounds().Dx())*scale), 1)
		newHeight := max(int(float64(img.Bounds().Dy())*scale), 1)
		filter := imaging.Lanczos
		if crisp {
			filter = imaging.NearestNeighbor
		}
		img = imaging.Resize(img, newWidth, newHeight, filter)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts a rectangular region from a hologram and returns it as PNG.
func Crop(img image.Image, r Region, scale float64) (*ImageResult, error) {
	if err := r.validate(img.Bounds()); err != nil {
		return nil, err
	}
	return EncodePNG(imaging.Crop(img, r.Rect()), scale, false)
}
