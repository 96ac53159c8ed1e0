package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// Save writes img to path, choosing the encoder from the file extension:
// .png, .jpg/.jpeg (at the given quality, 1-100) or .bmp.
func Save(path string, img image.Image, quality int) error {
	enc, err := encoderFor(path, quality)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func encoderFor(path string, quality int) (imgio.Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		if quality < 1 || quality > 100 {
			return nil, fmt.Errorf("jpeg quality %d outside 1..100", quality)
		}
		return imgio.JPEGEncoder(quality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png, .jpg or .bmp)", ext)
	}
}
