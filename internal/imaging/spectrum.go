package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
)

// SpectrumOverlay marks what the peak search looked at on a spectrum preview.
type SpectrumOverlay struct {
	// SearchRows is the number of leading rows searched for the carrier.
	SearchRows int
	// Square is the retained ROI, as a half-open rectangle.
	Square image.Rectangle
	// Peak is the carrier position.
	Peak image.Point
}

// SpectrumResult is a spectrum preview plus the geometry drawn on it.
type SpectrumResult struct {
	ImageResult
	PeakX      int `json:"peak_x"`
	PeakY      int `json:"peak_y"`
	SearchRows int `json:"search_rows"`
	ROI        int `json:"roi"`
}

// SpectrumImage renders a centered log-magnitude spectrum as an RGBA image,
// stretched to the full 0..255 range, and draws the overlay on it:
//   - a dashed line under the last searched row
//   - the outline of the ROI square
//   - the peak coordinates next to the peak
//
// overlayHex is a "#RRGGBB" or "#RRGGBBAA" color; an unparsable value falls
// back to opaque red.
func SpectrumImage(mag []float64, width, height int, ov SpectrumOverlay, overlayHex string) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(mag) != width*height {
		return nil, fmt.Errorf("spectrum has %d samples, want %dx%d", len(mag), width, height)
	}

	overlay, err := parseHexColor(overlayHex)
	if err != nil {
		overlay = color.RGBA{255, 0, 0, 255}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range mag {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mul := 0.0
	if hi > lo {
		mul = 255 / (hi - lo)
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g := uint8((mag[y*width+x]-lo)*mul + 0.5)
			i := result.PixOffset(x, y)
			result.Pix[i+0] = g
			result.Pix[i+1] = g
			result.Pix[i+2] = g
			result.Pix[i+3] = 255
		}
	}

	// band boundary, dashed every other pair of pixels
	if y := ov.SearchRows; y > 0 && y < height {
		for x := 0; x < width; x++ {
			if (x/2)%2 == 0 {
				result.Set(x, y, overlay)
			}
		}
	}

	sq := ov.Square.Intersect(result.Bounds())
	if !sq.Empty() {
		for x := sq.Min.X; x < sq.Max.X; x++ {
			result.Set(x, sq.Min.Y, overlay)
			result.Set(x, sq.Max.Y-1, overlay)
		}
		for y := sq.Min.Y; y < sq.Max.Y; y++ {
			result.Set(sq.Min.X, y, overlay)
			result.Set(sq.Max.X-1, y, overlay)
		}
	}

	label := fmt.Sprintf("%d,%d", ov.Peak.X, ov.Peak.Y)
	drawLabel(result, ov.Peak.X+2, ov.Peak.Y+2, label, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})

	return result, nil
}

// RenderSpectrum renders and encodes a spectrum preview.
func RenderSpectrum(mag []float64, width, height int, ov SpectrumOverlay, overlayHex string, scale float64) (*SpectrumResult, error) {
	img, err := SpectrumImage(mag, width, height, ov, overlayHex)
	if err != nil {
		return nil, err
	}
	enc, err := EncodePNG(img, scale, true)
	if err != nil {
		return nil, err
	}
	return &SpectrumResult{
		ImageResult: *enc,
		PeakX:       ov.Peak.X,
		PeakY:       ov.Peak.Y,
		SearchRows:  ov.SearchRows,
		ROI:         (ov.Square.Dx() - 1) / 2,
	}, nil
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// glyphs is a 3x5 pixel font covering coordinate labels.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

// drawLabel draws text on a translucent background, clipped to img.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
