package imaging

import (
	"image"
	"image/color"
	"testing"
)

func rampSpectrum(width, height int) []float64 {
	mag := make([]float64, width*height)
	for i := range mag {
		mag[i] = float64(i % width)
	}
	return mag
}

func TestSpectrumImage(t *testing.T) {
	const w, h = 32, 24
	ov := SpectrumOverlay{
		SearchRows: 6,
		Square:     image.Rect(20, 14, 27, 21),
		Peak:       image.Pt(2, 2),
	}

	img, err := SpectrumImage(rampSpectrum(w, h), w, h, ov, "#00FF00")
	if err != nil {
		t.Fatalf("SpectrumImage failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, w, h) {
		t.Fatalf("bounds: got %v", img.Bounds())
	}

	green := color.RGBA{0, 255, 0, 255}

	// stretched to the full range, left column black and right column white
	if got := img.RGBAAt(0, h-1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("darkest bin: got %v", got)
	}
	if got := img.RGBAAt(w-1, h-1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("brightest bin: got %v", got)
	}

	// dashed band boundary
	if img.RGBAAt(0, 6) != green || img.RGBAAt(1, 6) != green {
		t.Error("band boundary not drawn")
	}
	if img.RGBAAt(2, 6) == green {
		t.Error("band boundary should be dashed")
	}

	// square outline, interior untouched
	for _, p := range []image.Point{{20, 14}, {26, 14}, {20, 20}, {26, 20}, {23, 14}, {20, 17}} {
		if img.RGBAAt(p.X, p.Y) != green {
			t.Errorf("square outline missing at %v", p)
		}
	}
	if img.RGBAAt(23, 17) == green {
		t.Error("square interior should not be filled")
	}

	// label background covers the pixel next to the peak
	if img.RGBAAt(ov.Peak.X+1, ov.Peak.Y+1) == img.RGBAAt(ov.Peak.X+1, h-1) {
		t.Error("peak label not drawn")
	}
}

func TestSpectrumImage_InvalidColorFallsBack(t *testing.T) {
	ov := SpectrumOverlay{SearchRows: 2, Peak: image.Pt(20, 20)}
	img, err := SpectrumImage(make([]float64, 16), 4, 4, ov, "not-a-color")
	if err != nil {
		t.Fatalf("SpectrumImage failed: %v", err)
	}
	if got := img.RGBAAt(0, 2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("fallback overlay: got %v, want red", got)
	}
	// flat spectrum renders black
	if got := img.RGBAAt(0, 3); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("flat spectrum: got %v, want black", got)
	}
}

func TestSpectrumImage_SizeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		n, w, h int
	}{
		{"short", 15, 4, 4},
		{"zero width", 0, 0, 4},
		{"negative height", 4, 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SpectrumImage(make([]float64, tt.n), tt.w, tt.h, SpectrumOverlay{}, ""); err == nil {
				t.Error("SpectrumImage should fail")
			}
		})
	}
}

func TestRenderSpectrum(t *testing.T) {
	ov := SpectrumOverlay{
		SearchRows: 4,
		Square:     image.Rect(3, 3, 10, 10),
		Peak:       image.Pt(6, 6),
	}
	result, err := RenderSpectrum(rampSpectrum(16, 16), 16, 16, ov, "#FF0000", 2)
	if err != nil {
		t.Fatalf("RenderSpectrum failed: %v", err)
	}
	if result.Width != 32 || result.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 32x32", result.Width, result.Height)
	}
	if result.PeakX != 6 || result.PeakY != 6 || result.SearchRows != 4 {
		t.Errorf("geometry: got peak (%d,%d) rows %d", result.PeakX, result.PeakY, result.SearchRows)
	}
	if result.ROI != 3 {
		t.Errorf("ROI: got %d, want 3", result.ROI)
	}
	decodeResult(t, &result.ImageResult)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"#0000FF80", color.RGBA{0, 0, 255, 128}, false},
		{"", color.RGBA{}, true},
		{"#FFF", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDrawLabel_BoundsCheck(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Should not panic when the label runs off every edge
	drawLabel(img, -5, -5, "123,456", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
	drawLabel(img, 8, 8, "789", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
	drawLabel(img, 0, 0, "", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
	drawLabel(img, 0, 0, "x?", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
}
