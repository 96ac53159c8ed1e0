package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/bmp"
)

// createTestImage creates a simple test image file and returns its path.
// The file lives in t.TempDir and is removed with it.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return path
}

// createGrayBMP writes an 8-bit grayscale BMP with a horizontal ramp, the
// format holograms usually come in from camera software.
func createGrayBMP(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / max(width-1, 1))})
		}
	}

	path := filepath.Join(t.TempDir(), "hologram.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		t.Fatalf("failed to encode bmp: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	// First load
	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1 == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_Load_GrayBMP(t *testing.T) {
	cache := NewImageCache()
	path := createGrayBMP(t, 16, 8)

	gray, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if gray.Bounds() != image.Rect(0, 0, 16, 8) {
		t.Fatalf("bounds: got %v", gray.Bounds())
	}
	if got := gray.GrayAt(0, 3).Y; got != 0 {
		t.Errorf("left pixel: got %d, want 0", got)
	}
	if got := gray.GrayAt(15, 3).Y; got != 255 {
		t.Errorf("right pixel: got %d, want 255", got)
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	// Create a file with invalid image data
	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	_, err := cache.Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if cache.Len() != 0 {
		t.Error("failed load should not be cached")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	// Load image
	_, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Clear cache
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", cache.Len())
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	// Load image
	_, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Evict
	cache.Evict(imgPath)

	// Verify image is evicted
	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache()
	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errors := make(chan error, 100)

	// Concurrent loads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Load(imgPath)
			if err != nil {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestToGray(t *testing.T) {
	t.Run("gray sub-image is re-anchored", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 4, 4))
		for i := range src.Pix {
			src.Pix[i] = uint8(i)
		}
		sub := src.SubImage(image.Rect(1, 1, 3, 3))

		got := ToGray(sub)
		if got.Bounds() != image.Rect(0, 0, 2, 2) {
			t.Fatalf("bounds: got %v", got.Bounds())
		}
		if got.Stride != 2 {
			t.Errorf("stride: got %d, want 2", got.Stride)
		}
		want := []uint8{5, 6, 9, 10}
		for i, w := range want {
			if got.Pix[i] != w {
				t.Errorf("Pix[%d]: got %d, want %d", i, got.Pix[i], w)
			}
		}
	})

	t.Run("color reduced to luminance", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 2, 1))
		src.Set(0, 0, color.RGBA{255, 255, 255, 255})
		src.Set(1, 0, color.RGBA{0, 0, 0, 255})

		got := ToGray(src)
		if got.GrayAt(0, 0).Y != 255 || got.GrayAt(1, 0).Y != 0 {
			t.Errorf("got %v", got.Pix)
		}
	})

	t.Run("equal channels keep their value", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1, 1))
		src.Set(0, 0, color.RGBA{100, 100, 100, 255})

		got := ToGray(src)
		if v := got.GrayAt(0, 0).Y; v < 99 || v > 101 {
			t.Errorf("got %d, want about 100", v)
		}
	})
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.ColorModel != "rgba" {
		t.Errorf("ColorModel: got %s, want rgba", info.ColorModel)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	cache := NewImageCache()
	dir := t.TempDir()

	// The decoder decides the format, not the extension.
	tests := []struct {
		name   string
		encode func(f *os.File, img image.Image) error
		format string
		model  string
	}{
		{"png.bmp", func(f *os.File, img image.Image) error { return png.Encode(f, img) }, "png", "gray"},
		{"bmp.png", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, "bmp", "paletted"},
		{"bmp.xyz", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, "bmp", "paletted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
			if err := tt.encode(f, image.NewGray(image.Rect(0, 0, 10, 10))); err != nil {
				t.Fatalf("encode: %v", err)
			}
			f.Close()

			info, err := LoadImageInfo(cache, path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}

			if info.Format != tt.format {
				t.Errorf("Format for %s: got %s, want %s", tt.name, info.Format, tt.format)
			}
			if info.ColorModel != tt.model {
				t.Errorf("ColorModel for %s: got %s, want %s", tt.name, info.ColorModel, tt.model)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := LoadImageInfo(cache, "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
