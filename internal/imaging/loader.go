package imaging

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// cachedImage is a decoded hologram in grayscale plus what the file said
// about itself.
type cachedImage struct {
	gray   *image.Gray
	format string
	model  string
}

// ImageCache provides thread-safe caching of decoded holograms to avoid
// redundant disk reads and grayscale conversions.
//
// Images are keyed by the exact path string passed to Load. Once loaded,
// subsequent calls return the same *image.Gray without disk I/O.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	gray, err := cache.Load("/path/to/hologram.bmp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use gray...
//	cache.Evict("/path/to/hologram.bmp") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*cachedImage
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*cachedImage),
	}
}

// Load returns the grayscale version of the image at path, decoding it on
// first use.
//
// Supported formats are PNG, JPEG, GIF, BMP and TIFF. Color images are
// reduced to luminance with imaging.Grayscale.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not in a supported format
func (c *ImageCache) Load(path string) (*image.Gray, error) {
	ci, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return ci.gray, nil
}

func (c *ImageCache) load(path string) (*cachedImage, error) {
	c.mu.RLock()
	if ci, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return ci, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	ci := &cachedImage{
		gray:   ToGray(img),
		format: format,
		model:  colorModelName(img),
	}

	c.mu.Lock()
	c.images[path] = ci
	c.mu.Unlock()

	return ci, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*cachedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ToGray converts img to an 8-bit grayscale image anchored at the origin.
// Gray images are copied as-is; everything else goes through
// imaging.Grayscale, whose equal R, G and B channels become the gray value.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if g, ok := img.(*image.Gray); ok {
		draw.Draw(out, out.Bounds(), g, b.Min, draw.Src)
		return out
	}

	nrgba := imaging.Grayscale(img)
	for y := 0; y < b.Dy(); y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*b.Dx()]
		dst := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := range dst {
			dst[x] = src[4*x]
		}
	}
	return out
}

// ImageInfo contains metadata about a loaded hologram file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that accepted the file: "png", "jpeg", "gif",
	// "bmp" or "tiff".
	Format string `json:"format"`

	// ColorModel describes the pixels as stored on disk, before grayscale
	// conversion (e.g. "gray", "gray16", "rgba", "paletted").
	ColorModel string `json:"color_model"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a hologram into the cache (if not already cached) and
// returns its metadata.
//
// Unlike extension-based detection, Format reports the decoder that actually
// read the file, so a BMP saved with a .png name is reported as "bmp".
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	ci, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	b := ci.gray.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        ci.format,
		ColorModel:    ci.model,
		FileSizeBytes: stat.Size(),
	}, nil
}

func colorModelName(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "gray"
	case *image.Gray16:
		return "gray16"
	case *image.Paletted:
		return "paletted"
	case *image.YCbCr:
		return "ycbcr"
	case *image.RGBA, *image.NRGBA:
		return "rgba"
	case *image.RGBA64, *image.NRGBA64:
		return "rgba64"
	case *image.CMYK:
		return "cmyk"
	}
	return "other"
}
