package phase

import (
	"fmt"
	"image"
)

// Frame is an 8-bit grayscale pixel buffer. Row y starts at Pix[y*Stride];
// the Stride-Width bytes after each row are padding and are never read.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// FrameFromGray views img as a Frame without copying. Sub-images keep the
// parent's stride, so their rows are padded.
func FrameFromGray(img *image.Gray) Frame {
	b := img.Bounds()
	return Frame{
		Pix:    img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: img.Stride,
	}
}

func (f Frame) validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrConfig, f.Width, f.Height)
	}
	if f.Stride < f.Width {
		return fmt.Errorf("%w: stride %d smaller than width %d", ErrConfig, f.Stride, f.Width)
	}
	if need := (f.Height-1)*f.Stride + f.Width; len(f.Pix) < need {
		return fmt.Errorf("%w: pixel buffer has %d bytes, need %d", ErrConfig, len(f.Pix), need)
	}
	return nil
}

// toReal copies the frame's pixels row by row into dst, skipping padding.
func toReal(f Frame, dst []float64) {
	i := 0
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Stride : y*f.Stride+f.Width]
		for _, v := range row {
			dst[i] = float64(v)
			i++
		}
	}
}

// lift writes src into the real parts of dst and zeroes the imaginary parts.
func lift(src []float64, dst []complex128) {
	for i, v := range src {
		dst[i] = complex(v, 0)
	}
}
