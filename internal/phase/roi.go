package phase

import (
	"fmt"
	"image"
)

// Square is the retained neighborhood of the carrier peak: the samples within
// Half of Center along both axes.
type Square struct {
	Center image.Point `json:"center"`
	Half   int         `json:"half"`
}

// Side is the full edge length, 2*Half+1.
func (s Square) Side() int { return 2*s.Half + 1 }

// Rect is the square as a half-open rectangle.
func (s Square) Rect() image.Rectangle {
	return image.Rect(s.Center.X-s.Half, s.Center.Y-s.Half, s.Center.X+s.Half+1, s.Center.Y+s.Half+1)
}

// clampROI shrinks roi so the square around p stays inside a grid of width w
// on the left, top and right. The bottom is not clamped: the peak comes from
// the top band of the spectrum.
func clampROI(roi int, p image.Point, w int) int {
	roi = min(roi, p.X, p.Y, w-1-p.X)
	return max(roi, 0)
}

// checkSquare verifies that s lies entirely on a w x h grid.
func checkSquare(s Square, w, h int) error {
	r := s.Rect()
	if s.Half < 0 || r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > w || r.Max.Y > h {
		return fmt.Errorf("%w: roi square %v (half %d) outside %dx%d spectrum", ErrInvariant, r, s.Half, w, h)
	}
	return nil
}

// copySquareToCenter copies the square s of src into dst so that s.Center
// lands on (w/2, h/2). Samples of dst outside the square are left untouched;
// callers zero dst first.
func copySquareToCenter(dst, src []complex128, w, h int, s Square) {
	side := s.Side()
	sx := s.Center.X - s.Half
	dx := w/2 - s.Half
	for k := 0; k < side; k++ {
		sy := s.Center.Y - s.Half + k
		dy := h/2 - s.Half + k
		copy(dst[dy*w+dx:dy*w+dx+side], src[sy*w+sx:sy*w+sx+side])
	}
}
