package phase

import (
	"fmt"
	"image"
	"math"
)

// searchRows is the number of leading rows covered by topPercent.
func searchRows(height, topPercent int) int {
	return height * topPercent / 100
}

// findPeak returns the flat index of the largest-amplitude sample in the
// first searchRows(h, topPercent) rows. Ties keep the earliest index.
func findPeak(spectrum []complex128, topPercent, w, h int) (int, error) {
	rows := searchRows(h, topPercent)
	if rows < 1 {
		return 0, fmt.Errorf("%w: top percent %d of %d rows selects no rows", ErrConfig, topPercent, h)
	}
	best, bestAmp := 0, amplitude(spectrum[0])
	end := rows * w
	for i := 1; i < end; i++ {
		if a := amplitude(spectrum[i]); a > bestAmp {
			best, bestAmp = i, a
		}
	}
	return best, nil
}

func amplitude(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// indexToPoint splits a row-major index into column and row.
func indexToPoint(i, w int) image.Point {
	return image.Pt(i%w, i/w)
}
