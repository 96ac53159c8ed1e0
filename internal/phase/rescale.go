package phase

import (
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
)

const (
	// minRange is the phase spread below which the field is treated as
	// constant and left unscaled.
	minRange = 1e-4

	// rescaleSlack absorbs the last-ulp loss in range*(255/range) so the
	// maximum phase still maps to 255 after truncation.
	rescaleSlack = 1e-9
)

// extractPhase writes atan2(im, re) of every sample of src into dst.
func extractPhase(dst []float64, src []complex128) {
	for i, c := range src {
		dst[i] = cmplx.Phase(c)
	}
}

// minMax scans buf once. buf must not be empty.
func minMax(buf []float64) (lo, hi float64) {
	lo, hi = buf[0], buf[0]
	for _, v := range buf[1:] {
		if v < lo {
			lo = v
		} else if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// checkPhaseRange applies the configured policy to the observed range.
// A healthy wrapped phase map touches both -π and π.
func checkPhaseRange(lo, hi float64, mode RangeCheck, tol float64, logger *slog.Logger) error {
	if mode == RangeCheckOff {
		return nil
	}
	if lo <= -math.Pi+tol && hi >= math.Pi-tol {
		return nil
	}
	if mode == RangeCheckStrict {
		return fmt.Errorf("%w: phase range [%.4f, %.4f] does not reach ±π (tolerance %g)", ErrInvariant, lo, hi, tol)
	}
	logger.Warn("phase range does not reach ±π",
		slog.Float64("min", lo),
		slog.Float64("max", hi),
		slog.Float64("tolerance", tol))
	return nil
}

// rescale maps src linearly from [lo, hi] onto 0..255, truncating toward
// zero. A range below minRange is shifted but not stretched.
func rescale(dst []byte, src []float64, lo, hi float64) {
	add := -lo
	mul := 1.0
	if r := hi - lo; r >= minRange {
		mul = 255 / r
	}
	for i, p := range src {
		v := (p+add)*mul + rescaleSlack
		switch {
		case v <= 0:
			dst[i] = 0
		case v >= 255:
			dst[i] = 255
		default:
			dst[i] = uint8(v)
		}
	}
}
