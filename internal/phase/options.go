package phase

import (
	"fmt"
	"log/slog"

	"github.com/ironsheep/holophase-mcp/internal/transform"
)

// RangeCheck selects what happens when the observed phase range does not
// reach ±π within Options.RangeTolerance.
type RangeCheck int

const (
	// RangeCheckOff skips the range check.
	RangeCheckOff RangeCheck = iota
	// RangeCheckWarn logs a warning and continues.
	RangeCheckWarn
	// RangeCheckStrict fails the call with ErrInvariant.
	RangeCheckStrict
)

func (c RangeCheck) String() string {
	switch c {
	case RangeCheckOff:
		return "off"
	case RangeCheckWarn:
		return "warn"
	case RangeCheckStrict:
		return "strict"
	}
	return fmt.Sprintf("RangeCheck(%d)", int(c))
}

// ParseRangeCheck maps "off", "warn" and "strict" to a RangeCheck.
func ParseRangeCheck(s string) (RangeCheck, error) {
	switch s {
	case "off":
		return RangeCheckOff, nil
	case "warn":
		return RangeCheckWarn, nil
	case "strict":
		return RangeCheckStrict, nil
	}
	return 0, fmt.Errorf("%w: unknown range check %q", ErrConfig, s)
}

// Options configures an Extractor for its lifetime.
type Options struct {
	// Engine computes the forward and inverse transforms. Nil selects
	// transform.DefaultEngine.
	Engine transform.Engine

	// MaxPixels caps width*height; larger frames fail with ErrAllocation.
	MaxPixels int

	// RangeCheck and RangeTolerance control the ±π range check.
	RangeCheck     RangeCheck
	RangeTolerance float64

	// Logger receives phase range warnings and reallocation debug lines.
	// Nil selects slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the options used by NewExtractor when none are given.
func DefaultOptions() Options {
	return Options{
		MaxPixels:      1 << 26,
		RangeCheck:     defaultRangeCheck,
		RangeTolerance: 0.1,
	}
}

// Params are the per-call pipeline parameters.
type Params struct {
	// TopPercent is the share of spectrum rows, counted from the top, that
	// is searched for the carrier peak (1-100).
	TopPercent int

	// ROI is the requested half-size of the retained square before clamping.
	ROI int

	// KeepSpectrum copies the centered log-magnitude spectrum into the Report.
	KeepSpectrum bool
}

// DefaultParams searches the top fifth of the spectrum and keeps a 121x121
// square around the carrier.
func DefaultParams() Params {
	return Params{
		TopPercent: 20,
		ROI:        60,
	}
}

func (p Params) validate(height int) error {
	if p.TopPercent < 1 || p.TopPercent > 100 {
		return fmt.Errorf("%w: top percent %d outside 1..100", ErrConfig, p.TopPercent)
	}
	if searchRows(height, p.TopPercent) < 1 {
		return fmt.Errorf("%w: top percent %d of %d rows selects no rows", ErrConfig, p.TopPercent, height)
	}
	if p.ROI < 0 {
		return fmt.Errorf("%w: negative roi %d", ErrConfig, p.ROI)
	}
	return nil
}
