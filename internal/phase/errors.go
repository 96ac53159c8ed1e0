package phase

import "errors"

var (
	// ErrConfig reports an invalid frame, output buffer or parameter. It is
	// returned before any buffer is touched.
	ErrConfig = errors.New("phase: invalid configuration")

	// ErrAllocation reports that working buffers or the transform plan could
	// not be built. The extractor forgets its dimensions so the next call
	// starts from scratch.
	ErrAllocation = errors.New("phase: allocation failed")

	// ErrInvariant reports an internal consistency failure: an ROI square off
	// the grid, or a phase range that does not span ±π in strict mode.
	ErrInvariant = errors.New("phase: invariant violated")
)
