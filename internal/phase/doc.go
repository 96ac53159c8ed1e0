// Package phase extracts the wrapped phase of an off-axis hologram.
//
// The Extractor runs a fixed pipeline over an 8-bit grayscale frame:
//
//  1. Copy the (possibly row-padded) pixels into a contiguous real buffer and
//     lift them to complex values.
//  2. Forward DFT with the zero frequency moved to the grid center.
//  3. Locate the strongest sample in the top TopPercent rows of the centered
//     spectrum (the carrier peak).
//  4. Copy a (2r+1)x(2r+1) square around the peak to the center of a zeroed
//     spectrum, clamping r so the square stays on the grid.
//  5. Inverse DFT, atan2 phase per sample, and a linear rescale of the
//     observed phase range to 0..255.
//
// # Coordinates
//
// Buffers are row-major with row length equal to the frame width. A flat
// index i maps to (x, y) = (i % width, i / width).
//
// # Errors
//
// Every error returned by this package wraps one of ErrConfig, ErrAllocation
// or ErrInvariant; use errors.Is to tell them apart.
//
// # Thread Safety
//
// An Extractor owns mutable working buffers and is not safe for concurrent
// use. Use one Extractor per goroutine.
//
// The phase is wrapped to (-π, π]; no unwrapping is performed.
package phase
