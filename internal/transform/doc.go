// Package transform defines the two-dimensional complex DFT contract used by
// the phase extractor and ships two engines that satisfy it.
//
// An Engine is queried for the scratch it needs at a given grid size and then
// asked for a Plan bound to that size. A Plan transforms a row-major complex
// buffer in place:
//
//	sizes, _ := engine.Query(w, h)
//	plan, _ := engine.Plan(w, h, make([]complex128, sizes.Init))
//	work := make([]complex128, sizes.Work)
//	plan.Forward(buf, w, work)
//	plan.Inverse(buf, w, work)
//
// # Normalization
//
// Forward is unscaled. Inverse divides by width*height, so Inverse(Forward(x))
// reproduces x up to rounding.
//
// # Engines
//
//   - DSP: github.com/mjibson/go-dsp/fft (FFT2/IFFT2), any grid size.
//   - Gonum: gonum.org/v1/gonum/dsp/fourier, separable row/column passes.
//
// Plans are not safe for concurrent use; each goroutine needs its own plan and
// work buffer.
package transform
