package phase

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/ironsheep/holophase-mcp/internal/transform"
)

// Report describes one ComputePhase run.
type Report struct {
	// Width and Height of the processed frame.
	Width  int `json:"width"`
	Height int `json:"height"`

	// SearchRows is how many leading spectrum rows the peak search covered.
	SearchRows int `json:"search_rows"`

	// Peak is the carrier position in centered spectrum coordinates.
	Peak image.Point `json:"peak"`

	// RequestedROI is the half-size asked for; Square is what was kept.
	RequestedROI int    `json:"requested_roi"`
	Square       Square `json:"square"`

	// MinPhase and MaxPhase bound the wrapped phase before rescaling.
	MinPhase float64 `json:"min_phase"`
	MaxPhase float64 `json:"max_phase"`

	// Spectrum is log(1+|X|) of the centered spectrum, row-major, present
	// only when Params.KeepSpectrum was set.
	Spectrum []float64 `json:"-"`
}

// Extractor owns the working buffers and transform plan for one frame size.
// Buffers are rebuilt together whenever the frame size changes.
type Extractor struct {
	opts   Options
	engine transform.Engine
	logger *slog.Logger

	// width and height are zero while no buffers are held.
	width, height int

	real []float64
	c0   []complex128
	c1   []complex128
	plan transform.Plan
	work []complex128
}

// NewExtractor returns an Extractor with no buffers allocated yet. Zero
// fields of opts take their DefaultOptions value, except RangeCheck whose
// zero value (RangeCheckOff) is honored.
func NewExtractor(opts Options) (*Extractor, error) {
	def := DefaultOptions()
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = def.MaxPixels
	}
	if opts.RangeTolerance <= 0 {
		opts.RangeTolerance = def.RangeTolerance
	}
	if opts.RangeCheck < RangeCheckOff || opts.RangeCheck > RangeCheckStrict {
		return nil, fmt.Errorf("%w: range check %v", ErrConfig, opts.RangeCheck)
	}
	if opts.Engine == nil {
		e, err := transform.Lookup(transform.DefaultEngine)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		opts.Engine = e
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		opts:   opts,
		engine: opts.Engine,
		logger: logger,
	}, nil
}

// Size returns the dimensions the current buffers were built for, or 0, 0
// when none are held.
func (e *Extractor) Size() (width, height int) {
	return e.width, e.height
}

// EngineName reports the transform engine in use.
func (e *Extractor) EngineName() string {
	return e.engine.Name()
}

// Release drops all buffers and the plan. The next call reallocates.
func (e *Extractor) Release() {
	e.width, e.height = 0, 0
	e.real = nil
	e.c0 = nil
	e.c1 = nil
	e.plan = nil
	e.work = nil
}

// ensureCapacity makes the buffers and plan match width x height. On failure
// everything is released so a retry starts clean.
func (e *Extractor) ensureCapacity(width, height int) error {
	if width == e.width && height == e.height && e.plan != nil {
		return nil
	}
	e.Release()

	if width <= 0 || height <= 0 || height > math.MaxInt/width {
		return fmt.Errorf("%w: %dx%d grid", ErrAllocation, width, height)
	}
	n := width * height
	if n > e.opts.MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, width, height, e.opts.MaxPixels)
	}

	sizes, err := e.engine.Query(width, height)
	if err != nil {
		return fmt.Errorf("%w: %s query: %v", ErrAllocation, e.engine.Name(), err)
	}
	plan, err := e.engine.Plan(width, height, make([]complex128, sizes.Init))
	if err != nil {
		return fmt.Errorf("%w: %s plan: %v", ErrAllocation, e.engine.Name(), err)
	}

	e.real = make([]float64, n)
	e.c0 = make([]complex128, n)
	e.c1 = make([]complex128, n)
	e.work = make([]complex128, sizes.Work)
	e.plan = plan
	e.width, e.height = width, height

	e.logger.Debug("phase buffers allocated",
		slog.String("engine", e.engine.Name()),
		slog.Int("width", width),
		slog.Int("height", height))
	return nil
}

// ComputePhase runs the pipeline over f and writes Width*Height bytes of
// rescaled phase, without row padding, into out.
func (e *Extractor) ComputePhase(f Frame, out []byte, p Params) (*Report, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if err := p.validate(f.Height); err != nil {
		return nil, err
	}
	w, h := f.Width, f.Height
	if len(out) < w*h {
		return nil, fmt.Errorf("%w: output has %d bytes, need %d", ErrConfig, len(out), w*h)
	}

	if err := e.ensureCapacity(w, h); err != nil {
		return nil, err
	}

	toReal(f, e.real)
	lift(e.real, e.c0)

	// c0 = shift(fft(ishift(c0)))
	decenterShift(e.c1, e.c0, w, h)
	if err := e.plan.Forward(e.c1, w, e.work); err != nil {
		return nil, fmt.Errorf("%w: forward transform: %v", ErrInvariant, err)
	}
	centerShift(e.c0, e.c1, w, h)

	rep := &Report{Width: w, Height: h, SearchRows: searchRows(h, p.TopPercent), RequestedROI: p.ROI}
	if p.KeepSpectrum {
		rep.Spectrum = logMagnitude(e.c0)
	}

	idx, err := findPeak(e.c0, p.TopPercent, w, h)
	if err != nil {
		return nil, err
	}
	rep.Peak = indexToPoint(idx, w)
	rep.Square = Square{Center: rep.Peak, Half: clampROI(p.ROI, rep.Peak, w)}

	clear(e.c1)
	if err := checkSquare(rep.Square, w, h); err != nil {
		return nil, err
	}
	copySquareToCenter(e.c1, e.c0, w, h, rep.Square)

	// c1 = shift(ifft(ishift(c1)))
	decenterShift(e.c0, e.c1, w, h)
	if err := e.plan.Inverse(e.c0, w, e.work); err != nil {
		return nil, fmt.Errorf("%w: inverse transform: %v", ErrInvariant, err)
	}
	centerShift(e.c1, e.c0, w, h)

	extractPhase(e.real, e.c1)
	rep.MinPhase, rep.MaxPhase = minMax(e.real)
	if err := checkPhaseRange(rep.MinPhase, rep.MaxPhase, e.opts.RangeCheck, e.opts.RangeTolerance, e.logger); err != nil {
		return nil, err
	}
	rescale(out[:w*h], e.real, rep.MinPhase, rep.MaxPhase)
	return rep, nil
}

// ComputeGray runs ComputePhase on img and returns the phase as a new gray
// image with the same dimensions, anchored at the origin.
func (e *Extractor) ComputeGray(img *image.Gray, p Params) (*image.Gray, *Report, error) {
	f := FrameFromGray(img)
	out := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	rep, err := e.ComputePhase(f, out.Pix, p)
	if err != nil {
		return nil, nil, err
	}
	return out, rep, nil
}

func logMagnitude(spectrum []complex128) []float64 {
	out := make([]float64, len(spectrum))
	for i, c := range spectrum {
		out[i] = math.Log1p(amplitude(c))
	}
	return out
}
