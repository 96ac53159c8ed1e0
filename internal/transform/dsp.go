package transform

import (
	"github.com/mjibson/go-dsp/fft"
)

// DSP is the engine backed by github.com/mjibson/go-dsp/fft.
//
// go-dsp returns freshly allocated results, so the plan views each row of the
// caller's buffer and copies the transformed rows back, which keeps the
// in-place contract. Non power-of-two sizes go through go-dsp's Bluestein path.
type DSP struct{}

// Name implements Engine.
func (DSP) Name() string { return "dsp" }

// Query implements Engine. go-dsp manages its own scratch.
func (DSP) Query(width, height int) (Sizes, error) {
	if err := checkSize(width, height); err != nil {
		return Sizes{}, err
	}
	return Sizes{}, nil
}

// Plan implements Engine.
func (DSP) Plan(width, height int, _ []complex128) (Plan, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	return &dspPlan{
		width:  width,
		height: height,
		rows:   make([][]complex128, height),
	}, nil
}

type dspPlan struct {
	width, height int
	rows          [][]complex128
}

func (p *dspPlan) Width() int  { return p.width }
func (p *dspPlan) Height() int { return p.height }

func (p *dspPlan) Forward(buf []complex128, stride int, work []complex128) error {
	return p.run(buf, stride, work, fft.FFT2)
}

func (p *dspPlan) Inverse(buf []complex128, stride int, work []complex128) error {
	return p.run(buf, stride, work, fft.IFFT2)
}

func (p *dspPlan) run(buf []complex128, stride int, work []complex128, f func([][]complex128) [][]complex128) error {
	if err := checkLayout(buf, stride, work, p.width, p.height, 0); err != nil {
		return err
	}
	for y := range p.rows {
		p.rows[y] = buf[y*stride : y*stride+p.width]
	}
	out := f(p.rows)
	for y, row := range out {
		copy(p.rows[y], row)
	}
	// drop the views so the plan does not pin the caller's buffer
	for y := range p.rows {
		p.rows[y] = nil
	}
	return nil
}
