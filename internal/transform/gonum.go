package transform

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum is the engine backed by gonum.org/v1/gonum/dsp/fourier.
//
// The 2D transform is computed as 1D transforms over every row followed by
// every column. Columns are gathered into the caller's work buffer, so Work
// is the grid height.
type Gonum struct{}

// Name implements Engine.
func (Gonum) Name() string { return "gonum" }

// Query implements Engine.
func (Gonum) Query(width, height int) (Sizes, error) {
	if err := checkSize(width, height); err != nil {
		return Sizes{}, err
	}
	return Sizes{Work: height}, nil
}

// Plan implements Engine.
func (Gonum) Plan(width, height int, _ []complex128) (Plan, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	p := &gonumPlan{
		width:  width,
		height: height,
		rows:   fourier.NewCmplxFFT(width),
	}
	if height == width {
		p.cols = p.rows
	} else {
		p.cols = fourier.NewCmplxFFT(height)
	}
	return p, nil
}

type gonumPlan struct {
	width, height int
	rows, cols    *fourier.CmplxFFT
}

func (p *gonumPlan) Width() int  { return p.width }
func (p *gonumPlan) Height() int { return p.height }

func (p *gonumPlan) Forward(buf []complex128, stride int, work []complex128) error {
	if err := checkLayout(buf, stride, work, p.width, p.height, p.height); err != nil {
		return err
	}
	p.pass(buf, stride, work[:p.height], false)
	return nil
}

func (p *gonumPlan) Inverse(buf []complex128, stride int, work []complex128) error {
	if err := checkLayout(buf, stride, work, p.width, p.height, p.height); err != nil {
		return err
	}
	p.pass(buf, stride, work[:p.height], true)

	// gonum sequences are unnormalized
	scale := complex(1/float64(p.width*p.height), 0)
	for y := 0; y < p.height; y++ {
		row := buf[y*stride : y*stride+p.width]
		for x := range row {
			row[x] *= scale
		}
	}
	return nil
}

func (p *gonumPlan) pass(buf []complex128, stride int, col []complex128, inverse bool) {
	for y := 0; y < p.height; y++ {
		row := buf[y*stride : y*stride+p.width]
		if inverse {
			p.rows.Sequence(row, row)
		} else {
			p.rows.Coefficients(row, row)
		}
	}
	for x := 0; x < p.width; x++ {
		for y := range col {
			col[y] = buf[y*stride+x]
		}
		if inverse {
			p.cols.Sequence(col, col)
		} else {
			p.cols.Coefficients(col, col)
		}
		for y, v := range col {
			buf[y*stride+x] = v
		}
	}
}
