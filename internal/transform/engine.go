package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidSize is returned for non-positive grid dimensions.
	ErrInvalidSize = errors.New("transform: invalid grid size")
	// ErrBadLayout is returned when a buffer, stride or scratch slice does
	// not fit the plan's grid.
	ErrBadLayout = errors.New("transform: buffer does not fit plan")
	// ErrUnknownEngine is returned by Lookup for unregistered names.
	ErrUnknownEngine = errors.New("transform: unknown engine")
)

// Sizes reports the scratch an engine needs, in complex128 elements.
type Sizes struct {
	// Init is consumed once while building a Plan.
	Init int
	// Work is passed to every Forward/Inverse call.
	Work int
}

// Engine builds transform plans for a fixed grid size.
type Engine interface {
	// Name is the registry key of the engine.
	Name() string

	// Query reports the scratch sizes required for a width x height grid.
	Query(width, height int) (Sizes, error)

	// Plan returns a reusable descriptor for a width x height grid. init must
	// hold at least Sizes.Init elements.
	Plan(width, height int, init []complex128) (Plan, error)
}

// Plan is a transform descriptor bound to one grid size.
//
// stride is the distance between row starts in elements and must be at least
// Width(). work must hold at least Sizes.Work elements.
type Plan interface {
	Width() int
	Height() int

	// Forward replaces buf with its unscaled 2D DFT.
	Forward(buf []complex128, stride int, work []complex128) error

	// Inverse replaces buf with its inverse 2D DFT divided by Width()*Height().
	Inverse(buf []complex128, stride int, work []complex128) error
}

// DefaultEngine is used when no engine name is configured.
const DefaultEngine = "dsp"

var engines = map[string]Engine{
	DSP{}.Name():   DSP{},
	Gonum{}.Name(): Gonum{},
}

// Lookup returns the engine registered under name. An empty name selects
// DefaultEngine. Names are case-insensitive.
func Lookup(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	e, ok := engines[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEngine, name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// Names lists the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(engines))
	for n := range engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

// checkLayout verifies that a strided buffer covers the grid and that work
// has at least need elements.
func checkLayout(buf []complex128, stride int, work []complex128, width, height, need int) error {
	if stride < width {
		return fmt.Errorf("%w: stride %d < width %d", ErrBadLayout, stride, width)
	}
	if span := (height-1)*stride + width; len(buf) < span {
		return fmt.Errorf("%w: buffer has %d elements, need %d", ErrBadLayout, len(buf), span)
	}
	if len(work) < need {
		return fmt.Errorf("%w: work has %d elements, need %d", ErrBadLayout, len(work), need)
	}
	return nil
}
