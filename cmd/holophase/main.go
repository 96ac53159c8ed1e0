// Command holophase extracts the wrapped phase of an off-axis hologram and
// writes it as an 8-bit image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/holophase-mcp/internal/imaging"
	"github.com/ironsheep/holophase-mcp/internal/phase"
	"github.com/ironsheep/holophase-mcp/internal/transform"
)

// Version information - set by ldflags during build
var Version = "dev"

// options is the parsed command line.
type options struct {
	in         string
	out        string
	spectrum   string
	region     *imaging.Region
	params     phase.Params
	engine     string
	rangeCheck phase.RangeCheck
	quality    int
	overlay    string
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("holophase: ")

	opts, logger, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if opts == nil {
		fmt.Printf("holophase %s\n", Version)
		return
	}

	rep, err := run(opts, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("phase written",
		slog.String("out", opts.out),
		slog.Int("peak_x", rep.Peak.X),
		slog.Int("peak_y", rep.Peak.Y),
		slog.Int("roi", rep.Square.Half),
		slog.Float64("min_phase", rep.MinPhase),
		slog.Float64("max_phase", rep.MaxPhase))
}

// parseFlags returns nil options after -version.
func parseFlags(args []string) (*options, *slog.Logger, error) {
	def := phase.DefaultParams()
	fs := flag.NewFlagSet("holophase", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: holophase -in hologram.bmp [-out phase.png] [options]")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	var (
		o       options
		region  string
		check   string
		strict  bool
		verbose bool
		version bool
	)
	fs.StringVar(&o.in, "in", "", "hologram image to process (PNG, JPEG, GIF, BMP or TIFF)")
	fs.StringVar(&o.out, "out", "phase.png", "phase image to write; format from extension (.png, .jpg, .bmp)")
	fs.StringVar(&o.spectrum, "spectrum", "", "also write the annotated log-magnitude spectrum to this file")
	fs.StringVar(&region, "region", "", "process only the region x1,y1,x2,y2 of the hologram")
	fs.IntVar(&o.params.TopPercent, "top", def.TopPercent, "percentage of spectrum rows, from the top, searched for the carrier peak")
	fs.IntVar(&o.params.ROI, "roi", def.ROI, "requested half-size of the square kept around the peak")
	fs.StringVar(&o.engine, "engine", transform.DefaultEngine, "transform engine: "+strings.Join(transform.Names(), ", "))
	fs.StringVar(&check, "range-check", phase.DefaultOptions().RangeCheck.String(), "phase range policy: off, warn or strict")
	fs.BoolVar(&strict, "strict", false, "fail when the phase range does not reach ±π (overrides -range-check)")
	fs.IntVar(&o.quality, "quality", 95, "JPEG quality, 1-100")
	fs.StringVar(&o.overlay, "color", "#FF0000", "spectrum overlay color")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	fs.BoolVar(&version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if version {
		return nil, nil, nil
	}
	if o.in == "" {
		fs.Usage()
		return nil, nil, errors.New("-in is required")
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	rc, err := phase.ParseRangeCheck(check)
	if err != nil {
		return nil, nil, err
	}
	if strict {
		rc = phase.RangeCheckStrict
	}
	o.rangeCheck = rc

	if region != "" {
		r, err := parseRegion(region)
		if err != nil {
			return nil, nil, err
		}
		o.region = &r
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &o, logger, nil
}

// parseRegion parses "x1,y1,x2,y2".
func parseRegion(s string) (imaging.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return imaging.Region{}, fmt.Errorf("region %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return imaging.Region{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	return imaging.Region{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

// run loads the hologram, extracts the phase and writes the outputs.
func run(o *options, logger *slog.Logger) (*phase.Report, error) {
	engine, err := transform.Lookup(o.engine)
	if err != nil {
		return nil, err
	}
	eo := phase.DefaultOptions()
	eo.Engine = engine
	eo.RangeCheck = o.rangeCheck
	eo.Logger = logger
	ex, err := phase.NewExtractor(eo)
	if err != nil {
		return nil, err
	}

	img, err := imaging.NewImageCache().Load(o.in)
	if err != nil {
		return nil, err
	}
	if o.region != nil {
		if img, err = imaging.SubGray(img, *o.region); err != nil {
			return nil, err
		}
	}

	p := o.params
	p.KeepSpectrum = o.spectrum != ""
	out, rep, err := ex.ComputeGray(img, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.in, err)
	}
	if err := imaging.Save(o.out, out, o.quality); err != nil {
		return nil, err
	}

	if o.spectrum != "" {
		ov := imaging.SpectrumOverlay{
			SearchRows: rep.SearchRows,
			Square:     rep.Square.Rect(),
			Peak:       rep.Peak,
		}
		preview, err := imaging.SpectrumImage(rep.Spectrum, rep.Width, rep.Height, ov, o.overlay)
		if err != nil {
			return nil, err
		}
		if err := imaging.Save(o.spectrum, preview, o.quality); err != nil {
			return nil, err
		}
	}
	return rep, nil
}
