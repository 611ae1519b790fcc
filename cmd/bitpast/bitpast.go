package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tmpim/bitpast"
	"github.com/tmpim/bitpast/sink"
	"github.com/tmpim/bitpast/source"
)

var (
	modeName      = flag.StringP("mode", "m", "hgr", "set the output mode (lgr, dlgr, hgr, dhgr)")
	paletteName   = flag.StringP("palette", "p", bitpast.DefaultPalette, "set the palette by name or pN alias, join names with + to blend")
	ditherName    = flag.StringP("dither", "d", bitpast.Buckels.Name, "set the dither: none, bayer, custom or a kernel name or ID")
	customMatrix  = flag.String("custom", "", "custom kernel rows separated by ';', e.g. \"0,0,7;3,5,1;0,0,0\"")
	customDivisor = flag.Int("divisor", 16, "custom kernel divisor")
	serpentine    = flag.BoolP("serpentine", "s", true, "alternate scan direction on every row")
	crossHatch    = flag.IntP("cross-hatch", "x", 0, "cross-hatch period (0 disables)")
	hatchAmount   = flag.Int("hatch-amount", bitpast.DefaultCrossHatchAmount, "cross-hatch sample offset")
	threshold     = flag.IntP("threshold", "t", 128, "monochrome luma threshold (0-255)")
	bleed         = flag.IntP("bleed", "b", 0, "reduce diffused error by this many percent (0-99)")
	metricName    = flag.String("metric", "luma", "color distance metric (luma, rgb, lab, ciede2000)")
	profileName   = flag.String("profile", "auto", "hgr color group selection (auto, violet-green, blue-orange)")
	mono          = flag.Bool("mono", false, "produce monochrome output")
	pseudo        = flag.Int("pseudo", 0, "adapt the palette to this many sampled image colors (0 disables)")
	fitName       = flag.String("fit", "stretch", "fit images to the working size (none, stretch, crop)")
	outputDir     = flag.StringP("output", "o", "", "output directory (defaults to next to each input)")
	jobs          = flag.IntP("jobs", "j", runtime.NumCPU(), "number of images converted at once")
	verbose       = flag.BoolP("verbose", "v", false, "enable debug logging")
	list          = flag.Bool("list", false, "list palettes and kernels and exit")
)

var fits = map[string]source.Fit{
	"none":    source.FitNone,
	"stretch": source.FitStretch,
	"crop":    source.FitCrop,
}

func parseMatrix(s string, divisor int) (bitpast.Kernel, error) {
	rows := strings.Split(s, ";")
	if len(rows) != 3 {
		return bitpast.Kernel{}, errors.Wrapf(bitpast.ErrInvalidKernel, "custom matrix has %d rows, want 3", len(rows))
	}

	var matrix [3][]int
	for i, row := range rows {
		for _, f := range strings.Split(row, ",") {
			w, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return bitpast.Kernel{}, errors.Wrapf(bitpast.ErrInvalidKernel, "custom matrix row %d: %v", i, err)
			}
			matrix[i] = append(matrix[i], w)
		}
	}

	return bitpast.NewCustomKernel(matrix, divisor)
}

func buildConfig() (bitpast.Config, error) {
	cfg := bitpast.DefaultConfig()

	mode, err := bitpast.ParseMode(*modeName)
	if err != nil {
		return cfg, err
	}
	metric, err := bitpast.ParseMetric(*metricName)
	if err != nil {
		return cfg, err
	}
	profile, err := bitpast.ParseProfile(*profileName)
	if err != nil {
		return cfg, err
	}

	cfg.Mode = mode
	cfg.Palette = *paletteName
	cfg.Dither = *ditherName
	cfg.Serpentine = *serpentine
	cfg.CrossHatch = *crossHatch
	cfg.CrossHatchAmount = *hatchAmount
	cfg.Threshold = *threshold
	cfg.Bleed = *bleed
	cfg.Metric = metric
	cfg.Profile = profile
	cfg.Mono = *mono
	cfg.PseudoSample = *pseudo

	if *customMatrix != "" {
		k, err := parseMatrix(*customMatrix, *customDivisor)
		if err != nil {
			return cfg, err
		}
		cfg.Custom = &k
	}

	return cfg, cfg.Validate()
}

func outputFor(in string, m bitpast.Mode) string {
	out := bitpast.OutputPath(in, m)
	if *outputDir != "" {
		out = filepath.Join(*outputDir, filepath.Base(out))
	}
	return out
}

func printList() {
	fmt.Println("Palettes:")
	for i, name := range bitpast.PaletteNames() {
		fmt.Printf("  %-14s", name)
		if i%4 == 3 {
			fmt.Println()
		}
	}
	fmt.Println()
	fmt.Println("Kernels:")
	for _, k := range bitpast.Kernels() {
		fmt.Printf("  %2d %-16s sum %d / %d\n", k.ID, k.Name, k.Sum(), k.Divisor)
	}
}

// fatal logs at error level and exits after flushing the logger.
func fatal(logger *zap.Logger, msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
	logger.Sync()
	os.Exit(1)
}

func main() {
	flag.Parse()

	if *list {
		printList()
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: bitpast [options] input_image...")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "bitpast converts images (PNG, JPEG, GIF or BMP) into Apple II")
		fmt.Fprintln(os.Stderr, "lo-res, double lo-res, hi-res or double hi-res screen files.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var logger *zap.Logger
	if *verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	cfg, err := buildConfig()
	if err != nil {
		fatal(logger, "invalid options", zap.Error(err))
	}

	fit, ok := fits[*fitName]
	if !ok {
		fatal(logger, "invalid options", zap.String("fit", *fitName))
	}

	if *jobs < 1 {
		*jobs = 1
	}

	fs := afero.NewOsFs()
	width, height := cfg.Mode.WorkingSize(cfg.Mono)
	src := source.New(fs, fit, width, height)
	out := sink.New(fs)
	conv := bitpast.NewConverter(logger)

	start := time.Now()
	inputs := flag.Args()
	bar := progressbar.Default(int64(len(inputs)), "Converting")

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*jobs)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			defer bar.Add(1)
			return conv.Run(ctx, src, out, in, outputFor(in, cfg.Mode), cfg)
		})
	}

	if err := g.Wait(); err != nil {
		fatal(logger, "conversion failed", zap.Error(err))
	}

	logger.Info("done",
		zap.Int("images", len(inputs)),
		zap.Duration("elapsed", time.Since(start)),
	)
}
