package bitpast

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Dither names accepted by Config besides the kernel names.
const (
	DitherNone   = "none"
	DitherBayer  = "bayer"
	DitherCustom = "custom"
)

// Config is the per conversion configuration.
type Config struct {
	Mode Mode
	// Palette is a catalog name, or several names joined with "+" to blend
	// them.
	Palette string
	// Dither is "none", "bayer", "custom" or a kernel name or ID.
	Dither string
	// Custom is the kernel used when Dither is "custom".
	Custom *Kernel

	Serpentine       bool
	CrossHatch       int
	CrossHatchAmount int
	// Threshold is the black/white luma cut-off for undithered monochrome.
	Threshold int
	// Bleed reduces diffused error by this many percent.
	Bleed   int
	Metric  Metric
	Profile Profile
	Mono    bool
	// PseudoSample, when positive, adapts the palette to the source by
	// sampling this many colors from it. The pseudo palette samples
	// DefaultPseudoSample colors when this is zero.
	PseudoSample int

	// Trace, if set, receives every dither step in scan order.
	Trace func(Visit)
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeHGR,
		Palette:          DefaultPalette,
		Dither:           Buckels.Name,
		Serpentine:       true,
		CrossHatchAmount: DefaultCrossHatchAmount,
		Threshold:        128,
		Metric:           MetricLuma,
		Profile:          ProfileAuto,
	}
}

func (c *Config) validate() error {
	if !c.Mode.valid() {
		return errors.Wrapf(ErrInvalidConfig, "unknown mode %d", int(c.Mode))
	}
	if c.CrossHatch < 0 {
		return errors.Wrapf(ErrInvalidConfig, "cross-hatch period %d is negative", c.CrossHatch)
	}
	if c.CrossHatchAmount < 0 || c.CrossHatchAmount > 255 {
		return errors.Wrapf(ErrInvalidConfig, "cross-hatch amount %d out of range 0-255", c.CrossHatchAmount)
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return errors.Wrapf(ErrInvalidConfig, "threshold %d out of range 0-255", c.Threshold)
	}
	if c.Bleed < 0 || c.Bleed > 99 {
		return errors.Wrapf(ErrInvalidConfig, "bleed %d out of range 0-99", c.Bleed)
	}
	if c.Metric < MetricLuma || c.Metric > MetricCIEDE2000 {
		return errors.Wrapf(ErrInvalidConfig, "unknown metric %d", int(c.Metric))
	}
	if c.Profile < ProfileAuto || c.Profile > ProfileBlueOrange {
		return errors.Wrapf(ErrInvalidConfig, "unknown profile %d", int(c.Profile))
	}
	if c.PseudoSample < 0 || c.PseudoSample > 256 {
		return errors.Wrapf(ErrInvalidConfig, "pseudo palette sample size %d out of range 0-256", c.PseudoSample)
	}
	return nil
}

func resolvePalette(name string) (Palette, error) {
	if strings.Contains(name, "+") {
		return BlendPalettes(strings.Split(name, "+")...)
	}
	return LookupPalette(name)
}

func resolveStrategy(c *Config) (Strategy, Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(c.Dither)) {
	case DitherNone, "":
		return StrategyNone, Kernel{}, nil
	case DitherBayer:
		return StrategyOrdered, Kernel{}, nil
	case DitherCustom:
		if c.Custom == nil {
			return 0, Kernel{}, errors.Wrap(ErrInvalidKernel, "custom dither selected without a matrix")
		}
		if err := c.Custom.validateCustom(); err != nil {
			return 0, Kernel{}, err
		}
		return StrategyDiffusion, *c.Custom, nil
	}

	k, err := LookupKernel(c.Dither)
	if err != nil {
		return 0, Kernel{}, err
	}
	return StrategyDiffusion, k, nil
}

// DefaultPseudoSample is how many colors the pseudo palette samples from the
// source when PseudoSample is not set.
const DefaultPseudoSample = 16

// pseudoSample returns how many colors to sample from the source, or 0 when
// the palette is used as is.
func (c *Config) pseudoSample() int {
	if c.PseudoSample > 0 {
		return c.PseudoSample
	}
	if key, ok := canonicalPaletteName(c.Palette); ok && key == PseudoPalette {
		return DefaultPseudoSample
	}
	return 0
}

type settings struct {
	palette  Palette
	strategy Strategy
	kernel   Kernel
	sample   int
}

func (c *Config) resolve() (settings, error) {
	if err := c.validate(); err != nil {
		return settings{}, err
	}

	palette, err := resolvePalette(c.Palette)
	if err != nil {
		return settings{}, err
	}

	strategy, kernel, err := resolveStrategy(c)
	if err != nil {
		return settings{}, err
	}

	return settings{
		palette:  palette,
		strategy: strategy,
		kernel:   kernel,
		sample:   c.pseudoSample(),
	}, nil
}

// Validate reports any configuration error without looking at an image.
func (c *Config) Validate() error {
	_, err := c.resolve()
	return err
}

// Request is a single conversion. It owns all mutable state of the run; two
// requests never share anything that changes.
type Request struct {
	Source *PixelGrid
	Config Config

	settings
}

// NewRequest validates cfg against src. Every configuration error is
// reported here, before any pixel is processed.
func NewRequest(src *PixelGrid, cfg Config) (*Request, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	if err := src.validate(); err != nil {
		return nil, err
	}

	d := cfg.Mode.Descriptor()
	if err := CheckResample(src.Width, src.Height, d.Width, d.Height); err != nil {
		return nil, err
	}

	return &Request{
		Source:   src,
		Config:   cfg,
		settings: s,
	}, nil
}

// Palette returns the palette the request dithers against. The pseudo
// palette, or any palette with PseudoSample set, is adapted to the source.
func (r *Request) Palette() (Palette, error) {
	if r.sample == 0 {
		return r.palette, nil
	}
	return BuildPseudoPalette(r.Source, r.palette, r.sample)
}

// Converter runs requests. It is safe for concurrent use.
type Converter struct {
	log *zap.Logger
}

// NewConverter returns a converter logging to log. A nil logger discards
// everything.
func NewConverter(log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{log: log}
}

// Convert dithers and encodes req. The context is checked between stages and
// cancels encoder rows that have not started.
func (c *Converter) Convert(ctx context.Context, req *Request) (*EncodedBuffer, error) {
	cfg := req.Config
	log := c.log.With(
		zap.String("mode", cfg.Mode.String()),
		zap.String("palette", cfg.Palette),
		zap.String("dither", cfg.Dither),
	)

	start := time.Now()
	palette, err := req.Palette()
	if err != nil {
		return nil, err
	}
	if req.sample > 0 {
		log.Debug("built pseudo palette", zap.Int("sample", req.sample))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matcher := NewMatcher(palette, cfg.Metric, cfg.Mode.Candidates(cfg.Mono, cfg.Profile))
	grid, err := Dither(req.Source, matcher, DitherOptions{
		Strategy:         req.strategy,
		Kernel:           req.kernel,
		Serpentine:       cfg.Serpentine,
		CrossHatch:       cfg.CrossHatch,
		CrossHatchAmount: cfg.CrossHatchAmount,
		Bleed:            cfg.Bleed,
		Mono:             cfg.Mono,
		Threshold:        cfg.Threshold,
		Trace:            cfg.Trace,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("dithered",
		zap.Int("width", grid.Width),
		zap.Int("height", grid.Height),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	buf, err := Encode(ctx, cfg.Mode, grid, EncodeOptions{
		Mono:    cfg.Mono,
		Profile: cfg.Profile,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("encoded",
		zap.Int("bytes", buf.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return buf, nil
}

// Source decodes an input file into a grid.
type Source interface {
	Decode(path string) (*PixelGrid, error)
}

// Sink stores an encoded buffer.
type Sink interface {
	Write(path string, buf *EncodedBuffer) error
}

// Run converts the file at in and writes the result to out. The
// configuration is checked before the source is decoded.
func (c *Converter) Run(ctx context.Context, src Source, sink Sink, in, out string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	grid, err := src.Decode(in)
	if err != nil {
		return err
	}

	req, err := NewRequest(grid, cfg)
	if err != nil {
		return errors.Wrapf(err, "%s", in)
	}

	buf, err := c.Convert(ctx, req)
	if err != nil {
		return errors.Wrapf(err, "%s", in)
	}

	if err := sink.Write(out, buf); err != nil {
		return err
	}

	c.log.Info("converted",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

// OutputPath returns the conventional output name for in under mode m.
func OutputPath(in string, m Mode) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + m.Descriptor().Ext
}
