package rice

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
)

// passthroughTimeout bounds the tmux allow-passthrough call.
const passthroughTimeout = 2 * time.Second

// Options configures one render.
type Options struct {
	Art ArtConfig
	// ImagePath selects raster art; it overrides Art.Source.
	ImagePath string
	// NoLogo prints the info lines only.
	NoLogo bool
	// Gap is the number of columns between art and info; < 1 means DefaultGap.
	Gap    int
	Filter Filter
	// Protocol is the configured protocol override; "" or "auto" detects.
	Protocol string
	// Lookup reads environment variables; nil means os.LookupEnv.
	Lookup LookupFunc
	// CellMetrics measures the terminal font; nil means DetectCellMetrics.
	// It is only called for raster art.
	CellMetrics func(Environment) CellMetrics
	// EnablePassthrough runs "tmux set -p allow-passthrough on" before
	// measuring and drawing an image inside tmux.
	EnablePassthrough bool
	// Passthrough replaces EnableTmuxPassthrough when non-nil.
	Passthrough func(context.Context) error
	Style             InfoStyle
	Logger            log.Interface
}

// Result describes what was rendered.
type Result struct {
	Environment Environment
	Layout      Layout
	Art         ArtBlock
	// Fallback is set when raster art was requested but ASCII art was drawn.
	Fallback *FallbackError
}

// Render detects the terminal, resolves and lays out the art and writes it
// with the info lines to w. Image failures fall back to ASCII art and are
// reported in Result.Fallback; only write errors are returned.
func Render(w io.Writer, fields []InfoField, opts Options) (*Result, error) {
	plan, res := BuildPlan(fields, opts)
	if err := Composite(w, plan); err != nil {
		return res, err
	}
	return res, nil
}

// BuildPlan runs every step of Render except writing. An image that fails to
// load or encode is replaced by the builtin ASCII art, once.
func BuildPlan(fields []InfoField, opts Options) (RenderPlan, *Result) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Log
	}
	renderer := opts.Style.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
		opts.Style.Renderer = renderer
	}

	env := DetectEnvironment(opts.Lookup, opts.Protocol)
	res := &Result{Environment: env}
	plan := RenderPlan{
		Protocol: env.Protocol,
		Lines:    opts.Style.Lines(fields),
	}
	logger.WithFields(log.Fields{
		"protocol":    env.Protocol,
		"multiplexed": env.Multiplexed,
		"terminal":    env.TermProgram,
	}).Debug("detected terminal")

	if opts.NoLogo {
		plan.Layout = Plan(nil, CellMetrics{}, opts.Gap)
		res.Layout = plan.Layout
		return plan, res
	}

	art, err := ResolveArt(opts.Art, opts.ImagePath, env, logger)
	if err != nil {
		res.Fallback = asFallback(err, StageResolve)
		art = FallbackArt(opts.Art)
	}

	if img, ok := art.(RasterImage); ok {
		// cell size queries inside tmux need passthrough already on
		if env.Multiplexed && opts.EnablePassthrough {
			enablePassthrough(opts.Passthrough, logger)
		}
		measure := opts.CellMetrics
		if measure == nil {
			measure = DetectCellMetrics
		}
		metrics := measure(env)
		layout := Plan(img, metrics, opts.Gap)

		enc := Encoder{Metrics: metrics, Filter: opts.Filter}
		seqs, err := enc.Encode(img, env.Protocol, layout.Footprint)
		if err != nil {
			res.Fallback = asFallback(err, StageEncode)
			art = FallbackArt(opts.Art)
		} else {
			logger.WithFields(log.Fields{
				"path":   img.Path,
				"cells":  layout.Footprint,
				"pixels": [2]int{layout.PixelWidth, layout.PixelHeight},
				"chunks": len(seqs),
			}).Debug("encoded image")
			for _, seq := range seqs {
				plan.Placement = append(plan.Placement, env.Wrap(seq))
			}
			plan.Layout = layout
		}
	}

	if res.Fallback != nil {
		logger.WithError(res.Fallback).Debug("image not shown, falling back to ASCII art")
	}

	if a, ok := art.(AsciiArt); ok {
		art = ColorizeArt(renderer, a)
		plan.Layout = Plan(art, CellMetrics{}, opts.Gap)
	} else if art == nil {
		plan.Layout = Plan(nil, CellMetrics{}, opts.Gap)
	}

	plan.Art = art
	res.Art = art
	res.Layout = plan.Layout
	return plan, res
}

func asFallback(err error, stage Stage) *FallbackError {
	var fe *FallbackError
	if errors.As(err, &fe) {
		return fe
	}
	return &FallbackError{Stage: stage, Err: err}
}

func enablePassthrough(enable func(context.Context) error, logger log.Interface) {
	if enable == nil {
		enable = EnableTmuxPassthrough
	}
	ctx, cancel := context.WithTimeout(context.Background(), passthroughTimeout)
	defer cancel()
	if err := enable(ctx); err != nil {
		logger.WithError(err).Debug("could not enable tmux passthrough")
	}
}
