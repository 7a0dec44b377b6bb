package ohlcv

import (
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-charting/internal/settings"
	"github.com/rxtech-lab/argo-charting/pkg/chart"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
	"go.uber.org/zap"
)

// TraceSpec is the resolved input handed to a custom price trace
// builder: the frame index and the four price series.
type TraceSpec struct {
	X     []time.Time
	Open  []float64
	High  []float64
	Low   []float64
	Close []float64
}

// TraceBuilder builds a price trace from resolved series. It is the
// escape hatch for plot styles beyond the built-in OHLC and candlestick
// kinds; the builder owns the trace's display name.
type TraceBuilder func(spec TraceSpec) *chart.Trace

// PlotOptions are the per-call render options. Every unset option
// triggers a default policy: the settings snapshot supplies the plot
// type, volume visibility follows volume column presence, and traces
// land in their conventional panels.
type PlotOptions struct {
	// PlotType is a symbolic style name, "OHLC" or "Candlestick",
	// matched case-insensitively. Unset falls back to the settings
	// default. Ignored when CustomTrace is set.
	PlotType optional.Option[string]
	// CustomTrace builds the price trace instead of a built-in style.
	CustomTrace TraceBuilder
	// DisplayVolume forces the volume panel on or off. Unset shows the
	// panel iff a volume column is present.
	DisplayVolume optional.Option[bool]
	// PriceTraceBag and VolumeTraceBag are merged over the built trace
	// attributes, caller values winning.
	PriceTraceBag  chart.Bag
	VolumeTraceBag chart.Bag
	// PricePlacement and VolumePlacement override the panel each trace
	// is attached to. Defaults: price row 1, volume row 2.
	PricePlacement  optional.Option[chart.TracePosition]
	VolumePlacement optional.Option[chart.TracePosition]
	// Figure adds the traces to an existing figure instead of
	// allocating one. Baseline layout defaults are not re-applied to a
	// supplied figure.
	Figure *chart.Figure
	// LayoutBag is merged over the figure layout, fresh or supplied.
	LayoutBag chart.Bag
}

// resolvedStyle is the plot type selector resolved into a concrete
// trace-building function plus a canonical display name.
type resolvedStyle struct {
	name    string
	builtin func(spec TraceSpec) *chart.Trace
	custom  TraceBuilder
}

func resolveStyle(plotType string, custom TraceBuilder) (resolvedStyle, error) {
	if custom != nil {
		return resolvedStyle{custom: custom}, nil
	}

	switch strings.ToLower(plotType) {
	case "ohlc":
		return resolvedStyle{
			name: settings.PlotTypeOHLC,
			builtin: func(spec TraceSpec) *chart.Trace {
				return chart.NewOHLC(spec.X, spec.Open, spec.High, spec.Low, spec.Close)
			},
		}, nil
	case "candlestick":
		return resolvedStyle{
			name: settings.PlotTypeCandlestick,
			builtin: func(spec TraceSpec) *chart.Trace {
				return chart.NewCandlestick(spec.X, spec.Open, spec.High, spec.Low, spec.Close)
			},
		}, nil
	default:
		return resolvedStyle{}, errors.Wrap(errors.ErrCodeInvalidPlotType, "failed to resolve plot type",
			errors.NewInvalidPlotTypeError(plotType))
	}
}

// Plot renders the frame into a figure: a price trace, and a volume bar
// panel when volume is shown. When opts.Figure is nil a figure is
// allocated (two stacked panels sharing the x-axis at 0.7:0.3 with zero
// gap when volume is shown, a single full-height panel otherwise) and
// given the baseline layout; a supplied figure is reused as-is. The
// returned figure is the one supplied, or the newly created one.
//
// Rendering is not atomic: on error a supplied figure keeps whatever
// mutations happened before the failure.
func (a *Accessor) Plot(opts PlotOptions) (*chart.Figure, error) {
	resolved, err := resolveColumns(a.frame.Columns(), a.settings.OHLCV.ColumnNames)
	if err != nil {
		return nil, err
	}

	style, err := resolveStyle(opts.PlotType.TakeOr(a.settings.OHLCV.PlotType), opts.CustomTrace)
	if err != nil {
		return nil, err
	}

	displayVolume := opts.DisplayVolume.TakeOrElse(func() bool {
		return resolved.Volume.IsSome()
	})

	a.logger.Debug("rendering ohlcv chart",
		zap.String("plot_type", style.name),
		zap.Bool("display_volume", displayVolume),
		zap.Int("rows", a.frame.Len()))

	pricePlacement := opts.PricePlacement
	volumePlacement := opts.VolumePlacement

	if displayVolume {
		if pricePlacement.IsNone() {
			pricePlacement = optional.Some(chart.TracePosition{Row: 1, Col: 1})
		}

		if volumePlacement.IsNone() {
			volumePlacement = optional.Some(chart.TracePosition{Row: 2, Col: 1})
		}
	}

	fig := opts.Figure
	if fig == nil {
		fig, err = a.newFigure(displayVolume)
		if err != nil {
			return nil, err
		}
	}

	fig.UpdateLayout(opts.LayoutBag)

	spec, err := a.traceSpec(resolved)
	if err != nil {
		return nil, err
	}

	priceTrace, err := a.buildPriceTrace(style, spec, opts.PriceTraceBag)
	if err != nil {
		return nil, err
	}

	if err := fig.AddTrace(priceTrace, pricePlacement); err != nil {
		return nil, err
	}

	if displayVolume {
		volumeTrace, err := a.buildVolumeTrace(resolved, spec, opts.VolumeTraceBag)
		if err != nil {
			return nil, err
		}

		if err := fig.AddTrace(volumeTrace, volumePlacement); err != nil {
			return nil, err
		}
	}

	return fig, nil
}

// newFigure allocates a fresh figure and applies the baseline layout.
// The baseline is never re-applied to a caller-supplied figure.
func (a *Accessor) newFigure(displayVolume bool) (*chart.Figure, error) {
	var fig *chart.Figure

	if displayVolume {
		var err error

		fig, err = chart.NewSubplots(chart.SubplotsConfig{
			Rows:            2,
			SharedX:         true,
			VerticalSpacing: 0,
			RowHeights:      []float64{0.7, 0.3},
		})
		if err != nil {
			return nil, err
		}
	} else {
		fig = chart.NewFigure()
	}

	fig.UpdateLayout(chart.Bag{
		"showlegend": true,
		"xaxis": chart.Bag{
			"rangeslider": chart.Bag{"visible": false},
			"showgrid":    true,
		},
		"yaxis": chart.Bag{"showgrid": true},
	})

	if displayVolume {
		fig.UpdateLayout(chart.Bag{
			"xaxis2": chart.Bag{"showgrid": true},
			"yaxis2": chart.Bag{"showgrid": true},
			"bargap": 0.0,
		})
	}

	return fig, nil
}

// traceSpec extracts the index and the four resolved price series.
func (a *Accessor) traceSpec(resolved columnIndexes) (TraceSpec, error) {
	spec := TraceSpec{X: a.frame.Index()}

	series := []struct {
		index int
		out   *[]float64
	}{
		{resolved.Open, &spec.Open},
		{resolved.High, &spec.High},
		{resolved.Low, &spec.Low},
		{resolved.Close, &spec.Close},
	}

	for _, s := range series {
		values, err := a.frame.Column(s.index)
		if err != nil {
			return TraceSpec{}, err
		}

		*s.out = values
	}

	return spec, nil
}

// buildPriceTrace builds the price trace, colors it from the color
// schema and merges the caller's trace bag over the result.
func (a *Accessor) buildPriceTrace(style resolvedStyle, spec TraceSpec, overrides chart.Bag) (*chart.Trace, error) {
	var trace *chart.Trace

	if style.custom != nil {
		trace = style.custom(spec)
		if trace == nil {
			return nil, errors.New(errors.ErrCodeInvalidParameter, "custom trace builder returned nil")
		}
	} else {
		trace = style.builtin(spec).SetName(style.name)
	}

	schema := a.settings.Plotting.ColorSchema
	trace.Update(chart.MergeBags(chart.Bag{
		"increasing": chart.Bag{"line": chart.Bag{"color": schema.Increasing}},
		"decreasing": chart.Bag{"line": chart.Bag{"color": schema.Decreasing}},
	}, overrides))

	return trace, nil
}
