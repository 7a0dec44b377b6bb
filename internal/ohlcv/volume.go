package ohlcv

import (
	"github.com/rxtech-lab/argo-charting/internal/settings"
	"github.com/rxtech-lab/argo-charting/pkg/chart"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
)

// markerColors assigns one color per bar from the sign of close-open:
// positive bars get the increasing color, flat bars the gray color and
// negative bars the decreasing color.
func markerColors(open, closePrices []float64, schema settings.ColorSchema) []string {
	colors := make([]string, len(closePrices))

	for i := range closePrices {
		delta := closePrices[i] - open[i]

		switch {
		case delta > 0:
			colors[i] = schema.Increasing
		case delta < 0:
			colors[i] = schema.Decreasing
		default:
			colors[i] = schema.Gray
		}
	}

	return colors
}

// buildVolumeTrace builds the volume bar trace: per-bar colors from
// price movement, no bar outline, half opacity, named "Volume". The
// caller's trace bag is merged over these defaults.
func (a *Accessor) buildVolumeTrace(resolved columnIndexes, spec TraceSpec, overrides chart.Bag) (*chart.Trace, error) {
	if resolved.Volume.IsNone() {
		return nil, errors.Wrap(errors.ErrCodeColumnNotFound, "volume display forced on",
			errors.NewMissingColumnError("volume", a.settings.OHLCV.ColumnNames.Volume, a.frame.Columns()))
	}

	volume, err := a.frame.Column(resolved.Volume.Unwrap())
	if err != nil {
		return nil, err
	}

	trace := chart.NewBar(spec.X, volume).SetName("Volume")
	trace.Update(chart.MergeBags(chart.Bag{
		"marker": chart.Bag{
			"color": markerColors(spec.Open, spec.Close, a.settings.Plotting.ColorSchema),
			"line":  chart.Bag{"width": 0},
		},
		"opacity": 0.5,
	}, overrides))

	return trace, nil
}
