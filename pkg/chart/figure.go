package chart

import (
	"encoding/json"
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
)

// TracePosition addresses a panel in a figure. Rows are counted from 1
// at the top. Col is kept for plotly compatibility; figures are a single
// vertical stack, so only column 1 is valid.
type TracePosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SubplotsConfig configures a vertically stacked multi-panel figure.
type SubplotsConfig struct {
	// Rows is the number of stacked panels.
	Rows int
	// SharedX links the x-axis of every panel to the first panel's and
	// hides tick labels on all but the bottom panel.
	SharedX bool
	// VerticalSpacing is the gap between adjacent panels as a fraction
	// of the figure height.
	VerticalSpacing float64
	// RowHeights is the relative height of each panel, top first. When
	// nil, panels get equal heights. Values are normalized, so any
	// positive weights work.
	RowHeights []float64
}

// Figure is a mutable composed chart: one or more stacked panels, a
// layout bag and an ordered list of traces bound to panels. It is not
// internally synchronized; concurrent mutation of the same figure
// requires external locking.
type Figure struct {
	rows            int
	sharedX         bool
	rowHeights      []float64
	verticalSpacing float64
	layout          Bag
	traces          []*Trace
}

// NewFigure creates a single-panel figure spanning the full height.
func NewFigure() *Figure {
	return &Figure{
		rows:       1,
		rowHeights: []float64{1},
		layout:     Bag{},
	}
}

// NewSubplots creates a figure with cfg.Rows stacked panels. The panel
// y-axis domains are computed from the row heights and vertical spacing
// and written into the layout, top row first, following the plotly
// subplot convention.
func NewSubplots(cfg SubplotsConfig) (*Figure, error) {
	if cfg.Rows < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPanel, "subplots need at least one row, got %d", cfg.Rows)
	}

	if cfg.VerticalSpacing < 0 || cfg.VerticalSpacing >= 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPanel, "vertical spacing must be in [0, 1), got %v", cfg.VerticalSpacing)
	}

	heights := cfg.RowHeights
	if heights == nil {
		heights = make([]float64, cfg.Rows)
		for i := range heights {
			heights[i] = 1
		}
	}

	if len(heights) != cfg.Rows {
		return nil, errors.Newf(errors.ErrCodeInvalidRowHeight,
			"expected %d row heights, got %d", cfg.Rows, len(heights))
	}

	total := 0.0

	for _, h := range heights {
		if h <= 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidRowHeight, "row heights must be positive, got %v", h)
		}

		total += h
	}

	fig := &Figure{
		rows:            cfg.Rows,
		sharedX:         cfg.SharedX,
		rowHeights:      heights,
		verticalSpacing: cfg.VerticalSpacing,
		layout:          Bag{},
	}

	// Fraction of the figure height left for panels once the gaps are
	// taken out.
	available := 1 - cfg.VerticalSpacing*float64(cfg.Rows-1)

	top := 1.0

	for row := 1; row <= cfg.Rows; row++ {
		bottom := top - heights[row-1]/total*available

		xAxis := Bag{"anchor": axisRef("y", row)}
		if cfg.SharedX && row > 1 {
			xAxis["matches"] = "x"
		}

		if cfg.SharedX && row < cfg.Rows {
			xAxis["showticklabels"] = false
		}

		fig.layout[axisKey("xaxis", row)] = xAxis
		fig.layout[axisKey("yaxis", row)] = Bag{
			"anchor": axisRef("x", row),
			"domain": []float64{bottom, top},
		}

		top = bottom - cfg.VerticalSpacing
	}

	return fig, nil
}

// axisRef returns the trace-level axis reference for a row: "x", "x2", ...
func axisRef(axis string, row int) string {
	if row == 1 {
		return axis
	}

	return fmt.Sprintf("%s%d", axis, row)
}

// axisKey returns the layout key for a row's axis: "xaxis", "xaxis2", ...
func axisKey(axis string, row int) string {
	if row == 1 {
		return axis
	}

	return fmt.Sprintf("%s%d", axis, row)
}

// Rows returns the number of panels.
func (f *Figure) Rows() int {
	return f.rows
}

// RowHeights returns the relative panel heights, top first.
func (f *Figure) RowHeights() []float64 {
	return f.rowHeights
}

// VerticalSpacing returns the gap between adjacent panels.
func (f *Figure) VerticalSpacing() float64 {
	return f.verticalSpacing
}

// SharedX reports whether the panels share the first panel's x-axis.
func (f *Figure) SharedX() bool {
	return f.sharedX
}

// Traces returns the traces in insertion order. The slice is the
// figure's own; callers must not reorder it.
func (f *Figure) Traces() []*Trace {
	return f.traces
}

// Layout returns the live layout bag.
func (f *Figure) Layout() Bag {
	return f.layout
}

// UpdateLayout merges overrides into the layout, overrides winning.
// Returns the figure for chaining.
func (f *Figure) UpdateLayout(overrides Bag) *Figure {
	f.layout = MergeBags(f.layout, overrides)

	return f
}

// AddTrace attaches a trace to a panel. An unset position targets the
// top panel. On multi-panel figures the trace's axis references are
// written into its attributes so it renders inside its panel's domain.
func (f *Figure) AddTrace(trace *Trace, position optional.Option[TracePosition]) error {
	pos := position.TakeOr(TracePosition{Row: 1, Col: 1})
	if pos.Col == 0 {
		pos.Col = 1
	}

	if pos.Row < 1 || pos.Row > f.rows {
		return errors.Newf(errors.ErrCodeInvalidPanel, "row %d out of range for a %d-panel figure", pos.Row, f.rows)
	}

	if pos.Col != 1 {
		return errors.Newf(errors.ErrCodeInvalidPanel, "col %d out of range, figures are a single column", pos.Col)
	}

	if f.rows > 1 {
		if trace.Props == nil {
			trace.Props = Bag{}
		}

		trace.Props["xaxis"] = axisRef("x", pos.Row)
		trace.Props["yaxis"] = axisRef("y", pos.Row)
	}

	f.traces = append(f.traces, trace)

	return nil
}

// MarshalJSON emits the figure as a plotly figure object:
// {"data": [...traces], "layout": {...}}.
func (f *Figure) MarshalJSON() ([]byte, error) {
	traces := f.traces
	if traces == nil {
		traces = []*Trace{}
	}

	return json.Marshal(map[string]any{
		"data":   traces,
		"layout": f.layout,
	})
}
