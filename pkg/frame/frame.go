// Package frame provides the tabular OHLCV container consumed by the
// chart render core: an ordered timestamp index plus positionally
// addressed numeric columns.
package frame

import (
	"time"

	"github.com/rxtech-lab/argo-charting/internal/types"
	"github.com/rxtech-lab/argo-charting/pkg/errors"
)

// Frame is an immutable-by-convention tabular data frame. Columns are in
// caller-defined order; labels are not required to be unique. Every
// column shares the index length.
type Frame struct {
	index   []time.Time
	columns []string
	values  [][]float64 // column-major
}

// New creates a frame from an index, column labels and column-major
// values. The number of value columns must match the number of labels
// and every column must match the index length.
func New(index []time.Time, columns []string, values [][]float64) (*Frame, error) {
	if len(values) != len(columns) {
		return nil, errors.Newf(errors.ErrCodeInvalidShape,
			"got %d columns but %d value series", len(columns), len(values))
	}

	for i, column := range values {
		if len(column) != len(index) {
			return nil, errors.Newf(errors.ErrCodeInvalidShape,
				"column %q has %d rows, index has %d", columns[i], len(column), len(index))
		}
	}

	return &Frame{
		index:   index,
		columns: columns,
		values:  values,
	}, nil
}

// FromMarketData builds a frame from OHLCV bars with the conventional
// column labels. Volume is included only when withVolume is true.
func FromMarketData(bars []types.MarketData, withVolume bool) *Frame {
	index := make([]time.Time, len(bars))
	open := make([]float64, len(bars))
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closePrices := make([]float64, len(bars))
	volume := make([]float64, len(bars))

	for i, bar := range bars {
		index[i] = bar.Time
		open[i] = bar.Open
		high[i] = bar.High
		low[i] = bar.Low
		closePrices[i] = bar.Close
		volume[i] = bar.Volume
	}

	columns := []string{"Open", "High", "Low", "Close"}
	values := [][]float64{open, high, low, closePrices}

	if withVolume {
		columns = append(columns, "Volume")
		values = append(values, volume)
	}

	return &Frame{
		index:   index,
		columns: columns,
		values:  values,
	}
}

// Index returns the ordered timestamp index. The slice is the frame's
// own; callers must not mutate it.
func (f *Frame) Index() []time.Time {
	return f.index
}

// Columns returns the column labels in order.
func (f *Frame) Columns() []string {
	return f.columns
}

// Column returns the values of the column at position i.
func (f *Frame) Column(i int) ([]float64, error) {
	if i < 0 || i >= len(f.values) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"column index %d out of range, frame has %d columns", i, len(f.values))
	}

	return f.values[i], nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int {
	return len(f.columns)
}
