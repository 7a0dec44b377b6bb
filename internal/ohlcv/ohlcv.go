// Package ohlcv renders OHLCV frames into composed figures: a price
// trace (OHLC bars or candlesticks) plus an optional synchronized
// volume panel.
//
// An Accessor wraps a frame together with a settings snapshot captured
// at construction time, so a render call never reads ambient globals:
//
//	acc := ohlcv.New(f)
//	fig, err := acc.Plot(ohlcv.PlotOptions{})
package ohlcv

import (
	"github.com/rxtech-lab/argo-charting/internal/logger"
	"github.com/rxtech-lab/argo-charting/internal/settings"
	"github.com/rxtech-lab/argo-charting/pkg/frame"
)

// Accessor provides chart rendering on top of an OHLCV frame.
type Accessor struct {
	frame    *frame.Frame
	settings settings.Settings
	logger   *logger.Logger
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithSettings replaces the settings snapshot. Without this option the
// accessor captures the process-wide defaults at construction time.
func WithSettings(s settings.Settings) Option {
	return func(a *Accessor) {
		a.settings = s
	}
}

// WithColumnNames overrides the column name mapping for this accessor
// only, keeping the rest of the settings snapshot.
func WithColumnNames(names settings.ColumnNames) Option {
	return func(a *Accessor) {
		a.settings.OHLCV.ColumnNames = names
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logger.Logger) Option {
	return func(a *Accessor) {
		a.logger = log
	}
}

// New creates an accessor over the given frame.
func New(f *frame.Frame, opts ...Option) *Accessor {
	a := &Accessor{
		frame:    f,
		settings: settings.Snapshot(),
		logger:   logger.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Frame returns the wrapped frame.
func (a *Accessor) Frame() *frame.Frame {
	return a.frame
}
