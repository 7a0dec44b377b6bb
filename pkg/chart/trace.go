package chart

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TraceType identifies the renderer used for a trace.
type TraceType string

const (
	TraceTypeOHLC        TraceType = "ohlc"
	TraceTypeCandlestick TraceType = "candlestick"
	TraceTypeBar         TraceType = "bar"
	TraceTypeScatter     TraceType = "scatter"
)

// Trace is one renderable series attached to a figure panel. Props holds
// the trace attributes as a nested option bag; axis references are
// written into Props by Figure.AddTrace.
type Trace struct {
	Type  TraceType
	UID   string
	Props Bag
}

// NewTrace creates a trace of the given type with the given attributes.
// Every trace gets a unique uid so front ends can diff updates.
func NewTrace(traceType TraceType, props Bag) *Trace {
	return &Trace{
		Type:  traceType,
		UID:   uuid.New().String(),
		Props: props.Clone(),
	}
}

// NewOHLC creates an OHLC bar trace from an index and four price series.
func NewOHLC(x []time.Time, open, high, low, closePrices []float64) *Trace {
	return NewTrace(TraceTypeOHLC, Bag{
		"x":     x,
		"open":  open,
		"high":  high,
		"low":   low,
		"close": closePrices,
	})
}

// NewCandlestick creates a candlestick trace from an index and four price series.
func NewCandlestick(x []time.Time, open, high, low, closePrices []float64) *Trace {
	return NewTrace(TraceTypeCandlestick, Bag{
		"x":     x,
		"open":  open,
		"high":  high,
		"low":   low,
		"close": closePrices,
	})
}

// NewBar creates a vertical bar trace.
func NewBar(x []time.Time, y []float64) *Trace {
	return NewTrace(TraceTypeBar, Bag{
		"x": x,
		"y": y,
	})
}

// Update merges overrides into the trace attributes, overrides winning.
func (t *Trace) Update(overrides Bag) *Trace {
	t.Props = MergeBags(t.Props, overrides)

	return t
}

// Name returns the display name of the trace, or "" when unset.
func (t *Trace) Name() string {
	name, _ := t.Props["name"].(string)

	return name
}

// SetName sets the display name of the trace.
func (t *Trace) SetName(name string) *Trace {
	if t.Props == nil {
		t.Props = Bag{}
	}

	t.Props["name"] = name

	return t
}

// MarshalJSON flattens the trace into a single plotly trace object:
// the type, uid and all attributes at the top level.
func (t *Trace) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(t.Props)+2)

	for key, value := range t.Props {
		flat[key] = value
	}

	flat["type"] = string(t.Type)
	flat["uid"] = t.UID

	return json.Marshal(flat)
}
