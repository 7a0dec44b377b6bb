package types

import "time"

// MarketData is a single OHLCV bar.
type MarketData struct {
	Time   time.Time `csv:"time" json:"time"`
	Open   float64   `csv:"open" json:"open"`
	High   float64   `csv:"high" json:"high"`
	Low    float64   `csv:"low" json:"low"`
	Close  float64   `csv:"close" json:"close"`
	Volume float64   `csv:"volume" json:"volume"`
}

// Delta returns the close-open difference of the bar. Its sign drives
// per-bar coloring of volume traces.
func (m MarketData) Delta() float64 {
	return m.Close - m.Open
}

// Bullish reports whether the bar closed above its open.
func (m MarketData) Bullish() bool {
	return m.Delta() > 0
}

// Bearish reports whether the bar closed below its open.
func (m MarketData) Bearish() bool {
	return m.Delta() < 0
}
