package model

import (
	"errors"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Provenance classifies where a returned dataset came from.
type Provenance string

const (
	ProvenanceLive      Provenance = "LIVE"
	ProvenanceCached    Provenance = "CACHED"
	ProvenanceSynthetic Provenance = "SYNTHETIC"
)

// ValidateBars checks the series invariants: strictly increasing timestamps
// and non-negative price and volume fields.
func ValidateBars(bars []OHLCV) error {
	for i, b := range bars {
		if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 {
			return errors.New("negative price field")
		}
		if b.Volume < 0 {
			return errors.New("negative volume")
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return errors.New("timestamps not strictly increasing")
		}
	}
	return nil
}

// LastClose returns the closing price of the final bar, or 0 for an empty series.
func LastClose(bars []OHLCV) float64 {
	if len(bars) == 0 {
		return 0
	}
	return bars[len(bars)-1].Close
}

// PreviousClose returns the close of the second-to-last bar, falling back to
// the last close when only one bar exists.
func PreviousClose(bars []OHLCV) float64 {
	if len(bars) < 2 {
		return LastClose(bars)
	}
	return bars[len(bars)-2].Close
}
