package calculator

import (
	"errors"
	"math"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// SummaryStats describes a close-price series for exports and reports.
type SummaryStats struct {
	Mean           float64
	StdDev         float64
	Min            float64
	Max            float64
	TotalChangePct float64
}

// Summarize computes the summary statistics over the closing prices.
// StdDev is the sample standard deviation.
func Summarize(bars []model.OHLCV) (SummaryStats, error) {
	if len(bars) == 0 {
		return SummaryStats{}, errors.New("no bars provided")
	}
	closes := Closes(bars)

	var s SummaryStats
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, c := range closes {
		s.Mean += c
		if c < s.Min {
			s.Min = c
		}
		if c > s.Max {
			s.Max = c
		}
	}
	s.Mean /= float64(len(closes))

	if len(closes) > 1 {
		var ss float64
		for _, c := range closes {
			ss += (c - s.Mean) * (c - s.Mean)
		}
		s.StdDev = math.Sqrt(ss / float64(len(closes)-1))
		if closes[0] != 0 {
			s.TotalChangePct = (closes[len(closes)-1]/closes[0] - 1) * 100
		}
	}
	return s, nil
}

// Volatility returns the sample standard deviation of day-over-day percent
// changes, in percent.
func Volatility(bars []model.OHLCV) float64 {
	if len(bars) < 3 {
		return 0
	}
	changes := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close == 0 {
			continue
		}
		changes = append(changes, bars[i].Close/bars[i-1].Close-1)
	}
	if len(changes) < 2 {
		return 0
	}
	var mean float64
	for _, c := range changes {
		mean += c
	}
	mean /= float64(len(changes))
	var ss float64
	for _, c := range changes {
		ss += (c - mean) * (c - mean)
	}
	return math.Sqrt(ss/float64(len(changes)-1)) * 100
}
