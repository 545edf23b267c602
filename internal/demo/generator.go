package demo

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// seriesLength is the fixed number of samples in a synthetic history.
const seriesLength = 100

const dailyDrift = 0.0003

// Generator produces deterministic pseudo-historical OHLCV series for
// symbols when live data is unavailable.
type Generator struct {
	Location *time.Location
}

// NewGenerator creates a Generator emitting timestamps in the given timezone.
func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{Location: loc}
}

// History builds a synthetic daily series of fixed length ending now.
// Sampling is once per calendar day regardless of the requested interval;
// the span only matters insofar as an unknown keyword falls back to the
// default. Repeated calls for the same symbol reproduce the same prices
// because the random source is seeded from the symbol identity.
func (g *Generator) History(symbol string, span model.Span, interval model.Interval) []model.OHLCV {
	if _, err := model.ParseSpan(string(span)); err != nil {
		span = model.DefaultSpan
	}
	_ = span

	base := defaultBasePrice
	vol := defaultVolatility
	if p, ok := Profiles[symbol]; ok {
		base = p.BasePrice
		vol = p.Volatility
	}

	rng := rand.New(rand.NewSource(seedFor(symbol)))
	now := time.Now().In(g.Location)

	bars := make([]model.OHLCV, seriesLength)
	logPrice := math.Log(base)
	for i := range bars {
		logPrice += dailyDrift + rng.NormFloat64()*vol
		c := math.Exp(logPrice)

		// Cosmetic perturbations around the close; the ordering of
		// open/high/low against each other is deliberately loose.
		bars[i] = model.OHLCV{
			Time:   now.AddDate(0, 0, -(seriesLength - 1 - i)),
			Open:   c * (1 - rng.Float64()*0.01),
			High:   c * (1 + rng.Float64()*0.02),
			Low:    c * (1 - rng.Float64()*0.02),
			Close:  c,
			Volume: float64(1_000_000 + rng.Intn(9_000_000)),
		}
	}
	return bars
}

// seedFor derives the deterministic seed from the symbol identity.
func seedFor(symbol string) int64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return int64(h.Sum32() % 42)
}
