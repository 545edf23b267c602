package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

func dailySeries(n int, price func(i int) float64) []model.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time:  start.AddDate(0, 0, i),
			Close: price(i),
		}
	}
	return bars
}

func TestProject_LinearSeries(t *testing.T) {
	// y = 100 + 0.5*day fits a degree-1 polynomial exactly.
	series := dailySeries(40, func(i int) float64 { return 100 + 0.5*float64(i) })

	proj, err := Project(series, Params{HorizonDays: 7, Degree: 1})
	require.NoError(t, err)

	require.Len(t, proj.Values, 7)
	require.Len(t, proj.Dates, 7)
	for i, v := range proj.Values {
		want := 100 + 0.5*float64(39+i+1)
		assert.InDelta(t, want, v, 1e-6, "projected value %d", i)
	}
	assert.InDelta(t, 0, proj.RMSE, 1e-6)
	assert.InDelta(t, 0, proj.MAE, 1e-6)
	assert.InDelta(t, 1, proj.R2, 1e-9)

	last := series[len(series)-1].Time
	for i, d := range proj.Dates {
		assert.Equal(t, last.AddDate(0, 0, i+1), d)
	}
}

func TestProject_QuadraticWithBand(t *testing.T) {
	series := dailySeries(60, func(i int) float64 {
		x := float64(i)
		return 80 + 0.3*x + 0.01*x*x
	})

	proj, err := Project(series, Params{HorizonDays: 7, Degree: 2, ConfidenceBand: true})
	require.NoError(t, err)

	require.Len(t, proj.Upper, 7)
	require.Len(t, proj.Lower, 7)
	for i := range proj.Values {
		assert.False(t, math.IsNaN(proj.Values[i]), "value %d is NaN", i)
		assert.GreaterOrEqual(t, proj.Values[i], 0.0)
		assert.GreaterOrEqual(t, proj.Upper[i], proj.Values[i])
		assert.LessOrEqual(t, proj.Lower[i], proj.Values[i])
	}
	assert.LessOrEqual(t, proj.R2, 1.0)
}

func TestProject_NoisySeriesFitQuality(t *testing.T) {
	// A deterministic sawtooth around a trend: R² must stay within (0, 1].
	series := dailySeries(50, func(i int) float64 {
		noise := float64(i%5) - 2
		return 100 + float64(i) + noise
	})

	proj, err := Project(series, Params{HorizonDays: 5, Degree: 1})
	require.NoError(t, err)

	assert.Greater(t, proj.RMSE, 0.0)
	assert.Greater(t, proj.MAE, 0.0)
	assert.Greater(t, proj.R2, 0.9)
	assert.LessOrEqual(t, proj.R2, 1.0)
}

func TestProject_TooFewPoints(t *testing.T) {
	series := dailySeries(20, func(i int) float64 { return 100 })

	_, err := Project(series, Params{HorizonDays: 7, Degree: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooFewPoints))
}

func TestProject_Underdetermined(t *testing.T) {
	series := dailySeries(3, func(i int) float64 { return 100 })

	_, err := Project(series, Params{HorizonDays: 7, Degree: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnderdetermined))
}

func TestProject_BadParams(t *testing.T) {
	series := dailySeries(40, func(i int) float64 { return 100 })

	for _, p := range []Params{
		{HorizonDays: 7, Degree: 0},
		{HorizonDays: 7, Degree: 6},
		{HorizonDays: 0, Degree: 2},
		{HorizonDays: 31, Degree: 2},
	} {
		_, err := Project(series, p)
		require.Error(t, err, "params %+v", p)
		assert.True(t, errors.Is(err, ErrBadParams), "params %+v", p)
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		current, projected  float64
		direction, strength string
	}{
		{100, 110, "HAUSSIÈRE", "Forte tendance haussière"},
		{100, 102, "HAUSSIÈRE", "Légère tendance haussière"},
		{100, 90, "BAISSIÈRE", "Forte tendance baissière"},
		{100, 98, "BAISSIÈRE", "Légère tendance baissière"},
		{100, 100, "NEUTRE", "Tendance latérale"},
	}
	for _, c := range cases {
		got := ClassifyTrend(c.current, c.projected)
		assert.Equal(t, c.direction, got.Direction, "projected %v", c.projected)
		assert.Equal(t, c.strength, got.Strength, "projected %v", c.projected)
	}
}
