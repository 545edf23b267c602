package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// MinPoints is the minimum series length a projection may be fitted on.
const MinPoints = 30

var (
	// ErrTooFewPoints is returned when the series is shorter than MinPoints.
	ErrTooFewPoints = errors.New("forecast: series shorter than minimum of 30 points")
	// ErrUnderdetermined is returned when the series cannot support the
	// requested polynomial degree (fewer than degree+1 points).
	ErrUnderdetermined = errors.New("forecast: fewer points than degree+1")
	// ErrBadParams is returned for out-of-range degree or horizon.
	ErrBadParams = errors.New("forecast: parameters out of range")
)

// Params configures a projection run.
type Params struct {
	HorizonDays    int  // 1..30
	Degree         int  // 1..5
	ConfidenceBand bool // attach the ±2σ residual band
}

// Projection is the result of fitting and projecting a close-price series.
type Projection struct {
	Dates  []time.Time
	Values []float64
	Upper  []float64 // nil unless a band was requested
	Lower  []float64
	RMSE   float64
	MAE    float64
	R2     float64
}

// Project fits a polynomial regression of close against the day offset from
// the first sample and extends it HorizonDays forward. The model is refit
// from scratch on every call.
func Project(series []model.OHLCV, p Params) (*Projection, error) {
	if p.Degree < 1 || p.Degree > 5 {
		return nil, fmt.Errorf("%w: degree %d", ErrBadParams, p.Degree)
	}
	if p.HorizonDays < 1 || p.HorizonDays > 30 {
		return nil, fmt.Errorf("%w: horizon %d", ErrBadParams, p.HorizonDays)
	}
	if len(series) < p.Degree+1 {
		return nil, fmt.Errorf("%w: %d points for degree %d", ErrUnderdetermined, len(series), p.Degree)
	}
	if len(series) < MinPoints {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(series))
	}

	n := len(series)
	first := series[0].Time
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, b := range series {
		xs[i] = math.Floor(b.Time.Sub(first).Hours() / 24)
		ys[i] = b.Close
	}

	coef, err := polyfit(xs, ys, p.Degree)
	if err != nil {
		return nil, err
	}

	// In-sample fit quality.
	fitted := make([]float64, n)
	var ssRes, ssTot, absSum, mean float64
	for _, y := range ys {
		mean += y
	}
	mean /= float64(n)
	for i, x := range xs {
		fitted[i] = polyval(coef, x)
		r := ys[i] - fitted[i]
		ssRes += r * r
		ssTot += (ys[i] - mean) * (ys[i] - mean)
		absSum += math.Abs(r)
	}
	proj := &Projection{
		RMSE: math.Sqrt(ssRes / float64(n)),
		MAE:  absSum / float64(n),
	}
	if ssTot > 0 {
		proj.R2 = 1 - ssRes/ssTot
	} else {
		proj.R2 = 1
	}

	lastX := xs[n-1]
	lastDate := series[n-1].Time
	proj.Dates = make([]time.Time, p.HorizonDays)
	proj.Values = make([]float64, p.HorizonDays)
	for i := 0; i < p.HorizonDays; i++ {
		proj.Dates[i] = lastDate.AddDate(0, 0, i+1)
		proj.Values[i] = polyval(coef, lastX+float64(i+1))
	}

	if p.ConfidenceBand {
		// ±2 population standard deviations of the in-sample residuals.
		std := math.Sqrt(ssRes / float64(n))
		proj.Upper = make([]float64, p.HorizonDays)
		proj.Lower = make([]float64, p.HorizonDays)
		for i, v := range proj.Values {
			proj.Upper[i] = v + 2*std
			proj.Lower[i] = v - 2*std
		}
	}
	return proj, nil
}

// polyfit solves the ordinary least squares fit of a degree-d polynomial
// via QR decomposition of the Vandermonde matrix.
func polyfit(xs, ys []float64, degree int) ([]float64, error) {
	n := len(xs)
	a := mat.NewDense(n, degree+1, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(a)
	coefVec := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coefVec, false, b); err != nil {
		return nil, fmt.Errorf("forecast: least squares solve: %w", err)
	}

	coef := make([]float64, degree+1)
	for j := range coef {
		coef[j] = coefVec.AtVec(j)
	}
	return coef, nil
}

func polyval(coef []float64, x float64) float64 {
	y := 0.0
	for j := len(coef) - 1; j >= 0; j-- {
		y = y*x + coef[j]
	}
	return y
}
