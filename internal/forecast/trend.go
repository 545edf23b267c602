package forecast

// Trend summarizes where the projection ends relative to the current price.
type Trend struct {
	Direction string // HAUSSIÈRE, BAISSIÈRE, NEUTRE
	Strength  string
}

// ClassifyTrend compares the final projected price against the current one,
// with ±5% thresholds separating strong from slight moves.
func ClassifyTrend(currentPrice, finalProjected float64) Trend {
	var t Trend
	switch {
	case finalProjected > currentPrice:
		t.Direction = "HAUSSIÈRE"
	case finalProjected < currentPrice:
		t.Direction = "BAISSIÈRE"
	default:
		t.Direction = "NEUTRE"
	}

	switch {
	case finalProjected > currentPrice*1.05:
		t.Strength = "Forte tendance haussière"
	case finalProjected > currentPrice:
		t.Strength = "Légère tendance haussière"
	case finalProjected < currentPrice*0.95:
		t.Strength = "Forte tendance baissière"
	case finalProjected < currentPrice:
		t.Strength = "Légère tendance baissière"
	default:
		t.Strength = "Tendance latérale"
	}
	return t
}
