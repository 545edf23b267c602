package model

import "time"

// Lot is a single purchase of shares in the virtual portfolio.
type Lot struct {
	Shares   int
	BuyPrice float64
	OpenedAt time.Time
}

// Cost returns the total acquisition cost of the lot.
func (l Lot) Cost() float64 {
	return float64(l.Shares) * l.BuyPrice
}
