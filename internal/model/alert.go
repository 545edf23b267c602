package model

import "time"

// Direction says which side of the target price triggers an alert.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Alert is a user-defined price alert. Non-recurring alerts are removed
// after they fire once.
type Alert struct {
	ID          string
	Symbol      string
	TargetPrice float64
	Direction   Direction
	Recurring   bool
	CreatedAt   time.Time
}

// Triggered reports whether the given price satisfies the alert condition.
func (a Alert) Triggered(price float64) bool {
	switch a.Direction {
	case DirectionAbove:
		return price >= a.TargetPrice
	case DirectionBelow:
		return price <= a.TargetPrice
	}
	return false
}
