package alert

import (
	"time"

	"github.com/google/uuid"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// Manager holds the flat collection of price alerts for one session.
// It is not safe for concurrent use; the owning session serializes access.
type Manager struct {
	alerts []model.Alert
	now    func() time.Time
}

// NewManager creates an empty alert manager.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Add registers a new alert and returns it.
func (m *Manager) Add(symbol string, target float64, dir model.Direction, recurring bool) model.Alert {
	a := model.Alert{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		TargetPrice: target,
		Direction:   dir,
		Recurring:   recurring,
		CreatedAt:   m.now(),
	}
	m.alerts = append(m.alerts, a)
	return a
}

// Remove deletes the alert with the given id.
func (m *Manager) Remove(id string) bool {
	for i, a := range m.alerts {
		if a.ID == id {
			m.alerts = append(m.alerts[:i], m.alerts[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of all active alerts.
func (m *Manager) List() []model.Alert {
	out := make([]model.Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Evaluate checks every alert for the symbol against the current price and
// returns the ones that fired. Fired one-shot alerts are removed.
func (m *Manager) Evaluate(symbol string, price float64) []model.Alert {
	var fired []model.Alert
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		if a.Symbol == symbol && a.Triggered(price) {
			fired = append(fired, a)
			if !a.Recurring {
				continue // one-shot: drop after firing
			}
		}
		kept = append(kept, a)
	}
	m.alerts = kept
	return fired
}
