package recorder

import "github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"

// RetrievalEvent holds the outcome of one pipeline pass for a symbol.
type RetrievalEvent struct {
	Symbol     string
	Provenance model.Provenance
	Close      float64
	Points     int
}

// AlertEvent holds a fired price alert.
type AlertEvent struct {
	Symbol      string
	Direction   string
	TargetPrice float64
	Price       float64
	Recurring   bool
}

// Recorder persists retrieval and alert history for later analysis.
type Recorder interface {
	RecordRetrieval(evt *RetrievalEvent) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
