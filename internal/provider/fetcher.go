package provider

import (
	"errors"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// ErrRateLimited signals that the provider rejected a request for quota
// reasons. The retry policy treats it like any other transient failure;
// callers only use it to word their advisory messages.
var ErrRateLimited = errors.New("provider rate limited")

// ErrNoData signals that the provider was reachable but returned no rows.
var ErrNoData = errors.New("provider returned no data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchHistory(symbol string, span model.Span, interval model.Interval) ([]model.OHLCV, error)
	FetchMetadata(symbol string) (model.Metadata, error)
	Name() string
}
