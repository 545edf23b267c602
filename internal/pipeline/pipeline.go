package pipeline

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/demo"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/provider"
)

// Result is the outcome of a retrieval pass. The pipeline never fails:
// the provenance tag says which path produced the data.
type Result struct {
	Symbol      string
	Series      []model.OHLCV
	Meta        model.Metadata
	Provenance  model.Provenance
	RetrievedAt time.Time
	Notice      string // user-facing advisory for degraded paths
}

// State is the mutable per-session state the pipeline reads and updates.
type State interface {
	Cache() *Cache
	DemoMode() bool
	EnterDemoMode()
}

// Sleeper is the backoff sleep hook; tests inject one that records instead
// of sleeping.
type Sleeper func(time.Duration)

// Pipeline retrieves history and metadata for a symbol, degrading from live
// data to the session cache to synthetic series, in that order.
type Pipeline struct {
	Fetcher     provider.Fetcher
	Generator   *demo.Generator
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       Sleeper
	Location    *time.Location
	Now         func() time.Time
}

// New creates a Pipeline with the default 3 attempts and a 2-second base
// backoff.
func New(fetcher provider.Fetcher, gen *demo.Generator, loc *time.Location) *Pipeline {
	return &Pipeline{
		Fetcher:     fetcher,
		Generator:   gen,
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Sleep:       time.Sleep,
		Location:    loc,
		Now:         time.Now,
	}
}

// Load resolves a symbol to a usable dataset. It never returns an error and
// never returns an empty series.
func (p *Pipeline) Load(st State, symbol string, span model.Span, interval model.Interval) Result {
	if s, err := model.ParseSpan(string(span)); err != nil {
		span = s
	}
	if iv, err := model.ParseInterval(string(interval)); err != nil {
		interval = iv
	}
	now := p.Now()

	// Demonstration mode short-circuits the network for curated symbols.
	if st.DemoMode() {
		if meta, ok := demo.Metadata(symbol); ok {
			return Result{
				Symbol:      symbol,
				Series:      p.Generator.History(symbol, span, interval),
				Meta:        meta,
				Provenance:  model.ProvenanceSynthetic,
				RetrievedAt: now,
				Notice:      "Mode démonstration - données simulées",
			}
		}
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			p.Sleep(p.BaseDelay << uint(attempt-1))
		}

		bars, err := p.Fetcher.FetchHistory(symbol, span, interval)
		if err != nil {
			lastErr = err
			if errors.Is(err, provider.ErrRateLimited) {
				log.Printf("[WARN] %s: rate limited (attempt %d/%d)", symbol, attempt+1, p.MaxAttempts)
			} else {
				log.Printf("[WARN] %s: fetch failed (attempt %d/%d): %v", symbol, attempt+1, p.MaxAttempts, err)
			}
			continue
		}
		if len(bars) == 0 {
			lastErr = provider.ErrNoData
			continue
		}

		meta, err := p.Fetcher.FetchMetadata(symbol)
		if err != nil {
			// Partial metadata is expected, never fatal.
			log.Printf("[WARN] %s: metadata fetch failed: %v", symbol, err)
			meta = model.Metadata{Symbol: symbol, Name: symbol}
		}

		bars = normalizeTimezone(bars, p.Location)
		st.Cache().Put(symbol, bars, meta, now)
		return Result{
			Symbol:      symbol,
			Series:      bars,
			Meta:        meta,
			Provenance:  model.ProvenanceLive,
			RetrievedAt: now,
		}
	}

	// All attempts failed: fall back to a recent cache entry.
	if entry, ok := st.Cache().Get(symbol); ok && entry.Fresh(now) {
		return Result{
			Symbol:      symbol,
			Series:      entry.Series,
			Meta:        entry.Meta,
			Provenance:  model.ProvenanceCached,
			RetrievedAt: entry.RetrievedAt,
			Notice:      fmt.Sprintf("Données en cache du %s", entry.RetrievedAt.In(p.Location).Format("15:04:05")),
		}
	}

	// Last resort: enter demonstration mode and synthesize. The flag is
	// sticky; only an explicit user toggle clears it.
	if !st.DemoMode() {
		log.Printf("[WARN] %s: all %d attempts failed, entering demo mode: %v", symbol, p.MaxAttempts, lastErr)
	}
	st.EnterDemoMode()

	meta, ok := demo.Metadata(symbol)
	if !ok {
		meta = model.PlaceholderMetadata(symbol)
	}
	return Result{
		Symbol:      symbol,
		Series:      p.Generator.History(symbol, span, interval),
		Meta:        meta,
		Provenance:  model.ProvenanceSynthetic,
		RetrievedAt: now,
		Notice:      "Mode démonstration - source en direct indisponible",
	}
}

// normalizeTimezone converts every bar timestamp into the reference
// timezone. Providers emit UTC instants for timestamps with no zone of
// their own.
func normalizeTimezone(bars []model.OHLCV, loc *time.Location) []model.OHLCV {
	if loc == nil {
		return bars
	}
	out := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		b.Time = b.Time.In(loc)
		out[i] = b
	}
	return out
}
