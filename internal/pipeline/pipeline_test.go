package pipeline

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/demo"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/provider"
)

type fakeState struct {
	cache *Cache
	demo  bool
}

func newFakeState() *fakeState {
	return &fakeState{cache: NewCache()}
}

func (s *fakeState) Cache() *Cache  { return s.cache }
func (s *fakeState) DemoMode() bool { return s.demo }
func (s *fakeState) EnterDemoMode() { s.demo = true }

type fakeFetcher struct {
	mu      sync.Mutex
	bars    []model.OHLCV
	meta    model.Metadata
	histErr error
	metaErr error
	calls   int
}

func (f *fakeFetcher) FetchHistory(symbol string, span model.Span, interval model.Interval) ([]model.OHLCV, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.bars, nil
}

func (f *fakeFetcher) FetchMetadata(symbol string) (model.Metadata, error) {
	if f.metaErr != nil {
		return model.Metadata{}, f.metaErr
	}
	return f.meta, nil
}

func (f *fakeFetcher) Name() string { return "fake" }

func testBars(n int, start time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time: start.AddDate(0, 0, i),
			Open: 100, High: 101, Low: 99, Close: 100.5,
			Volume: 1_000_000,
		}
	}
	return bars
}

func newTestPipeline(f provider.Fetcher, sleeps *[]time.Duration) *Pipeline {
	p := New(f, demo.NewGenerator(time.UTC), time.UTC)
	p.Sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return p
}

func TestLoad_LiveSuccess(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f := &fakeFetcher{
		bars: testBars(5, start),
		meta: model.Metadata{Symbol: "SAP.DE", Name: "SAP SE"},
	}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)
	st := newFakeState()

	res := p.Load(st, "SAP.DE", model.DefaultSpan, model.DefaultInterval)

	if res.Provenance != model.ProvenanceLive {
		t.Fatalf("expected LIVE provenance, got %s", res.Provenance)
	}
	if len(res.Series) != 5 {
		t.Errorf("expected 5 bars, got %d", len(res.Series))
	}
	if res.Meta.Name != "SAP SE" {
		t.Errorf("unexpected metadata name %q", res.Meta.Name)
	}
	if res.Notice != "" {
		t.Errorf("unexpected notice on live path: %q", res.Notice)
	}
	if len(sleeps) != 0 {
		t.Errorf("expected no backoff on first success, got %v", sleeps)
	}
	if _, ok := st.Cache().Get("SAP.DE"); !ok {
		t.Error("live result not stored in cache")
	}
	if st.DemoMode() {
		t.Error("demo mode set on live success")
	}
}

func TestLoad_RetriesWithBackoff(t *testing.T) {
	f := &fakeFetcher{histErr: errors.New("connection reset")}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)
	st := newFakeState()

	res := p.Load(st, "SAP.DE", model.DefaultSpan, model.DefaultInterval)

	if f.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", f.calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(sleeps) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), sleeps)
	}
	for i, d := range want {
		if sleeps[i] != d {
			t.Errorf("sleep %d: expected %v, got %v", i, d, sleeps[i])
		}
	}
	if res.Provenance != model.ProvenanceSynthetic {
		t.Fatalf("expected SYNTHETIC after exhausted retries, got %s", res.Provenance)
	}
	if !st.DemoMode() {
		t.Error("demo mode not set after exhausted retries")
	}
	if len(res.Series) == 0 {
		t.Error("synthetic fallback returned empty series")
	}
	if res.Notice == "" {
		t.Error("expected degradation notice")
	}
}

func TestLoad_FreshCacheFallback(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := testBars(5, start)
	meta := model.Metadata{Symbol: "SIE.DE", Name: "Siemens AG"}

	f := &fakeFetcher{histErr: provider.ErrRateLimited}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return now }

	st := newFakeState()
	st.Cache().Put("SIE.DE", bars, meta, now.Add(-30*time.Minute))

	res := p.Load(st, "SIE.DE", model.DefaultSpan, model.DefaultInterval)

	if res.Provenance != model.ProvenanceCached {
		t.Fatalf("expected CACHED provenance, got %s", res.Provenance)
	}
	if res.Meta.Name != "Siemens AG" {
		t.Errorf("cache entry metadata lost: %q", res.Meta.Name)
	}
	if res.Notice == "" {
		t.Error("expected cache notice")
	}
	if st.DemoMode() {
		t.Error("demo mode set despite usable cache")
	}
}

func TestLoad_StaleCacheIgnored(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f := &fakeFetcher{histErr: errors.New("timeout")}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return now }

	st := newFakeState()
	st.Cache().Put("SAP.DE", testBars(5, start), model.Metadata{Symbol: "SAP.DE"}, now.Add(-2*time.Hour))

	res := p.Load(st, "SAP.DE", model.DefaultSpan, model.DefaultInterval)

	if res.Provenance != model.ProvenanceSynthetic {
		t.Fatalf("expected SYNTHETIC for stale cache, got %s", res.Provenance)
	}
	if !st.DemoMode() {
		t.Error("demo mode not set after stale cache fallback")
	}
}

func TestLoad_DemoModeShortCircuit(t *testing.T) {
	f := &fakeFetcher{bars: testBars(5, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)

	st := newFakeState()
	st.demo = true

	res := p.Load(st, "SAP.DE", model.DefaultSpan, model.DefaultInterval)

	if f.calls != 0 {
		t.Errorf("curated demo symbol hit the network %d times", f.calls)
	}
	if res.Provenance != model.ProvenanceSynthetic {
		t.Fatalf("expected SYNTHETIC in demo mode, got %s", res.Provenance)
	}
	if res.Meta.Name == "" {
		t.Error("demo result missing curated metadata")
	}
}

func TestLoad_DemoModeUnknownSymbolStillFetches(t *testing.T) {
	f := &fakeFetcher{
		bars: testBars(5, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		meta: model.Metadata{Symbol: "VOW3.DE", Name: "Volkswagen AG"},
	}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)

	st := newFakeState()
	st.demo = true

	res := p.Load(st, "VOW3.DE", model.DefaultSpan, model.DefaultInterval)

	if f.calls == 0 {
		t.Error("non-curated symbol should still attempt a live fetch in demo mode")
	}
	if res.Provenance != model.ProvenanceLive {
		t.Errorf("expected LIVE for successful fetch, got %s", res.Provenance)
	}
}

func TestLoad_ConcurrentPassesShareCache(t *testing.T) {
	symbols := []string{"SAP.DE", "SIE.DE", "ALV.DE", "BMW.DE", "DTE.DE", "BAS.DE", "IFX.DE", "ADS.DE"}
	f := &fakeFetcher{
		bars: testBars(5, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		meta: model.Metadata{Symbol: "X", Name: "X"},
	}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)
	st := newFakeState()

	// Two refresh passes walking the same watchlist at once, as happens when
	// a cron firing overlaps a manual run. Run with -race.
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, sym := range symbols {
				p.Load(st, sym, model.DefaultSpan, model.DefaultInterval)
			}
		}()
	}
	wg.Wait()

	for _, sym := range symbols {
		if _, ok := st.Cache().Get(sym); !ok {
			t.Errorf("%s missing from cache after concurrent passes", sym)
		}
	}
}

func TestLoad_MetadataFailureTolerated(t *testing.T) {
	f := &fakeFetcher{
		bars:    testBars(5, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		metaErr: errors.New("quoteSummary unavailable"),
	}
	var sleeps []time.Duration
	p := newTestPipeline(f, &sleeps)
	st := newFakeState()

	res := p.Load(st, "BAS.DE", model.DefaultSpan, model.DefaultInterval)

	if res.Provenance != model.ProvenanceLive {
		t.Fatalf("metadata failure must not degrade provenance, got %s", res.Provenance)
	}
	if res.Meta.Symbol != "BAS.DE" || res.Meta.Name != "BAS.DE" {
		t.Errorf("expected placeholder metadata, got %+v", res.Meta)
	}
}
