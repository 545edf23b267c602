package pipeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

func TestEntry_Freshness(t *testing.T) {
	retrieved := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	e := Entry{RetrievedAt: retrieved}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just stored", retrieved, true},
		{"59 minutes later", retrieved.Add(59 * time.Minute), true},
		{"exactly one hour", retrieved.Add(time.Hour), false},
		{"well past window", retrieved.Add(3 * time.Hour), false},
	}
	for _, c := range cases {
		if got := e.Fresh(c.now); got != c.want {
			t.Errorf("%s: Fresh = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCache_PutGetClear(t *testing.T) {
	c := NewCache()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{{Time: now, Close: 100}}

	if _, ok := c.Get("SAP.DE"); ok {
		t.Error("empty cache returned an entry")
	}

	c.Put("SAP.DE", bars, model.Metadata{Symbol: "SAP.DE"}, now)
	entry, ok := c.Get("SAP.DE")
	if !ok {
		t.Fatal("stored entry not found")
	}
	if len(entry.Series) != 1 || entry.Series[0].Close != 100 {
		t.Errorf("unexpected series: %+v", entry.Series)
	}
	if !entry.RetrievedAt.Equal(now) {
		t.Errorf("RetrievedAt = %v, want %v", entry.RetrievedAt, now)
	}

	c.Clear()
	if _, ok := c.Get("SAP.DE"); ok {
		t.Error("entry survived Clear")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{{Time: now, Close: 100}}

	// Writers, readers and a clear racing on the same cache. Run with -race.
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				sym := fmt.Sprintf("SYM%d.DE", i%8)
				switch g {
				case 0, 1:
					c.Put(sym, bars, model.Metadata{Symbol: sym}, now)
				case 2:
					c.Get(sym)
				default:
					if i%25 == 0 {
						c.Clear()
					}
				}
			}
		}(g)
	}
	wg.Wait()
}
