package session

import (
	"testing"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

func TestNew_SeedsWatchlist(t *testing.T) {
	s := New()
	wl := s.Watchlist()
	if len(wl) != len(DefaultWatchlist) {
		t.Fatalf("watchlist has %d symbols, want %d", len(wl), len(DefaultWatchlist))
	}
	if wl[0] != "SAP.DE" {
		t.Errorf("first symbol = %q, want SAP.DE", wl[0])
	}

	// The returned slice is a copy; mutating it must not affect the session.
	wl[0] = "MUTATED"
	if s.Watchlist()[0] != "SAP.DE" {
		t.Error("Watchlist returned the internal slice")
	}
}

func TestWatchlist_AddRemove(t *testing.T) {
	s := New()

	if !s.AddToWatchlist("TSLA") {
		t.Error("adding a new symbol returned false")
	}
	if s.AddToWatchlist("TSLA") {
		t.Error("adding a duplicate symbol returned true")
	}
	if !s.RemoveFromWatchlist("TSLA") {
		t.Error("removing an existing symbol returned false")
	}
	if s.RemoveFromWatchlist("TSLA") {
		t.Error("removing a missing symbol returned true")
	}
}

func TestDemoMode_Sticky(t *testing.T) {
	s := New()
	if s.DemoMode() {
		t.Fatal("new session starts in demo mode")
	}

	s.EnterDemoMode()
	if !s.DemoMode() {
		t.Fatal("EnterDemoMode did not set the flag")
	}
	// Entering again is a no-op, not a toggle.
	s.EnterDemoMode()
	if !s.DemoMode() {
		t.Error("demo flag flipped back unexpectedly")
	}
}

func TestSetDemoMode_LeavingClearsCache(t *testing.T) {
	s := New()
	now := time.Now()
	s.Cache().Put("SAP.DE", []model.OHLCV{{Time: now, Close: 100}}, model.Metadata{Symbol: "SAP.DE"}, now)

	s.SetDemoMode(true)
	if _, ok := s.Cache().Get("SAP.DE"); !ok {
		t.Fatal("entering demo mode should leave the cache intact")
	}

	s.SetDemoMode(false)
	if _, ok := s.Cache().Get("SAP.DE"); ok {
		t.Error("leaving demo mode should clear the cache")
	}
}

func TestAlerts_ThroughSession(t *testing.T) {
	s := New()
	a := s.AddAlert("SAP.DE", 100, model.DirectionAbove, false)

	if len(s.Alerts()) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(s.Alerts()))
	}
	fired := s.EvaluateAlerts("SAP.DE", 120)
	if len(fired) != 1 || fired[0].ID != a.ID {
		t.Fatalf("expected the added alert to fire, got %v", fired)
	}
	if len(s.Alerts()) != 0 {
		t.Error("one-shot alert not removed after firing")
	}
}

func TestEmailSettings(t *testing.T) {
	s := New()
	def := s.Email()
	if def.Server != "smtp.gmail.com" || def.Port != 587 {
		t.Errorf("unexpected defaults %+v", def)
	}
	if def.Enabled {
		t.Error("email enabled by default")
	}

	s.SetEmail(EmailSettings{Enabled: true, Server: "mail.example.com", Port: 465, Address: "a@example.com", Password: "secret"})
	got := s.Email()
	if !got.Enabled || got.Server != "mail.example.com" || got.Port != 465 {
		t.Errorf("settings not stored: %+v", got)
	}
}

func TestEmailSettings_Recipient(t *testing.T) {
	e := EmailSettings{Address: "a@example.com"}
	if got := e.Recipient(); got != "a@example.com" {
		t.Errorf("Recipient = %q, want the sender address", got)
	}
	e.To = "alerts@example.com"
	if got := e.Recipient(); got != "alerts@example.com" {
		t.Errorf("Recipient = %q, want the destination override", got)
	}
}
