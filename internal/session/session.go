package session

import (
	"sync"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/alert"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/pipeline"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/portfolio"
)

// DefaultWatchlist seeds a new session with the flagship German listings
// (DAX constituents plus a few MDAX names).
var DefaultWatchlist = []string{
	"SAP.DE",  // SAP
	"SIE.DE",  // Siemens
	"AIR.DE",  // Airbus
	"ALV.DE",  // Allianz
	"DTE.DE",  // Deutsche Telekom
	"MBG.DE",  // Mercedes-Benz Group
	"BMW.DE",  // BMW
	"VOW3.DE", // Volkswagen (pref)
	"BAYN.DE", // Bayer
	"BAS.DE",  // BASF
	"MUV2.DE", // Munich Re
	"DB1.DE",  // Deutsche Börse
	"RWE.DE",  // RWE
	"EOAN.DE", // E.ON
	"IFX.DE",  // Infineon
	"ADS.DE",  // Adidas
	"DBK.DE",  // Deutsche Bank
	"HEN3.DE", // Henkel (pref)
	"BEI.DE",  // Beiersdorf
	"FRE.DE",  // Fresenius
	"FME.DE",  // Fresenius Medical Care
	"HEI.DE",  // Heidelberg Materials
	"MRK.DE",  // Merck
	"SY1.DE",  // Symrise
	"ZAL.DE",  // Zalando
	"PUM.DE",  // Puma
	"MTX.DE",  // MTU Aero Engines
	"SHL.DE",  // Siemens Healthineers
	"QIA.DE",  // Qiagen
	"1COV.DE", // Covestro
	"LHAG.DE", // Deutsche Lufthansa
	"HOT.DE",  // Hochtief
	"G1A.DE",  // GEA Group
	"LEG.DE",  // LEG Immobilien
	"VNA.DE",  // Vonovia
}

// EmailSettings holds the notification transport configuration for a session.
type EmailSettings struct {
	Enabled  bool
	Server   string
	Port     int
	Address  string
	Password string
	To       string // destination override; empty means the sender address
}

// Recipient returns the destination address for notifications.
func (e EmailSettings) Recipient() string {
	if e.To != "" {
		return e.To
	}
	return e.Address
}

// Session is the explicit per-user state object passed to every pipeline
// call: watchlist, demo-mode flag, cache, alerts, portfolio and email
// settings. One logical session sees no concurrent mutation; the mutex
// preserves that discipline when requests are served from multiple
// goroutines.
type Session struct {
	mu        sync.Mutex
	watchlist []string
	demoMode  bool
	cache     *pipeline.Cache
	alerts    *alert.Manager
	portfolio *portfolio.Book
	email     EmailSettings
}

// New creates a session seeded with the default German watchlist.
func New() *Session {
	wl := make([]string, len(DefaultWatchlist))
	copy(wl, DefaultWatchlist)
	return &Session{
		watchlist: wl,
		cache:     pipeline.NewCache(),
		alerts:    alert.NewManager(),
		portfolio: portfolio.NewBook(),
		email: EmailSettings{
			Server: "smtp.gmail.com",
			Port:   587,
		},
	}
}

// Cache returns the session's fallback cache.
func (s *Session) Cache() *pipeline.Cache { return s.cache }

// DemoMode reports whether the session is serving synthetic data.
func (s *Session) DemoMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demoMode
}

// EnterDemoMode flips the session into demonstration mode. The flag is
// sticky; it stays set until SetDemoMode(false).
func (s *Session) EnterDemoMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demoMode = true
}

// SetDemoMode toggles demonstration mode explicitly. Leaving demo mode
// clears the cache so the next pass retrieves live data.
func (s *Session) SetDemoMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.demoMode && !on {
		s.cache.Clear()
	}
	s.demoMode = on
}

// Watchlist returns a copy of the watched symbols.
func (s *Session) Watchlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.watchlist))
	copy(out, s.watchlist)
	return out
}

// AddToWatchlist appends a symbol unless it is already present.
func (s *Session) AddToWatchlist(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.watchlist {
		if w == symbol {
			return false
		}
	}
	s.watchlist = append(s.watchlist, symbol)
	return true
}

// RemoveFromWatchlist deletes a symbol from the watchlist.
func (s *Session) RemoveFromWatchlist(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchlist {
		if w == symbol {
			s.watchlist = append(s.watchlist[:i], s.watchlist[i+1:]...)
			return true
		}
	}
	return false
}

// Portfolio returns the session's virtual portfolio.
func (s *Session) Portfolio() *portfolio.Book { return s.portfolio }

// AddAlert registers a price alert.
func (s *Session) AddAlert(symbol string, target float64, dir model.Direction, recurring bool) model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerts.Add(symbol, target, dir, recurring)
}

// RemoveAlert deletes an alert by id.
func (s *Session) RemoveAlert(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerts.Remove(id)
}

// Alerts returns a copy of the active alerts.
func (s *Session) Alerts() []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerts.List()
}

// EvaluateAlerts checks the symbol's alerts against the latest price and
// returns the ones that fired.
func (s *Session) EvaluateAlerts(symbol string, price float64) []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alerts.Evaluate(symbol, price)
}

// Email returns the current notification settings.
func (s *Session) Email() EmailSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// SetEmail replaces the notification settings.
func (s *Session) SetEmail(cfg EmailSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = cfg
}
