package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/market"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/notifier"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/pipeline"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/recorder"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/session"
)

// Auto-refresh interval bounds in seconds.
const (
	minRefreshSeconds = 30
	maxRefreshSeconds = 300
)

// Scheduler drives the periodic refresh pass over the session watchlist.
// Passes never overlap: cron firings are skipped while one is still running
// and manual runs share the same lock.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Session  *session.Session
	Notifier *notifier.EmailNotifier // nil when email is disabled
	Recorder recorder.Recorder
	Span     model.Span
	Interval model.Interval
	Location *time.Location

	runMu sync.Mutex
}

// New creates a Scheduler.
func New(p *pipeline.Pipeline, sess *session.Session, rec recorder.Recorder, span model.Span, interval model.Interval, loc *time.Location) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		Pipeline: p,
		Session:  sess,
		Recorder: rec,
		Span:     span,
		Interval: interval,
		Location: loc,
	}
}

// Register schedules the refresh task. The interval is clamped to the
// 30-300 second range.
func (s *Scheduler) Register(intervalSeconds int) error {
	if intervalSeconds < minRefreshSeconds {
		intervalSeconds = minRefreshSeconds
	}
	if intervalSeconds > maxRefreshSeconds {
		intervalSeconds = maxRefreshSeconds
	}
	if _, err := s.Cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh pass immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	status := market.CurrentStatus()
	log.Printf("[INFO] refresh pass starting, marché allemand (Xetra): %s", status.Label)

	for _, symbol := range s.Session.Watchlist() {
		res := s.Pipeline.Load(s.Session, symbol, s.Span, s.Interval)
		price := model.LastClose(res.Series)
		prev := model.PreviousClose(res.Series)
		changePct := 0.0
		if prev != 0 {
			changePct = (price - prev) / prev * 100
		}
		log.Printf("[INFO] %s: %s (%+.1f%%) [%s]", symbol, market.FormatCurrency(price, symbol), changePct, res.Provenance)
		if res.Notice != "" {
			log.Printf("[INFO] %s: %s", symbol, res.Notice)
		}

		if err := s.Recorder.RecordRetrieval(&recorder.RetrievalEvent{
			Symbol:     symbol,
			Provenance: res.Provenance,
			Close:      price,
			Points:     len(res.Series),
		}); err != nil {
			log.Printf("[ERROR] record retrieval: %v", err)
		}

		for _, a := range s.Session.EvaluateAlerts(symbol, price) {
			log.Printf("[INFO] alert fired: %s %s %.2f (current %.2f)", a.Symbol, a.Direction, a.TargetPrice, price)
			s.notifyAlert(a, price)
			if err := s.Recorder.RecordAlert(&recorder.AlertEvent{
				Symbol:      a.Symbol,
				Direction:   string(a.Direction),
				TargetPrice: a.TargetPrice,
				Price:       price,
				Recurring:   a.Recurring,
			}); err != nil {
				log.Printf("[ERROR] record alert: %v", err)
			}
		}
	}
	log.Println("[INFO] refresh pass done")
}

// notifyAlert sends the alert email once. Delivery failures are logged and
// never retried.
func (s *Scheduler) notifyAlert(a model.Alert, price float64) {
	if s.Notifier == nil {
		return
	}
	cfg := s.Session.Email()
	if !cfg.Enabled || cfg.Recipient() == "" {
		return
	}
	subject, body := notifier.FormatAlertEmail(a, price, time.Now().In(s.Location))
	if err := s.Notifier.Send(subject, body, cfg.Recipient()); err != nil {
		log.Printf("[ERROR] send alert email: %v", err)
	}
}
