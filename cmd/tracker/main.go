package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/config"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/demo"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/notifier"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/pipeline"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/provider"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/recorder"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/scheduler"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Stock Tracker Allemagne starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	loc := cfg.Location()

	// Init data pipeline
	fetcher := provider.NewYahooFetcher(cfg.DataSource.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	pipe := pipeline.New(fetcher, demo.NewGenerator(loc), loc)

	span, err := model.ParseSpan(cfg.DataSource.Span)
	if err != nil {
		log.Printf("[WARN] %v, using %q", err, span)
	}
	interval, err := model.ParseInterval(cfg.DataSource.Interval)
	if err != nil {
		log.Printf("[WARN] %v, using %q", err, interval)
	}

	// Init session state
	sess := session.New()
	if cfg.DemoMode {
		sess.SetDemoMode(true)
		log.Println("[INFO] demo mode forced by config")
	}
	sess.SetEmail(session.EmailSettings{
		Enabled:  cfg.SMTP.Enabled,
		Server:   cfg.SMTP.Server,
		Port:     cfg.SMTP.Port,
		Address:  cfg.SMTP.Email,
		Password: cfg.SMTP.Password,
		To:       cfg.SMTP.To,
	})

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scheduler
	sched := scheduler.New(pipe, sess, rec, span, interval, loc)
	if cfg.SMTP.Enabled {
		sched.Notifier = notifier.NewEmailNotifier(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password)
	}
	if cfg.Refresh.Enabled {
		if err := sched.Register(cfg.Refresh.IntervalSeconds); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	if os.Getenv("RUN_ON_START") == "true" || !cfg.Refresh.Enabled {
		log.Println("[INFO] executing refresh pass now")
		go sched.RunNow()
	}

	log.Println("[INFO] tracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
