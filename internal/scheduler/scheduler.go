package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"StockScope/internal/collector"
)

// Refresher keeps the price database current while the assistant runs
// interactively, re-running population on a cron schedule. Population is
// upsert-or-skip, so overlapping data is harmless.
type Refresher struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Ctx       context.Context
}

// NewRefresher creates a refresher bound to ctx; the job stops firing once
// ctx is canceled and Stop is called.
func NewRefresher(ctx context.Context, col *collector.Collector) *Refresher {
	return &Refresher{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Ctx:       ctx,
	}
}

// Register schedules the refresh job with the given cron spec (with seconds).
func (r *Refresher) Register(spec string) error {
	_, err := r.Cron.AddFunc(spec, func() {
		if r.Ctx.Err() != nil {
			return
		}
		log.Println("[INFO] scheduled price refresh starting")
		inserted, err := r.Collector.Populate(r.Ctx)
		if err != nil {
			log.Printf("[ERROR] scheduled refresh failed: %v", err)
			return
		}
		log.Printf("[INFO] scheduled refresh done, %d new bars", inserted)
	})
	return err
}

// Start begins the cron loop.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Println("[INFO] refresh scheduler started")
}

// Stop halts the cron loop.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresh scheduler stopped")
}
