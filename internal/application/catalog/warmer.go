package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// DefaultSchedule refreshes the catalog every ten minutes.
const DefaultSchedule = "@every 10m"

// Warmer refreshes a Catalog on a cron schedule so page requests rarely wait on the API.
type Warmer struct {
	catalog *Catalog
	cron    *cron.Cron
	timeout time.Duration
}

func NewWarmer(c *Catalog, schedule string) (*Warmer, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	w := &Warmer{catalog: c, cron: cron.New(), timeout: 30 * time.Second}
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REFRESH_CRON %q: %w", schedule, err)
	}
	return w, nil
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if _, err := w.catalog.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("scheduled catalog refresh")
	}
}

// Start runs one refresh in the background and then follows the schedule.
func (w *Warmer) Start() {
	log.Info().Msg("catalog warmer started")
	go w.run()
	w.cron.Start()
}

// Stop halts the schedule, waits for a scheduled refresh to finish and
// discards the boot refresh if it is still running.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.catalog.Stop()
}
