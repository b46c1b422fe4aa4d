package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/inventariolab/inventario/internal/inventory"
	"github.com/inventariolab/inventario/internal/metrics"
	"github.com/inventariolab/inventario/internal/models"
)

// Run starts a cron that refreshes the inventory gauges from the store on
// spec (e.g. "@every 1m") and blocks until ctx is done. The first refresh
// happens immediately so the gauges are populated before the first scrape.
func Run(ctx context.Context, store *inventory.Store, spec string) error {
	refresh := func() {
		counts := store.CountByStatus()
		for _, status := range []string{models.StatusActive, models.StatusInactive, models.StatusDecommissioned} {
			metrics.SetAssets(status, counts[status])
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, refresh); err != nil {
		return err
	}

	refresh()
	c.Start()
	slog.Info("metrics refresh scheduled", "spec", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
