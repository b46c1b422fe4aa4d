package inventory

import (
	"context"
	"sort"

	"github.com/inventariolab/inventario/internal/models"
)

// Ledger is the read path over the append-only change log. It is the only way
// callers observe what happened to an asset and when.
type Ledger struct {
	log EventLog
}

func NewLedger(log EventLog) *Ledger {
	return &Ledger{log: log}
}

// EventsFor returns every event recorded for assetID, oldest first, ties
// broken by append order. An asset with no history (or one that never existed)
// yields an empty slice, not an error. Display layers reverse this themselves.
func (l *Ledger) EventsFor(ctx context.Context, assetID int) ([]models.ChangeEvent, error) {
	events, err := l.log.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].Seq < events[j].Seq
	})
	if events == nil {
		events = []models.ChangeEvent{}
	}
	return events, nil
}

// Recent returns the latest events across all assets, newest first.
func (l *Ledger) Recent(ctx context.Context, limit, offset int) ([]models.ChangeEvent, error) {
	events, err := l.log.ListRecent(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.ChangeEvent{}
	}
	return events, nil
}
