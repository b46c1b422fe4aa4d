package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/inventariolab/inventario/internal/models"
)

// ChangelogRepo is the Postgres change log. Rows are append-only; nothing here
// updates or deletes, and events survive the deletion of their asset.
type ChangelogRepo struct {
	DB *sql.DB
}

func NewChangelogRepo(db *sql.DB) *ChangelogRepo {
	return &ChangelogRepo{DB: db}
}

// Append inserts one event and fills in its append sequence number.
func (r *ChangelogRepo) Append(ctx context.Context, e *models.ChangeEvent) error {
	changes, err := json.Marshal(e.Deltas)
	if err != nil {
		return fmt.Errorf("marshal deltas: %w", err)
	}
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO changelog (id, asset_id, action, changes, user_id, username, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING seq`,
		e.ID, e.AssetID, e.Action, changes, e.UserID, e.Username, e.CreatedAt,
	).Scan(&e.Seq)
}

const changelogColumns = `id, asset_id, action, changes, user_id, username, created_at, seq`

func scanEvent(rows *sql.Rows) (models.ChangeEvent, error) {
	var e models.ChangeEvent
	var changes []byte
	if err := rows.Scan(&e.ID, &e.AssetID, &e.Action, &changes, &e.UserID, &e.Username, &e.CreatedAt, &e.Seq); err != nil {
		return e, err
	}
	if err := json.Unmarshal(changes, &e.Deltas); err != nil {
		return e, fmt.Errorf("unmarshal deltas: %w", err)
	}
	return e, nil
}

// ListByAsset returns every event for one asset, oldest first.
func (r *ChangelogRepo) ListByAsset(ctx context.Context, assetID int) ([]models.ChangeEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+changelogColumns+` FROM changelog WHERE asset_id = $1 ORDER BY created_at, seq`,
		assetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.ChangeEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListRecent returns the latest events across all assets, newest first.
func (r *ChangelogRepo) ListRecent(ctx context.Context, limit, offset int) ([]models.ChangeEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+changelogColumns+` FROM changelog ORDER BY created_at DESC, seq DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.ChangeEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
