package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/inventariolab/inventario/internal/models"
)

// LocationRepo persists the locations catalog.
type LocationRepo struct {
	DB *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{DB: db}
}

func (r *LocationRepo) List(ctx context.Context) ([]models.Location, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, COALESCE(description,'') FROM locations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *LocationRepo) Create(ctx context.Context, l models.Location) (models.Location, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO locations (name, description) VALUES ($1, $2) RETURNING id`,
		l.Name, l.Description,
	).Scan(&l.ID)
	if isUniqueViolation(err) {
		return models.Location{}, ErrConflict
	}
	return l, err
}

func (r *LocationRepo) Update(ctx context.Context, id int, l models.Location) (models.Location, error) {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE locations SET name = $1, description = $2 WHERE id = $3 RETURNING id`,
		l.Name, l.Description, id,
	).Scan(&l.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return models.Location{}, ErrConflict
	}
	return l, err
}

// Delete removes a location. Locations still referenced by assets stay put and
// yield ErrConflict.
func (r *LocationRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
