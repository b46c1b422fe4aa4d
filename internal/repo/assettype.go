package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inventariolab/inventario/internal/models"
)

// TypeRepo persists the asset types catalog.
type TypeRepo struct {
	DB *sql.DB
}

func NewTypeRepo(db *sql.DB) *TypeRepo {
	return &TypeRepo{DB: db}
}

func (r *TypeRepo) List(ctx context.Context) ([]models.AssetType, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, category, COALESCE(description,'') FROM asset_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.AssetType
	for rows.Next() {
		var t models.AssetType
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Description); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *TypeRepo) Create(ctx context.Context, t models.AssetType) (models.AssetType, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO asset_types (name, category, description) VALUES ($1, $2, $3) RETURNING id`,
		t.Name, t.Category, t.Description,
	).Scan(&t.ID)
	if isUniqueViolation(err) {
		return models.AssetType{}, ErrConflict
	}
	return t, err
}

func (r *TypeRepo) Update(ctx context.Context, id int, t models.AssetType) (models.AssetType, error) {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE asset_types SET name = $1, category = $2, description = $3 WHERE id = $4 RETURNING id`,
		t.Name, t.Category, t.Description, id,
	).Scan(&t.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AssetType{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return models.AssetType{}, ErrConflict
	}
	return t, err
}

func (r *TypeRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM asset_types WHERE id = $1`, id)
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
