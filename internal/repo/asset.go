package repo

import (
	"context"
	"database/sql"

	"github.com/inventariolab/inventario/internal/models"
)

// AssetRepo is the Postgres asset table. It satisfies the inventory store's
// TableStore contract: one row per live asset, ids handed out by a sequence
// that never rewinds.
type AssetRepo struct {
	DB *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db}
}

const assetColumns = `id, name, type_id, COALESCE(subtype,''), COALESCE(description,''), COALESCE(serial_number,''), responsible_id, location_id, cost, status, created_at, updated_at, created_by`

func scanAsset(row interface{ Scan(...any) error }) (models.Asset, error) {
	var a models.Asset
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.TypeID,
		&a.Subtype,
		&a.Description,
		&a.SerialNumber,
		&a.ResponsibleID,
		&a.LocationID,
		&a.Cost,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.CreatedBy,
	)
	return a, err
}

// Load returns every live asset, ordered by id.
func (r *AssetRepo) Load(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Put inserts or fully replaces one asset row.
func (r *AssetRepo) Put(ctx context.Context, a models.Asset) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO assets (id, name, type_id, subtype, description, serial_number, responsible_id, location_id, cost, status, created_at, updated_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   type_id = EXCLUDED.type_id,
		   subtype = EXCLUDED.subtype,
		   description = EXCLUDED.description,
		   serial_number = EXCLUDED.serial_number,
		   responsible_id = EXCLUDED.responsible_id,
		   location_id = EXCLUDED.location_id,
		   cost = EXCLUDED.cost,
		   status = EXCLUDED.status,
		   updated_at = EXCLUDED.updated_at`,
		a.ID, a.Name, a.TypeID, a.Subtype, a.Description, a.SerialNumber,
		a.ResponsibleID, a.LocationID, a.Cost, a.Status, a.CreatedAt, a.UpdatedAt, a.CreatedBy,
	)
	return err
}

// Remove deletes one asset row. Removing an absent row is not an error; the
// store already guards existence.
func (r *AssetRepo) Remove(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}

// NextID allocates the next asset id from the sequence.
func (r *AssetRepo) NextID(ctx context.Context) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx, `SELECT nextval('assets_id_seq')`).Scan(&id)
	return id, err
}
