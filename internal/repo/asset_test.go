package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/inventariolab/inventario/internal/models"
)

func assetRows(assets ...models.Asset) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "type_id", "subtype", "description", "serial_number",
		"responsible_id", "location_id", "cost", "status", "created_at", "updated_at", "created_by",
	})
	for _, a := range assets {
		rows.AddRow(a.ID, a.Name, a.TypeID, a.Subtype, a.Description, a.SerialNumber,
			a.ResponsibleID, a.LocationID, a.Cost, a.Status, a.CreatedAt, a.UpdatedAt, a.CreatedBy)
	}
	return rows
}

func TestAssetRepo_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM assets ORDER BY id`).
		WillReturnRows(assetRows(
			models.Asset{ID: 1, Name: "Laptop", TypeID: 1, ResponsibleID: 1, LocationID: 1, Cost: 1000, Status: "active", CreatedAt: now, UpdatedAt: now, CreatedBy: 1},
			models.Asset{ID: 2, Name: "Monitor", TypeID: 1, ResponsibleID: 2, LocationID: 1, Cost: 200, Status: "inactive", CreatedAt: now, UpdatedAt: now, CreatedBy: 1},
		))

	repo := NewAssetRepo(db)
	assets, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(assets) != 2 || assets[0].Name != "Laptop" || assets[1].Status != "inactive" {
		t.Errorf("unexpected assets: %+v", assets)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Put(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	a := models.Asset{
		ID: 7, Name: "Printer", TypeID: 2, ResponsibleID: 3, LocationID: 4,
		Cost: 300, Status: "active", CreatedAt: now, UpdatedAt: now, CreatedBy: 1,
	}

	mock.ExpectExec(`INSERT INTO assets .+ ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs(a.ID, a.Name, a.TypeID, a.Subtype, a.Description, a.SerialNumber,
			a.ResponsibleID, a.LocationID, a.Cost, a.Status, a.CreatedAt, a.UpdatedAt, a.CreatedBy).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewAssetRepo(db)
	if err := repo.Put(context.Background(), a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewAssetRepo(db)
	if err := repo.Remove(context.Background(), 7); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetRepo_NextID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT nextval\('assets_id_seq'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(42))

	repo := NewAssetRepo(db)
	id, err := repo.NextID(context.Background())
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if id != 42 {
		t.Errorf("id: got %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
