package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/inventariolab/inventario/internal/models"
)

func TestTypeRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, category, COALESCE\(description,''\) FROM asset_types ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "description"}).
			AddRow(1, "Laptop", "Hardware", "").
			AddRow(2, "License", "Software", "annual"))

	repo := NewTypeRepo(db)
	types, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(types) != 2 || types[1].Category != "Software" {
		t.Errorf("unexpected types: %+v", types)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTypeRepo_Update_DuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE asset_types SET name = \$1, category = \$2, description = \$3 WHERE id = \$4 RETURNING id`).
		WithArgs("Laptop", "Hardware", "", 2).
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewTypeRepo(db)
	_, err = repo.Update(context.Background(), 2, models.AssetType{Name: "Laptop", Category: "Hardware"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("got %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTypeRepo_Delete_Referenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM asset_types WHERE id = \$1`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503"})

	repo := NewTypeRepo(db)
	err = repo.Delete(context.Background(), 1)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("got %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
