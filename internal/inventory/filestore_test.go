package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inventariolab/inventario/internal/models"
)

func TestFileStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}

	s, err := NewStore(ctx, fs, fs)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a, err := s.Create(ctx, CreateAsset{Name: "Printer", TypeID: 1, ResponsibleID: 1, LocationID: 1, Cost: 300}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.UpdateCost(ctx, a.ID, 250, testActor); err != nil {
		t.Fatalf("UpdateCost: %v", err)
	}

	// Reopen from disk: table and ledger survive.
	fs2, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2, err := NewStore(ctx, fs2, fs2)
	if err != nil {
		t.Fatalf("NewStore (reopen): %v", err)
	}
	got, ok := s2.Get(a.ID)
	if !ok {
		t.Fatal("asset lost across reopen")
	}
	if got.Cost != 250 || got.Name != "Printer" {
		t.Errorf("unexpected asset after reopen: %+v", got)
	}

	events, err := NewLedger(fs2).EventsFor(ctx, a.ID)
	if err != nil {
		t.Fatalf("EventsFor: %v", err)
	}
	if len(events) != 2 || events[0].Action != models.ActionCreated || events[1].Action != models.ActionCostUpdated {
		t.Errorf("unexpected events after reopen: %+v", events)
	}
}

func TestFileStore_NeverReissuesIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	s, err := NewStore(ctx, fs, fs)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a, err := s.Create(ctx, CreateAsset{Name: "Desk", TypeID: 1, ResponsibleID: 1, LocationID: 1}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, a.ID, testActor); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Even after deleting the only asset and reopening, the next id moves on.
	fs2, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	id, err := fs2.NextID(ctx)
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if id <= a.ID {
		t.Errorf("id %d reissued (previous max %d)", id, a.ID)
	}
}
