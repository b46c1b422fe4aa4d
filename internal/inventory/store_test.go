package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/inventariolab/inventario/internal/models"
)

var testActor = Actor{ID: 1, Username: "juan"}

func newTestStore(t *testing.T) (*Store, *Ledger, *MemStore) {
	t.Helper()
	mem := NewMemStore()
	s, err := NewStore(context.Background(), mem, mem)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, NewLedger(mem), mem
}

func createLaptop(t *testing.T, s *Store) models.Asset {
	t.Helper()
	a, err := s.Create(context.Background(), CreateAsset{
		Name:          "Laptop",
		TypeID:        2,
		ResponsibleID: 3,
		LocationID:    4,
		Cost:          1000,
	}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func TestStore_Create(t *testing.T) {
	s, ledger, _ := newTestStore(t)

	a := createLaptop(t, s)
	if a.ID == 0 {
		t.Error("expected assigned id")
	}
	if a.Status != models.StatusActive {
		t.Errorf("status: got %q, want active", a.Status)
	}
	if a.CreatedBy != testActor.ID {
		t.Errorf("created_by: got %d, want %d", a.CreatedBy, testActor.ID)
	}
	if a.UpdatedAt.Before(a.CreatedAt) {
		t.Error("updated_at before created_at")
	}

	b := createLaptop(t, s)
	if b.ID == a.ID {
		t.Errorf("id %d issued twice", a.ID)
	}

	events, err := ledger.EventsFor(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("EventsFor: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events: got %d, want 1", len(events))
	}
	e := events[0]
	if e.Action != models.ActionCreated {
		t.Errorf("action: got %q, want created", e.Action)
	}
	if len(e.Deltas) != 1 || e.Deltas[0].Field != "asset" || e.Deltas[0].Old != "" || e.Deltas[0].New != "Laptop" {
		t.Errorf("unexpected deltas: %+v", e.Deltas)
	}
	if e.Username != "juan" {
		t.Errorf("username: got %q", e.Username)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateAsset
	}{
		{"missing name", CreateAsset{TypeID: 1, ResponsibleID: 1, LocationID: 1}},
		{"missing type", CreateAsset{Name: "x", ResponsibleID: 1, LocationID: 1}},
		{"missing responsible", CreateAsset{Name: "x", TypeID: 1, LocationID: 1}},
		{"missing location", CreateAsset{Name: "x", TypeID: 1, ResponsibleID: 1}},
		{"negative cost", CreateAsset{Name: "x", TypeID: 1, ResponsibleID: 1, LocationID: 1, Cost: -1}},
		{"bad status", CreateAsset{Name: "x", TypeID: 1, ResponsibleID: 1, LocationID: 1, Status: "broken"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.in, testActor)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("got %v, want ValidationError", err)
			}
		})
	}
}

func TestStore_Create_RequiresActor(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.Create(context.Background(), CreateAsset{Name: "x", TypeID: 1, ResponsibleID: 1, LocationID: 1}, Actor{})
	var ae *AuthorizationError
	if !errors.As(err, &ae) {
		t.Errorf("got %v, want AuthorizationError", err)
	}
}

func TestStore_Update_NoOp(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()
	a := createLaptop(t, s)

	name := "Laptop"
	cost := 1000.0
	if err := s.Update(ctx, a.ID, Patch{Name: &name, Cost: &cost}, testActor); err != nil {
		t.Fatalf("Update: %v", err)
	}

	events, _ := ledger.EventsFor(ctx, a.ID)
	if len(events) != 1 {
		t.Errorf("no-op update appended an event: %d events", len(events))
	}
	got, _ := s.Get(a.ID)
	if !got.UpdatedAt.Equal(a.UpdatedAt) {
		t.Error("no-op update bumped updated_at")
	}
}

func TestStore_Update_Deltas(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()
	a := createLaptop(t, s)

	name := "Workstation"
	desc := "dev machine"
	if err := s.Update(ctx, a.ID, Patch{Name: &name, Description: &desc}, testActor); err != nil {
		t.Fatalf("Update: %v", err)
	}

	events, _ := ledger.EventsFor(ctx, a.ID)
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	e := events[1]
	if e.Action != models.ActionUpdated {
		t.Errorf("action: got %q, want updated", e.Action)
	}
	if len(e.Deltas) != 2 {
		t.Fatalf("deltas: got %d, want 2", len(e.Deltas))
	}
	byField := map[string]models.FieldDelta{}
	for _, d := range e.Deltas {
		byField[d.Field] = d
	}
	if d := byField["name"]; d.Old != "Laptop" || d.New != "Workstation" {
		t.Errorf("name delta: %+v", d)
	}
	if d := byField["description"]; d.Old != "" || d.New != "dev machine" {
		t.Errorf("description delta: %+v", d)
	}

	got, _ := s.Get(a.ID)
	if got.Name != "Workstation" || got.Description != "dev machine" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	s, _, _ := newTestStore(t)
	name := "x"
	err := s.Update(context.Background(), 999, Patch{Name: &name}, testActor)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("got %v, want NotFoundError", err)
	}
}

func TestStore_UpdateCost(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()
	a := createLaptop(t, s)

	if err := s.UpdateCost(ctx, a.ID, 1250.50, testActor); err != nil {
		t.Fatalf("UpdateCost: %v", err)
	}

	events, _ := ledger.EventsFor(ctx, a.ID)
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	e := events[1]
	if e.Action != models.ActionCostUpdated {
		t.Errorf("action: got %q, want cost_updated", e.Action)
	}
	if len(e.Deltas) != 1 {
		t.Fatalf("deltas: got %d, want 1", len(e.Deltas))
	}
	// Cost deltas keep their numeric type.
	if old, ok := e.Deltas[0].Old.(float64); !ok || old != 1000 {
		t.Errorf("old cost: %v (%T)", e.Deltas[0].Old, e.Deltas[0].Old)
	}
	if newV, ok := e.Deltas[0].New.(float64); !ok || newV != 1250.50 {
		t.Errorf("new cost: %v (%T)", e.Deltas[0].New, e.Deltas[0].New)
	}
}

func TestStore_UpdateCost_NegativeRejected(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()
	a := createLaptop(t, s)

	err := s.UpdateCost(ctx, a.ID, -5, testActor)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}

	got, _ := s.Get(a.ID)
	if got.Cost != 1000 {
		t.Errorf("cost changed after rejected update: %v", got.Cost)
	}
	events, _ := ledger.EventsFor(ctx, a.ID)
	if len(events) != 1 {
		t.Errorf("ledger changed after rejected update: %d events", len(events))
	}
}

func TestStore_ChangeStatus_Idempotent(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()
	a := createLaptop(t, s)

	if err := s.ChangeStatus(ctx, a.ID, models.StatusInactive, testActor); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if err := s.ChangeStatus(ctx, a.ID, models.StatusInactive, testActor); err != nil {
		t.Fatalf("ChangeStatus (repeat): %v", err)
	}

	events, _ := ledger.EventsFor(ctx, a.ID)
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2 (created + one status_changed)", len(events))
	}
	if events[1].Action != models.ActionStatusChanged {
		t.Errorf("action: got %q, want status_changed", events[1].Action)
	}

	err := s.ChangeStatus(ctx, a.ID, "retired", testActor)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("got %v, want ValidationError for unknown status", err)
	}
}

func TestStore_Delete_KeepsHistory(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()
	a := createLaptop(t, s)

	if err := s.ChangeStatus(ctx, a.ID, models.StatusInactive, testActor); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if err := s.Delete(ctx, a.ID, testActor); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := s.Get(a.ID); ok {
		t.Error("asset still readable after delete")
	}
	if assets, total := s.List(Filter{}); total != 0 || len(assets) != 0 {
		t.Errorf("list after delete: %d assets", total)
	}

	events, err := ledger.EventsFor(ctx, a.ID)
	if err != nil {
		t.Fatalf("EventsFor: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events: got %d, want 3", len(events))
	}
	last := events[2]
	if last.Action != models.ActionDecommissioned {
		t.Errorf("action: got %q, want decommissioned", last.Action)
	}
	if len(last.Deltas) != 1 || last.Deltas[0].Field != "status" ||
		last.Deltas[0].Old != models.StatusInactive || last.Deltas[0].New != "deleted" {
		t.Errorf("unexpected delta: %+v", last.Deltas)
	}

	err = s.Delete(ctx, a.ID, testActor)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("second delete: got %v, want NotFoundError", err)
	}
}

func TestStore_RelocateScenario(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, CreateAsset{
		Name:          "Laptop",
		TypeID:        1,
		ResponsibleID: 10, // Juan
		LocationID:    20, // Office A
		Cost:          1000,
	}, testActor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Move to Office B under Maria.
	if err := s.Relocate(ctx, a.ID, 21, 11, testActor); err != nil {
		t.Fatalf("Relocate: %v", err)
	}

	events, _ := ledger.EventsFor(ctx, a.ID)
	if len(events) != 2 {
		t.Fatalf("events: got %d, want 2", len(events))
	}
	if events[0].Action != models.ActionCreated {
		t.Errorf("first action: got %q, want created", events[0].Action)
	}
	e := events[1]
	if e.Action != models.ActionRelocated {
		t.Errorf("second action: got %q, want relocated", e.Action)
	}
	fields := map[string]bool{}
	for _, d := range e.Deltas {
		fields[d.Field] = true
	}
	if len(e.Deltas) != 2 || !fields["location"] || !fields["responsible"] {
		t.Errorf("relocate deltas: %+v", e.Deltas)
	}

	// Relocating to the same place is a no-op.
	if err := s.Relocate(ctx, a.ID, 21, 11, testActor); err != nil {
		t.Fatalf("Relocate (no-op): %v", err)
	}
	events, _ = ledger.EventsFor(ctx, a.ID)
	if len(events) != 2 {
		t.Errorf("no-op relocate appended an event: %d events", len(events))
	}
}

func TestLedger_EventsFor_Unknown(t *testing.T) {
	_, ledger, _ := newTestStore(t)
	events, err := ledger.EventsFor(context.Background(), 424242)
	if err != nil {
		t.Fatalf("EventsFor: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty slice, got %v", events)
	}
}

func TestStore_OnEventHook(t *testing.T) {
	s, _, _ := newTestStore(t)
	var seen []string
	s.OnEvent = func(e models.ChangeEvent) { seen = append(seen, e.Action) }

	a := createLaptop(t, s)
	if err := s.UpdateCost(context.Background(), a.ID, 900, testActor); err != nil {
		t.Fatalf("UpdateCost: %v", err)
	}
	if len(seen) != 2 || seen[0] != models.ActionCreated || seen[1] != models.ActionCostUpdated {
		t.Errorf("hook calls: %v", seen)
	}
}

func TestStore_ListFilters(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	mk := func(name string, loc int, status string) {
		a, err := s.Create(ctx, CreateAsset{Name: name, TypeID: 1, ResponsibleID: 1, LocationID: loc}, testActor)
		if err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		if status != models.StatusActive {
			if err := s.ChangeStatus(ctx, a.ID, status, testActor); err != nil {
				t.Fatalf("ChangeStatus %s: %v", name, err)
			}
		}
	}
	mk("Laptop A", 1, models.StatusActive)
	mk("Laptop B", 2, models.StatusInactive)
	mk("Monitor", 1, models.StatusActive)

	if got, total := s.List(Filter{Name: "laptop"}); total != 2 || len(got) != 2 {
		t.Errorf("name filter: total=%d len=%d", total, len(got))
	}
	if got, total := s.List(Filter{LocationID: 1}); total != 2 || len(got) != 2 {
		t.Errorf("location filter: total=%d len=%d", total, len(got))
	}
	if got, total := s.List(Filter{Status: models.StatusInactive}); total != 1 || got[0].Name != "Laptop B" {
		t.Errorf("status filter: total=%d %+v", total, got)
	}
	if got, total := s.List(Filter{Limit: 2, Offset: 2}); total != 3 || len(got) != 1 {
		t.Errorf("paging: total=%d len=%d", total, len(got))
	}

	counts := s.CountByStatus()
	if counts[models.StatusActive] != 2 || counts[models.StatusInactive] != 1 {
		t.Errorf("counts: %v", counts)
	}
}
