package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inventariolab/inventario/internal/models"
)

// TableStore persists the current asset table, keyed by asset id. NextID hands
// out identifiers that are never reissued, even across restarts and deletes.
type TableStore interface {
	Load(ctx context.Context) ([]models.Asset, error)
	Put(ctx context.Context, a models.Asset) error
	Remove(ctx context.Context, id int) error
	NextID(ctx context.Context) (int, error)
}

// EventLog is the append-only change log. Events are immutable once appended
// and outlive the assets they describe.
type EventLog interface {
	Append(ctx context.Context, e *models.ChangeEvent) error
	ListByAsset(ctx context.Context, assetID int) ([]models.ChangeEvent, error)
	ListRecent(ctx context.Context, limit, offset int) ([]models.ChangeEvent, error)
}

// Actor identifies who performed a mutation. Every mutation requires one.
type Actor struct {
	ID       int
	Username string
}

// CreateAsset is the input for Store.Create.
type CreateAsset struct {
	Name          string
	TypeID        int
	Subtype       string
	Description   string
	SerialNumber  string
	ResponsibleID int
	LocationID    int
	Cost          float64
	Status        string
}

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	Name          string
	SerialNumber  string
	TypeID        int
	LocationID    int
	ResponsibleID int
	Status        string
	Limit         int
	Offset        int
}

// Store owns the authoritative asset table. All mutations run through one
// diff-and-record pipeline: compute the field-level delta, persist the row,
// then append at most one change event. Mutations are serialized by the store
// lock; ledger reads may run concurrently with unrelated writes.
type Store struct {
	mu     sync.RWMutex
	table  TableStore
	log    EventLog
	assets map[int]models.Asset

	// OnEvent, when set, observes every committed change event. Set it before
	// the store starts serving; it is called with the store lock held.
	OnEvent func(models.ChangeEvent)

	now        func() time.Time
	newEventID func() string
}

// NewStore loads the asset table from ts and returns a ready store.
func NewStore(ctx context.Context, ts TableStore, log EventLog) (*Store, error) {
	assets, err := ts.Load(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[int]models.Asset, len(assets))
	for _, a := range assets {
		m[a.ID] = a
	}
	return &Store{
		table:      ts,
		log:        log,
		assets:     m,
		now:        time.Now,
		newEventID: uuid.NewString,
	}, nil
}

func (s *Store) record(ctx context.Context, assetID int, action string, deltas []models.FieldDelta, actor Actor) error {
	e := models.ChangeEvent{
		ID:        s.newEventID(),
		AssetID:   assetID,
		Action:    action,
		Deltas:    deltas,
		UserID:    actor.ID,
		Username:  actor.Username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.log.Append(ctx, &e); err != nil {
		return err
	}
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
	return nil
}

// Create validates the input, assigns an identifier and timestamps, persists
// the new asset, and records a "created" event.
func (s *Store) Create(ctx context.Context, in CreateAsset, actor Actor) (models.Asset, error) {
	if actor.ID == 0 {
		return models.Asset{}, &AuthorizationError{}
	}
	if in.Name == "" {
		return models.Asset{}, &ValidationError{Field: "name", Reason: "required"}
	}
	if in.TypeID <= 0 {
		return models.Asset{}, &ValidationError{Field: "type", Reason: "required"}
	}
	if in.ResponsibleID <= 0 {
		return models.Asset{}, &ValidationError{Field: "responsible", Reason: "required"}
	}
	if in.LocationID <= 0 {
		return models.Asset{}, &ValidationError{Field: "location", Reason: "required"}
	}
	if in.Cost < 0 {
		return models.Asset{}, &ValidationError{Field: "cost", Reason: "must be non-negative"}
	}
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}
	if !models.ValidStatus(status) {
		return models.Asset{}, &ValidationError{Field: "status", Reason: "must be active, inactive or decommissioned"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.table.NextID(ctx)
	if err != nil {
		return models.Asset{}, err
	}

	now := s.now().UTC()
	a := models.Asset{
		ID:            id,
		Name:          in.Name,
		TypeID:        in.TypeID,
		Subtype:       in.Subtype,
		Description:   in.Description,
		SerialNumber:  in.SerialNumber,
		ResponsibleID: in.ResponsibleID,
		LocationID:    in.LocationID,
		Cost:          in.Cost,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actor.ID,
	}

	if err := s.table.Put(ctx, a); err != nil {
		return models.Asset{}, err
	}
	s.assets[id] = a

	deltas := []models.FieldDelta{{Field: "asset", Old: "", New: a.Name}}
	if err := s.record(ctx, id, models.ActionCreated, deltas, actor); err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

// Update applies a partial update through the diff pipeline and records an
// "updated" event when at least one field actually changed.
func (s *Store) Update(ctx context.Context, id int, p Patch, actor Actor) error {
	return s.mutate(ctx, id, p, models.ActionUpdated, actor)
}

// Relocate moves an asset to a new location and responsible party. It records
// a "relocated" event instead of a generic "updated" one, and nothing at all
// when neither field changed.
func (s *Store) Relocate(ctx context.Context, id, newLocation, newResponsible int, actor Actor) error {
	p := Patch{LocationID: &newLocation, ResponsibleID: &newResponsible}
	return s.mutate(ctx, id, p, models.ActionRelocated, actor)
}

// UpdateCost sets a new cost; the "cost_updated" event carries numeric old and
// new values.
func (s *Store) UpdateCost(ctx context.Context, id int, newCost float64, actor Actor) error {
	p := Patch{Cost: &newCost}
	return s.mutate(ctx, id, p, models.ActionCostUpdated, actor)
}

// ChangeStatus transitions the asset status, recording "status_changed" when
// the status actually differs.
func (s *Store) ChangeStatus(ctx context.Context, id int, newStatus string, actor Actor) error {
	p := Patch{Status: &newStatus}
	return s.mutate(ctx, id, p, models.ActionStatusChanged, actor)
}

// mutate is the single pipeline behind Update and its specializations. The
// action kind is stamped by the caller, so a specialized mutation never also
// emits a generic "updated" event.
func (s *Store) mutate(ctx context.Context, id int, p Patch, action string, actor Actor) error {
	if actor.ID == 0 {
		return &AuthorizationError{}
	}
	if err := p.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok {
		return &NotFoundError{ID: id}
	}

	deltas, changed := diff(&a, &p)
	if len(deltas) == 0 {
		// No observable change: nothing is persisted and no event is logged.
		return nil
	}

	for _, f := range changed {
		f.apply(&a, &p)
	}
	// UpdatedAt never goes backwards, even if the clock does.
	if now := s.now().UTC(); now.After(a.UpdatedAt) {
		a.UpdatedAt = now
	}

	if err := s.table.Put(ctx, a); err != nil {
		return err
	}
	s.assets[id] = a

	return s.record(ctx, id, action, deltas, actor)
}

// Delete removes the asset from the live table. The terminal "decommissioned"
// event is appended first, so the ledger keeps the asset's full history after
// it is gone.
func (s *Store) Delete(ctx context.Context, id int, actor Actor) error {
	if actor.ID == 0 {
		return &AuthorizationError{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.assets[id]
	if !ok {
		return &NotFoundError{ID: id}
	}

	deltas := []models.FieldDelta{{Field: "status", Old: a.Status, New: "deleted"}}
	if err := s.record(ctx, id, models.ActionDecommissioned, deltas, actor); err != nil {
		return err
	}

	if err := s.table.Remove(ctx, id); err != nil {
		return err
	}
	delete(s.assets, id)
	return nil
}

// Get returns the current record for id.
func (s *Store) Get(id int) (models.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	return a, ok
}

// List returns assets matching f ordered by id, plus the total match count
// before limit/offset.
func (s *Store) List(f Filter) ([]models.Asset, int) {
	s.mu.RLock()
	var matched []models.Asset
	for _, a := range s.assets {
		if matches(a, f) {
			matched = append(matched, a)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[f.Offset:]
		}
	}
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total
}

// CountByStatus returns the number of live assets per status.
func (s *Store) CountByStatus() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, 3)
	for _, a := range s.assets {
		out[a.Status]++
	}
	return out
}

func matches(a models.Asset, f Filter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.SerialNumber != "" && a.SerialNumber != f.SerialNumber {
		return false
	}
	if f.TypeID != 0 && a.TypeID != f.TypeID {
		return false
	}
	if f.LocationID != 0 && a.LocationID != f.LocationID {
		return false
	}
	if f.ResponsibleID != 0 && a.ResponsibleID != f.ResponsibleID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}
