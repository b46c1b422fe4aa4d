package inventory

import (
	"context"
	"sync"

	"github.com/inventariolab/inventario/internal/models"
)

// MemStore is an in-memory TableStore and EventLog. It backs tests and any
// caller that wants store semantics without durability.
type MemStore struct {
	mu     sync.Mutex
	assets map[int]models.Asset
	events []models.ChangeEvent
	nextID int
	seq    int64
}

func NewMemStore() *MemStore {
	return &MemStore{assets: make(map[int]models.Asset), nextID: 1}
}

func (m *MemStore) Load(ctx context.Context) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		out = append(out, a)
	}
	return out, nil
}

func (m *MemStore) Put(ctx context.Context, a models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[a.ID] = a
	return nil
}

func (m *MemStore) Remove(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assets, id)
	return nil
}

func (m *MemStore) NextID(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return id, nil
}

func (m *MemStore) Append(ctx context.Context, e *models.ChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.Seq = m.seq
	m.events = append(m.events, *e)
	return nil
}

func (m *MemStore) ListByAsset(ctx context.Context, assetID int) ([]models.ChangeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ChangeEvent
	for _, e := range m.events {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemStore) ListRecent(ctx context.Context, limit, offset int) ([]models.ChangeEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ChangeEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		out = append(out, m.events[i])
	}
	if offset > 0 {
		if offset >= len(out) {
			out = nil
		} else {
			out = out[offset:]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
