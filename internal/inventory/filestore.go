package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/inventariolab/inventario/internal/models"
)

// fileEvent carries the sequence number explicitly, since ChangeEvent keeps it
// out of API responses.
type fileEvent struct {
	models.ChangeEvent
	Seq int64 `json:"seq"`
}

// fileState is the on-disk layout: the whole table plus the event log in one
// JSON document, rewritten on every mutation. NextID and NextSeq only ever
// grow, so identifiers are never reissued after a delete or a restart.
type fileState struct {
	NextID  int            `json:"next_id"`
	NextSeq int64          `json:"next_seq"`
	Assets  []models.Asset `json:"assets"`
	Events  []fileEvent    `json:"events"`
}

// FileStore is a JSON-file TableStore and EventLog for running without a
// database (demo mode). Every write flushes the full state to disk before
// returning, so a failed flush surfaces to the caller and nothing is applied.
type FileStore struct {
	mu    sync.Mutex
	path  string
	state fileState
}

// OpenFileStore reads path, creating an empty store when the file does not
// exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, state: fileState{NextID: 1, NextSeq: 1}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store file: %w", err)
	}
	if err := json.Unmarshal(data, &fs.state); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	if fs.state.NextID < 1 {
		fs.state.NextID = 1
	}
	if fs.state.NextSeq < 1 {
		fs.state.NextSeq = 1
	}
	return fs, nil
}

// flush writes the state to a temp file and renames it over the target, so a
// crash mid-write cannot leave a truncated store behind.
func (f *FileStore) flush() error {
	data, err := json.MarshalIndent(&f.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Load(ctx context.Context) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Asset, len(f.state.Assets))
	copy(out, f.state.Assets)
	return out, nil
}

func (f *FileStore) Put(ctx context.Context, a models.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	replaced := false
	for i := range f.state.Assets {
		if f.state.Assets[i].ID == a.ID {
			f.state.Assets[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		f.state.Assets = append(f.state.Assets, a)
	}
	return f.flush()
}

func (f *FileStore) Remove(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.state.Assets {
		if f.state.Assets[i].ID == id {
			f.state.Assets = append(f.state.Assets[:i], f.state.Assets[i+1:]...)
			break
		}
	}
	return f.flush()
}

func (f *FileStore) NextID(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.state.NextID
	f.state.NextID++
	if err := f.flush(); err != nil {
		f.state.NextID = id
		return 0, err
	}
	return id, nil
}

func (f *FileStore) Append(ctx context.Context, e *models.ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.Seq = f.state.NextSeq
	f.state.NextSeq++
	f.state.Events = append(f.state.Events, fileEvent{ChangeEvent: *e, Seq: e.Seq})
	if err := f.flush(); err != nil {
		f.state.Events = f.state.Events[:len(f.state.Events)-1]
		f.state.NextSeq--
		return err
	}
	return nil
}

func (f *FileStore) ListByAsset(ctx context.Context, assetID int) ([]models.ChangeEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChangeEvent
	for _, fe := range f.state.Events {
		if fe.AssetID == assetID {
			e := fe.ChangeEvent
			e.Seq = fe.Seq
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FileStore) ListRecent(ctx context.Context, limit, offset int) ([]models.ChangeEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChangeEvent
	for i := len(f.state.Events) - 1; i >= 0; i-- {
		e := f.state.Events[i].ChangeEvent
		e.Seq = f.state.Events[i].Seq
		out = append(out, e)
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
