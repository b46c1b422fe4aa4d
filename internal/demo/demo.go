// Package demo provides the seeded fixtures behind the DB-less file backend:
// in-memory catalogs and a hard-coded credential list, mirroring the original
// demo deployment. Not for production use.
package demo

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/inventariolab/inventario/internal/models"
	"github.com/inventariolab/inventario/internal/repo"
)

// Locations is an in-memory locations catalog.
type Locations struct {
	mu     sync.Mutex
	byID   map[int]models.Location
	nextID int
}

func NewLocations() *Locations {
	l := &Locations{byID: make(map[int]models.Location), nextID: 1}
	for _, name := range []string{"Office A", "Office B", "Warehouse"} {
		l.byID[l.nextID] = models.Location{ID: l.nextID, Name: name}
		l.nextID++
	}
	return l
}

func (l *Locations) List(ctx context.Context) ([]models.Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Location, 0, len(l.byID))
	for _, loc := range l.byID {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (l *Locations) Create(ctx context.Context, loc models.Location) (models.Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.byID {
		if existing.Name == loc.Name {
			return models.Location{}, repo.ErrConflict
		}
	}
	loc.ID = l.nextID
	l.nextID++
	l.byID[loc.ID] = loc
	return loc, nil
}

func (l *Locations) Update(ctx context.Context, id int, loc models.Location) (models.Location, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[id]; !ok {
		return models.Location{}, repo.ErrNotFound
	}
	loc.ID = id
	l.byID[id] = loc
	return loc, nil
}

func (l *Locations) Delete(ctx context.Context, id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(l.byID, id)
	return nil
}

// Types is an in-memory asset types catalog.
type Types struct {
	mu     sync.Mutex
	byID   map[int]models.AssetType
	nextID int
}

func NewTypes() *Types {
	t := &Types{byID: make(map[int]models.AssetType), nextID: 1}
	seed := []models.AssetType{
		{Name: "Laptop", Category: "Hardware"},
		{Name: "Monitor", Category: "Hardware"},
		{Name: "License", Category: "Software"},
		{Name: "Desk", Category: "Furniture"},
	}
	for _, at := range seed {
		at.ID = t.nextID
		t.byID[t.nextID] = at
		t.nextID++
	}
	return t
}

func (t *Types) List(ctx context.Context) ([]models.AssetType, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.AssetType, 0, len(t.byID))
	for _, at := range t.byID {
		out = append(out, at)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *Types) Create(ctx context.Context, at models.AssetType) (models.AssetType, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.byID {
		if existing.Name == at.Name {
			return models.AssetType{}, repo.ErrConflict
		}
	}
	at.ID = t.nextID
	t.nextID++
	t.byID[at.ID] = at
	return at, nil
}

func (t *Types) Update(ctx context.Context, id int, at models.AssetType) (models.AssetType, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return models.AssetType{}, repo.ErrNotFound
	}
	at.ID = id
	t.byID[id] = at
	return at, nil
}

func (t *Types) Delete(ctx context.Context, id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(t.byID, id)
	return nil
}

// Users holds the demo credential list. Passwords are bcrypt-hashed at
// startup so the login path is identical to the Postgres one.
type Users struct {
	mu     sync.Mutex
	byID   map[int]models.User
	nextID int
}

func NewUsers() (*Users, error) {
	u := &Users{byID: make(map[int]models.User), nextID: 1}
	seed := []struct {
		username, password, email, first, last, role string
	}{
		{"admin", "admin123", "admin@sistema.com", "Ana", "Admin", models.RoleAdmin},
		{"gerente", "gerente123", "gerente@sistema.com", "Gabriel", "Gerente", models.RoleManager},
		{"inventario", "inventario123", "inventario@sistema.com", "Ines", "Inventario", models.RoleInventory},
	}
	now := time.Now().UTC()
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.byID[u.nextID] = models.User{
			ID:           u.nextID,
			Username:     s.username,
			Email:        s.email,
			FirstName:    s.first,
			LastName:     s.last,
			Role:         s.role,
			PasswordHash: string(hash),
			CreatedAt:    now,
		}
		u.nextID++
	}
	return u, nil
}

func (u *Users) GetByID(ctx context.Context, id int) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return user, nil
}

func (u *Users) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (u *Users) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]models.User, 0, len(u.byID))
	for _, user := range u.byID {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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

func (u *Users) Count(ctx context.Context) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.byID), nil
}

func (u *Users) Create(ctx context.Context, user models.User, password string) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.byID {
		if existing.Username == user.Username {
			return models.User{}, repo.ErrConflict
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.ID = u.nextID
	u.nextID++
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now().UTC()
	u.byID[user.ID] = user
	return user, nil
}

func (u *Users) Update(ctx context.Context, id int, user models.User) (models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	existing, ok := u.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	for otherID, other := range u.byID {
		if otherID != id && other.Username == user.Username {
			return models.User{}, repo.ErrConflict
		}
	}
	existing.Username = user.Username
	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Role = user.Role
	u.byID[id] = existing
	return existing, nil
}

func (u *Users) Delete(ctx context.Context, id int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(u.byID, id)
	return nil
}
