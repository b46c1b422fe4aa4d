package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inventariolab/inventario/internal/demo"
	"github.com/inventariolab/inventario/internal/models"
)

func newUserHandler(t *testing.T) *UserHandler {
	t.Helper()
	users, err := demo.NewUsers()
	if err != nil {
		t.Fatalf("demo.NewUsers: %v", err)
	}
	return &UserHandler{Dir: users}
}

func TestUserHandler_Update_KeepsRoleWhenOmitted(t *testing.T) {
	h := newUserHandler(t)

	// Seeded user 1 is the admin. A patch without "role" must not touch it.
	body, _ := json.Marshal(map[string]string{
		"username": "admin",
		"email":    "nuevo@sistema.com",
	})
	req := authedRequest("PATCH", "/v1/users/1", body, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.UpdateUser(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body)
	}

	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleAdmin)
	}
	if user.Email != "nuevo@sistema.com" {
		t.Errorf("email not applied: %+v", user)
	}

	got, err := h.Dir.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("stored role: got %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestUserHandler_Update_RejectsUnknownRole(t *testing.T) {
	h := newUserHandler(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "role": "superuser"})
	req := authedRequest("PATCH", "/v1/users/1", body, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.UpdateUser(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestUserHandler_Update_DuplicateUsername(t *testing.T) {
	h := newUserHandler(t)

	// Renaming user 2 to the admin's username must conflict, as it would in
	// Postgres.
	body, _ := json.Marshal(map[string]string{"username": "admin"})
	req := authedRequest("PATCH", "/v1/users/2", body, map[string]string{"id": "2"})
	rr := httptest.NewRecorder()
	h.UpdateUser(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409 (%s)", rr.Code, rr.Body)
	}

	got, err := h.Dir.GetByUsername(context.Background(), "gerente")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != 2 {
		t.Errorf("user 2 renamed despite conflict: %+v", got)
	}
}

func TestUserHandler_Update_NotFound(t *testing.T) {
	h := newUserHandler(t)

	body, _ := json.Marshal(map[string]string{"username": "ghost"})
	req := authedRequest("PATCH", "/v1/users/999", body, map[string]string{"id": "999"})
	rr := httptest.NewRecorder()
	h.UpdateUser(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}
