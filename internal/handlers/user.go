package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inventariolab/inventario/internal/models"
)

// UserDirectory is the user catalog behind both the user endpoints and login.
// Implemented by repo.UserRepo (Postgres) and demo.Users (file mode).
type UserDirectory interface {
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, u models.User, password string) (models.User, error)
	Update(ctx context.Context, id int, u models.User) (models.User, error)
	Delete(ctx context.Context, id int) error
}

type UserHandler struct {
	Dir UserDirectory
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r, 50, 200)

	users, err := h.Dir.List(r.Context(), limit, offset)
	if err != nil {
		RepoError(w, err, "user")
		return
	}
	total, err := h.Dir.Count(r.Context())
	if err != nil {
		RepoError(w, err, "user")
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.Dir.GetByID(r.Context(), id)
	if err != nil {
		RepoError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	role := input.Role
	if role == "" {
		role = models.RoleInventory
	}
	if !models.ValidRole(role) {
		fields["role"] = "must be admin, manager or inventory"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Dir.Create(r.Context(), models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
	}, input.Password)
	if err != nil {
		RepoError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var input struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if input.Role != "" && !models.ValidRole(input.Role) {
		fields["role"] = "must be admin, manager or inventory"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	// An omitted role keeps the user's current one.
	role := input.Role
	if role == "" {
		existing, err := h.Dir.GetByID(r.Context(), id)
		if err != nil {
			RepoError(w, err, "user")
			return
		}
		role = existing.Role
	}

	user, err := h.Dir.Update(r.Context(), id, models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
	})
	if err != nil {
		RepoError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.Dir.Delete(r.Context(), id); err != nil {
		RepoError(w, err, "user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
