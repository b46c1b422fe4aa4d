package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inventariolab/inventario/internal/models"
)

// TypeDirectory is the asset types catalog behind the handler.
type TypeDirectory interface {
	List(ctx context.Context) ([]models.AssetType, error)
	Create(ctx context.Context, t models.AssetType) (models.AssetType, error)
	Update(ctx context.Context, id int, t models.AssetType) (models.AssetType, error)
	Delete(ctx context.Context, id int) error
}

type TypeHandler struct {
	Dir TypeDirectory
}

func (h *TypeHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Dir.List(r.Context())
	if err != nil {
		RepoError(w, err, "type")
		return
	}
	if types == nil {
		types = []models.AssetType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *TypeHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "required"
	}
	if input.Category == "" {
		fields["category"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	t, err := h.Dir.Create(r.Context(), models.AssetType{Name: input.Name, Category: input.Category, Description: input.Description})
	if err != nil {
		RepoError(w, err, "type")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TypeHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid type id", http.StatusBadRequest)
		return
	}

	var input struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		JSONValidationError(w, "validation failed", map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}

	t, err := h.Dir.Update(r.Context(), id, models.AssetType{Name: input.Name, Category: input.Category, Description: input.Description})
	if err != nil {
		RepoError(w, err, "type")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TypeHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid type id", http.StatusBadRequest)
		return
	}
	if err := h.Dir.Delete(r.Context(), id); err != nil {
		RepoError(w, err, "type")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
