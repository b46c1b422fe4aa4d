package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inventariolab/inventario/internal/models"
)

// LocationDirectory is the locations catalog the handler reads and writes.
// Implemented by repo.LocationRepo (Postgres) and demo.Locations (file mode).
type LocationDirectory interface {
	List(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, l models.Location) (models.Location, error)
	Update(ctx context.Context, id int, l models.Location) (models.Location, error)
	Delete(ctx context.Context, id int) error
}

type LocationHandler struct {
	Dir LocationDirectory
}

func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Dir.List(r.Context())
	if err != nil {
		RepoError(w, err, "location")
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string `json:"name"`
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

	loc, err := h.Dir.Create(r.Context(), models.Location{Name: input.Name, Description: input.Description})
	if err != nil {
		RepoError(w, err, "location")
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid location id", http.StatusBadRequest)
		return
	}

	var input struct {
		Name        string `json:"name"`
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

	loc, err := h.Dir.Update(r.Context(), id, models.Location{Name: input.Name, Description: input.Description})
	if err != nil {
		RepoError(w, err, "location")
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid location id", http.StatusBadRequest)
		return
	}
	if err := h.Dir.Delete(r.Context(), id); err != nil {
		RepoError(w, err, "location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
