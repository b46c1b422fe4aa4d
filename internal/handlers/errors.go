package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inventariolab/inventario/internal/inventory"
	"github.com/inventariolab/inventario/internal/repo"
)

// ErrMessageInternal is the generic message for 500 responses. Internal
// details never reach clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends "error" plus field-level details under "fields".
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// CoreError maps the inventory error taxonomy onto HTTP statuses. Anything
// unrecognized (persistence failures included) becomes a logged 500.
func CoreError(w http.ResponseWriter, err error) {
	var ve *inventory.ValidationError
	if errors.As(err, &ve) {
		JSONValidationError(w, "validation failed", map[string]string{ve.Field: ve.Reason}, http.StatusBadRequest)
		return
	}
	var nf *inventory.NotFoundError
	if errors.As(err, &nf) {
		JSONError(w, "asset not found", http.StatusNotFound)
		return
	}
	var ae *inventory.AuthorizationError
	if errors.As(err, &ae) {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	slog.Error("request failed", "error", err)
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}

// RepoError maps catalog repository errors onto HTTP statuses.
func RepoError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, resource+" not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrConflict):
		JSONError(w, resource+" conflicts with existing data", http.StatusConflict)
	default:
		slog.Error("request failed", "resource", resource, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
