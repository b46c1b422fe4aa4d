package handlers

import (
	"net/http"
	"strconv"

	"github.com/inventariolab/inventario/internal/inventory"
	"github.com/inventariolab/inventario/internal/middleware"
)

// requestActor builds the acting identity from the JWT claims the middleware
// stored in the context. The zero Actor makes the store reject the mutation
// with an AuthorizationError, so missing identity fails closed.
func requestActor(r *http.Request) inventory.Actor {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		return inventory.Actor{}
	}
	username, _ := middleware.GetUsername(r.Context())
	return inventory.Actor{ID: id, Username: username}
}

// parsePage reads limit/offset query params with bounds.
func parsePage(r *http.Request, defLimit, maxLimit int) (limit, offset int) {
	limit = defLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= maxLimit {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
