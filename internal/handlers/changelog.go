package handlers

import (
	"net/http"

	"github.com/inventariolab/inventario/internal/inventory"
)

// ChangelogHandler serves the cross-asset audit feed.
type ChangelogHandler struct {
	Ledger *inventory.Ledger
}

// ListChangelog returns recent change events, newest first.
// Query: limit (default 50, max 200), offset (default 0).
func (h *ChangelogHandler) ListChangelog(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r, 50, 200)

	events, err := h.Ledger.Recent(r.Context(), limit, offset)
	if err != nil {
		CoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
