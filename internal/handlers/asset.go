package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inventariolab/inventario/internal/inventory"
)

// AssetHandler serves the asset endpoints on top of the inventory store and
// its change ledger.
type AssetHandler struct {
	Store  *inventory.Store
	Ledger *inventory.Ledger
}

func assetID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

//
// ==========================
// Create Asset
// ==========================
//

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name          string  `json:"name" validate:"required,min=2,max=255"`
		TypeID        int     `json:"type_id" validate:"required,gt=0"`
		Subtype       string  `json:"subtype" validate:"max=255"`
		Description   string  `json:"description" validate:"max=1000"`
		SerialNumber  string  `json:"serial_number" validate:"max=255"`
		ResponsibleID int     `json:"responsible_id" validate:"required,gt=0"`
		LocationID    int     `json:"location_id" validate:"required,gt=0"`
		Cost          float64 `json:"cost" validate:"gte=0"`
		Status        string  `json:"status" validate:"omitempty,oneof=active inactive decommissioned"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.Store.Create(r.Context(), inventory.CreateAsset{
		Name:          input.Name,
		TypeID:        input.TypeID,
		Subtype:       input.Subtype,
		Description:   input.Description,
		SerialNumber:  input.SerialNumber,
		ResponsibleID: input.ResponsibleID,
		LocationID:    input.LocationID,
		Cost:          input.Cost,
		Status:        input.Status,
	}, requestActor(r))
	if err != nil {
		CoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, asset)
}

//
// ==========================
// List Assets
// ==========================
//

func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePage(r, 10, 200)

	q := r.URL.Query()
	f := inventory.Filter{
		Name:         q.Get("name"),
		SerialNumber: q.Get("serial_number"),
		Status:       q.Get("status"),
		Limit:        limit,
		Offset:       offset,
	}
	if v, err := strconv.Atoi(q.Get("type_id")); err == nil {
		f.TypeID = v
	}
	if v, err := strconv.Atoi(q.Get("location_id")); err == nil {
		f.LocationID = v
	}
	if v, err := strconv.Atoi(q.Get("responsible_id")); err == nil {
		f.ResponsibleID = v
	}

	assets, total := h.Store.List(f)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":  assets,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

//
// ==========================
// Get Asset
// ==========================
//

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	asset, ok := h.Store.Get(id)
	if !ok {
		JSONError(w, "asset not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

//
// ==========================
// Update Asset (partial)
// ==========================
//

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	// Pointers distinguish "absent" from "set to zero value".
	var input struct {
		Name          *string  `json:"name" validate:"omitempty,min=2,max=255"`
		TypeID        *int     `json:"type_id"`
		Subtype       *string  `json:"subtype" validate:"omitempty,max=255"`
		Description   *string  `json:"description" validate:"omitempty,max=1000"`
		SerialNumber  *string  `json:"serial_number" validate:"omitempty,max=255"`
		ResponsibleID *int     `json:"responsible_id"`
		LocationID    *int     `json:"location_id"`
		Cost          *float64 `json:"cost"`
		Status        *string  `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := inventory.Patch{
		Name:          input.Name,
		TypeID:        input.TypeID,
		Subtype:       input.Subtype,
		Description:   input.Description,
		SerialNumber:  input.SerialNumber,
		ResponsibleID: input.ResponsibleID,
		LocationID:    input.LocationID,
		Cost:          input.Cost,
		Status:        input.Status,
	}

	if err := h.Store.Update(r.Context(), id, patch, requestActor(r)); err != nil {
		CoreError(w, err)
		return
	}

	asset, _ := h.Store.Get(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"asset": asset})
}

//
// ==========================
// Relocate Asset
// ==========================
//

func (h *AssetHandler) RelocateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input struct {
		LocationID    int `json:"location_id" validate:"required,gt=0"`
		ResponsibleID int `json:"responsible_id" validate:"required,gt=0"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Store.Relocate(r.Context(), id, input.LocationID, input.ResponsibleID, requestActor(r)); err != nil {
		CoreError(w, err)
		return
	}

	asset, _ := h.Store.Get(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"asset": asset})
}

//
// ==========================
// Update Cost
// ==========================
//

func (h *AssetHandler) UpdateCost(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input struct {
		Cost float64 `json:"cost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Store.UpdateCost(r.Context(), id, input.Cost, requestActor(r)); err != nil {
		CoreError(w, err)
		return
	}

	asset, _ := h.Store.Get(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"asset": asset})
}

//
// ==========================
// Change Status
// ==========================
//

func (h *AssetHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.Store.ChangeStatus(r.Context(), id, input.Status, requestActor(r)); err != nil {
		CoreError(w, err)
		return
	}

	asset, _ := h.Store.Get(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"asset": asset})
}

//
// ==========================
// Delete Asset
// ==========================
//

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	if err := h.Store.Delete(r.Context(), id, requestActor(r)); err != nil {
		CoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//
// ==========================
// Asset History
// ==========================
//

func (h *AssetHandler) AssetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	events, err := h.Ledger.EventsFor(r.Context(), id)
	if err != nil {
		CoreError(w, err)
		return
	}

	// The ledger is oldest-first; the history view shows newest first.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	writeJSON(w, http.StatusOK, events)
}
