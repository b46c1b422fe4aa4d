package models

import "time"

// Change event action kinds.
const (
	ActionCreated        = "created"
	ActionUpdated        = "updated"
	ActionRelocated      = "relocated"
	ActionCostUpdated    = "cost_updated"
	ActionStatusChanged  = "status_changed"
	ActionDecommissioned = "decommissioned"
)

// FieldDelta describes one changed attribute. Old and New keep the field's
// native type: strings for text fields, float64 for cost.
type FieldDelta struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// ChangeEvent is one immutable audit record of a mutation applied to an asset.
// Seq is the append order within the log; events for one asset are ordered by
// timestamp with Seq breaking ties.
type ChangeEvent struct {
	ID        string       `json:"id"`
	AssetID   int          `json:"asset_id"`
	Action    string       `json:"action"`
	Deltas    []FieldDelta `json:"changes"`
	UserID    int          `json:"user_id"`
	Username  string       `json:"username"`
	CreatedAt time.Time    `json:"created_at"`
	Seq       int64        `json:"-"`
}
