package models

import "time"

// Asset statuses.
const (
	StatusActive         = "active"
	StatusInactive       = "inactive"
	StatusDecommissioned = "decommissioned"
)

// ValidStatus reports whether s is one of the defined asset statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusDecommissioned
}

type Asset struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	TypeID        int       `json:"type_id"`
	Subtype       string    `json:"subtype,omitempty"`
	Description   string    `json:"description,omitempty"`
	SerialNumber  string    `json:"serial_number,omitempty"`
	ResponsibleID int       `json:"responsible_id"`
	LocationID    int       `json:"location_id"`
	Cost          float64   `json:"cost"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     int       `json:"created_by"`
}
