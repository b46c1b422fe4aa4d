package models

// Location is a physical place an asset can be assigned to.
type Location struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AssetType is a category an asset belongs to (hardware, software, furniture...).
type AssetType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}
