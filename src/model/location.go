package model

// LocationRecord is a device or manually entered location.
// Accuracy is in meters and optional.
type LocationRecord struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}
