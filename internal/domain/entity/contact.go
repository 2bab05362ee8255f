package entity

import "strings"

// Record Status
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusUnknown = "unknown"
)

// ContactRecord is the canonical contact unit after normalization.
// Records are immutable once constructed; a department change builds a
// fresh set instead of mutating the old one.
type ContactRecord struct {
	Department  string         `json:"department"`
	Kind        DepartmentKind `json:"kind"`
	City        string         `json:"city"`
	Country     string         `json:"country,omitempty"`
	Iata        string         `json:"iata,omitempty"`
	Emails      []string       `json:"emails"`
	Phones      []string       `json:"phones"`
	Hours       string         `json:"hours,omitempty"`
	Address     string         `json:"address,omitempty"`
	Status      string         `json:"status"`
	MapURL      string         `json:"mapUrl,omitempty"`
	MapImageURL string         `json:"mapImageUrl,omitempty"`
}

// Key returns the deterministic selection key for the record.
// Location-kind records key on city|country|iata, simple-kind records on
// the city alone. Missing components render as empty strings, so two
// location records with identical city/country/iata share a key.
func (r *ContactRecord) Key() string {
	if r.Kind == KindLocation {
		return strings.ToLower(r.City + "|" + r.Country + "|" + r.Iata)
	}
	return strings.ToLower(r.City)
}

// Label returns the display label, "City (Country)" when a country is
// known and the bare city otherwise.
func (r *ContactRecord) Label() string {
	if r.Country != "" {
		return r.City + " (" + r.Country + ")"
	}
	return r.City
}

// NormalizeStatus maps raw status strings onto the known set.
func NormalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StatusOnline:
		return StatusOnline
	case StatusOffline:
		return StatusOffline
	default:
		return StatusUnknown
	}
}
