package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus labels how sales-ready a scored business is.
type LeadStatus string

// Lead status tiers, ordered from most to least qualified.
const (
	LeadStatusHot         LeadStatus = "hot"
	LeadStatusWarm        LeadStatus = "warm"
	LeadStatusCold        LeadStatus = "cold"
	LeadStatusUnqualified LeadStatus = "unqualified"
)

// RegistryInfo is a point-in-time company-registry snapshot embedded into a
// business at creation time. It is never refreshed afterwards.
type RegistryInfo struct {
	Name              string `json:"name,omitempty"`
	Status            string `json:"status,omitempty"`
	Address           string `json:"address,omitempty"`
	IncorporationDate string `json:"incorporation_date,omitempty"`
}

// Empty reports whether the snapshot carries no registry data at all.
func (r RegistryInfo) Empty() bool {
	return r.Name == "" && r.Status == "" && r.Address == "" && r.IncorporationDate == ""
}

// Business represents one scored lead. Latitude and longitude are always
// present on a stored record; Name is non-empty.
type Business struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Address      string        `json:"address"`
	Phone        *string       `json:"phone,omitempty"`
	Website      *string       `json:"website,omitempty"`
	Email        *string       `json:"email,omitempty"`
	Latitude     float64       `json:"lat"`
	Longitude    float64       `json:"lon"`
	QualityScore int           `json:"quality_score"`
	LeadStatus   LeadStatus    `json:"lead_status"`
	LastUpdated  time.Time     `json:"last_updated"`
	Registry     *RegistryInfo `json:"registry,omitempty"`
}
