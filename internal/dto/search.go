package dto

import "github.com/leadscout/leadgen-api/internal/entity"

// SearchRequest is the payload for POST /search.
type SearchRequest struct {
	Category string   `json:"category"`
	Location string   `json:"location"`
	Radius   float64  `json:"radius,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`
}

// Coordinate is a resolved latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchResponse carries the scored leads for one search.
type SearchResponse struct {
	Records          []entity.Business `json:"records"`
	Total            int               `json:"total"`
	ResolvedLocation Coordinate        `json:"resolved_location"`
	Message          string            `json:"message"`
}
