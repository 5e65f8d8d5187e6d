package dto

import "github.com/leadscout/leadgen-api/internal/entity"

// BusinessFilter contains query parameters for stored-lead listing and export.
type BusinessFilter struct {
	Category string
	MinScore int
	Status   string
	Limit    int
}

// BusinessListResponse is the body of GET /businesses.
type BusinessListResponse struct {
	Businesses []entity.Business `json:"businesses"`
	Total      int               `json:"total"`
}
