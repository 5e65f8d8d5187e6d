package service

import "github.com/leadscout/leadgen-api/internal/dto"

var categories = []dto.Category{
	{Value: "restaurant", Label: "Restaurants"},
	{Value: "retail", Label: "Retail Stores"},
	{Value: "office", Label: "Offices"},
	{Value: "hotel", Label: "Hotels"},
	{Value: "gym", Label: "Gyms & Fitness"},
	{Value: "beauty", Label: "Beauty & Wellness"},
	{Value: "automotive", Label: "Automotive"},
	{Value: "medical", Label: "Medical & Healthcare"},
	{Value: "service", Label: "Professional Services"},
	{Value: "shop", Label: "General Shops"},
}

// Categories lists the searchable business categories shown to clients.
// Free-text categories outside this list still work; these are the curated
// options for the search form.
func Categories() []dto.Category {
	out := make([]dto.Category, len(categories))
	copy(out, categories)
	return out
}
