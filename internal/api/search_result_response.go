package api

import "time"

// swagger:model api.SearchResultResponse
type SearchResultResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" example:"Central Cafe"`
	Lat        float64   `json:"lat" example:"28.6139"`
	Lon        float64   `json:"lon" example:"77.2090"`
	Category   string    `json:"category" example:"cafe"`
	DistanceKm float64   `json:"distance_km" example:"1.27"`
	CreatedAt  time.Time `json:"created_at"`
}
