package api

// Lat, Lon and RadiusKm are pointers so that zero coordinates survive the
// required check.
// swagger:model api.SearchRequest
type SearchRequest struct {
	Lat      *float64 `json:"lat" validate:"required" example:"28.6139"`
	Lon      *float64 `json:"lon" validate:"required" example:"77.2090"`
	RadiusKm *float64 `json:"radius_km" validate:"required" example:"5"`
	Category string   `json:"category,omitempty" example:"cafe"`
}
