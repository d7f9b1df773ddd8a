package api

// swagger:model api.CreatePOIRequest
type CreatePOIRequest struct {
	Name       string `json:"name" validate:"required" example:"Central Cafe"`
	Address    string `json:"address" validate:"required" example:"12 MG Road"`
	Area       string `json:"area" validate:"required" example:"Connaught Place"`
	City       string `json:"city" validate:"required" example:"New Delhi"`
	PostalCode string `json:"postal_code" validate:"required" example:"110001"`
	Category   string `json:"category" validate:"required" example:"cafe"`
}
