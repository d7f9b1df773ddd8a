package api

import "time"

// swagger:model api.POIResponse
type POIResponse struct {
	ID         string    `json:"id" example:"7f9c24e5-559b-4b5c-a58a-3c0f029d4c61"`
	Name       string    `json:"name" example:"Central Cafe"`
	Address    string    `json:"address" example:"12 MG Road"`
	Area       string    `json:"area" example:"Connaught Place"`
	City       string    `json:"city" example:"New Delhi"`
	PostalCode string    `json:"postal_code" example:"110001"`
	Category   string    `json:"category" example:"cafe"`
	OwnerID    int       `json:"owner_id" example:"1"`
	OwnerName  string    `json:"owner_name,omitempty" example:"Alice"`
	OwnerEmail string    `json:"owner_email,omitempty" example:"alice@example.com"`
	CreatedAt  time.Time `json:"created_at"`
}
