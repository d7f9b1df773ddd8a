// File: internal/model/poi.go
package model

import (
	"fmt"
	"time"
)

// Category is the fixed POI category enumeration.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryGym        Category = "gym"
	CategoryHospital   Category = "hospital"
	CategorySchool     Category = "school"
	CategoryPark       Category = "park"
	CategoryShopping   Category = "shopping"
	CategoryGasStation Category = "gas_station"
	CategoryBank       Category = "bank"
	CategoryPharmacy   Category = "pharmacy"
	CategoryOther      Category = "other"
)

// Categories lists every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryRestaurant,
		CategoryCafe,
		CategoryGym,
		CategoryHospital,
		CategorySchool,
		CategoryPark,
		CategoryShopping,
		CategoryGasStation,
		CategoryBank,
		CategoryPharmacy,
		CategoryOther,
	}
}

// Valid reports whether the category belongs to the fixed enumeration.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// ParseCategory parses a category string, rejecting values outside the enumeration.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

// POI carries both representations at once: the encrypted triple serves the
// privacy-preserving search path, the plaintext fields serve owner/admin
// management views.
type POI struct {
	ID            string    `db:"id" json:"id"`
	EncryptedName string    `db:"encrypted_name" json:"encrypted_name"`
	EncryptedLat  string    `db:"encrypted_lat" json:"encrypted_lat"`
	EncryptedLon  string    `db:"encrypted_lon" json:"encrypted_lon"`
	Name          string    `db:"name" json:"name"`
	Address       string    `db:"address" json:"address"`
	Area          string    `db:"area" json:"area"`
	City          string    `db:"city" json:"city"`
	PostalCode    string    `db:"postal_code" json:"postal_code"`
	Category      Category  `db:"category" json:"category"`
	OwnerID       int       `db:"owner_id" json:"owner_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// POIWithOwner is the admin listing row joined with the owning user.
type POIWithOwner struct {
	POI
	OwnerName  string `db:"owner_name" json:"owner_name"`
	OwnerEmail string `db:"owner_email" json:"owner_email"`
}

// SearchResult is derived per search request and never persisted.
type SearchResult struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Category   Category  `json:"category"`
	DistanceKm float64   `json:"distance_km"`
	CreatedAt  time.Time `json:"created_at"`
}
