// File: internal/service/search.go
package service

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"safe-radius/internal/model"
)

// ErrInvalidRadius rejects a non-positive or non-finite search radius before
// any work begins.
var ErrInvalidRadius = errors.New("radius must be a positive finite number")

// Location is a requester position in decimal degrees.
type Location struct {
	Lat float64
	Lon float64
}

// SearchPOIs decrypts the candidate set, filters it by category and radius and
// returns the survivors ordered by ascending distance from loc. An empty
// category means no filter. Records that fail to decrypt, decrypt to an empty
// name, or carry non-finite coordinates are skipped; a bad record never aborts
// the search. The radius boundary is inclusive and ties keep their original
// relative order.
func SearchPOIs(c *Cipher, loc Location, radiusKm float64, category model.Category, candidates []model.POI) ([]model.SearchResult, error) {
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, ErrInvalidRadius
	}

	results := make([]model.SearchResult, 0, len(candidates))
	for _, p := range candidates {
		// Category filtering happens before decryption to avoid
		// pointless cryptographic work.
		if category != "" && p.Category != category {
			continue
		}

		name, err := c.Decrypt(p.EncryptedName)
		if err != nil || name == "" {
			continue
		}
		lat, ok := decryptCoordinate(c, p.EncryptedLat)
		if !ok {
			continue
		}
		lon, ok := decryptCoordinate(c, p.EncryptedLon)
		if !ok {
			continue
		}

		dist := DistanceKm(loc.Lat, loc.Lon, lat, lon)
		if dist > radiusKm {
			continue
		}

		results = append(results, model.SearchResult{
			ID:         p.ID,
			Name:       name,
			Lat:        lat,
			Lon:        lon,
			Category:   p.Category,
			DistanceKm: dist,
			CreatedAt:  p.CreatedAt,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

// decryptCoordinate recovers one coordinate, rejecting anything that does not
// parse as a finite number.
func decryptCoordinate(c *Cipher, ciphertext string) (float64, bool) {
	plain, err := c.Decrypt(ciphertext)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(plain, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
