// File: internal/service/distance.go
package service

import "math"

// earthRadiusKm is the fixed Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers. The intermediate value is clamped into [0,1] so near-identical
// and near-antipodal points cannot push it out of asin's domain through
// floating-point overshoot.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
