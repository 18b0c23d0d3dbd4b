package main

import "math"

// haversine returns the great-circle distance in kilometers between two
// points given as latitude/longitude degrees. Pure function; longitude
// wraparound needs no special-casing since sin/cos are periodic.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0 // Earth mean radius in km
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1 = lat1 * (math.Pi / 180)
	lat2 = lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// roundKm rounds a distance to two decimal places for presentation.
func roundKm(d float64) float64 {
	return math.Round(d*100) / 100
}
