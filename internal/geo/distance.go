// Package geo provides great-circle distance helpers.
package geo

import (
	"math"
	"strconv"
)

// EarthRadiusMiles is the mean Earth radius used by Distance.
const EarthRadiusMiles = 3959.0

// Distance computes the haversine distance in miles between two points given in
// decimal degrees, rounded to one decimal place. Inputs are not range-checked.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return Round1(Haversine(lat1, lon1, lat2, lon2))
}

// Haversine returns the unrounded great-circle distance in miles.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatMiles renders a distance as "X.X miles".
func FormatMiles(miles float64) string {
	return strconv.FormatFloat(miles, 'f', 1, 64) + " miles"
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
