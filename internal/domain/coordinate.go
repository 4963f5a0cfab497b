package domain

import "fmt"

// Coordinate is a point on the Earth's surface in decimal degrees.
// swagger:model Coordinate
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinate returns a Coordinate for the given latitude and longitude. No range checks are applied.
func NewCoordinate(lat, lng float64) Coordinate {
	return Coordinate{Latitude: lat, Longitude: lng}
}

// Offset returns the coordinate shifted by the given deltas in degrees.
func (c Coordinate) Offset(dLat, dLng float64) Coordinate {
	return Coordinate{Latitude: c.Latitude + dLat, Longitude: c.Longitude + dLng}
}

// Validate reports ErrInvalidCoordinate when latitude is outside [-90, 90]
// or longitude is outside [-180, 180]. NaN is never in range.
func (c Coordinate) Validate() error {
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, c.Latitude)
	}
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}
