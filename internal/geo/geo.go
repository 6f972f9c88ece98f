// Package geo holds the distance policy shared by proximity queries:
// coordinate validation and great-circle distance on a spherical earth.
package geo

import (
	"math"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

// EarthRadiusKm is the mean earth radius used for the spherical
// approximation.
const EarthRadiusKm = 6371.0

// DefaultRadiusKm is the search radius applied when a caller does not
// provide one.
const DefaultRadiusKm = 10.0

// Point is a geographic coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects out-of-range coordinates.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return models.NewValidationError("latitude must be between -90 and 90")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return models.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadius rejects non-positive search radii.
func ValidateRadius(radiusKm float64) error {
	if radiusKm <= 0 {
		return models.NewValidationError("radius must be positive")
	}
	return nil
}

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
