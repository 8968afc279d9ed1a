package office

import (
	"time"
)

// OfficeLocation is a registered circular geofence zone. Only active
// zones participate in attendance validation.
type OfficeLocation struct {
	ID           string
	Name         string
	Code         string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	MinRadiusMeters = 10
	MaxRadiusMeters = 1000
)
