package office

import (
	"context"
)

// OfficeLocationRepository defines data access for the office zone
// registry. The attendance core only reads ActiveZones and GetByID; the
// rest serves the admin endpoints.
type OfficeLocationRepository interface {
	// ActiveZones returns a snapshot of all zones with is_active = true.
	// Callers must not hold the slice across requests: deactivations take
	// effect on the next call.
	ActiveZones(ctx context.Context) ([]OfficeLocation, error)

	GetByID(ctx context.Context, id string) (OfficeLocation, error)

	// Create inserts a zone; a duplicate code surfaces as ErrOfficeCodeExists.
	Create(ctx context.Context, loc OfficeLocation) (OfficeLocation, error)

	Update(ctx context.Context, loc OfficeLocation) error

	List(ctx context.Context) ([]OfficeLocation, error)
}
