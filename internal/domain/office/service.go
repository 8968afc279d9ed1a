package office

import (
	"context"
)

// OfficeLocationService defines admin operations on the zone registry.
type OfficeLocationService interface {
	Create(ctx context.Context, req CreateOfficeLocationRequest) (OfficeLocationResponse, error)
	Update(ctx context.Context, req UpdateOfficeLocationRequest) (OfficeLocationResponse, error)
	Get(ctx context.Context, id string) (OfficeLocationResponse, error)
	List(ctx context.Context) ([]OfficeLocationResponse, error)
}
