package attendance

import (
	"context"
)

// AttendanceService defines the check-in/check-out business contract.
type AttendanceService interface {
	// CheckIn records the start of an attendance day, validating the
	// reported location against the registered office zones.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceDayResponse, error)

	// CheckOut closes the current attendance day and finalizes the
	// working duration.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceDayResponse, error)

	// GetToday returns the user's record for the current civil day with
	// a live working duration, or a NOT_CHECKED_IN placeholder.
	GetToday(ctx context.Context, userID string) (AttendanceDayResponse, error)

	// ListMine returns the user's records inside the given day range.
	ListMine(ctx context.Context, userID string, filter RangeFilter) ([]AttendanceDayResponse, error)
}
