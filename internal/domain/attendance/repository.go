package attendance

import (
	"context"
)

// AttendanceRepository defines data access for per-user-per-day records.
type AttendanceRepository interface {
	// Find retrieves the record for (userID, day). Returns (nil, nil)
	// when no record exists.
	Find(ctx context.Context, userID string, day DayKey) (*AttendanceDay, error)

	// CreateIfAbsent inserts a new record. The (user_id, day) unique
	// index is the concurrency safety net: a second concurrent insert
	// for the same pair must surface as ErrStorageConflict, never as a
	// raw constraint-violation error.
	CreateIfAbsent(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// SetCheckOut persists the check-out fields, the finalized working
	// minutes and the CHECKED_OUT status for an existing record.
	SetCheckOut(ctx context.Context, day AttendanceDay) error

	// ListByUserAndRange retrieves a user's records with from <= day <= to,
	// ordered by day descending.
	ListByUserAndRange(ctx context.Context, userID string, from, to DayKey) ([]AttendanceDay, error)
}

// UserDirectory is the narrow slice of the (out of scope) user module the
// absence batch needs: who should have shown up at all.
type UserDirectory interface {
	ActiveUserIDs(ctx context.Context) ([]string, error)
}
