package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrDayNotOpen       = errors.New("attendance day is closed for check-in")

	// Check-out errors
	ErrNotCheckedInToday = errors.New("you have not checked in today")
	ErrNoCheckInRecord   = errors.New("attendance record has no check-in")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Location errors
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrLocationOutOfRange  = errors.New("you are outside the allowed radius")
	ErrNoActiveOfficeZones = errors.New("no active office zones are registered")

	// Storage errors
	ErrStorageConflict    = errors.New("attendance record already exists")
	ErrStorageUnavailable = errors.New("attendance storage unavailable")
)

// OutOfRangeError carries the geofence verdict with a rejected location,
// so the caller can tell the user how far off they were and from where.
// errors.Is(err, ErrLocationOutOfRange) matches it.
type OutOfRangeError struct {
	Verdict LocationVerdict
}

func (e *OutOfRangeError) Error() string {
	if e.Verdict.NearestOfficeName != nil && e.Verdict.DistanceMeters != nil && e.Verdict.AllowedRadiusMeters != nil {
		return fmt.Sprintf("%s: %.0fm from %s (allowed %.0fm)",
			ErrLocationOutOfRange, *e.Verdict.DistanceMeters, *e.Verdict.NearestOfficeName, *e.Verdict.AllowedRadiusMeters)
	}
	return ErrLocationOutOfRange.Error()
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrLocationOutOfRange
}
