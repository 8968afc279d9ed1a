package attendance

import (
	"time"
)

type Status string

const (
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
	StatusCheckedIn    Status = "CHECKED_IN"
	StatusCheckedOut   Status = "CHECKED_OUT"

	// StatusAbsent and StatusOnLeave are written by the absence batch and
	// the leave workflow respectively, never by check-in/check-out. Once
	// set they close the day for further check-ins.
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "ON_LEAVE"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationVerdict is the structured outcome of a geofence check.
type LocationVerdict struct {
	IsValid             bool     `json:"is_valid"`
	NearestOfficeID     *string  `json:"nearest_office_id,omitempty"`
	NearestOfficeName   *string  `json:"nearest_office_name,omitempty"`
	DistanceMeters      *float64 `json:"distance_meters,omitempty"`
	AllowedRadiusMeters *float64 `json:"allowed_radius_meters,omitempty"`
	Reason              string   `json:"reason,omitempty"`
}

// CheckEvent captures one check-in or check-out: when it happened, where
// the employee reported being, and what the geofence check concluded.
// OfficeID is set only when the location matched a zone.
type CheckEvent struct {
	Instant       time.Time
	Latitude      *float64
	Longitude     *float64
	LocationValid *bool
	OfficeID      *string
}

// AttendanceDay is the per-user-per-day aggregate. The (UserID, Day)
// pair is unique; the storage layer enforces it with a unique index.
type AttendanceDay struct {
	ID             string
	UserID         string
	Day            DayKey
	CheckIn        *CheckEvent
	CheckOut       *CheckEvent
	WorkingMinutes *int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CurrentWorkingMinutes returns the finalized duration for a checked-out
// day, and a live now-based duration for a day that is still open. Every
// consumer that shows "current working minutes" must use this and not
// read WorkingMinutes directly.
func (d *AttendanceDay) CurrentWorkingMinutes(now time.Time) int {
	if d.CheckOut != nil && d.WorkingMinutes != nil {
		return *d.WorkingMinutes
	}
	if d.CheckIn == nil {
		return 0
	}
	return DurationMinutes(d.CheckIn.Instant, now)
}

// DurationMinutes is the single working-duration rule: whole minutes
// between the two instants, never negative.
func DurationMinutes(from, to time.Time) int {
	mins := int(to.Sub(from) / time.Minute)
	if mins < 0 {
		return 0
	}
	return mins
}

// Blocked reports whether the day was closed by an external process
// (absence batch or leave approval) and must refuse further check-ins.
func (d *AttendanceDay) Blocked() bool {
	return d.Status == StatusAbsent || d.Status == StatusOnLeave
}
