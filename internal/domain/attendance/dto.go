package attendance

import (
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	OfficeID  *string  `json:"office_id,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	errs = append(errs, validateOptionalCoordinates(r.Latitude, r.Longitude)...)

	if r.OfficeID != nil && validator.IsEmpty(*r.OfficeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "office_id",
			Message: "office_id must not be empty when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	UserID    string   `json:"-"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	errs = append(errs, validateOptionalCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Coordinates are optional, but when one half is present the other must
// be too, and both must be inside the valid geographic range.
func validateOptionalCoordinates(lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (lat == nil) != (lon == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude and longitude must be provided together",
		})
		return errs
	}
	if lat == nil {
		return nil
	}

	if !validator.IsFinite(*lat) || *lat < -90 || *lat > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}
	if !validator.IsFinite(*lon) || *lon < -180 || *lon > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}

	return errs
}

type CheckEventResponse struct {
	Time          string   `json:"time"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	LocationValid *bool    `json:"location_valid,omitempty"`
	OfficeID      *string  `json:"office_id,omitempty"`
}

type AttendanceDayResponse struct {
	ID             string              `json:"id,omitempty"`
	UserID         string              `json:"user_id"`
	Date           string              `json:"date"`
	CheckIn        *CheckEventResponse `json:"check_in,omitempty"`
	CheckOut       *CheckEventResponse `json:"check_out,omitempty"`
	WorkingMinutes int                 `json:"working_minutes"`
	Status         Status              `json:"status"`
}

type RangeFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
