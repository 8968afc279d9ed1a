package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A rejected geofence verdict carries distance evidence for the user
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		LocationRejected(w, outOfRange.Error(), verdictDetails(outOfRange.Verdict))
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You have already checked in today")
	case errors.Is(err, attendance.ErrDayNotOpen):
		Conflict(w, "Attendance day is closed for check-in")
	case errors.Is(err, attendance.ErrNotCheckedInToday):
		Conflict(w, "You have not checked in today")
	case errors.Is(err, attendance.ErrNoCheckInRecord):
		Conflict(w, "Attendance record has no check-in")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out")
	case errors.Is(err, attendance.ErrInvalidCoordinates):
		BadRequest(w, "Invalid coordinates", nil)
	case errors.Is(err, attendance.ErrLocationOutOfRange):
		LocationRejected(w, "You are outside the allowed radius", nil)
	case errors.Is(err, attendance.ErrNoActiveOfficeZones):
		Conflict(w, "No active office zones are registered")
	case errors.Is(err, attendance.ErrStorageConflict):
		Conflict(w, "Attendance record already exists")
	case errors.Is(err, attendance.ErrStorageUnavailable):
		ServiceUnavailable(w, "Attendance storage unavailable, try again later")

	// Office registry errors
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, "Office location not found")
	case errors.Is(err, office.ErrOfficeCodeExists):
		Conflict(w, "Office code already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func verdictDetails(v attendance.LocationVerdict) map[string]string {
	details := map[string]string{}
	if v.NearestOfficeID != nil {
		details["nearest_office_id"] = *v.NearestOfficeID
	}
	if v.NearestOfficeName != nil {
		details["nearest_office_name"] = *v.NearestOfficeName
	}
	if v.DistanceMeters != nil {
		details["distance_meters"] = fmt.Sprintf("%.1f", *v.DistanceMeters)
	}
	if v.AllowedRadiusMeters != nil {
		details["allowed_radius_meters"] = fmt.Sprintf("%.0f", *v.AllowedRadiusMeters)
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
