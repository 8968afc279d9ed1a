package office

import (
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/validator"
)

type CreateOfficeLocationRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *CreateOfficeLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidOfficeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 2-20 uppercase letters, digits or dashes",
		})
	}

	errs = append(errs, validateGeometry(r.Latitude, r.Longitude, r.RadiusMeters)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateOfficeLocationRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *int     `json:"radius_meters,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func (r *UpdateOfficeLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Latitude != nil && (!validator.IsFinite(*r.Latitude) || *r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}
	if r.Longitude != nil && (!validator.IsFinite(*r.Longitude) || *r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}
	if r.RadiusMeters != nil && (*r.RadiusMeters < MinRadiusMeters || *r.RadiusMeters > MaxRadiusMeters) {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 10 and 1000",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateGeometry(lat, lon float64, radius int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsFinite(lat) || lat < -90 || lat > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}
	if !validator.IsFinite(lon) || lon < -180 || lon > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be between 10 and 1000",
		})
	}

	return errs
}

type OfficeLocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
