package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/domain/audit"
	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/clock"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

// Policy is the deployment-level geofence stance. Strict deployments
// reject an out-of-range check-in/out; lenient ones record the day with
// LocationValid=false. One policy applies to both operations.
type Policy struct {
	StrictGeofence  bool
	ToleranceMeters float64
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	office.OfficeLocationRepository
	auditSink audit.Sink
	clock     clock.Clock
	policy    Policy
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	officeRepo office.OfficeLocationRepository,
	auditSink audit.Sink,
	clk clock.Clock,
	policy Policy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:     attendanceRepo,
		OfficeLocationRepository: officeRepo,
		auditSink:                auditSink,
		clock:                    clk,
		policy:                   policy,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceDayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	now := a.clock.Now().UTC()
	day := attendance.DayKeyOf(now)

	existing, err := a.AttendanceRepository.Find(ctx, req.UserID, day)
	if err != nil {
		return attendance.AttendanceDayResponse{}, storageFault("failed to load attendance day", err)
	}
	if existing != nil {
		if existing.Blocked() {
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckIn, audit.OutcomeRejected, attendance.ErrDayNotOpen.Error(), nil)
			return attendance.AttendanceDayResponse{}, attendance.ErrDayNotOpen
		}
		// The record may predate this request's check-in attempt only via
		// the absence batch or leave workflow; any other existing row
		// means the day is already taken.
		a.recordAudit(ctx, req.UserID, day, audit.OperationCheckIn, audit.OutcomeRejected, attendance.ErrAlreadyCheckedIn.Error(), nil)
		return attendance.AttendanceDayResponse{}, attendance.ErrAlreadyCheckedIn
	}

	var (
		verdict       *attendance.LocationVerdict
		locationValid *bool
		matchedOffice *string
	)

	if req.Latitude != nil {
		point := attendance.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
		zones, err := a.zonesForCheckIn(ctx, req.OfficeID)
		if err != nil {
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckIn, audit.OutcomeRejected, err.Error(), nil)
			return attendance.AttendanceDayResponse{}, err
		}

		v, err := a.validatePoint(point, zones)
		if err != nil {
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckIn, audit.OutcomeRejected, err.Error(), v)
			return attendance.AttendanceDayResponse{}, err
		}

		verdict = v
		locationValid = &v.IsValid
		if v.IsValid {
			matchedOffice = v.NearestOfficeID
		}
	}

	created, err := a.AttendanceRepository.CreateIfAbsent(ctx, attendance.AttendanceDay{
		UserID: req.UserID,
		Day:    day,
		Status: attendance.StatusCheckedIn,
		CheckIn: &attendance.CheckEvent{
			Instant:       now,
			Latitude:      req.Latitude,
			Longitude:     req.Longitude,
			LocationValid: locationValid,
			OfficeID:      matchedOffice,
		},
	})
	if err != nil {
		// A concurrent check-in won the unique index race; from the
		// caller's point of view that is just "already checked in".
		if errors.Is(err, attendance.ErrStorageConflict) {
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckIn, audit.OutcomeRejected, attendance.ErrAlreadyCheckedIn.Error(), verdict)
			return attendance.AttendanceDayResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceDayResponse{}, storageFault("failed to create attendance day", err)
	}

	a.recordAuditOK(ctx, req.UserID, day, audit.OperationCheckIn, verdict)

	return mapDayToResponse(&created, now), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceDayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceDayResponse{}, err
	}

	now := a.clock.Now().UTC()
	day := attendance.DayKeyOf(now)

	rec, err := a.AttendanceRepository.Find(ctx, req.UserID, day)
	if err != nil {
		return attendance.AttendanceDayResponse{}, storageFault("failed to load attendance day", err)
	}
	if rec == nil {
		a.recordAudit(ctx, req.UserID, day, audit.OperationCheckOut, audit.OutcomeRejected, attendance.ErrNotCheckedInToday.Error(), nil)
		return attendance.AttendanceDayResponse{}, attendance.ErrNotCheckedInToday
	}
	if rec.CheckIn == nil {
		a.recordAudit(ctx, req.UserID, day, audit.OperationCheckOut, audit.OutcomeRejected, attendance.ErrNoCheckInRecord.Error(), nil)
		return attendance.AttendanceDayResponse{}, attendance.ErrNoCheckInRecord
	}
	if rec.CheckOut != nil {
		a.recordAudit(ctx, req.UserID, day, audit.OperationCheckOut, audit.OutcomeRejected, attendance.ErrAlreadyCheckedOut.Error(), nil)
		return attendance.AttendanceDayResponse{}, attendance.ErrAlreadyCheckedOut
	}

	var (
		verdict       *attendance.LocationVerdict
		locationValid *bool
		matchedOffice *string
	)

	if req.Latitude != nil {
		point := attendance.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
		zones, err := a.zonesForCheckOut(ctx, rec.CheckIn.OfficeID)
		if err != nil {
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckOut, audit.OutcomeRejected, err.Error(), nil)
			return attendance.AttendanceDayResponse{}, err
		}

		v, err := a.validatePoint(point, zones)
		if err != nil {
			// Strict rejection leaves the record untouched.
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckOut, audit.OutcomeRejected, err.Error(), v)
			return attendance.AttendanceDayResponse{}, err
		}

		verdict = v
		locationValid = &v.IsValid
		if v.IsValid {
			matchedOffice = v.NearestOfficeID
		}
	}

	mins := attendance.DurationMinutes(rec.CheckIn.Instant, now)
	rec.CheckOut = &attendance.CheckEvent{
		Instant:       now,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		LocationValid: locationValid,
		OfficeID:      matchedOffice,
	}
	rec.WorkingMinutes = &mins
	rec.Status = attendance.StatusCheckedOut

	if err := a.AttendanceRepository.SetCheckOut(ctx, *rec); err != nil {
		// A concurrent check-out closed the row between the load and the
		// conditional update; report it like any other repeat attempt.
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			a.recordAudit(ctx, req.UserID, day, audit.OperationCheckOut, audit.OutcomeRejected, attendance.ErrAlreadyCheckedOut.Error(), verdict)
			return attendance.AttendanceDayResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.AttendanceDayResponse{}, storageFault("failed to persist check-out", err)
	}

	a.recordAuditOK(ctx, req.UserID, day, audit.OperationCheckOut, verdict)

	return mapDayToResponse(rec, now), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, userID string) (attendance.AttendanceDayResponse, error) {
	now := a.clock.Now().UTC()
	day := attendance.DayKeyOf(now)

	rec, err := a.AttendanceRepository.Find(ctx, userID, day)
	if err != nil {
		return attendance.AttendanceDayResponse{}, storageFault("failed to load attendance day", err)
	}
	if rec == nil {
		return attendance.AttendanceDayResponse{
			UserID: userID,
			Date:   day.String(),
			Status: attendance.StatusNotCheckedIn,
		}, nil
	}

	return mapDayToResponse(rec, now), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, userID string, filter attendance.RangeFilter) ([]attendance.AttendanceDayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, err := attendance.ParseDayKey(filter.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := attendance.ParseDayKey(filter.EndDate)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, storageFault("failed to list attendance days", err)
	}

	now := a.clock.Now().UTC()
	responses := make([]attendance.AttendanceDayResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapDayToResponse(&records[i], now))
	}
	return responses, nil
}

// zonesForCheckIn resolves the zone set: the named office when the
// request targets one, otherwise all active zones.
func (a *AttendanceServiceImpl) zonesForCheckIn(ctx context.Context, officeID *string) ([]office.OfficeLocation, error) {
	if officeID != nil {
		loc, err := a.OfficeLocationRepository.GetByID(ctx, *officeID)
		if err != nil {
			if errors.Is(err, office.ErrOfficeNotFound) {
				return nil, office.ErrOfficeNotFound
			}
			return nil, storageFault("failed to load office zone", err)
		}
		return []office.OfficeLocation{loc}, nil
	}

	zones, err := a.OfficeLocationRepository.ActiveZones(ctx)
	if err != nil {
		return nil, storageFault("failed to load active office zones", err)
	}
	return zones, nil
}

// zonesForCheckOut applies the sticky-zone rule: check-out validates
// against the office matched at check-in when one was recorded, so a
// user cannot check in at one office and leave through another zone's
// looser radius. The check-in zone stays authoritative for the day even
// if it was deactivated in between.
func (a *AttendanceServiceImpl) zonesForCheckOut(ctx context.Context, checkInOfficeID *string) ([]office.OfficeLocation, error) {
	if checkInOfficeID != nil {
		loc, err := a.OfficeLocationRepository.GetByID(ctx, *checkInOfficeID)
		if err == nil {
			loc.IsActive = true
			return []office.OfficeLocation{loc}, nil
		}
		if !errors.Is(err, office.ErrOfficeNotFound) {
			return nil, storageFault("failed to load office zone", err)
		}
		// Zone deleted since check-in; fall through to the full registry.
	}

	zones, err := a.OfficeLocationRepository.ActiveZones(ctx)
	if err != nil {
		return nil, storageFault("failed to load active office zones", err)
	}
	return zones, nil
}

// validatePoint runs the coordinate precondition and the geofence check,
// applying the strict/lenient policy. The returned verdict is non-nil
// whenever the geofence was actually evaluated, including on rejection.
func (a *AttendanceServiceImpl) validatePoint(point attendance.Coordinates, zones []office.OfficeLocation) (*attendance.LocationVerdict, error) {
	if !geo.ValidCoordinate(point.Latitude, point.Longitude) {
		return nil, attendance.ErrInvalidCoordinates
	}
	if !hasActiveZone(zones) {
		return nil, attendance.ErrNoActiveOfficeZones
	}

	v := ValidateUserLocation(point, zones, a.policy.ToleranceMeters)
	if !v.IsValid && a.policy.StrictGeofence {
		return &v, &attendance.OutOfRangeError{Verdict: v}
	}
	return &v, nil
}

func (a *AttendanceServiceImpl) recordAudit(ctx context.Context, userID string, day attendance.DayKey, op audit.Operation, outcome audit.Outcome, reason string, verdict *attendance.LocationVerdict) {
	entry := audit.Entry{
		ID:         uuid.NewString(),
		UserID:     userID,
		Day:        day,
		Operation:  op,
		Outcome:    outcome,
		Verdict:    verdict,
		RecordedAt: a.clock.Now().UTC(),
	}
	if reason != "" {
		entry.Reason = &reason
	}

	// Audit failures degrade the trail, never the operation itself.
	if err := a.auditSink.Append(ctx, entry); err != nil {
		slog.Error("Failed to append audit entry",
			"user_id", userID,
			"day", day,
			"operation", op,
			"outcome", outcome,
			"error", err)
	}
}

func (a *AttendanceServiceImpl) recordAuditOK(ctx context.Context, userID string, day attendance.DayKey, op audit.Operation, verdict *attendance.LocationVerdict) {
	a.recordAudit(ctx, userID, day, op, audit.OutcomeAccepted, "", verdict)
}

func mapDayToResponse(rec *attendance.AttendanceDay, now time.Time) attendance.AttendanceDayResponse {
	return attendance.AttendanceDayResponse{
		ID:             rec.ID,
		UserID:         rec.UserID,
		Date:           rec.Day.String(),
		CheckIn:        mapCheckEvent(rec.CheckIn),
		CheckOut:       mapCheckEvent(rec.CheckOut),
		WorkingMinutes: rec.CurrentWorkingMinutes(now),
		Status:         rec.Status,
	}
}

func mapCheckEvent(ev *attendance.CheckEvent) *attendance.CheckEventResponse {
	if ev == nil {
		return nil
	}
	return &attendance.CheckEventResponse{
		Time:          ev.Instant.Format("2006-01-02 15:04:05"),
		Latitude:      ev.Latitude,
		Longitude:     ev.Longitude,
		LocationValid: ev.LocationValid,
		OfficeID:      ev.OfficeID,
	}
}

func storageFault(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, attendance.ErrStorageUnavailable, err)
}
