package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id, user_id, day,
	check_in_at, check_in_latitude, check_in_longitude, check_in_location_valid, check_in_office_id,
	check_out_at, check_out_latitude, check_out_longitude, check_out_location_valid, check_out_office_id,
	working_minutes, status, created_at, updated_at
`

// Find implements attendance.AttendanceRepository.
func (a *attendanceRepository) Find(ctx context.Context, userID string, day attendance.DayKey) (*attendance.AttendanceDay, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days
		WHERE user_id = $1
		  AND day = $2
		LIMIT 1
	`

	rec, err := scanAttendanceDay(a.db.QueryRow(ctx, query, userID, day.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this user and day
		}
		return nil, fmt.Errorf("failed to find attendance day: %w", err)
	}

	return &rec, nil
}

// CreateIfAbsent implements attendance.AttendanceRepository. The unique
// index on (user_id, day) decides races between concurrent check-ins;
// the loser gets ErrStorageConflict.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	query := `
		INSERT INTO attendance_days (
			id, user_id, day,
			check_in_at, check_in_latitude, check_in_longitude, check_in_location_valid, check_in_office_id,
			working_minutes, status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	var (
		checkInAt     interface{}
		checkInLat    interface{}
		checkInLon    interface{}
		checkInValid  interface{}
		checkInOffice interface{}
	)
	if day.CheckIn != nil {
		checkInAt = day.CheckIn.Instant
		checkInLat = day.CheckIn.Latitude
		checkInLon = day.CheckIn.Longitude
		checkInValid = day.CheckIn.LocationValid
		checkInOffice = day.CheckIn.OfficeID
	}

	err := a.db.QueryRow(ctx, query,
		day.UserID,
		day.Day.String(),
		checkInAt,
		checkInLat,
		checkInLon,
		checkInValid,
		checkInOffice,
		day.WorkingMinutes,
		day.Status,
	).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceDay{}, fmt.Errorf("attendance day exists for user %s on %s: %w", day.UserID, day.Day, attendance.ErrStorageConflict)
		}
		return attendance.AttendanceDay{}, fmt.Errorf("failed to create attendance day: %w", err)
	}

	return day, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, day attendance.AttendanceDay) error {
	if day.CheckOut == nil {
		return fmt.Errorf("attendance day has no check-out to persist")
	}

	query := `
		UPDATE attendance_days
		SET check_out_at = $1,
		    check_out_latitude = $2,
		    check_out_longitude = $3,
		    check_out_location_valid = $4,
		    check_out_office_id = $5,
		    working_minutes = $6,
		    status = $7,
		    updated_at = NOW()
		WHERE id = $8 AND check_out_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := a.db.QueryRow(ctx, query,
		day.CheckOut.Instant,
		day.CheckOut.Latitude,
		day.CheckOut.Longitude,
		day.CheckOut.LocationValid,
		day.CheckOut.OfficeID,
		day.WorkingMinutes,
		day.Status,
		day.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("attendance day already closed: %w", attendance.ErrAlreadyCheckedOut)
		}
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	return nil
}

// ListByUserAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndRange(ctx context.Context, userID string, from, to attendance.DayKey) ([]attendance.AttendanceDay, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_days
		WHERE user_id = $1
		  AND day >= $2
		  AND day <= $3
		ORDER BY day DESC
	`

	rows, err := a.db.Query(ctx, query, userID, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance days: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceDay
	for rows.Next() {
		rec, err := scanAttendanceDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// scanAttendanceDay reassembles the flat row into the aggregate,
// folding the nullable check-in/check-out column groups into events.
func scanAttendanceDay(row pgx.Row) (attendance.AttendanceDay, error) {
	var (
		rec            attendance.AttendanceDay
		dayDate        time.Time
		checkInAt      *time.Time
		checkInLat     *float64
		checkInLon     *float64
		checkInValid   *bool
		checkInOffice  *string
		checkOutAt     *time.Time
		checkOutLat    *float64
		checkOutLon    *float64
		checkOutValid  *bool
		checkOutOffice *string
	)

	err := row.Scan(
		&rec.ID, &rec.UserID, &dayDate,
		&checkInAt, &checkInLat, &checkInLon, &checkInValid, &checkInOffice,
		&checkOutAt, &checkOutLat, &checkOutLon, &checkOutValid, &checkOutOffice,
		&rec.WorkingMinutes, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceDay{}, err
	}

	rec.Day = attendance.DayKeyOf(dayDate)
	if checkInAt != nil {
		rec.CheckIn = &attendance.CheckEvent{
			Instant:       *checkInAt,
			Latitude:      checkInLat,
			Longitude:     checkInLon,
			LocationValid: checkInValid,
			OfficeID:      checkInOffice,
		}
	}
	if checkOutAt != nil {
		rec.CheckOut = &attendance.CheckEvent{
			Instant:       *checkOutAt,
			Latitude:      checkOutLat,
			Longitude:     checkOutLon,
			LocationValid: checkOutValid,
			OfficeID:      checkOutOffice,
		}
	}

	return rec, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
