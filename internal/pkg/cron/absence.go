package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/clock"
)

// AbsenceJobs closes out the previous civil day: every active user with
// no attendance record for yesterday gets an ABSENT day. This is the
// only writer of ABSENT records; check-in never produces them and must
// refuse a day once the batch has closed it.
type AbsenceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	users          attendance.UserDirectory
	clock          clock.Clock
}

func NewAbsenceJobs(
	attendanceRepo attendance.AttendanceRepository,
	users attendance.UserDirectory,
	clk clock.Clock,
) *AbsenceJobs {
	return &AbsenceJobs{
		attendanceRepo: attendanceRepo,
		users:          users,
		clock:          clk,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Every("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

func (j *AbsenceJobs) MarkAbsentUsers(ctx context.Context) error {
	now := j.clock.Now().UTC()

	// Only run in the first hour after UTC midnight
	if now.Hour() != 0 {
		return nil
	}

	yesterday := attendance.DayKeyOf(now.AddDate(0, 0, -1))

	userIDs, err := j.users.ActiveUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	marked := 0
	for _, userID := range userIDs {
		existing, err := j.attendanceRepo.Find(ctx, userID, yesterday)
		if err != nil {
			slog.Error("Cron: failed to load attendance day", "user_id", userID, "day", yesterday, "error", err)
			continue
		}
		if existing != nil {
			// Checked in, on leave, or already marked; leave it alone.
			continue
		}

		zero := 0
		_, err = j.attendanceRepo.CreateIfAbsent(ctx, attendance.AttendanceDay{
			UserID:         userID,
			Day:            yesterday,
			Status:         attendance.StatusAbsent,
			WorkingMinutes: &zero,
		})
		if err != nil {
			// A conflict means a record appeared between Find and the
			// insert; that record wins.
			if errors.Is(err, attendance.ErrStorageConflict) {
				continue
			}
			slog.Error("Cron: failed to mark user absent", "user_id", userID, "day", yesterday, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: marked absent users", "day", yesterday, "count", marked)
	return nil
}
