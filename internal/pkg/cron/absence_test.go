package cron

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAttendanceRepo struct {
	mu   sync.Mutex
	rows map[string]*attendance.AttendanceDay
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{rows: make(map[string]*attendance.AttendanceDay)}
}

func memKey(userID string, day attendance.DayKey) string {
	return userID + "|" + day.String()
}

func (r *memAttendanceRepo) Find(ctx context.Context, userID string, day attendance.DayKey) (*attendance.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.rows[memKey(userID, day)]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *memAttendanceRepo) CreateIfAbsent(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memKey(day.UserID, day.Day)
	if _, ok := r.rows[key]; ok {
		return attendance.AttendanceDay{}, fmt.Errorf("duplicate key: %w", attendance.ErrStorageConflict)
	}
	cp := day
	r.rows[key] = &cp
	return day, nil
}

func (r *memAttendanceRepo) SetCheckOut(ctx context.Context, day attendance.AttendanceDay) error {
	return errors.New("not used")
}

func (r *memAttendanceRepo) ListByUserAndRange(ctx context.Context, userID string, from, to attendance.DayKey) ([]attendance.AttendanceDay, error) {
	return nil, errors.New("not used")
}

type memUserDirectory struct {
	ids []string
}

func (d *memUserDirectory) ActiveUserIDs(ctx context.Context) ([]string, error) {
	return d.ids, nil
}

func TestMarkAbsentUsers_FillsMissingDays(t *testing.T) {
	ctx := context.Background()
	repo := newMemAttendanceRepo()
	users := &memUserDirectory{ids: []string{"user-1", "user-2", "user-3"}}

	// user-2 showed up yesterday
	checkIn := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	_, err := repo.CreateIfAbsent(ctx, attendance.AttendanceDay{
		UserID:  "user-2",
		Day:     attendance.DayKeyOf(checkIn),
		Status:  attendance.StatusCheckedIn,
		CheckIn: &attendance.CheckEvent{Instant: checkIn},
	})
	require.NoError(t, err)

	// Just past midnight UTC of the next day
	jobs := NewAbsenceJobs(repo, users, clock.Fixed(time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC)))
	require.NoError(t, jobs.MarkAbsentUsers(ctx))

	yesterday := attendance.DayKey("2025-06-01")

	for _, tc := range []struct {
		userID   string
		expected attendance.Status
	}{
		{"user-1", attendance.StatusAbsent},
		{"user-2", attendance.StatusCheckedIn},
		{"user-3", attendance.StatusAbsent},
	} {
		rec, err := repo.Find(ctx, tc.userID, yesterday)
		require.NoError(t, err)
		require.NotNil(t, rec, "expected a record for %s", tc.userID)
		assert.Equal(t, tc.expected, rec.Status, "user %s", tc.userID)
	}
}

func TestMarkAbsentUsers_OnlyRunsAfterMidnight(t *testing.T) {
	ctx := context.Background()
	repo := newMemAttendanceRepo()
	users := &memUserDirectory{ids: []string{"user-1"}}

	jobs := NewAbsenceJobs(repo, users, clock.Fixed(time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)))
	require.NoError(t, jobs.MarkAbsentUsers(ctx))

	rec, err := repo.Find(ctx, "user-1", attendance.DayKey("2025-06-01"))
	require.NoError(t, err)
	assert.Nil(t, rec, "batch must not act outside its window")
}

func TestMarkAbsentUsers_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemAttendanceRepo()
	users := &memUserDirectory{ids: []string{"user-1"}}

	jobs := NewAbsenceJobs(repo, users, clock.Fixed(time.Date(2025, 6, 2, 0, 30, 0, 0, time.UTC)))
	require.NoError(t, jobs.MarkAbsentUsers(ctx))
	require.NoError(t, jobs.MarkAbsentUsers(ctx))

	rec, err := repo.Find(ctx, "user-1", attendance.DayKey("2025-06-01"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusAbsent, rec.Status)
	require.NotNil(t, rec.WorkingMinutes)
	assert.Equal(t, 0, *rec.WorkingMinutes)
}
