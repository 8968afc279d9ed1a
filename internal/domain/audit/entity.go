package audit

import (
	"time"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
)

type Operation string

const (
	OperationCheckIn  Operation = "CHECK_IN"
	OperationCheckOut Operation = "CHECK_OUT"
)

type Outcome string

const (
	OutcomeAccepted Outcome = "ACCEPTED"
	OutcomeRejected Outcome = "REJECTED"
)

// Entry is one immutable line of the attendance audit trail: who tried
// what, when, with which geofence verdict, and how it ended. Entries are
// only ever appended; there is no update or delete.
type Entry struct {
	ID         string
	UserID     string
	Day        attendance.DayKey
	Operation  Operation
	Outcome    Outcome
	Reason     *string
	Verdict    *attendance.LocationVerdict
	RecordedAt time.Time
}
