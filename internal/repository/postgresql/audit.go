package postgresql

import (
	"context"
	"fmt"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/audit"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/database"
)

type auditSink struct {
	db *database.DB
}

// Append implements audit.Sink. The table is insert-only; the geofence
// verdict is flattened into nullable columns so rejected attempts keep
// their distance evidence.
func (s *auditSink) Append(ctx context.Context, entry audit.Entry) error {
	query := `
		INSERT INTO attendance_audit_log (
			id, user_id, day, operation, outcome, reason,
			verdict_valid, verdict_office_id, verdict_office_name,
			verdict_distance_meters, verdict_allowed_radius_meters,
			recorded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	var (
		verdictValid  interface{}
		verdictOffice interface{}
		verdictName   interface{}
		verdictDist   interface{}
		verdictRadius interface{}
	)
	if entry.Verdict != nil {
		verdictValid = entry.Verdict.IsValid
		verdictOffice = entry.Verdict.NearestOfficeID
		verdictName = entry.Verdict.NearestOfficeName
		verdictDist = entry.Verdict.DistanceMeters
		verdictRadius = entry.Verdict.AllowedRadiusMeters
	}

	_, err := s.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Day.String(),
		entry.Operation,
		entry.Outcome,
		entry.Reason,
		verdictValid,
		verdictOffice,
		verdictName,
		verdictDist,
		verdictRadius,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

func NewAuditSink(db *database.DB) audit.Sink {
	return &auditSink{db: db}
}
