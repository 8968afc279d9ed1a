package postgresql

import (
	"context"
	"fmt"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/attendance"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/database"
)

type userDirectory struct {
	db *database.DB
}

// ActiveUserIDs implements attendance.UserDirectory. Only users still
// employed on the roster are candidates for the absence batch.
func (r *userDirectory) ActiveUserIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT id
		FROM users
		WHERE is_active = true
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

func NewUserDirectory(db *database.DB) attendance.UserDirectory {
	return &userDirectory{db: db}
}
