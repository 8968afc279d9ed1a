package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
	"github.com/bkd-portal/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeLocationRepository struct {
	db *database.DB
}

const officeLocationColumns = `
	id, name, code, latitude, longitude, radius_meters, is_active, created_at, updated_at
`

// ActiveZones implements office.OfficeLocationRepository.
func (r *officeLocationRepository) ActiveZones(ctx context.Context) ([]office.OfficeLocation, error) {
	query := `
		SELECT ` + officeLocationColumns + `
		FROM office_locations
		WHERE is_active = true
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active zones: %w", err)
	}
	defer rows.Close()

	return collectOfficeLocations(rows)
}

// GetByID implements office.OfficeLocationRepository.
func (r *officeLocationRepository) GetByID(ctx context.Context, id string) (office.OfficeLocation, error) {
	query := `
		SELECT ` + officeLocationColumns + `
		FROM office_locations
		WHERE id = $1
	`

	loc, err := scanOfficeLocation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.OfficeLocation{}, office.ErrOfficeNotFound
		}
		return office.OfficeLocation{}, fmt.Errorf("failed to get office location: %w", err)
	}

	return loc, nil
}

// Create implements office.OfficeLocationRepository.
func (r *officeLocationRepository) Create(ctx context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	query := `
		INSERT INTO office_locations (id, name, code, latitude, longitude, radius_meters, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		loc.Name,
		loc.Code,
		loc.Latitude,
		loc.Longitude,
		loc.RadiusMeters,
		loc.IsActive,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return office.OfficeLocation{}, fmt.Errorf("office code %s taken: %w", loc.Code, office.ErrOfficeCodeExists)
		}
		return office.OfficeLocation{}, fmt.Errorf("failed to create office location: %w", err)
	}

	return loc, nil
}

// Update implements office.OfficeLocationRepository.
func (r *officeLocationRepository) Update(ctx context.Context, loc office.OfficeLocation) error {
	query := `
		UPDATE office_locations
		SET name = $1,
		    code = $2,
		    latitude = $3,
		    longitude = $4,
		    radius_meters = $5,
		    is_active = $6,
		    updated_at = NOW()
		WHERE id = $7
	`

	commandTag, err := r.db.Exec(ctx, query,
		loc.Name,
		loc.Code,
		loc.Latitude,
		loc.Longitude,
		loc.RadiusMeters,
		loc.IsActive,
		loc.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("office code %s taken: %w", loc.Code, office.ErrOfficeCodeExists)
		}
		return fmt.Errorf("failed to update office location: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return office.ErrOfficeNotFound
	}

	return nil
}

// List implements office.OfficeLocationRepository.
func (r *officeLocationRepository) List(ctx context.Context) ([]office.OfficeLocation, error) {
	query := `
		SELECT ` + officeLocationColumns + `
		FROM office_locations
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query office locations: %w", err)
	}
	defer rows.Close()

	return collectOfficeLocations(rows)
}

func collectOfficeLocations(rows pgx.Rows) ([]office.OfficeLocation, error) {
	var locations []office.OfficeLocation
	for rows.Next() {
		loc, err := scanOfficeLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan office location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return locations, nil
}

func scanOfficeLocation(row pgx.Row) (office.OfficeLocation, error) {
	var loc office.OfficeLocation
	err := row.Scan(
		&loc.ID,
		&loc.Name,
		&loc.Code,
		&loc.Latitude,
		&loc.Longitude,
		&loc.RadiusMeters,
		&loc.IsActive,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	)
	if err != nil {
		return office.OfficeLocation{}, err
	}
	return loc, nil
}

func NewOfficeLocationRepository(db *database.DB) office.OfficeLocationRepository {
	return &officeLocationRepository{db: db}
}
