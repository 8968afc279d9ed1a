package office

import (
	"context"
	"errors"
	"fmt"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
)

type OfficeLocationServiceImpl struct {
	office.OfficeLocationRepository
}

func NewOfficeLocationService(repo office.OfficeLocationRepository) office.OfficeLocationService {
	return &OfficeLocationServiceImpl{OfficeLocationRepository: repo}
}

// Create implements office.OfficeLocationService.
func (s *OfficeLocationServiceImpl) Create(ctx context.Context, req office.CreateOfficeLocationRequest) (office.OfficeLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeLocationResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	created, err := s.OfficeLocationRepository.Create(ctx, office.OfficeLocation{
		Name:         req.Name,
		Code:         req.Code,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     active,
	})
	if err != nil {
		if errors.Is(err, office.ErrOfficeCodeExists) {
			return office.OfficeLocationResponse{}, office.ErrOfficeCodeExists
		}
		return office.OfficeLocationResponse{}, fmt.Errorf("failed to create office location: %w", err)
	}

	return mapOfficeToResponse(created), nil
}

// Update implements office.OfficeLocationService.
func (s *OfficeLocationServiceImpl) Update(ctx context.Context, req office.UpdateOfficeLocationRequest) (office.OfficeLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return office.OfficeLocationResponse{}, err
	}

	loc, err := s.OfficeLocationRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return office.OfficeLocationResponse{}, office.ErrOfficeNotFound
		}
		return office.OfficeLocationResponse{}, fmt.Errorf("failed to get office location: %w", err)
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	if err := s.OfficeLocationRepository.Update(ctx, loc); err != nil {
		return office.OfficeLocationResponse{}, fmt.Errorf("failed to update office location: %w", err)
	}

	updated, err := s.OfficeLocationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return office.OfficeLocationResponse{}, fmt.Errorf("failed to get updated office location: %w", err)
	}

	return mapOfficeToResponse(updated), nil
}

// Get implements office.OfficeLocationService.
func (s *OfficeLocationServiceImpl) Get(ctx context.Context, id string) (office.OfficeLocationResponse, error) {
	loc, err := s.OfficeLocationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, office.ErrOfficeNotFound) {
			return office.OfficeLocationResponse{}, office.ErrOfficeNotFound
		}
		return office.OfficeLocationResponse{}, fmt.Errorf("failed to get office location: %w", err)
	}

	return mapOfficeToResponse(loc), nil
}

// List implements office.OfficeLocationService.
func (s *OfficeLocationServiceImpl) List(ctx context.Context) ([]office.OfficeLocationResponse, error) {
	locations, err := s.OfficeLocationRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list office locations: %w", err)
	}

	responses := make([]office.OfficeLocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapOfficeToResponse(loc))
	}
	return responses, nil
}

func mapOfficeToResponse(loc office.OfficeLocation) office.OfficeLocationResponse {
	return office.OfficeLocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Code:         loc.Code,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		RadiusMeters: loc.RadiusMeters,
		IsActive:     loc.IsActive,
		CreatedAt:    loc.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    loc.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
