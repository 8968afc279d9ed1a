package office

import (
	"context"
	"fmt"
	"testing"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOfficeRepo struct {
	zones map[string]office.OfficeLocation
	codes map[string]bool
	seq   int
}

func newMemOfficeRepo() *memOfficeRepo {
	return &memOfficeRepo{
		zones: make(map[string]office.OfficeLocation),
		codes: make(map[string]bool),
	}
}

func (r *memOfficeRepo) ActiveZones(ctx context.Context) ([]office.OfficeLocation, error) {
	var active []office.OfficeLocation
	for _, z := range r.zones {
		if z.IsActive {
			active = append(active, z)
		}
	}
	return active, nil
}

func (r *memOfficeRepo) GetByID(ctx context.Context, id string) (office.OfficeLocation, error) {
	if z, ok := r.zones[id]; ok {
		return z, nil
	}
	return office.OfficeLocation{}, office.ErrOfficeNotFound
}

func (r *memOfficeRepo) Create(ctx context.Context, loc office.OfficeLocation) (office.OfficeLocation, error) {
	if r.codes[loc.Code] {
		return office.OfficeLocation{}, office.ErrOfficeCodeExists
	}
	r.seq++
	loc.ID = fmt.Sprintf("office-%d", r.seq)
	r.zones[loc.ID] = loc
	r.codes[loc.Code] = true
	return loc, nil
}

func (r *memOfficeRepo) Update(ctx context.Context, loc office.OfficeLocation) error {
	if _, ok := r.zones[loc.ID]; !ok {
		return office.ErrOfficeNotFound
	}
	r.zones[loc.ID] = loc
	return nil
}

func (r *memOfficeRepo) List(ctx context.Context) ([]office.OfficeLocation, error) {
	var all []office.OfficeLocation
	for _, z := range r.zones {
		all = append(all, z)
	}
	return all, nil
}

func validCreateRequest() office.CreateOfficeLocationRequest {
	return office.CreateOfficeLocationRequest{
		Name:         "Kantor Pusat",
		Code:         "HQ",
		Latitude:     -6.2088,
		Longitude:    106.8456,
		RadiusMeters: 100,
	}
}

func TestOfficeService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewOfficeLocationService(newMemOfficeRepo())

	resp, err := svc.Create(ctx, validCreateRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "HQ", resp.Code)
	assert.True(t, resp.IsActive, "zones default to active")
}

func TestOfficeService_Create_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc := NewOfficeLocationService(newMemOfficeRepo())

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validCreateRequest())
	assert.ErrorIs(t, err, office.ErrOfficeCodeExists)
}

func TestOfficeService_Create_RadiusBounds(t *testing.T) {
	ctx := context.Background()
	svc := NewOfficeLocationService(newMemOfficeRepo())

	for _, radius := range []int{9, 1001, 0, -5} {
		req := validCreateRequest()
		req.RadiusMeters = radius
		_, err := svc.Create(ctx, req)
		assert.Error(t, err, "radius %d must be rejected", radius)
	}

	for _, radius := range []int{10, 1000} {
		req := validCreateRequest()
		req.Code = fmt.Sprintf("HQ-%d", radius)
		req.RadiusMeters = radius
		_, err := svc.Create(ctx, req)
		assert.NoError(t, err, "radius %d must be accepted", radius)
	}
}

func TestOfficeService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newMemOfficeRepo()
	svc := NewOfficeLocationService(repo)

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	inactive := false
	newRadius := 250
	resp, err := svc.Update(ctx, office.UpdateOfficeLocationRequest{
		ID:           created.ID,
		RadiusMeters: &newRadius,
		IsActive:     &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, 250, resp.RadiusMeters)
	assert.False(t, resp.IsActive)
	// Untouched fields survive
	assert.Equal(t, "Kantor Pusat", resp.Name)
}

func TestOfficeService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewOfficeLocationService(newMemOfficeRepo())

	name := "Kantor Baru"
	_, err := svc.Update(ctx, office.UpdateOfficeLocationRequest{ID: "office-ghost", Name: &name})
	assert.ErrorIs(t, err, office.ErrOfficeNotFound)
}

func TestOfficeService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewOfficeLocationService(newMemOfficeRepo())

	_, err := svc.Get(ctx, "office-ghost")
	assert.ErrorIs(t, err, office.ErrOfficeNotFound)
}
