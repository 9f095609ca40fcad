package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeBusinessRepo struct {
	rules    *domain.BookingRules
	weekly   *domain.WeeklyAvailability
	upserts  int
	replaces int
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1, OwnerID: 100, Timezone: "Europe/Berlin"}, nil
}

func (f *fakeBusinessRepo) GetRules(_ context.Context, _ int64) (*domain.BookingRules, error) {
	if f.rules == nil {
		return nil, businessRepo.ErrRulesNotFound
	}
	copied := *f.rules
	return &copied, nil
}

func (f *fakeBusinessRepo) UpsertRules(_ context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	f.upserts++
	saved := *rules
	saved.UpdatedAt = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	f.rules = &saved
	return &saved, nil
}

func (f *fakeBusinessRepo) GetAvailability(_ context.Context, businessID int64) (*domain.WeeklyAvailability, error) {
	if f.weekly == nil {
		return &domain.WeeklyAvailability{BusinessID: businessID, Days: map[time.Weekday]domain.DaySchedule{}}, nil
	}
	return f.weekly, nil
}

func (f *fakeBusinessRepo) ReplaceAvailability(_ context.Context, weekly *domain.WeeklyAvailability) error {
	f.replaces++
	f.weekly = weekly
	return nil
}

func newService() (*Service, *fakeBusinessRepo, *fakeTx) {
	repo := &fakeBusinessRepo{}
	tx := &fakeTx{}
	return NewService(repo, tx, nopLogger{}), repo, tx
}

func TestGet_Unconfigured(t *testing.T) {
	s, _, _ := newService()

	resp, err := s.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	assert.Equal(t, models.Rules{}, resp.Rules)
	assert.NotNil(t, resp.Availability)
	assert.Empty(t, resp.Availability)
	assert.Nil(t, resp.UpdatedAt)

	_, err = s.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestGet_Configured(t *testing.T) {
	s, repo, _ := newService()
	repo.rules = &domain.BookingRules{BusinessID: 1, MinimumAdvanceBookingHours: 2, CancellationPolicyHours: 24}
	repo.weekly = &domain.WeeklyAvailability{BusinessID: 1, Days: map[time.Weekday]domain.DaySchedule{
		time.Monday: {IsOpen: true, OpenTime: ptr.Ptr(types.TimeString("09:00")), CloseTime: ptr.Ptr(types.TimeString("17:00"))},
		time.Sunday: {IsOpen: false},
	}}

	resp, err := s.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 24, resp.Rules.CancellationPolicyHours)
	require.Contains(t, resp.Availability, "monday")
	assert.Equal(t, "09:00", *resp.Availability["monday"].OpenTime)
	assert.False(t, resp.Availability["sunday"].IsOpen)
}

func TestUpdate_PartialRules(t *testing.T) {
	s, repo, tx := newService()
	repo.rules = &domain.BookingRules{BusinessID: 1, MinimumAdvanceBookingHours: 2, CancellationPolicyHours: 24}

	resp, err := s.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:     100,
		BusinessID: 1,
		Rules:      &models.UpdateRulesRequest{CancellationPolicyHours: ptr.Ptr(48)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Rules.MinimumAdvanceBookingHours)
	assert.Equal(t, 48, resp.Rules.CancellationPolicyHours)
	assert.Equal(t, 1, repo.upserts)
	assert.Zero(t, repo.replaces)
	assert.Equal(t, 1, tx.calls)
}

func TestUpdate_ReplacesAvailability(t *testing.T) {
	s, repo, _ := newService()

	resp, err := s.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:     100,
		BusinessID: 1,
		Availability: map[string]models.DaySchedule{
			"Monday":   {IsOpen: true, OpenTime: ptr.Ptr("09:00"), CloseTime: ptr.Ptr("18:00")},
			"saturday": {IsOpen: false, OpenTime: ptr.Ptr("10:00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.weekly.Days, 2)
	assert.Equal(t, types.TimeString("18:00"), *repo.weekly.Days[time.Monday].CloseTime)
	assert.Nil(t, repo.weekly.Days[time.Saturday].OpenTime, "hours of a closed day are dropped")
	assert.Contains(t, resp.Availability, "monday")
	assert.Zero(t, repo.upserts)
}

func TestUpdate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.UpdateSettingsRequest
		wantErr error
	}{
		{
			name:    "nothing to update",
			req:     &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "not owner",
			req:     &models.UpdateSettingsRequest{UserID: 200, BusinessID: 1, Rules: &models.UpdateRulesRequest{}},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "unknown business",
			req:     &models.UpdateSettingsRequest{UserID: 100, BusinessID: 2, Rules: &models.UpdateRulesRequest{}},
			wantErr: ErrBusinessNotFound,
		},
		{
			name: "negative notice",
			req: &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1,
				Rules: &models.UpdateRulesRequest{MinimumAdvanceBookingHours: ptr.Ptr(-1)}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "cancellation policy too long",
			req: &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1,
				Rules: &models.UpdateRulesRequest{CancellationPolicyHours: ptr.Ptr(domain.MaxCancellationPolicyHours + 1)}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "unknown weekday",
			req: &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1,
				Availability: map[string]models.DaySchedule{"funday": {IsOpen: false}}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "open day without hours",
			req: &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1,
				Availability: map[string]models.DaySchedule{"monday": {IsOpen: true}}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "inverted hours",
			req: &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1,
				Availability: map[string]models.DaySchedule{"monday": {IsOpen: true, OpenTime: ptr.Ptr("18:00"), CloseTime: ptr.Ptr("09:00")}}},
			wantErr: ErrInvalidInput,
		},
		{
			name: "malformed hours",
			req: &models.UpdateSettingsRequest{UserID: 100, BusinessID: 1,
				Availability: map[string]models.DaySchedule{"monday": {IsOpen: true, OpenTime: ptr.Ptr("9am"), CloseTime: ptr.Ptr("17:00")}}},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, _ := newService()
			_, err := s.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.upserts)
			assert.Zero(t, repo.replaces)
		})
	}
}
