package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.BusinessID == filter.BusinessID && !b.IsCancelled() {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBusinessRepo struct {
	rules  *domain.BookingRules
	weekly *domain.WeeklyAvailability
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1, OwnerID: 100}, nil
}

func (f *fakeBusinessRepo) GetRules(context.Context, int64) (*domain.BookingRules, error) {
	if f.rules == nil {
		return nil, businessRepo.ErrRulesNotFound
	}
	return f.rules, nil
}

func (f *fakeBusinessRepo) GetAvailability(_ context.Context, businessID int64) (*domain.WeeklyAvailability, error) {
	if f.weekly == nil {
		return &domain.WeeklyAvailability{BusinessID: businessID}, nil
	}
	return f.weekly, nil
}

type fakeServiceRepo struct{}

func (fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 10:
		return &domain.Service{ID: 10, BusinessID: 1, DurationMinutes: 60, IsActive: true}, nil
	case 11:
		return &domain.Service{ID: 11, BusinessID: 1, DurationMinutes: 60, IsActive: false}, nil
	case 12:
		return &domain.Service{ID: 12, BusinessID: 2, DurationMinutes: 60, IsActive: true}, nil
	default:
		return nil, serviceRepo.ErrServiceNotFound
	}
}

// 2025-10-13 - понедельник
func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 13, hour, minute, 0, 0, time.UTC)
}

func mondayMorning() *domain.WeeklyAvailability {
	return &domain.WeeklyAvailability{BusinessID: 1, Days: map[time.Weekday]domain.DaySchedule{
		time.Monday: {IsOpen: true, OpenTime: ptr.Ptr(types.TimeString("09:00")), CloseTime: ptr.Ptr(types.TimeString("12:00"))},
	}}
}

func existing() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:                 1,
		BusinessID:         1,
		StartTime:          at(10, 0),
		EndTime:            at(11, 0),
		Status:             domain.StatusConfirmed,
		BufferAfterMinutes: 30,
	}}}
}

func newUseCase(bookings *fakeBookingRepo, business *fakeBusinessRepo, buffers bool) *UseCase {
	guard := booking_guard.NewGuard(bookings, business, nopLogger{}, booking_guard.WithServiceBuffers(buffers))
	uc := NewUseCase(business, fakeServiceRepo{}, guard, time.UTC, 0, nopLogger{})
	uc.timeProvider = fixedTime{now: at(0, 0).AddDate(0, 0, -1)}
	return uc
}

func starts(slots []Slot) []time.Time {
	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestExecute_SkipsBusyTime(t *testing.T) {
	uc := newUseCase(existing(), &fakeBusinessRepo{weekly: mondayMorning()}, false)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: at(0, 0)})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-13", resp.Date)
	assert.Equal(t, "open", resp.DayState)
	assert.Equal(t, []time.Time{at(9, 0), at(11, 0)}, starts(resp.Slots))
	assert.Equal(t, at(12, 0), resp.Slots[1].EndTime, "slot may end exactly at closing time")
}

func TestExecute_BuffersExtendBusyTime(t *testing.T) {
	uc := newUseCase(existing(), &fakeBusinessRepo{weekly: mondayMorning()}, true)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: at(0, 0)})
	require.NoError(t, err)

	// запись 10:00-11:00 с буфером 30 минут занимает время до 11:30
	assert.Equal(t, []time.Time{at(9, 0)}, starts(resp.Slots))
}

func TestExecute_AdvanceNotice(t *testing.T) {
	business := &fakeBusinessRepo{
		weekly: mondayMorning(),
		rules:  &domain.BookingRules{BusinessID: 1, MinimumAdvanceBookingHours: 25},
	}
	uc := newUseCase(existing(), business, false)
	uc.timeProvider = fixedTime{now: at(9, 30).AddDate(0, 0, -1)}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: at(0, 0)})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0)}, starts(resp.Slots))
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase(existing(), &fakeBusinessRepo{weekly: mondayMorning()}, false)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: at(0, 0).AddDate(0, 0, 1)})
	require.NoError(t, err)

	assert.Equal(t, "closed", resp.DayState)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnrestrictedDay(t *testing.T) {
	uc := newUseCase(existing(), &fakeBusinessRepo{}, false)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: at(0, 0)})
	require.NoError(t, err)

	assert.Equal(t, "unrestricted", resp.DayState)
	require.Len(t, resp.Slots, 23)
	assert.Equal(t, at(0, 0), resp.Slots[0].StartTime)
	assert.NotContains(t, starts(resp.Slots), at(10, 0))
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "no service", req: &Request{BusinessID: 1, Date: at(0, 0)}, wantErr: ErrInvalidInput},
		{name: "no date", req: &Request{BusinessID: 1, ServiceID: 10}, wantErr: ErrInvalidInput},
		{name: "bad location", req: &Request{BusinessID: 1, ServiceID: 10, LocationID: ptr.Ptr(int64(0)), Date: at(0, 0)}, wantErr: ErrInvalidInput},
		{name: "unknown business", req: &Request{BusinessID: 2, ServiceID: 10, Date: at(0, 0)}, wantErr: ErrBusinessNotFound},
		{name: "unknown service", req: &Request{BusinessID: 1, ServiceID: 99, Date: at(0, 0)}, wantErr: ErrServiceNotFound},
		{name: "foreign service", req: &Request{BusinessID: 1, ServiceID: 12, Date: at(0, 0)}, wantErr: ErrServiceNotFound},
		{name: "inactive service", req: &Request{BusinessID: 1, ServiceID: 11, Date: at(0, 0)}, wantErr: ErrServiceInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(existing(), &fakeBusinessRepo{}, false)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SkipsElapsedSlots(t *testing.T) {
	uc := newUseCase(&fakeBookingRepo{}, &fakeBusinessRepo{weekly: mondayMorning()}, false)
	uc.timeProvider = fixedTime{now: at(9, 30)}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 10, Date: at(0, 0)})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(10, 0), at(11, 0)}, starts(resp.Slots))
}
