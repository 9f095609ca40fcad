package change_booking_status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	updates   int
	cancelled []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.updates++
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason *string, at time.Time) error {
	f.cancelled = append(f.cancelled, id)
	f.bookings[id].Status = domain.StatusCancelled
	f.bookings[id].CancellationReason = reason
	f.bookings[id].CancelledAt = &at
	return nil
}

type fakeBusinessRepo struct {
	rules *domain.BookingRules
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	return &domain.Business{ID: id, OwnerID: 100}, nil
}

func (f *fakeBusinessRepo) GetRules(context.Context, int64) (*domain.BookingRules, error) {
	if f.rules == nil {
		return nil, businessRepo.ErrRulesNotFound
	}
	return f.rules, nil
}

type fakeMetrics struct{ reasons []string }

func (m *fakeMetrics) RecordBookingRejection(reason string) { m.reasons = append(m.reasons, reason) }

const (
	ownerID    = 100
	customerID = 200
)

var appointment = time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

func newUseCase(now time.Time, policyHours int, status domain.BookingStatus) (*UseCase, *fakeBookingRepo, *fakeMetrics) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:             1,
			BusinessID:     1,
			CustomerUserID: customerID,
			StartTime:      appointment,
			EndTime:        appointment.Add(30 * time.Minute),
			Status:         status,
		},
	}}
	m := &fakeMetrics{}
	uc := NewUseCase(repo, &fakeBusinessRepo{rules: &domain.BookingRules{CancellationPolicyHours: policyHours}}, fakeTx{}, m, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc, repo, m
}

func TestExecute_CancelAtDeadlineAllowed(t *testing.T) {
	uc, repo, _ := newUseCase(appointment.Add(-24*time.Hour), 24, domain.StatusConfirmed)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    customerID,
		BookingID: 1,
		Status:    domain.StatusCancelled,
		Reason:    ptr.Ptr("sick"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(domain.StatusConfirmed), resp.PreviousStatus)
	assert.Equal(t, "sick", *resp.CancellationReason)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestExecute_CancelAfterDeadlineRejected(t *testing.T) {
	uc, repo, m := newUseCase(appointment.Add(-24*time.Hour+time.Minute), 24, domain.StatusConfirmed)

	_, err := uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: 1, Status: domain.StatusCancelled})
	require.ErrorIs(t, err, ErrCancellationWindowClosed)

	var deadlineErr *CancellationDeadlineError
	require.True(t, errors.As(err, &deadlineErr))
	assert.Equal(t, appointment.Add(-24*time.Hour), deadlineErr.Deadline)
	assert.Equal(t, 24, deadlineErr.PolicyHours)
	assert.Empty(t, repo.cancelled)
	assert.Equal(t, []string{ReasonCancellationWindowClosed}, m.reasons)
}

func TestExecute_ZeroPolicyAllowsLateCancellation(t *testing.T) {
	uc, _, _ := newUseCase(appointment.Add(-time.Minute), 0, domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{UserID: customerID, BookingID: 1, Status: domain.StatusCancelled})
	assert.NoError(t, err)
}

func TestExecute_NoRulesAllowsCancellation(t *testing.T) {
	uc, _, _ := newUseCase(appointment.Add(-time.Minute), 0, domain.StatusPending)
	uc.businessRepo = &fakeBusinessRepo{}

	_, err := uc.Execute(context.Background(), &Request{UserID: customerID, BookingID: 1, Status: domain.StatusCancelled})
	assert.NoError(t, err)
}

func TestExecute_RepeatedCancelIsNoop(t *testing.T) {
	uc, repo, _ := newUseCase(appointment.Add(-time.Hour), 24, domain.StatusCancelled)

	resp, err := uc.Execute(context.Background(), &Request{UserID: customerID, BookingID: 1, Status: domain.StatusCancelled})
	require.NoError(t, err)
	assert.True(t, resp.Unchanged)
	assert.Empty(t, repo.cancelled)
}

func TestExecute_OwnerTransitions(t *testing.T) {
	uc, repo, _ := newUseCase(appointment.Add(-48*time.Hour), 24, domain.StatusPending)

	resp, err := uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: 1, Status: domain.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	_, err = uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: 1, Status: domain.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.updates)

	// из терминального статуса переходов нет
	_, err = uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: 1, Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: 1, Status: domain.StatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_Access(t *testing.T) {
	uc, repo, _ := newUseCase(appointment.Add(-48*time.Hour), 24, domain.StatusPending)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{UserID: customerID, BookingID: 1, Status: domain.StatusConfirmed})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Execute(ctx, &Request{UserID: 999, BookingID: 1, Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Execute(ctx, &Request{UserID: ownerID, BookingID: 42, Status: domain.StatusCancelled})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Zero(t, repo.updates)
	assert.Empty(t, repo.cancelled)
}

func TestValidateRequest(t *testing.T) {
	assert.ErrorIs(t, validateRequest(&Request{UserID: 1, BookingID: 1, Status: "DONE"}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{UserID: 0, BookingID: 1, Status: domain.StatusCancelled}), ErrInvalidInput)
	assert.ErrorIs(t, validateRequest(&Request{
		UserID: 1, BookingID: 1, Status: domain.StatusConfirmed, Reason: ptr.Ptr("x"),
	}), ErrInvalidInput)
	assert.NoError(t, validateRequest(&Request{UserID: 1, BookingID: 1, Status: domain.StatusNoShow}))
}
