package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
)

// UseCase use case для переноса записи на другое время
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	guard        BookingGuard
	txManager    TransactionManager
	defaultLoc   *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	guard BookingGuard,
	txManager TransactionManager,
	defaultLoc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		guard:        guard,
		txManager:    txManager,
		defaultLoc:   defaultLoc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит запись, сохраняя её длительность.
// Сама запись исключается из поиска пересечений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: user=%d, booking=%d, newStart=%s",
		req.UserID, req.BookingID, req.NewStartTime.Format(time.RFC3339))

	if req.UserID <= 0 || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: userID and bookingID must be positive", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		business, err := uc.businessRepo.GetByID(txCtx, booking.BusinessID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get business id=%d: %v", booking.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
		}

		if !business.IsOwner(req.UserID) && booking.CustomerUserID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user=%d has no access to booking id=%d", req.UserID, booking.ID)
			return ErrForbidden
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, booking.Status)
		}

		newStart := req.NewStartTime
		newEnd := newStart.Add(booking.Duration())

		resp = &Response{
			ID:            booking.ID,
			BusinessID:    booking.BusinessID,
			LocationID:    booking.LocationID,
			ServiceID:     booking.ServiceID,
			StartTime:     newStart,
			EndTime:       newEnd,
			Status:        string(booking.Status),
			PreviousStart: booking.StartTime,
			PreviousEnd:   booking.EndTime,
			UpdatedAt:     booking.UpdatedAt,
		}

		if newStart.Equal(booking.StartTime) {
			uc.logger.Info("RescheduleBooking: booking id=%d already starts at %s", booking.ID, newStart.Format(time.RFC3339))
			return nil
		}

		settings, err := uc.guard.LoadSettings(txCtx, business.ID)
		if err != nil {
			return err
		}

		if _, err := uc.guard.Check(txCtx, now, settings, booking_guard.Candidate{
			BusinessID:       business.ID,
			LocationID:       booking.LocationID,
			Location:         business.Location(uc.defaultLoc),
			Start:            newStart,
			End:              newEnd,
			BufferBefore:     booking.BufferBefore(),
			BufferAfter:      booking.BufferAfter(),
			ExcludeBookingID: &booking.ID,
		}); err != nil {
			return err
		}

		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, newStart, newEnd); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
		}

		resp.UpdatedAt = now
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s", resp.ID, resp.StartTime.Format(time.RFC3339))

	return resp, nil
}
