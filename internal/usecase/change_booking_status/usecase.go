package change_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/policy"
)

// UseCase use case для смены статуса записи
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит запись в новый статус.
//
// Владелец бизнеса может выполнить любой допустимый переход, клиент записи
// может только отменить её. Отмена проверяет окно отмены для обоих.
// Повторная отмена уже отменённой записи не меняет её и не является ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeBookingStatus: user=%d, booking=%d, status=%s", req.UserID, req.BookingID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeBookingStatus: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ChangeBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ChangeBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		business, err := uc.businessRepo.GetByID(txCtx, booking.BusinessID)
		if err != nil {
			uc.logger.Error("ChangeBookingStatus: failed to get business id=%d: %v", booking.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
		}

		isOwner := business.IsOwner(req.UserID)
		isCustomer := booking.CustomerUserID == req.UserID
		if !isOwner && !(isCustomer && req.Status == domain.StatusCancelled) {
			uc.logger.Warn("ChangeBookingStatus: user=%d may not set %s on booking id=%d", req.UserID, req.Status, booking.ID)
			return ErrForbidden
		}

		resp = &Response{
			ID:                 booking.ID,
			BusinessID:         booking.BusinessID,
			Status:             string(booking.Status),
			PreviousStatus:     string(booking.Status),
			StartTime:          booking.StartTime,
			EndTime:            booking.EndTime,
			CancellationReason: booking.CancellationReason,
			CancelledAt:        booking.CancelledAt,
		}

		if req.Status == domain.StatusCancelled && booking.IsCancelled() {
			uc.logger.Info("ChangeBookingStatus: booking id=%d already cancelled", booking.ID)
			resp.Unchanged = true
			return nil
		}

		if !booking.CanTransitionTo(req.Status) {
			uc.logger.Warn("ChangeBookingStatus: booking id=%d cannot move %s -> %s", booking.ID, booking.Status, req.Status)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, req.Status)
		}

		if req.Status != domain.StatusCancelled {
			if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, req.Status); err != nil {
				uc.logger.Error("ChangeBookingStatus: failed to update booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
			}
			resp.Status = string(req.Status)
			return nil
		}

		policyHours, err := uc.cancellationPolicyHours(txCtx, booking.BusinessID)
		if err != nil {
			return err
		}

		allowed, deadline := policy.IsCancellationAllowed(now, booking.StartTime, policyHours)
		if !allowed {
			uc.logger.Warn("ChangeBookingStatus: booking id=%d cancellation deadline %s passed",
				booking.ID, deadline.Format(time.RFC3339))
			if uc.metrics != nil {
				uc.metrics.RecordBookingRejection(ReasonCancellationWindowClosed)
			}
			return &CancellationDeadlineError{Deadline: deadline, PolicyHours: policyHours}
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason, now); err != nil {
			uc.logger.Error("ChangeBookingStatus: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		resp.Status = string(domain.StatusCancelled)
		resp.CancellationReason = req.Reason
		resp.CancelledAt = &now
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeBookingStatus: booking id=%d status %s -> %s", resp.ID, resp.PreviousStatus, resp.Status)

	return resp, nil
}

func (uc *UseCase) cancellationPolicyHours(ctx context.Context, businessID int64) (int, error) {
	rules, err := uc.businessRepo.GetRules(ctx, businessID)
	if errors.Is(err, businessRepo.ErrRulesNotFound) {
		return 0, nil
	}
	if err != nil {
		uc.logger.Error("ChangeBookingStatus: failed to get rules for business=%d: %v", businessID, err)
		return 0, fmt.Errorf("%w: failed to get rules: %w", ErrInternal, err)
	}
	return rules.CancellationPolicyHours, nil
}

func validateRequest(req *Request) error {
	if req.UserID <= 0 || req.BookingID <= 0 {
		return fmt.Errorf("%w: userID and bookingID must be positive", ErrInvalidInput)
	}
	if _, err := domain.ParseBookingStatus(string(req.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Reason != nil {
		if req.Status != domain.StatusCancelled {
			return fmt.Errorf("%w: reason is only allowed for cancellation", ErrInvalidInput)
		}
		if len([]rune(*req.Reason)) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}
	return nil
}
