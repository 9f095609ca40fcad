package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// MaxListLimit верхняя граница размера выборки бронирований бизнеса
const MaxListLimit = 500

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно клиенту записи и владельцу бизнеса.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerUserID != userID {
		if err := s.checkOwnerAccess(ctx, booking.BusinessID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			if errors.Is(err, ErrInternal) {
				return nil, err
			}
			return nil, ErrAccessDenied
		}
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает записи пользователя как клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings получает бронирования бизнеса с фильтрацией по локации,
// периоду и статусу. Доступно только владельцу бизнеса.
//
// Период выбирает записи, пересекающиеся с [From, To). Без IncludeCancelled
// отменённые записи не возвращаются.
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.LocationID != nil {
		logMsg += fmt.Sprintf(", location=%d", *req.LocationID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		s.logger.Warn("GetBusinessBookings: invalid period for business=%d", req.BusinessID)
		return nil, ErrInvalidTimeRange
	}
	if req.Limit < 0 || req.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, MaxListLimit)
	}

	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// checkOwnerAccess проверяет, что пользователь владелец бизнеса
func (s *Service) checkOwnerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("checkOwnerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get business: %v", ErrInternal, err)
	}

	if !business.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not owner of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
