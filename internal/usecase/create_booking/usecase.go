package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	guard        BookingGuard
	txManager    TransactionManager
	metrics      Metrics
	defaultLoc   *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultLoc используется для бизнесов без часового пояса, metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	guard BookingGuard,
	txManager TransactionManager,
	metrics Metrics,
	defaultLoc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		guard:        guard,
		txManager:    txManager,
		metrics:      metrics,
		defaultLoc:   defaultLoc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверки и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, service=%d, start=%s",
		req.UserID, req.BusinessID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Услуга должна принадлежать бизнесу и быть активной
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != business.ID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to business=%d, not %d",
			service.ID, service.BusinessID, business.ID)
		return nil, ErrServiceNotFound
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", service.ID)
		return nil, ErrServiceInactive
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Error("CreateBooking: service id=%d has non-positive duration %d", service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration is not positive", ErrInternal)
	}

	start := req.StartTime
	end := start.Add(service.Duration())

	var result *domain.Booking

	// 4. Чтение правил, проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := uc.guard.LoadSettings(txCtx, business.ID)
		if err != nil {
			return err
		}

		if _, err := uc.guard.Check(txCtx, now, settings, booking_guard.Candidate{
			BusinessID:   business.ID,
			LocationID:   req.LocationID,
			Location:     business.Location(uc.defaultLoc),
			Start:        start,
			End:          end,
			BufferBefore: time.Duration(service.BufferTimeBeforeMinutes) * time.Minute,
			BufferAfter:  time.Duration(service.BufferTimeAfterMinutes) * time.Minute,
		}); err != nil {
			return err
		}

		status, payment := domain.StatusPending, domain.PaymentUnpaid
		if req.Paid {
			status, payment = domain.StatusConfirmed, domain.PaymentPaid
		}

		booking := &domain.Booking{
			BusinessID:     business.ID,
			LocationID:     req.LocationID,
			ServiceID:      service.ID,
			CustomerUserID: req.UserID,
			CustomerName:   strings.TrimSpace(req.CustomerName),
			CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
			CustomerPhone:  req.CustomerPhone,
			StartTime:      start,
			EndTime:        end,
			Status:         status,
			PaymentStatus:  payment,
			// Денормализация данных услуги
			ServiceName:         service.Name,
			ServicePrice:        service.Price,
			BufferBeforeMinutes: service.BufferTimeBeforeMinutes,
			BufferAfterMinutes:  service.BufferTimeAfterMinutes,
			Notes:               req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RecordBookingCreated(domain.OriginSingle)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}
