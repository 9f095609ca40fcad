package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/policy"
)

// UseCase use case для получения свободного времени на дату.
// Результат не резервирует время: create_booking повторяет проверки в транзакции.
type UseCase struct {
	businessRepo BusinessRepository
	serviceRepo  ServiceRepository
	guard        BookingGuard
	defaultLoc   *time.Location
	step         time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// step шаг сетки слотов, 0 = длительность услуги.
func NewUseCase(
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	guard BookingGuard,
	defaultLoc *time.Location,
	step time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		guard:        guard,
		defaultLoc:   defaultLoc,
		step:         step,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Бизнес и услуга
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.BusinessID != business.ID {
		uc.logger.Warn("GetAvailableSlots: service id=%d belongs to business=%d", service.ID, service.BusinessID)
		return nil, ErrServiceNotFound
	}
	if !service.IsActive || service.DurationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable", service.ID)
		return nil, ErrServiceInactive
	}

	// 3. Окно работы на дату в часовом поясе бизнеса
	loc := business.Location(uc.defaultLoc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 12, 0, 0, 0, loc)

	settings, err := uc.guard.LoadSettings(ctx, business.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	window := policy.ResolveAvailability(settings.Weekly, date)
	resp := &Response{
		Date:       date.Format(domain.DateFormat),
		BusinessID: business.ID,
		LocationID: req.LocationID,
		ServiceID:  service.ID,
		Timezone:   loc.String(),
		DayState:   window.State.String(),
		Slots:      []Slot{},
	}

	bounds, ok := dayBounds(window, date, loc)
	if !ok {
		uc.logger.Info("GetAvailableSlots: business=%d is closed on %s", business.ID, resp.Date)
		return resp, nil
	}

	// 4. Занятость и сетка слотов
	busy, err := uc.guard.Busy(ctx, settings, business.ID, req.LocationID, bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	step := uc.step
	if step <= 0 {
		step = service.Duration()
	}

	before := time.Duration(service.BufferTimeBeforeMinutes) * time.Minute
	after := time.Duration(service.BufferTimeAfterMinutes) * time.Minute
	resp.Slots = generateSlots(bounds, service.Duration(), step, now, settings.Rules.MinimumAdvanceBookingHours, busy,
		func(start, end time.Time) policy.Interval {
			return uc.guard.Effective(start, end, before, after, settings.Rules)
		})

	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, found %d free slots", business.ID, resp.Date, len(resp.Slots))
	return resp, nil
}
