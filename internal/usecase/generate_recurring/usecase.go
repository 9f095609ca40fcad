package generate_recurring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	recurringRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/recurring"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/recurrence"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
)

// UseCase use case для генерации записей по шаблону повторяющейся записи
type UseCase struct {
	bookingRepo    BookingRepository
	recurringRepo  RecurringRepository
	businessRepo   BusinessRepository
	serviceRepo    ServiceRepository
	guard          BookingGuard
	txManager      TransactionManager
	metrics        Metrics
	defaultLoc     *time.Location
	maxOccurrences int
	horizonDays    int
	timeProvider   TimeProvider
	logger         Logger
}

// Config ограничения генерации
type Config struct {
	DefaultLocation *time.Location
	MaxOccurrences  int // максимум записей за один запуск
	HorizonDays     int // диапазон по умолчанию, если To не задан
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	recurringRepo RecurringRepository,
	businessRepo BusinessRepository,
	serviceRepo ServiceRepository,
	guard BookingGuard,
	txManager TransactionManager,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		recurringRepo:  recurringRepo,
		businessRepo:   businessRepo,
		serviceRepo:    serviceRepo,
		guard:          guard,
		txManager:      txManager,
		metrics:        metrics,
		defaultLoc:     cfg.DefaultLocation,
		maxOccurrences: cfg.MaxOccurrences,
		horizonDays:    cfg.HorizonDays,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute разворачивает шаблон в диапазоне дат и создаёт допустимые записи.
//
// Каждое вхождение проверяется так же, как одиночная запись, с учётом
// записей, созданных ранее в этом же запуске. Недопустимые вхождения
// не прерывают генерацию и попадают в Skipped с кодом причины.
// Уже сгенерированные вхождения (включая отменённые) повторно не создаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateRecurring: user=%d, business=%d, recurring=%d", req.UserID, req.BusinessID, req.RecurringID)

	if req.UserID <= 0 || req.BusinessID <= 0 || req.RecurringID <= 0 {
		return nil, fmt.Errorf("%w: userID, businessID and recurringID must be positive", ErrInvalidInput)
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	resp := &Response{
		RecurringID: req.RecurringID,
		Created:     []CreatedBooking{},
		Skipped:     []SkippedOccurrence{},
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// шаблон блокируется, параллельные генерации одной серии идут по очереди
		rule, err := uc.recurringRepo.GetByID(txCtx, req.RecurringID)
		if err != nil {
			if errors.Is(err, recurringRepo.ErrRecurringNotFound) {
				uc.logger.Warn("GenerateRecurring: recurring id=%d not found", req.RecurringID)
				return ErrRecurringNotFound
			}
			uc.logger.Error("GenerateRecurring: failed to get recurring id=%d: %v", req.RecurringID, err)
			return fmt.Errorf("%w: failed to get recurring booking: %w", ErrInternal, err)
		}
		if rule.BusinessID != req.BusinessID {
			uc.logger.Warn("GenerateRecurring: recurring id=%d belongs to business=%d, not %d",
				rule.ID, rule.BusinessID, req.BusinessID)
			return ErrRecurringNotFound
		}

		business, err := uc.businessRepo.GetByID(txCtx, rule.BusinessID)
		if err != nil {
			uc.logger.Error("GenerateRecurring: failed to get business id=%d: %v", rule.BusinessID, err)
			return fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
		}
		if !business.IsOwner(req.UserID) {
			uc.logger.Warn("GenerateRecurring: user=%d is not owner of business=%d", req.UserID, business.ID)
			return ErrForbidden
		}

		if !rule.IsActive {
			uc.logger.Warn("GenerateRecurring: recurring id=%d is inactive", rule.ID)
			return ErrRecurringInactive
		}
		if err := recurrence.Validate(rule, 0); err != nil {
			uc.logger.Error("GenerateRecurring: stored recurring id=%d is invalid: %v", rule.ID, err)
			return fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}

		service, err := uc.serviceRepo.GetByID(txCtx, rule.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceUnavailable
			}
			uc.logger.Error("GenerateRecurring: failed to get service id=%d: %v", rule.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if service.BusinessID != business.ID || !service.IsActive || service.DurationMinutes <= 0 {
			uc.logger.Warn("GenerateRecurring: service id=%d unavailable for recurring id=%d", service.ID, rule.ID)
			return ErrServiceUnavailable
		}

		loc := business.Location(uc.defaultLoc)
		from, to := uc.window(req, now.In(loc))
		resp.From = from.Format(domain.DateFormat)
		resp.To = to.Format(domain.DateFormat)

		starts, err := recurrence.Starts(rule, loc, from, to, uc.limit(req.Limit))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}

		generated, err := uc.generatedStarts(txCtx, rule)
		if err != nil {
			return err
		}

		settings, err := uc.guard.LoadSettings(txCtx, business.ID)
		if err != nil {
			return err
		}

		var extra []policy.Interval
		for _, start := range starts {
			end := start.Add(service.Duration())

			if _, ok := generated[start.Unix()]; ok {
				resp.Skipped = append(resp.Skipped, SkippedOccurrence{
					StartTime: start, Reason: ReasonAlreadyGenerated, Message: "occurrence already generated",
				})
				continue
			}
			if start.Before(now) {
				resp.Skipped = append(resp.Skipped, SkippedOccurrence{
					StartTime: start, Reason: ReasonInPast, Message: "occurrence is in the past",
				})
				continue
			}

			effective, err := uc.guard.Check(txCtx, now, settings, booking_guard.Candidate{
				BusinessID:   business.ID,
				LocationID:   rule.LocationID,
				Location:     loc,
				Start:        start,
				End:          end,
				BufferBefore: time.Duration(service.BufferTimeBeforeMinutes) * time.Minute,
				BufferAfter:  time.Duration(service.BufferTimeAfterMinutes) * time.Minute,
				Extra:        extra,
			})
			if err != nil {
				reason := booking_guard.ReasonCode(err)
				if reason == "" {
					return err
				}
				resp.Skipped = append(resp.Skipped, SkippedOccurrence{StartTime: start, Reason: reason, Message: err.Error()})
				continue
			}

			created, err := uc.bookingRepo.Create(txCtx, newOccurrence(rule, service, start, end))
			if err != nil {
				uc.logger.Error("GenerateRecurring: failed to create occurrence %s of recurring id=%d: %v",
					start.Format(time.RFC3339), rule.ID, err)
				return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
			}

			extra = append(extra, effective)
			resp.Created = append(resp.Created, CreatedBooking{ID: created.ID, StartTime: created.StartTime, EndTime: created.EndTime})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		for range resp.Created {
			uc.metrics.RecordBookingCreated(domain.OriginRecurring)
		}
	}

	uc.logger.Info("GenerateRecurring: recurring id=%d created=%d skipped=%d",
		req.RecurringID, len(resp.Created), len(resp.Skipped))

	return resp, nil
}

// window возвращает диапазон генерации. today - текущий момент в локации бизнеса.
func (uc *UseCase) window(req *Request, today time.Time) (time.Time, time.Time) {
	from := today
	if req.From != nil {
		from = *req.From
	}
	to := from.AddDate(0, 0, uc.horizonDays)
	if req.To != nil {
		to = *req.To
	}
	return dateOnly(from), dateOnly(to)
}

func (uc *UseCase) limit(requested int) int {
	switch {
	case requested <= 0:
		return uc.maxOccurrences
	case uc.maxOccurrences > 0 && requested > uc.maxOccurrences:
		return uc.maxOccurrences
	default:
		return requested
	}
}

// generatedStarts начала уже созданных записей серии, включая отменённые
func (uc *UseCase) generatedStarts(ctx context.Context, rule *domain.RecurringBooking) (map[int64]struct{}, error) {
	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, domain.BookingsFilter{
		BusinessID:         rule.BusinessID,
		RecurringBookingID: &rule.ID,
		IncludeCancelled:   true,
	})
	if err != nil {
		uc.logger.Error("GenerateRecurring: failed to get generated bookings of recurring id=%d: %v", rule.ID, err)
		return nil, fmt.Errorf("%w: failed to get generated bookings: %w", ErrInternal, err)
	}

	starts := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		starts[b.StartTime.Unix()] = struct{}{}
	}
	return starts, nil
}

func newOccurrence(rule *domain.RecurringBooking, service *domain.Service, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		BusinessID:          rule.BusinessID,
		LocationID:          rule.LocationID,
		ServiceID:           service.ID,
		CustomerUserID:      rule.CustomerUserID,
		CustomerName:        rule.CustomerName,
		CustomerEmail:       rule.CustomerEmail,
		CustomerPhone:       rule.CustomerPhone,
		StartTime:           start,
		EndTime:             end,
		Status:              domain.StatusPending,
		PaymentStatus:       domain.PaymentUnpaid,
		ServiceName:         service.Name,
		ServicePrice:        service.Price,
		BufferBeforeMinutes: service.BufferTimeBeforeMinutes,
		BufferAfterMinutes:  service.BufferTimeAfterMinutes,
		RecurringBookingID:  &rule.ID,
		Notes:               rule.Notes,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
