package booking_guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/policy"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// lookupMargin расширяет окно выборки существующих записей вокруг кандидата
const lookupMargin = 24 * time.Hour

// Guard проверяет допустимость времени записи: рабочие часы, минимальное
// время до записи и пересечения с другими записями.
// Используется созданием, переносом и генерацией повторяющихся записей.
type Guard struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	applyBuffers bool
	metrics      Metrics
	logger       Logger
}

// Option настройка Guard
type Option func(*Guard)

// WithServiceBuffers включает учёт буферов услуги и буфера бизнеса при поиске пересечений
func WithServiceBuffers(enabled bool) Option {
	return func(g *Guard) {
		g.applyBuffers = enabled
	}
}

// WithMetrics включает счётчик отказов
func WithMetrics(m Metrics) Option {
	return func(g *Guard) {
		g.metrics = m
	}
}

// NewGuard создает новый экземпляр Guard
func NewGuard(bookingRepo BookingRepository, settingsRepo SettingsRepository, logger Logger, opts ...Option) *Guard {
	g := &Guard{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoadSettings загружает правила и расписание бизнеса.
// Отсутствие правил означает нулевые правила (все ограничения выключены).
func (g *Guard) LoadSettings(ctx context.Context, businessID int64) (*Settings, error) {
	settings := &Settings{Rules: domain.BookingRules{BusinessID: businessID}}

	rules, err := g.settingsRepo.GetRules(ctx, businessID)
	switch {
	case errors.Is(err, businessRepo.ErrRulesNotFound):
		g.logger.Info("BookingGuard: no booking rules for business=%d, restrictions disabled", businessID)
	case err != nil:
		g.logger.Error("BookingGuard: failed to get rules for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %w", ErrInternal, err)
	default:
		settings.Rules = *rules
	}

	weekly, err := g.settingsRepo.GetAvailability(ctx, businessID)
	if err != nil {
		g.logger.Error("BookingGuard: failed to get availability for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
	}
	settings.Weekly = weekly

	return settings, nil
}

// Check выполняет проверки в порядке: начало не в прошлом, рабочие часы,
// минимальное время до записи, пересечения. Возвращает эффективный интервал кандидата (с буферами, если они включены),
// который вызывающий может добавить в Candidate.Extra следующей проверки.
//
// Выборка существующих записей идёт с Lock, поэтому внутри транзакции
// строки блокируются до её завершения.
func (g *Guard) Check(ctx context.Context, now time.Time, settings *Settings, c Candidate) (policy.Interval, error) {
	raw := policy.Interval{Start: c.Start, End: c.End}
	if !raw.IsValid() {
		return policy.Interval{}, g.reject(c, ErrInvalidInterval)
	}
	if c.Start.Before(now) {
		return policy.Interval{}, g.reject(c, ErrInPast)
	}

	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}

	// 1. Рабочие часы
	window := policy.ResolveAvailability(settings.Weekly, c.Start.In(loc))
	if window.IsClosed() {
		return policy.Interval{}, g.reject(c, ErrBusinessClosed)
	}
	if !policy.WithinWindow(window, raw, loc) {
		return policy.Interval{}, g.reject(c, fmt.Errorf("%w: open %s-%s", ErrOutsideWorkingHours, window.Open, window.Close))
	}

	// 2. Минимальное время до записи
	hours := settings.Rules.MinimumAdvanceBookingHours
	if !policy.IsAdvanceBookingAllowed(now, c.Start, hours) {
		return policy.Interval{}, g.reject(c, &AdvanceNoticeError{
			RequiredHours: hours,
			EarliestStart: policy.EarliestAllowedStart(now, hours),
		})
	}

	// 3. Пересечения
	effective := g.Effective(c.Start, c.End, c.BufferBefore, c.BufferAfter, settings.Rules)

	bookings, existing, err := g.occupied(ctx, settings.Rules, domain.BookingsFilter{
		BusinessID:          c.BusinessID,
		LocationID:          c.LocationID,
		IncludeBusinessWide: true,
		From:                ptr.Ptr(effective.Start.Add(-lookupMargin)),
		To:                  ptr.Ptr(effective.End.Add(lookupMargin)),
		ExcludeBookingID:    c.ExcludeBookingID,
		Lock:                true,
	})
	if err != nil {
		return policy.Interval{}, err
	}

	if idx := policy.FirstConflict(effective, existing); idx >= 0 {
		return policy.Interval{}, g.reject(c, &ConflictError{BookingID: bookings[idx].ID})
	}
	if policy.HasConflict(effective, c.Extra) {
		return policy.Interval{}, g.reject(c, &ConflictError{})
	}

	return effective, nil
}

// Busy возвращает эффективные интервалы активных записей, пересекающих [from, to).
// Чтение без блокировки, для просмотра свободного времени.
func (g *Guard) Busy(ctx context.Context, settings *Settings, businessID int64, locationID *int64, from, to time.Time) ([]policy.Interval, error) {
	_, intervals, err := g.occupied(ctx, settings.Rules, domain.BookingsFilter{
		BusinessID:          businessID,
		LocationID:          locationID,
		IncludeBusinessWide: true,
		From:                ptr.Ptr(from.Add(-lookupMargin)),
		To:                  ptr.Ptr(to.Add(lookupMargin)),
	})
	return intervals, err
}

// Effective возвращает занимаемый записью интервал.
// Буферы услуги и бизнеса учитываются только при включённом WithServiceBuffers.
func (g *Guard) Effective(start, end time.Time, before, after time.Duration, rules domain.BookingRules) policy.Interval {
	if !g.applyBuffers {
		return policy.Interval{Start: start, End: end}
	}
	return policy.EffectiveInterval(start, end, before, after+rules.BookingBuffer())
}

func (g *Guard) occupied(ctx context.Context, rules domain.BookingRules, filter domain.BookingsFilter) ([]*domain.Booking, []policy.Interval, error) {
	bookings, err := g.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		g.logger.Error("BookingGuard: failed to get bookings for business=%d: %v", filter.BusinessID, err)
		return nil, nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	intervals := make([]policy.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, g.Effective(b.StartTime, b.EndTime, b.BufferBefore(), b.BufferAfter(), rules))
	}
	return bookings, intervals, nil
}

func (g *Guard) reject(c Candidate, err error) error {
	reason := ReasonCode(err)
	g.logger.Warn("BookingGuard: rejected business=%d start=%s reason=%s: %v",
		c.BusinessID, c.Start.Format(time.RFC3339), reason, err)
	if g.metrics != nil {
		g.metrics.RecordBookingRejection(reason)
	}
	return err
}
