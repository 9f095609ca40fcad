package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingGuard правила и занятость бизнеса
type BookingGuard interface {
	LoadSettings(ctx context.Context, businessID int64) (*booking_guard.Settings, error)
	Busy(ctx context.Context, settings *booking_guard.Settings, businessID int64, locationID *int64, from, to time.Time) ([]policy.Interval, error)
	Effective(start, end time.Time, before, after time.Duration, rules domain.BookingRules) policy.Interval
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
