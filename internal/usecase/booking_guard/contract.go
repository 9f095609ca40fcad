package booking_guard

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBusinessWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория правил и расписания бизнеса
type SettingsRepository interface {
	GetRules(ctx context.Context, businessID int64) (*domain.BookingRules, error)
	GetAvailability(ctx context.Context, businessID int64) (*domain.WeeklyAvailability, error)
}

// Metrics счётчик отказов по причинам
type Metrics interface {
	RecordBookingRejection(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
