package settings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов, правил и расписания
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetRules(ctx context.Context, businessID int64) (*domain.BookingRules, error)
	UpsertRules(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
	GetAvailability(ctx context.Context, businessID int64) (*domain.WeeklyAvailability, error)
	ReplaceAvailability(ctx context.Context, weekly *domain.WeeklyAvailability) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
