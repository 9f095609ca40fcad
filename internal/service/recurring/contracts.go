package recurring

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// RecurringRepository интерфейс репозитория шаблонов повторяющихся записей
type RecurringRepository interface {
	Create(ctx context.Context, rule *domain.RecurringBooking) (*domain.RecurringBooking, error)
	GetByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.RecurringBooking, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
