package list_recurring_bookings

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring/models"
)

type RecurringService interface {
	List(ctx context.Context, businessID, userID int64, activeOnly bool) (*models.RecurringListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
