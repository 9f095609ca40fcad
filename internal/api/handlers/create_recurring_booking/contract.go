package create_recurring_booking

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring/models"
)

type RecurringService interface {
	Create(ctx context.Context, req *models.CreateRecurringRequest) (*models.RecurringResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
