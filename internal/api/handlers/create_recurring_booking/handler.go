package create_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring"
	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring/models"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgBusinessNotFound    = "бизнес не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotAvailable = "услуга недоступна для записи"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service RecurringService
	logger  Logger
}

func NewHandler(service RecurringService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/recurring-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/recurring-bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/recurring-bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/recurring-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, recurring.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/recurring-bookings - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, recurring.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/recurring-bookings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, recurring.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/recurring-bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, recurring.ErrServiceInactive):
			h.logger.Warn("POST /businesses/{id}/recurring-bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgServiceNotAvailable)

		case errors.Is(err, recurring.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/recurring-bookings - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /businesses/{id}/recurring-bookings - Failed to create: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/recurring-bookings - Created: recurring_id=%d, business_id=%d",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
