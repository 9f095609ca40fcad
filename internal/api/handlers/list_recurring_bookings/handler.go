package list_recurring_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/businesses/{businessId}/recurring-bookings
// Query params: activeOnly (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/recurring-bookings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/recurring-bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	activeOnly := false
	if v := r.URL.Query().Get("activeOnly"); v != "" {
		activeOnly, err = strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/recurring-bookings - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.service.List(r.Context(), businessID, userID, activeOnly)
	if err != nil {
		switch {
		case errors.Is(err, recurring.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/recurring-bookings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, recurring.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/recurring-bookings - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /businesses/{id}/recurring-bookings - Failed to list: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/recurring-bookings - Listed: business_id=%d, count=%d",
		businessID, len(result.RecurringBookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
