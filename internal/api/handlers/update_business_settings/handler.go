package update_business_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бизнес не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Права владельца проверяет сервис
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID, businessID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/settings - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, settings.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/settings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/settings - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /businesses/{id}/settings - Failed to update settings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/settings - Settings updated: business_id=%d, user_id=%d", businessID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
