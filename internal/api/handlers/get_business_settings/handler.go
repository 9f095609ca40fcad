package get_business_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgNotFound          = "бизнес не найден"
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

// Handle GET /api/v1/businesses/{businessId}/settings
// Публичный маршрут: правила и часы работы без проверки прав.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.Get(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/settings - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/settings - Failed to get settings: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/settings - Settings retrieved: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
