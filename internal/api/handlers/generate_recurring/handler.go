package generate_recurring

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	generateRecurring "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_recurring"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRecurringID = "некорректный ID шаблона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "шаблон повторяющейся записи не найден"
	msgForbidden          = "доступ запрещен"
	msgInactive           = "шаблон повторяющейся записи выключен"
	msgInvalidRule        = "шаблон повторяющейся записи некорректен"
	msgServiceUnavailable = "услуга шаблона недоступна для записи"
)

type Handler struct {
	useCase GenerateRecurringUseCase
	logger  Logger
}

func NewHandler(useCase GenerateRecurringUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/recurring-bookings/{recurringId}/generate
// Ответ 200 и при частичной генерации: пропуски перечислены в skipped.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /recurring-bookings/{id}/generate - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	recurringID, err := handlers.PathID(r, "recurringId")
	if err != nil {
		h.logger.Warn("POST /recurring-bookings/{id}/generate - Invalid recurring ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRecurringID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /recurring-bookings/{id}/generate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req GenerateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /recurring-bookings/{id}/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, businessID, recurringID)
	if err != nil {
		h.logger.Warn("POST /recurring-bookings/{id}/generate - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateRecurring.ErrInvalidInput):
			h.logger.Warn("POST /recurring-bookings/{id}/generate - Invalid input: recurring_id=%d, error=%v", recurringID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, generateRecurring.ErrRecurringNotFound):
			h.logger.Warn("POST /recurring-bookings/{id}/generate - Not found: business_id=%d, recurring_id=%d",
				businessID, recurringID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateRecurring.ErrForbidden):
			h.logger.Warn("POST /recurring-bookings/{id}/generate - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, generateRecurring.ErrRecurringInactive):
			h.logger.Warn("POST /recurring-bookings/{id}/generate - Inactive: recurring_id=%d", recurringID)
			handlers.RespondError(w, http.StatusConflict, msgInactive)

		case errors.Is(err, generateRecurring.ErrInvalidRule):
			h.logger.Warn("POST /recurring-bookings/{id}/generate - Invalid rule: recurring_id=%d, error=%v", recurringID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidRule)

		case errors.Is(err, generateRecurring.ErrServiceUnavailable):
			h.logger.Warn("POST /recurring-bookings/{id}/generate - Service unavailable: recurring_id=%d", recurringID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgServiceUnavailable)

		default:
			h.logger.Error("POST /recurring-bookings/{id}/generate - Failed to generate: recurring_id=%d, error=%v",
				recurringID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurring-bookings/{id}/generate - Generated: recurring_id=%d, created=%d, skipped=%d",
		recurringID, len(result.Created), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusOK, result)
}
