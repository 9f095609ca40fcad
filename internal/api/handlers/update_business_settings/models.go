package update_business_settings

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model.
// rules обновляются частично, availability заменяет расписание целиком.
type UpdateSettingsRequest struct {
	Rules        *models.UpdateRulesRequest    `json:"rules,omitempty"`
	Availability map[string]models.DaySchedule `json:"availability,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID, businessID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:       userID,
		BusinessID:   businessID,
		Rules:        r.Rules,
		Availability: r.Availability,
	}
}
