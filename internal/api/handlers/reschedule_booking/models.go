package reschedule_booking

import (
	"fmt"
	"time"

	reschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime string `json:"startTime"` // RFC3339
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID            int64  `json:"id"`
	BusinessID    int64  `json:"businessId"`
	LocationID    *int64 `json:"locationId,omitempty"`
	ServiceID     int64  `json:"serviceId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
	PreviousStart string `json:"previousStartTime"`
	PreviousEnd   string `json:"previousEndTime"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(userID, bookingID int64) (*reschedule.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	return &reschedule.Request{
		UserID:       userID,
		BookingID:    bookingID,
		NewStartTime: start,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reschedule.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:            resp.ID,
		BusinessID:    resp.BusinessID,
		LocationID:    resp.LocationID,
		ServiceID:     resp.ServiceID,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		Status:        resp.Status,
		PreviousStart: resp.PreviousStart.Format(time.RFC3339),
		PreviousEnd:   resp.PreviousEnd.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
