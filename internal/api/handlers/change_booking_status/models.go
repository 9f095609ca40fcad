package change_booking_status

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_booking_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status             string  `json:"status"` // CONFIRMED, COMPLETED, NO_SHOW, CANCELLED
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// StatusResponse HTTP response model
type StatusResponse struct {
	ID                 int64   `json:"id"`
	BusinessID         int64   `json:"businessId"`
	Status             string  `json:"status"`
	PreviousStatus     string  `json:"previousStatus"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	Unchanged          bool    `json:"unchanged"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case.
// Статус проверяет use case.
func (r *ChangeStatusRequest) ToUseCaseRequest(userID, bookingID int64) *changeStatus.Request {
	return &changeStatus.Request{
		UserID:    userID,
		BookingID: bookingID,
		Status:    domain.BookingStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		Reason:    r.CancellationReason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *StatusResponse {
	out := &StatusResponse{
		ID:                 resp.ID,
		BusinessID:         resp.BusinessID,
		Status:             resp.Status,
		PreviousStatus:     resp.PreviousStatus,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		CancellationReason: resp.CancellationReason,
		Unchanged:          resp.Unchanged,
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}
