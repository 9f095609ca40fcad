package cancel_booking

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_booking_status"
)

// CancelBookingRequest HTTP request model. Тело необязательно.
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в смену статуса на CANCELLED
func (r *CancelBookingRequest) ToUseCaseRequest(userID, bookingID int64) *changeStatus.Request {
	return &changeStatus.Request{
		UserID:    userID,
		BookingID: bookingID,
		Status:    domain.StatusCancelled,
		Reason:    r.CancellationReason,
	}
}
