package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID    int64   `json:"businessId"`
	LocationID    *int64  `json:"locationId,omitempty"`
	ServiceID     int64   `json:"serviceId"`
	StartTime     string  `json:"startTime"` // RFC3339, "2025-10-15T10:00:00+02:00"
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Paid          bool    `json:"paid,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	BusinessID     int64   `json:"businessId"`
	LocationID     *int64  `json:"locationId,omitempty"`
	ServiceID      int64   `json:"serviceId"`
	CustomerUserID int64   `json:"customerUserId"`
	CustomerName   string  `json:"customerName"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerPhone  *string `json:"customerPhone,omitempty"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	PaymentStatus  string  `json:"paymentStatus"`
	ServiceName    string  `json:"serviceName"`
	ServicePrice   float64 `json:"servicePrice"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	return &createBooking.Request{
		UserID:        userID,
		BusinessID:    r.BusinessID,
		LocationID:    r.LocationID,
		ServiceID:     r.ServiceID,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
		Paid:          r.Paid,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		BusinessID:     resp.BusinessID,
		LocationID:     resp.LocationID,
		ServiceID:      resp.ServiceID,
		CustomerUserID: resp.CustomerUserID,
		CustomerName:   resp.CustomerName,
		CustomerEmail:  resp.CustomerEmail,
		CustomerPhone:  resp.CustomerPhone,
		StartTime:      resp.StartTime.Format(time.RFC3339),
		EndTime:        resp.EndTime.Format(time.RFC3339),
		Status:         resp.Status,
		PaymentStatus:  resp.PaymentStatus,
		ServiceName:    resp.ServiceName,
		ServicePrice:   resp.ServicePrice,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
