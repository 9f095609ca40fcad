package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64     // ID клиента из X-User-ID
	BusinessID    int64     // ID бизнеса
	LocationID    *int64    // ID локации, nil = запись на весь бизнес
	ServiceID     int64     // ID услуги
	StartTime     time.Time // Начало записи
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
	Paid          bool // Оплачено при записи: запись сразу CONFIRMED
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	BusinessID     int64
	LocationID     *int64
	ServiceID      int64
	CustomerUserID int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string
	StartTime      time.Time
	EndTime        time.Time
	Status         string
	PaymentStatus  string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:             b.ID,
		BusinessID:     b.BusinessID,
		LocationID:     b.LocationID,
		ServiceID:      b.ServiceID,
		CustomerUserID: b.CustomerUserID,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentStatus),
		ServiceName:    b.ServiceName,
		ServicePrice:   b.ServicePrice,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
