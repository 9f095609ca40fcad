package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBusinessBookingsRequest запрос на получение бронирований бизнеса
type GetBusinessBookingsRequest struct {
	UserID           int64      `json:"userId"`
	BusinessID       int64      `json:"businessId"`
	LocationID       *int64     `json:"locationId,omitempty"` // Фильтр по локации (опционально)
	From             *time.Time `json:"from,omitempty"`       // Начало периода (опционально)
	To               *time.Time `json:"to,omitempty"`         // Конец периода, не включается
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
	Limit            int        `json:"limit,omitempty"` // 0 = без ограничения
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		BusinessID:       r.BusinessID,
		LocationID:       r.LocationID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
		Limit:            r.Limit,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64     `json:"id"`
	BusinessID     int64     `json:"businessId"`
	LocationID     *int64    `json:"locationId,omitempty"`
	ServiceID      int64     `json:"serviceId"`
	CustomerUserID int64     `json:"customerUserId"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	CustomerPhone  *string   `json:"customerPhone,omitempty"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	RecurringBookingID *int64  `json:"recurringBookingId,omitempty"`
	Notes              *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BusinessID:         b.BusinessID,
		LocationID:         b.LocationID,
		ServiceID:          b.ServiceID,
		CustomerUserID:     b.CustomerUserID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		RecurringBookingID: b.RecurringBookingID,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
