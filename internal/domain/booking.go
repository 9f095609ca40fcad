package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// ParseBookingStatus converts a raw status string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Booking represents one customer appointment
type Booking struct {
	ID             int64
	BusinessID     int64
	LocationID     *int64 // NULL = booking applies business-wide
	ServiceID      int64
	CustomerUserID int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string

	StartTime     time.Time
	EndTime       time.Time
	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Denormalized service data at the moment of booking
	ServiceName         string
	ServicePrice        float64
	BufferBeforeMinutes int
	BufferAfterMinutes  int

	RecurringBookingID *int64
	Notes              *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanBeRescheduled returns true if the booking time may still be moved
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the booking may move into next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled ||
			next == StatusCompleted || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}

// Duration returns the booked time span
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// BufferBefore returns the service buffer before the appointment
func (b *Booking) BufferBefore() time.Duration {
	return time.Duration(b.BufferBeforeMinutes) * time.Minute
}

// BufferAfter returns the service buffer after the appointment
func (b *Booking) BufferAfter() time.Duration {
	return time.Duration(b.BufferAfterMinutes) * time.Minute
}

// BookingsFilter фильтр для выборки бронирований бизнеса
type BookingsFilter struct {
	BusinessID int64 // Обязательный параметр

	// LocationID ограничивает выборку локацией. При IncludeBusinessWide
	// дополнительно возвращаются бронирования без локации
	LocationID          *int64
	IncludeBusinessWide bool

	// From/To выбирают бронирования, пересекающиеся с [From, To)
	From *time.Time
	To   *time.Time

	Status             *BookingStatus
	IncludeCancelled   bool
	ExcludeBookingID   *int64
	RecurringBookingID *int64

	// Lock добавляет FOR UPDATE, если запрос выполняется в транзакции
	Lock bool

	Limit int
}
