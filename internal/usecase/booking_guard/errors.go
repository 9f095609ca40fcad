package booking_guard

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBusinessClosed возвращается, когда бизнес закрыт в дату записи
	ErrBusinessClosed = errors.New("booking_guard: business is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда запись выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("booking_guard: booking is outside working hours")

	// ErrTooLateToBook возвращается при нарушении минимального времени до записи
	ErrTooLateToBook = errors.New("booking_guard: too late to book this time")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с другой записью
	ErrSlotNotAvailable = errors.New("booking_guard: time slot is not available")

	// ErrInPast возвращается, когда запись начинается раньше текущего момента
	ErrInPast = errors.New("booking_guard: booking starts in the past")

	// ErrInvalidInterval возвращается, когда конец записи не позже начала
	ErrInvalidInterval = errors.New("booking_guard: end time must be after start time")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("booking_guard: internal error")
)

// Коды причин отказа для метрик и ответов API
const (
	ReasonBusinessClosed      = "business_closed"
	ReasonOutsideWorkingHours = "outside_working_hours"
	ReasonTooLateToBook       = "too_late_to_book"
	ReasonSlotNotAvailable    = "slot_not_available"
	ReasonInvalidInterval     = "invalid_interval"
	ReasonInPast              = "in_past"
)

// AdvanceNoticeError отказ по минимальному времени до записи
type AdvanceNoticeError struct {
	RequiredHours int
	EarliestStart time.Time
}

func (e *AdvanceNoticeError) Error() string {
	return fmt.Sprintf("%s: must book at least %d hours in advance", ErrTooLateToBook, e.RequiredHours)
}

func (e *AdvanceNoticeError) Unwrap() error {
	return ErrTooLateToBook
}

// ConflictError отказ из-за пересечения. BookingID = 0, если пересечение
// найдено с записью, созданной в той же операции и ещё не сохранённой.
type ConflictError struct {
	BookingID int64
}

func (e *ConflictError) Error() string {
	if e.BookingID == 0 {
		return ErrSlotNotAvailable.Error()
	}
	return fmt.Sprintf("%s: overlaps booking id=%d", ErrSlotNotAvailable, e.BookingID)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}

// ReasonCode возвращает код причины отказа или пустую строку для прочих ошибок
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrBusinessClosed):
		return ReasonBusinessClosed
	case errors.Is(err, ErrOutsideWorkingHours):
		return ReasonOutsideWorkingHours
	case errors.Is(err, ErrTooLateToBook):
		return ReasonTooLateToBook
	case errors.Is(err, ErrSlotNotAvailable):
		return ReasonSlotNotAvailable
	case errors.Is(err, ErrInvalidInterval):
		return ReasonInvalidInterval
	case errors.Is(err, ErrInPast):
		return ReasonInPast
	default:
		return ""
	}
}
