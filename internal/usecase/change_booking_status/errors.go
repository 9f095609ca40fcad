package change_booking_status

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("change_booking_status: booking not found")

	// ErrForbidden возвращается, когда у пользователя нет прав на переход
	ErrForbidden = errors.New("change_booking_status: access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("change_booking_status: invalid status transition")

	// ErrCancellationWindowClosed возвращается, когда отмена запрошена позже дедлайна
	ErrCancellationWindowClosed = errors.New("change_booking_status: cancellation window has closed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_booking_status: internal error")
)

// ReasonCancellationWindowClosed код причины для метрик и ответов API
const ReasonCancellationWindowClosed = "cancellation_window_closed"

// CancellationDeadlineError отказ в отмене с дедлайном
type CancellationDeadlineError struct {
	Deadline    time.Time
	PolicyHours int
}

func (e *CancellationDeadlineError) Error() string {
	return fmt.Sprintf("%s: cancellations must be made at least %d hours in advance (deadline %s)",
		ErrCancellationWindowClosed, e.PolicyHours, e.Deadline.Format(time.RFC3339))
}

func (e *CancellationDeadlineError) Unwrap() error {
	return ErrCancellationWindowClosed
}
