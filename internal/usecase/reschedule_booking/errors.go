package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrForbidden возвращается, когда пользователь не владелец бизнеса и не клиент записи
	ErrForbidden = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается для отменённых и завершённых записей
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
