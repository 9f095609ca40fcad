package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/change_booking_status"
)

const (
	msgBusinessClosed      = "бизнес не работает в выбранный день"
	msgOutsideWorkingHours = "запись выходит за рабочие часы"
	msgTooLateToBook       = "слишком поздно для записи на это время"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgInvalidInterval     = "время окончания должно быть позже начала"
	msgInPast              = "нельзя записаться на прошедшее время"
	msgCancellationClosed  = "срок бесплатной отмены истёк"
)

// RespondPolicyError пишет ответ для отказа по правилам бронирования.
// Возвращает false, если err не является таким отказом.
func RespondPolicyError(w http.ResponseWriter, err error) bool {
	var advance *booking_guard.AdvanceNoticeError
	var conflict *booking_guard.ConflictError
	var deadline *change_booking_status.CancellationDeadlineError

	switch {
	case errors.As(err, &deadline):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity,
			change_booking_status.ReasonCancellationWindowClosed, msgCancellationClosed,
			map[string]interface{}{
				"deadline":    deadline.Deadline.Format(time.RFC3339),
				"policyHours": deadline.PolicyHours,
			})

	case errors.Is(err, change_booking_status.ErrCancellationWindowClosed):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity,
			change_booking_status.ReasonCancellationWindowClosed, msgCancellationClosed, nil)

	case errors.As(err, &advance):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity,
			booking_guard.ReasonTooLateToBook, msgTooLateToBook,
			map[string]interface{}{
				"requiredHours": advance.RequiredHours,
				"earliestStart": advance.EarliestStart.Format(time.RFC3339),
			})

	case errors.As(err, &conflict):
		var details map[string]interface{}
		if conflict.BookingID != 0 {
			details = map[string]interface{}{"conflictingBookingId": conflict.BookingID}
		}
		RespondErrorWithCode(w, http.StatusConflict, booking_guard.ReasonSlotNotAvailable, msgSlotNotAvailable, details)

	case errors.Is(err, booking_guard.ErrSlotNotAvailable):
		RespondErrorWithCode(w, http.StatusConflict, booking_guard.ReasonSlotNotAvailable, msgSlotNotAvailable, nil)

	case errors.Is(err, booking_guard.ErrTooLateToBook):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity, booking_guard.ReasonTooLateToBook, msgTooLateToBook, nil)

	case errors.Is(err, booking_guard.ErrBusinessClosed):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity, booking_guard.ReasonBusinessClosed, msgBusinessClosed, nil)

	case errors.Is(err, booking_guard.ErrOutsideWorkingHours):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity, booking_guard.ReasonOutsideWorkingHours, msgOutsideWorkingHours, nil)

	case errors.Is(err, booking_guard.ErrInvalidInterval):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity, booking_guard.ReasonInvalidInterval, msgInvalidInterval, nil)

	case errors.Is(err, booking_guard.ErrInPast):
		RespondErrorWithCode(w, http.StatusUnprocessableEntity, booking_guard.ReasonInPast, msgInPast, nil)

	default:
		return false
	}

	return true
}
