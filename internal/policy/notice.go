package policy

import "time"

// EarliestAllowedStart самое раннее допустимое начало записи при заданном запасе в часах
func EarliestAllowedStart(now time.Time, minimumAdvanceHours int) time.Time {
	if minimumAdvanceHours <= 0 {
		return now
	}
	return now.Add(time.Duration(minimumAdvanceHours) * time.Hour)
}

// IsAdvanceBookingAllowed проверяет, что candidateStart >= now + minimumAdvanceHours.
// 0 отключает ограничение.
func IsAdvanceBookingAllowed(now, candidateStart time.Time, minimumAdvanceHours int) bool {
	if minimumAdvanceHours <= 0 {
		return true
	}
	return !candidateStart.Before(EarliestAllowedStart(now, minimumAdvanceHours))
}

// CancellationDeadline последний момент, когда отмена ещё разрешена
func CancellationDeadline(appointmentStart time.Time, cancellationPolicyHours int) time.Time {
	if cancellationPolicyHours <= 0 {
		return appointmentStart
	}
	return appointmentStart.Add(-time.Duration(cancellationPolicyHours) * time.Hour)
}

// IsCancellationAllowed проверяет окно отмены. Возвращает также дедлайн
// (appointmentStart - cancellationPolicyHours) для сообщения пользователю.
// Отмена ровно в момент дедлайна разрешена. 0 отключает ограничение.
func IsCancellationAllowed(now, appointmentStart time.Time, cancellationPolicyHours int) (bool, time.Time) {
	deadline := CancellationDeadline(appointmentStart, cancellationPolicyHours)
	if cancellationPolicyHours <= 0 {
		return true, deadline
	}
	return !now.After(deadline), deadline
}
