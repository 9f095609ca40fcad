package generate_recurring

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
)

// Request запрос на генерацию записей по шаблону.
// From/To задают диапазон дат включительно, по умолчанию от сегодня на горизонт генерации.
type Request struct {
	UserID      int64
	BusinessID  int64
	RecurringID int64
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = ограничение из конфигурации
}

// CreatedBooking созданная запись серии
type CreatedBooking struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// SkippedOccurrence пропущенное вхождение и причина
type SkippedOccurrence struct {
	StartTime time.Time `json:"startTime"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
}

// Response итог генерации
type Response struct {
	RecurringID int64               `json:"recurringId"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Created     []CreatedBooking    `json:"created"`
	Skipped     []SkippedOccurrence `json:"skipped"`
}

// Коды пропуска генерации
const (
	ReasonAlreadyGenerated = "already_generated"
	ReasonInPast           = booking_guard.ReasonInPast
)
