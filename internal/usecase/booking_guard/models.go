package booking_guard

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/policy"
)

// Settings правила бронирования и недельное расписание бизнеса
type Settings struct {
	Rules  domain.BookingRules
	Weekly *domain.WeeklyAvailability // nil = часы не настроены
}

// Candidate проверяемая запись
type Candidate struct {
	BusinessID int64
	LocationID *int64 // nil = запись на весь бизнес
	Location   *time.Location

	Start time.Time
	End   time.Time

	// Буферы услуги, учитываются только при включённом apply_service_buffers
	BufferBefore time.Duration
	BufferAfter  time.Duration

	// ExcludeBookingID исключает запись из поиска пересечений (перенос)
	ExcludeBookingID *int64

	// Extra интервалы, уже занятые в рамках текущей операции
	Extra []policy.Interval
}
