package change_booking_status

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	UserID    int64                // ID пользователя из X-User-ID
	BookingID int64                // ID записи
	Status    domain.BookingStatus // Целевой статус
	Reason    *string              // Причина отмены (только для CANCELLED)
}

// Response модель ответа с новым состоянием записи
type Response struct {
	ID                 int64
	BusinessID         int64
	Status             string
	PreviousStatus     string
	StartTime          time.Time
	EndTime            time.Time
	CancellationReason *string
	CancelledAt        *time.Time
	// Unchanged true, если запись уже была в целевом статусе (повторная отмена)
	Unchanged bool
}
