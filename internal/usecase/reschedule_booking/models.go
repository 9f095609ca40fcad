package reschedule_booking

import "time"

// Request модель запроса на перенос записи
type Request struct {
	UserID       int64     // ID пользователя из X-User-ID
	BookingID    int64     // ID переносимой записи
	NewStartTime time.Time // Новое начало, длительность сохраняется
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID            int64
	BusinessID    int64
	LocationID    *int64
	ServiceID     int64
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	PreviousStart time.Time
	PreviousEnd   time.Time
	UpdatedAt     time.Time
}
