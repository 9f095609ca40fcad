package get_available_slots

import "time"

// Request модель запроса на получение свободного времени
type Request struct {
	BusinessID int64
	LocationID *int64 // nil = запись на весь бизнес
	ServiceID  int64
	Date       time.Time // Календарная дата в часовом поясе бизнеса, время игнорируется
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date       string // YYYY-MM-DD
	BusinessID int64
	LocationID *int64
	ServiceID  int64
	Timezone   string
	DayState   string // open, closed, unrestricted
	Slots      []Slot
}

// Slot свободный интервал длительностью услуги
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}
