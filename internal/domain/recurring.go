package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RecurrenceFrequency how often a recurring booking repeats
type RecurrenceFrequency string

const (
	FrequencyDaily    RecurrenceFrequency = "DAILY"
	FrequencyWeekly   RecurrenceFrequency = "WEEKLY"
	FrequencyBiweekly RecurrenceFrequency = "BIWEEKLY"
	FrequencyMonthly  RecurrenceFrequency = "MONTHLY"
)

// RecurringBooking is a template from which concrete bookings are generated.
// The series is bounded by EndDate, OccurrenceCount, or both.
type RecurringBooking struct {
	ID             int64
	BusinessID     int64
	LocationID     *int64
	ServiceID      int64
	CustomerUserID int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string

	Frequency  RecurrenceFrequency
	DayOfWeek  *time.Weekday // WEEKLY/BIWEEKLY, nil = weekday of StartDate
	DayOfMonth *int          // MONTHLY, nil = day of StartDate
	StartTime  types.TimeString

	StartDate       time.Time
	EndDate         *time.Time
	OccurrenceCount *int

	IsActive bool
	Notes    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
