package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Business represents a tenant
type Business struct {
	ID        int64
	OwnerID   int64
	Name      string
	Timezone  string // IANA name, empty = service default
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner returns true if userID owns the business
func (b *Business) IsOwner(userID int64) bool {
	return b.OwnerID == userID
}

// Location resolves the business timezone, falling back to def
func (b *Business) Location(def *time.Location) *time.Location {
	if b.Timezone != "" {
		if loc, err := time.LoadLocation(b.Timezone); err == nil {
			return loc
		}
	}
	if def == nil {
		return time.UTC
	}
	return def
}

// Service is a bookable offering of a business
type Service struct {
	ID                      int64
	BusinessID              int64
	Name                    string
	DurationMinutes         int
	BufferTimeBeforeMinutes int
	BufferTimeAfterMinutes  int
	Price                   float64
	IsActive                bool
}

// Duration returns the service length
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// BookingRules is per-business booking policy. Zero disables a restriction.
type BookingRules struct {
	BusinessID                 int64
	MinimumAdvanceBookingHours int
	CancellationPolicyHours    int
	BookingBufferMinutes       int
	UpdatedAt                  time.Time
}

// BookingBuffer returns the business-wide gap kept after each booking
func (r BookingRules) BookingBuffer() time.Duration {
	return time.Duration(r.BookingBufferMinutes) * time.Minute
}

// DaySchedule open hours of a single weekday
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// WeeklyAvailability is the weekly open-hours configuration of a business.
// A weekday missing from Days is closed.
type WeeklyAvailability struct {
	BusinessID int64
	Days       map[time.Weekday]DaySchedule
	UpdatedAt  time.Time
}

// Day returns the schedule of a weekday
func (w *WeeklyAvailability) Day(day time.Weekday) (DaySchedule, bool) {
	if w == nil || w.Days == nil {
		return DaySchedule{}, false
	}
	schedule, ok := w.Days[day]
	return schedule, ok
}

// IsConfigured returns true if at least one weekday has been configured
func (w *WeeklyAvailability) IsConfigured() bool {
	return w != nil && len(w.Days) > 0
}
