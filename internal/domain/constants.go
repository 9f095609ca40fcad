package domain

import "errors"

// ErrUnknownStatus возвращается при разборе неизвестного статуса
var ErrUnknownStatus = errors.New("domain: unknown booking status")

// Business validation constants
const (
	MaxAdvanceBookingHours      = 24 * 365 // 1 year
	MaxCancellationPolicyHours  = 24 * 90
	MaxBookingBufferMinutes     = 24 * 60
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
	MaxRecurringOccurrences     = 366
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking origins for metrics
const (
	OriginSingle    = "single"
	OriginRecurring = "recurring"
)
