package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_StateHelpers(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeRescheduled())
	assert.False(t, b.IsTerminal())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
	assert.True(t, b.IsCancelled())
	assert.True(t, b.IsTerminal())
	assert.False(t, b.CanBeRescheduled())

	b.Status = StatusCompleted
	assert.True(t, b.IsActive())
	assert.True(t, b.IsTerminal())
}

func TestBooking_DurationAndBuffers(t *testing.T) {
	start := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	b := &Booking{
		StartTime:           start,
		EndTime:             start.Add(45 * time.Minute),
		BufferBeforeMinutes: 5,
		BufferAfterMinutes:  10,
	}

	assert.Equal(t, 45*time.Minute, b.Duration())
	assert.Equal(t, 5*time.Minute, b.BufferBefore())
	assert.Equal(t, 10*time.Minute, b.BufferAfter())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("NO_SHOW")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)

	_, err = ParseBookingStatus("cancelled")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestBusiness_Location(t *testing.T) {
	def := time.FixedZone("DEF", 3600)

	b := &Business{Timezone: "Europe/Moscow"}
	assert.Equal(t, "Europe/Moscow", b.Location(def).String())

	b.Timezone = "Mars/Olympus"
	assert.Equal(t, def, b.Location(def))

	b.Timezone = ""
	assert.Equal(t, time.UTC, b.Location(nil))
}

func TestWeeklyAvailability_IsConfigured(t *testing.T) {
	var nilWeekly *WeeklyAvailability
	assert.False(t, nilWeekly.IsConfigured())
	_, ok := nilWeekly.Day(time.Monday)
	assert.False(t, ok)

	empty := &WeeklyAvailability{BusinessID: 1}
	assert.False(t, empty.IsConfigured())

	weekly := &WeeklyAvailability{Days: map[time.Weekday]DaySchedule{time.Monday: {IsOpen: false}}}
	assert.True(t, weekly.IsConfigured())
}
