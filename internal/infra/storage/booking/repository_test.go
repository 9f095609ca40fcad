package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestBuildFilterQuery_ConflictLookup(t *testing.T) {
	from := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	to := from.Add(30 * time.Minute)

	query, args, err := buildFilterQuery(domain.BookingsFilter{
		BusinessID:          7,
		LocationID:          ptr.Ptr(int64(3)),
		IncludeBusinessWide: true,
		From:                &from,
		To:                  &to,
		ExcludeBookingID:    ptr.Ptr(int64(42)),
		Lock:                true,
	}, true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT id, business_id, location_id"))
	assert.Contains(t, query, "FROM bookings WHERE business_id = $1")
	assert.Contains(t, query, "(location_id = $2 OR location_id IS NULL)")
	assert.Contains(t, query, "start_time < $3")
	assert.Contains(t, query, "end_time > $4")
	assert.Contains(t, query, "status <> $5")
	assert.Contains(t, query, "id <> $6")
	assert.True(t, strings.HasSuffix(query, "ORDER BY start_time ASC, id ASC FOR UPDATE"))

	assert.Equal(t, []interface{}{int64(7), int64(3), to, from, domain.StatusCancelled, int64(42)}, args)
}

func TestBuildFilterQuery_LockOnlyInTransaction(t *testing.T) {
	query, _, err := buildFilterQuery(domain.BookingsFilter{BusinessID: 1, Lock: true}, false)
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")
}

func TestBuildFilterQuery_StrictLocation(t *testing.T) {
	query, args, err := buildFilterQuery(domain.BookingsFilter{
		BusinessID: 1,
		LocationID: ptr.Ptr(int64(5)),
	}, false)
	require.NoError(t, err)

	assert.Contains(t, query, "location_id = $2")
	assert.NotContains(t, query, "IS NULL")
	assert.Equal(t, []interface{}{int64(1), int64(5), domain.StatusCancelled}, args)
}

func TestBuildFilterQuery_StatusAndCancelled(t *testing.T) {
	query, args, err := buildFilterQuery(domain.BookingsFilter{
		BusinessID: 1,
		Status:     ptr.Ptr(domain.StatusCancelled),
	}, false)
	require.NoError(t, err)
	assert.Contains(t, query, "status = $2")
	assert.Equal(t, []interface{}{int64(1), domain.StatusCancelled}, args)

	query, _, err = buildFilterQuery(domain.BookingsFilter{BusinessID: 1, IncludeCancelled: true}, false)
	require.NoError(t, err)
	assert.NotContains(t, query, "status <>")
}

func TestBuildFilterQuery_RecurringAndLimit(t *testing.T) {
	query, _, err := buildFilterQuery(domain.BookingsFilter{
		BusinessID:         1,
		RecurringBookingID: ptr.Ptr(int64(9)),
		IncludeCancelled:   true,
		Limit:              50,
	}, false)
	require.NoError(t, err)
	assert.Contains(t, query, "recurring_booking_id = $2")
	assert.Contains(t, query, "LIMIT 50")
}

func TestBuildFilterQuery_Invalid(t *testing.T) {
	_, _, err := buildFilterQuery(domain.BookingsFilter{}, false)
	assert.ErrorIs(t, err, ErrInvalidFilter)

	at := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	_, _, err = buildFilterQuery(domain.BookingsFilter{BusinessID: 1, From: &at, To: &at}, false)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
