package reschedule_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
	reschedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *reschedule.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *reschedule.Request) (*reschedule.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	prev := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	return &reschedule.Response{
		ID:            req.BookingID,
		BusinessID:    1,
		ServiceID:     10,
		StartTime:     req.NewStartTime,
		EndTime:       req.NewStartTime.Add(time.Hour),
		Status:        "CONFIRMED",
		PreviousStart: prev,
		PreviousEnd:   prev.Add(time.Hour),
		UpdatedAt:     prev,
	}, nil
}

func serve(uc *fakeUseCase, path, body string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/reschedule", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"startTime":"2025-10-14T12:00:00Z"}`

func TestHandle_Rescheduled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/bookings/9/reschedule", validBody, 200)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(9), uc.got.BookingID)
	assert.Equal(t, int64(200), uc.got.UserID)
	assert.True(t, uc.got.NewStartTime.Equal(time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)))

	var body RescheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-10-14T12:00:00Z", body.StartTime)
	assert.Equal(t, "2025-10-14T13:00:00Z", body.EndTime)
	assert.Equal(t, "2025-10-13T10:00:00Z", body.PreviousStart)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		userID int64
		want   int
	}{
		{name: "bad booking id", path: "/bookings/abc/reschedule", body: validBody, userID: 200, want: http.StatusBadRequest},
		{name: "no user", path: "/bookings/9/reschedule", body: validBody, want: http.StatusUnauthorized},
		{name: "broken json", path: "/bookings/9/reschedule", body: `{`, userID: 200, want: http.StatusBadRequest},
		{name: "not rfc3339", path: "/bookings/9/reschedule", body: `{"startTime":"14.10.2025 12:00"}`, userID: 200, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.path, tt.body, tt.userID)
			assert.Equal(t, tt.want, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_PolicyRejections(t *testing.T) {
	earliest := time.Date(2025, 10, 14, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "conflict",
			err:      fmt.Errorf("reschedule: %w", &booking_guard.ConflictError{BookingID: 3}),
			wantCode: http.StatusConflict,
			wantBody: booking_guard.ReasonSlotNotAvailable,
		},
		{
			name:     "advance notice",
			err:      &booking_guard.AdvanceNoticeError{RequiredHours: 24, EarliestStart: earliest},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: booking_guard.ReasonTooLateToBook,
		},
		{
			name:     "closed",
			err:      booking_guard.ErrBusinessClosed,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: booking_guard.ReasonBusinessClosed,
		},
		{
			name:     "in past",
			err:      booking_guard.ErrInPast,
			wantCode: http.StatusUnprocessableEntity,
			wantBody: booking_guard.ReasonInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, "/bookings/9/reschedule", validBody, 200)
			require.Equal(t, tt.wantCode, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}

func TestHandle_ConflictDetails(t *testing.T) {
	rec := serve(&fakeUseCase{err: &booking_guard.ConflictError{BookingID: 3}}, "/bookings/9/reschedule", validBody, 200)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body.Details["conflictingBookingId"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: reschedule.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: reschedule.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "cancelled booking", err: reschedule.ErrCannotReschedule, wantStatus: http.StatusConflict},
		{name: "invalid input", err: reschedule.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: reschedule.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, "/bookings/9/reschedule", validBody, 200)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
