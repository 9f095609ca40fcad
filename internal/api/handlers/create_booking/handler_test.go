package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/booking_guard"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{
	"businessId": 1,
	"serviceId": 10,
	"startTime": "2025-10-15T10:00:00+02:00",
	"customerName": "Ann",
	"customerEmail": "ann@example.com"
}`

func serve(t *testing.T, uc *fakeUseCase, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:             5,
		BusinessID:     1,
		ServiceID:      10,
		CustomerUserID: 200,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         "PENDING",
		PaymentStatus:  "UNPAID",
	}}

	rec := serve(t, uc, validBody, 200)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(200), uc.got.UserID)
	assert.True(t, uc.got.StartTime.Equal(start))

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "2025-10-15T09:00:00Z", body.EndTime)
	assert.Equal(t, "PENDING", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "no user", body: validBody, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "bad body", body: `{"businessId":`, userID: 200, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "bad start", body: `{"businessId":1,"startTime":"2025-10-15 10:00"}`, userID: 200, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "invalid input", body: validBody, userID: 200, err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "business not found", body: validBody, userID: 200, err: createBooking.ErrBusinessNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "service inactive", body: validBody, userID: 200, err: createBooking.ErrServiceInactive, wantStatus: http.StatusUnprocessableEntity, wantCode: "unprocessable_entity"},
		{name: "closed", body: validBody, userID: 200, err: booking_guard.ErrBusinessClosed, wantStatus: http.StatusUnprocessableEntity, wantCode: "business_closed"},
		{name: "conflict", body: validBody, userID: 200, err: &booking_guard.ConflictError{BookingID: 3}, wantStatus: http.StatusConflict, wantCode: "slot_not_available"},
		{name: "internal", body: validBody, userID: 200, err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			rec := serve(t, uc, tt.body, tt.userID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_PaidFlagMapped(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{ID: 6, Status: "CONFIRMED", PaymentStatus: "PAID"}}

	body := strings.Replace(validBody, `"businessId": 1,`, `"businessId": 1, "paid": true,`, 1)
	rec := serve(t, uc, body, 200)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.True(t, uc.got.Paid)
}
