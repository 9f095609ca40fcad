package generate_recurring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	generateRecurring "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_recurring"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *generateRecurring.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *generateRecurring.Request) (*generateRecurring.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC)
	return &generateRecurring.Response{
		RecurringID: req.RecurringID,
		From:        "2025-10-13",
		To:          "2025-10-31",
		Created:     []generateRecurring.CreatedBooking{{ID: 1, StartTime: start, EndTime: start.Add(time.Hour)}},
		Skipped: []generateRecurring.SkippedOccurrence{
			{StartTime: start.AddDate(0, 0, 7), Reason: "slot_not_available", Message: "taken"},
		},
	}, nil
}

func serve(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/recurring-bookings/{recurringId}/generate",
		NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Generates(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/businesses/1/recurring-bookings/5/generate", `{"from":"2025-10-13","to":"2025-10-31","limit":4}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(1), uc.got.BusinessID)
	assert.Equal(t, int64(5), uc.got.RecurringID)
	assert.Equal(t, int64(100), uc.got.UserID)
	assert.Equal(t, 4, uc.got.Limit)
	assert.Equal(t, "2025-10-13", uc.got.From.Format("2006-01-02"))

	var body generateRecurring.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Created, 1)
	require.Len(t, body.Skipped, 1)
	assert.Equal(t, "slot_not_available", body.Skipped[0].Reason)
}

func TestHandle_DefaultWindow(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/businesses/1/recurring-bookings/5/generate", ``)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.From)
	assert.Nil(t, uc.got.To)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad recurring id", path: "/businesses/1/recurring-bookings/x/generate", wantStatus: http.StatusBadRequest},
		{name: "bad date", path: "/businesses/1/recurring-bookings/5/generate", body: `{"from":"13.10.2025"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/businesses/1/recurring-bookings/5/generate", err: generateRecurring.ErrRecurringNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", path: "/businesses/1/recurring-bookings/5/generate", err: generateRecurring.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "inactive", path: "/businesses/1/recurring-bookings/5/generate", err: generateRecurring.ErrRecurringInactive, wantStatus: http.StatusConflict},
		{name: "service gone", path: "/businesses/1/recurring-bookings/5/generate", err: generateRecurring.ErrServiceUnavailable, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", path: "/businesses/1/recurring-bookings/5/generate", err: generateRecurring.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
