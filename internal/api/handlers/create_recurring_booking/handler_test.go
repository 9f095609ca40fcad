package create_recurring_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring"
	"github.com/m04kA/SMC-AppointmentService/internal/service/recurring/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.CreateRecurringRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateRecurringRequest) (*models.RecurringResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RecurringResponse{
		ID:         3,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Frequency:  req.Frequency,
		StartTime:  req.StartTime,
		StartDate:  req.StartDate,
		IsActive:   true,
	}, nil
}

func serve(svc *fakeService, path, body string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/recurring-bookings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"serviceId": 10,
	"customerUserId": 200,
	"customerName": "Ann",
	"customerEmail": "ann@example.com",
	"frequency": "WEEKLY",
	"dayOfWeek": 1,
	"startTime": "10:00",
	"startDate": "2025-10-13",
	"occurrenceCount": 4
}`

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/businesses/1/recurring-bookings", validBody, 100)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(1), svc.got.BusinessID)
	assert.Equal(t, int64(100), svc.got.UserID)
	assert.Equal(t, int64(200), svc.got.CustomerUserID)
	require.NotNil(t, svc.got.DayOfWeek)
	assert.Equal(t, 1, *svc.got.DayOfWeek)

	var body models.RecurringResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.ID)
	assert.Equal(t, "WEEKLY", body.Frequency)
	assert.True(t, body.IsActive)
}

// Бизнес и автор задаются только путём и X-User-ID
func TestHandle_RejectsIDsInBody(t *testing.T) {
	svc := &fakeService{}
	body := strings.Replace(validBody, `"serviceId": 10,`, `"serviceId": 10, "userId": 7, "businessId": 9,`, 1)
	rec := serve(svc, "/businesses/1/recurring-bookings", body, 100)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		userID     int64
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/businesses/x/recurring-bookings", userID: 100, wantStatus: http.StatusBadRequest},
		{name: "no user", path: "/businesses/1/recurring-bookings", wantStatus: http.StatusUnauthorized},
		{name: "invalid", path: "/businesses/1/recurring-bookings", userID: 100, err: recurring.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "no business", path: "/businesses/1/recurring-bookings", userID: 100, err: recurring.ErrBusinessNotFound, wantStatus: http.StatusNotFound},
		{name: "no service", path: "/businesses/1/recurring-bookings", userID: 100, err: recurring.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "inactive service", path: "/businesses/1/recurring-bookings", userID: 100, err: recurring.ErrServiceInactive, wantStatus: http.StatusUnprocessableEntity},
		{name: "not owner", path: "/businesses/1/recurring-bookings", userID: 100, err: recurring.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", path: "/businesses/1/recurring-bookings", userID: 100, err: recurring.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, validBody, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
