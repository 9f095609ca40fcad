package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.GetUserBookingsRequest
	err error
}

func (f *fakeService) GetUserBookings(_ context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil
}

func serve(svc *fakeService, path string, callerID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/users/{userId}/bookings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if callerID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), callerID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OwnHistory(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/users/200/bookings?status=CONFIRMED", 200)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(200), svc.got.UserID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "CONFIRMED", *svc.got.Status)
}

func TestHandle_NoStatusFilter(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/users/200/bookings", 200)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Status)
}

func TestHandle_OtherUsersHistory(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/users/201/bookings", 200)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		callerID   int64
		err        error
		wantStatus int
	}{
		{name: "bad user id", path: "/users/-1/bookings", callerID: 200, wantStatus: http.StatusBadRequest},
		{name: "no caller", path: "/users/200/bookings", wantStatus: http.StatusUnauthorized},
		{name: "bad status", path: "/users/200/bookings?status=LOST", callerID: 200, err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", path: "/users/200/bookings", callerID: 200, err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, tt.callerID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
