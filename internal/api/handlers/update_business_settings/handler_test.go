package update_business_settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.UpdateSettingsRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{BusinessID: req.BusinessID}, nil
}

func serve(svc *fakeService, path, body string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/settings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"rules": {"minimumAdvanceBookingHours": 4},
	"availability": {"sunday": {"isOpen": false}}
}`

func TestHandle_Updated(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/businesses/1/settings", validBody, 100)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(1), svc.got.BusinessID)
	assert.Equal(t, int64(100), svc.got.UserID)
	require.NotNil(t, svc.got.Rules.MinimumAdvanceBookingHours)
	assert.Equal(t, 4, *svc.got.Rules.MinimumAdvanceBookingHours)
	assert.Nil(t, svc.got.Rules.CancellationPolicyHours)
	assert.False(t, svc.got.Availability["sunday"].IsOpen)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/businesses/1/settings", `{"timezone":"UTC"}`, 100)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
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
		{name: "bad id", path: "/businesses/abc/settings", userID: 100, wantStatus: http.StatusBadRequest},
		{name: "no user", path: "/businesses/1/settings", wantStatus: http.StatusUnauthorized},
		{name: "invalid hours", path: "/businesses/1/settings", userID: 100, err: settings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/businesses/1/settings", userID: 100, err: settings.ErrBusinessNotFound, wantStatus: http.StatusNotFound},
		{name: "not owner", path: "/businesses/1/settings", userID: 100, err: settings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", path: "/businesses/1/settings", userID: 100, err: settings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, validBody, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
