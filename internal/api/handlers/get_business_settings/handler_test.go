package get_business_settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got int64
	err error
}

func (f *fakeService) Get(_ context.Context, businessID int64) (*models.SettingsResponse, error) {
	f.got = businessID
	if f.err != nil {
		return nil, f.err
	}
	open, closeAt := "09:00", "18:00"
	return &models.SettingsResponse{
		BusinessID: businessID,
		Rules:      models.Rules{MinimumAdvanceBookingHours: 2, CancellationPolicyHours: 24},
		Availability: map[string]models.DaySchedule{
			"monday": {IsOpen: true, OpenTime: &open, CloseTime: &closeAt},
		},
	}, nil
}

func serve(svc *fakeService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/settings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// Маршрут публичный: X-User-ID не нужен
func TestHandle_PublicRead(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/businesses/1/settings")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), svc.got)

	var body models.SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Rules.MinimumAdvanceBookingHours)
	assert.True(t, body.Availability["monday"].IsOpen)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "bad id", path: "/businesses/zero/settings", wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/businesses/1/settings", err: settings.ErrBusinessNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", path: "/businesses/1/settings", err: settings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
