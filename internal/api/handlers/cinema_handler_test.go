package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinemamap/backend/internal/adapters/dataset"
	"github.com/cinemamap/backend/internal/api/handlers"
	"github.com/cinemamap/backend/internal/application/services"
	"github.com/cinemamap/backend/internal/domain/entities"
	apperrors "github.com/cinemamap/backend/pkg/errors"
)

type MockGeolocationProvider struct {
	mock.Mock
}

func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*entities.GeoPoint, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GeoPoint), args.Error(1)
}

func testCinema(name, dep string, lon, lat float64) entities.Cinema {
	c := entities.Cinema{
		Name:       name,
		Address:    "1 rue " + name,
		Department: dep,
		Screens:    4,
		Seats:      400,
		Admissions: 40000,
		Showings:   1000,
		Location:   entities.Location{Latitude: lat, Longitude: lon},
		MarketShares: []entities.MarketShare{
			{Category: "films français", Percent: 40},
		},
	}
	c.Derive()
	return c
}

func newTestService(geocoder *MockGeolocationProvider) *services.CinemaFinderService {
	repo := dataset.NewRepositoryFromRecords([]entities.Cinema{
		testCinema("Rex", "75", 2.3479, 48.8705),
		testCinema("Comoedia", "69", 4.8385, 45.7457),
	})
	return services.NewCinemaFinderService(repo, geocoder, 10, nil)
}

func TestCinemaHandler_Nearby(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	handler := handlers.NewCinemaHandler(newTestService(geocoder))

	geocoder.On("Geocode", mock.Anything, "Paris").
		Return(&entities.GeoPoint{Longitude: 2.35, Latitude: 48.85}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cinemas/nearby?address=Paris", nil)
	rec := httptest.NewRecorder()
	handler.Nearby(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body entities.Nearby
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Found)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "Rex", body.Rows[0].Name)
	require.NotNil(t, body.Rows[0].AttendancePerShowing)
	assert.Equal(t, int64(40), *body.Rows[0].AttendancePerShowing)
}

func TestCinemaHandler_NearbyInvalidAddress(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	handler := handlers.NewCinemaHandler(newTestService(geocoder))

	geocoder.On("Geocode", mock.Anything, "xyzxyz").Return(nil, apperrors.NewAddressNotFoundError("xyzxyz"))

	rec := httptest.NewRecorder()
	handler.Nearby(rec, httptest.NewRequest(http.MethodGet, "/api/cinemas/nearby?address=xyzxyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.Nearby
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Found)
	assert.Equal(t, "Adresse invalide", body.Message)
}

func TestCinemaHandler_NearbyErrors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		geocodeErr error
		wantStatus int
	}{
		{name: "missing address", query: "", wantStatus: http.StatusBadRequest},
		{name: "service unavailable", query: "Paris", geocodeErr: apperrors.NewGeocodingServiceError(503), wantStatus: http.StatusBadGateway},
		{name: "internal failure", query: "Paris", geocodeErr: apperrors.NewInternalError("boom", nil), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := new(MockGeolocationProvider)
			if tt.geocodeErr != nil {
				geocoder.On("Geocode", mock.Anything, tt.query).Return(nil, tt.geocodeErr)
			}
			handler := handlers.NewCinemaHandler(newTestService(geocoder))

			rec := httptest.NewRecorder()
			handler.Nearby(rec, httptest.NewRequest(http.MethodGet, "/api/cinemas/nearby?address="+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCinemaHandler_Dashboard(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	handler := handlers.NewCinemaHandler(newTestService(geocoder))

	rec := httptest.NewRecorder()
	handler.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.Dashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Overview)
	assert.Nil(t, body.Nearby)
	assert.Equal(t, 2, body.Overview.CinemaCount)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestCinemaHandler_Overview(t *testing.T) {
	handler := handlers.NewCinemaHandler(newTestService(new(MockGeolocationProvider)))

	rec := httptest.NewRecorder()
	handler.Overview(rec, httptest.NewRequest(http.MethodGet, "/api/overview", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.Overview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, entities.DashboardModeOverview, body.Mode)
	assert.Len(t, body.DepartmentChart.Points, 2)
}

func TestCinemaHandler_Departments(t *testing.T) {
	handler := handlers.NewCinemaHandler(newTestService(new(MockGeolocationProvider)))

	rec := httptest.NewRecorder()
	handler.ListDepartments(rec, httptest.NewRequest(http.MethodGet, "/api/departments", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Departments []entities.DepartmentCount `json:"departments"`
		Count       int                        `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "69", list.Departments[0].Department)

	req := httptest.NewRequest(http.MethodGet, "/api/departments/75/cinemas", nil)
	req.SetPathValue("code", "75")
	rec = httptest.NewRecorder()
	handler.DepartmentCinemas(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/departments/99/cinemas", nil)
	req.SetPathValue("code", "99")
	rec = httptest.NewRecorder()
	handler.DepartmentCinemas(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeolocationHandler_Geocode(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	handler := handlers.NewGeolocationHandler(newTestService(geocoder))

	geocoder.On("Geocode", mock.Anything, "Lyon").Return(&entities.GeoPoint{Longitude: 4.8357, Latitude: 45.764}, nil)
	geocoder.On("Geocode", mock.Anything, "nowhere").Return(nil, apperrors.NewAddressNotFoundError("nowhere"))

	rec := httptest.NewRecorder()
	handler.Geocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode?address=Lyon", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 45.764, body["latitude"])

	rec = httptest.NewRecorder()
	handler.Geocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode?address=nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	handler.Geocode(rec, httptest.NewRequest(http.MethodGet, "/api/geocode", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
