package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinemamap/backend/internal/adapters/dataset"
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

type recordedSearch struct {
	found     bool
	closestKm float64
}

type fakeRecorder struct {
	searches []recordedSearch
}

func (r *fakeRecorder) ObserveNearest(found bool, closestKm float64) {
	r.searches = append(r.searches, recordedSearch{found: found, closestKm: closestKm})
}

func finderTable() []entities.Cinema {
	rex := typedCinema("Le Grand Rex", paris, 10)
	rex.Address = "1 Boulevard Poissonnière"
	rex.Municipality = "Paris"
	rex.Department = "75"
	rex.Screens = 5
	rex.Seats = 800
	rex.Admissions = 50000
	rex.Showings = 2000
	rex.MarketShares = []entities.MarketShare{{Category: "films français", Percent: 40}}
	rex.Derive()

	comoedia := typedCinema("Comoedia", lyon, 80)
	comoedia.Department = "69"
	comoedia.Screens = 7
	comoedia.Seats = 1200
	comoedia.MarketShares = []entities.MarketShare{{Category: "films français", Percent: 20}}

	varietes := typedCinema("Les Variétés", marseille, 75)
	varietes.Department = "13"
	varietes.Screens = 5
	varietes.Seats = 600

	return []entities.Cinema{varietes, comoedia, rex}
}

func TestCinemaFinderService_Nearby(t *testing.T) {
	ctx := context.Background()
	geocoder := new(MockGeolocationProvider)
	recorder := &fakeRecorder{}
	repo := dataset.NewRepositoryFromRecords(finderTable())
	service := services.NewCinemaFinderService(repo, geocoder, 2, recorder)

	origin := &entities.GeoPoint{Longitude: 2.35, Latitude: 48.85}
	geocoder.On("Geocode", mock.Anything, "1 rue de Rivoli Paris").Return(origin, nil)

	result, err := service.Nearby(ctx, "  1 rue de Rivoli Paris ")
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, entities.DashboardModeNearby, result.Mode)
	assert.Equal(t, origin, result.Origin)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Le Grand Rex", result.Rows[0].Name)
	assert.Equal(t, "Comoedia", result.Rows[1].Name)
	assert.Less(t, result.Rows[0].DistanceKm, result.Rows[1].DistanceKm)
	require.NotNil(t, result.Rows[0].AttendancePerShowing)
	assert.Equal(t, int64(25), *result.Rows[0].AttendancePerShowing)

	require.NotNil(t, result.Closest)
	assert.Contains(t, result.Headline, "Le cinéma le plus proche est le Le Grand Rex, en 1 Boulevard Poissonnière, Paris, au ")
	assert.Contains(t, result.Headline, " km de distance.")

	require.NotNil(t, result.MarketShareChart)
	assert.Equal(t, []entities.DataPoint{{Label: "films français", Value: 30}}, result.MarketShareChart.Points)
	require.NotNil(t, result.ScreensChart)
	assert.Len(t, result.ScreensChart.Points, 2)
	require.NotNil(t, result.SeatsPerScreenChart)
	require.NotNil(t, result.OccupancyChart)
	assert.Len(t, result.OccupancyChart.Points, 1)

	require.NotNil(t, result.Map)
	require.Len(t, result.Map.Layers, 3)
	assert.Equal(t, services.LayerPosition, result.Map.Layers[0].ID)

	require.Len(t, recorder.searches, 1)
	assert.True(t, recorder.searches[0].found)

	geocoder.AssertExpectations(t)
}

func TestCinemaFinderService_NearbyInvalidAddress(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	recorder := &fakeRecorder{}
	service := services.NewCinemaFinderService(dataset.NewRepositoryFromRecords(finderTable()), geocoder, 10, recorder)

	geocoder.On("Geocode", mock.Anything, "zzzz").Return(nil, apperrors.NewAddressNotFoundError("zzzz"))

	result, err := service.Nearby(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Equal(t, services.InvalidAddressMessage, result.Message)
	assert.Empty(t, result.Rows)
	assert.Nil(t, result.Map)
	require.Len(t, recorder.searches, 1)
	assert.False(t, recorder.searches[0].found)
}

func TestCinemaFinderService_NearbyServiceFailure(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	service := services.NewCinemaFinderService(dataset.NewRepositoryFromRecords(finderTable()), geocoder, 10, nil)

	geocoder.On("Geocode", mock.Anything, "Paris").Return(nil, apperrors.NewGeocodingServiceError(503))

	_, err := service.Nearby(context.Background(), "Paris")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Equal(t, 503, apperrors.StatusCodeOf(err))
}

func TestCinemaFinderService_NearbyRequiresAddress(t *testing.T) {
	geocoder := new(MockGeolocationProvider)
	service := services.NewCinemaFinderService(dataset.NewRepositoryFromRecords(finderTable()), geocoder, 10, nil)

	_, err := service.Nearby(context.Background(), "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestCinemaFinderService_Dashboard(t *testing.T) {
	ctx := context.Background()
	geocoder := new(MockGeolocationProvider)
	service := services.NewCinemaFinderService(dataset.NewRepositoryFromRecords(finderTable()), geocoder, 0, nil)

	t.Run("blank address gives the overview", func(t *testing.T) {
		dashboard, err := service.Dashboard(ctx, " ")
		require.NoError(t, err)
		require.NotNil(t, dashboard.Overview)
		assert.Nil(t, dashboard.Nearby)

		overview := dashboard.Overview
		assert.Equal(t, 3, overview.CinemaCount)
		assert.Equal(t, []entities.DataPoint{
			{Label: "13", Value: 1},
			{Label: "69", Value: 1},
			{Label: "75", Value: 1},
		}, overview.DepartmentChart.Points)
		require.Len(t, overview.Map.Layers, 1)
		assert.Len(t, overview.Map.Layers[0].Points, 3)
	})

	t.Run("address gives the nearby dashboard", func(t *testing.T) {
		geocoder.On("Geocode", mock.Anything, "Lyon").Return(&lyon, nil).Once()

		dashboard, err := service.Dashboard(ctx, "Lyon")
		require.NoError(t, err)
		require.NotNil(t, dashboard.Nearby)
		assert.Nil(t, dashboard.Overview)
		assert.Equal(t, "Comoedia", dashboard.Nearby.Rows[0].Name)
		assert.Len(t, dashboard.Nearby.Rows, 3)
	})
}

func TestCinemaFinderService_DepartmentCinemas(t *testing.T) {
	service := services.NewCinemaFinderService(dataset.NewRepositoryFromRecords(finderTable()), new(MockGeolocationProvider), 10, nil)

	cinemas, err := service.DepartmentCinemas("69")
	require.NoError(t, err)
	require.Len(t, cinemas, 1)
	assert.Equal(t, "Comoedia", cinemas[0].Name)

	_, err = service.DepartmentCinemas("99")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	_, err = service.DepartmentCinemas("")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestHeadline(t *testing.T) {
	closest := entities.RankedCinema{
		Cinema:     entities.Cinema{Name: "Utopia", Address: "5 Place Camille Jullian", Municipality: "Bordeaux"},
		DistanceKm: 1.2345,
	}
	assert.Equal(t,
		"Le cinéma le plus proche est le Utopia, en 5 Place Camille Jullian, Bordeaux, au 1.23 km de distance.",
		services.Headline(closest))
}
