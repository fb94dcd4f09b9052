package geolocation

import (
	"context"
	"strings"

	"github.com/cinemamap/backend/internal/domain/entities"
	"github.com/cinemamap/backend/internal/domain/providers"
	apperrors "github.com/cinemamap/backend/pkg/errors"
)

// mockCities are matched case-insensitively against the address, in order.
var mockCities = []struct {
	name  string
	point entities.GeoPoint
}{
	{"paris", entities.GeoPoint{Longitude: 2.3522, Latitude: 48.8566}},
	{"marseille", entities.GeoPoint{Longitude: 5.3698, Latitude: 43.2965}},
	{"lyon", entities.GeoPoint{Longitude: 4.8357, Latitude: 45.7640}},
	{"toulouse", entities.GeoPoint{Longitude: 1.4442, Latitude: 43.6047}},
	{"nice", entities.GeoPoint{Longitude: 7.2620, Latitude: 43.7102}},
	{"nantes", entities.GeoPoint{Longitude: -1.5536, Latitude: 47.2184}},
	{"strasbourg", entities.GeoPoint{Longitude: 7.7521, Latitude: 48.5734}},
	{"bordeaux", entities.GeoPoint{Longitude: -0.5792, Latitude: 44.8378}},
	{"lille", entities.GeoPoint{Longitude: 3.0573, Latitude: 50.6292}},
	{"brest", entities.GeoPoint{Longitude: -4.4861, Latitude: 48.3904}},
}

// MockGeolocationProvider resolves a fixed set of French cities without any
// network access. Unknown addresses are not found.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

// Geocode returns the coordinates of the first known city named in address.
func (m *MockGeolocationProvider) Geocode(ctx context.Context, address string) (*entities.GeoPoint, error) {
	normalized := strings.ToLower(strings.TrimSpace(address))
	if normalized == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	for _, city := range mockCities {
		if strings.Contains(normalized, city.name) {
			point := city.point
			return &point, nil
		}
	}
	return nil, apperrors.NewAddressNotFoundError(address)
}
