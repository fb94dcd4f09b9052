package providers

import (
	"context"

	"github.com/cinemamap/backend/internal/domain/entities"
)

// GeolocationProvider resolves free-text addresses to coordinates.
type GeolocationProvider interface {
	// Geocode returns the best match for address. It fails with a NOT_FOUND
	// AppError when the lookup succeeded but matched nothing, and with an
	// EXTERNAL AppError carrying the status code when the service answered
	// with a non-success status.
	Geocode(ctx context.Context, address string) (*entities.GeoPoint, error)
}
