package geolocation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cinemamap/backend/internal/domain/entities"
	"github.com/cinemamap/backend/internal/domain/providers"
	apperrors "github.com/cinemamap/backend/pkg/errors"
)

// Geocoding outcomes reported to the recorder.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// GeocodeRecorder observes geocoding calls.
type GeocodeRecorder interface {
	ObserveGeocode(outcome string, duration time.Duration)
}

// InstrumentedProvider traces and measures another provider.
type InstrumentedProvider struct {
	next     providers.GeolocationProvider
	recorder GeocodeRecorder
	name     string
}

// NewInstrumentedProvider wraps next. recorder may be nil.
func NewInstrumentedProvider(name string, next providers.GeolocationProvider, recorder GeocodeRecorder) providers.GeolocationProvider {
	return &InstrumentedProvider{next: next, recorder: recorder, name: name}
}

// Geocode delegates to the wrapped provider.
func (p *InstrumentedProvider) Geocode(ctx context.Context, address string) (*entities.GeoPoint, error) {
	ctx, span := otel.Tracer("github.com/cinemamap/backend/geolocation").Start(ctx, "Geolocation.Geocode")
	defer span.End()
	span.SetAttributes(attribute.String("geolocation.provider", p.name))

	start := time.Now()
	point, err := p.next.Geocode(ctx, address)
	outcome := Outcome(err)
	span.SetAttributes(attribute.String("geolocation.outcome", outcome))
	if outcome == OutcomeError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if p.recorder != nil {
		p.recorder.ObserveGeocode(outcome, time.Since(start))
	}
	return point, err
}

// Outcome classifies a geocoding error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeFound
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		return OutcomeNotFound
	case apperrors.IsType(err, apperrors.ErrorTypeValidation):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
