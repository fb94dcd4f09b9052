package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cinemamap/backend/internal/domain/entities"
	"github.com/cinemamap/backend/internal/domain/providers"
	"github.com/cinemamap/backend/internal/domain/repositories"
	"github.com/cinemamap/backend/internal/infrastructure/observability"
	apperrors "github.com/cinemamap/backend/pkg/errors"
)

// InvalidAddressMessage is shown when an address cannot be resolved.
const InvalidAddressMessage = "Adresse invalide"

// DefaultNearestLimit is the size of the nearest cinemas table.
const DefaultNearestLimit = 10

// SearchRecorder observes nearest-cinema searches.
type SearchRecorder interface {
	ObserveNearest(found bool, closestKm float64)
}

// CinemaFinderService answers address queries against the cinema table.
type CinemaFinderService struct {
	repo     repositories.CinemaRepository
	geocoder providers.GeolocationProvider
	limit    int
	recorder SearchRecorder
}

// NewCinemaFinderService creates a finder. A non-positive limit falls back
// to DefaultNearestLimit and recorder may be nil.
func NewCinemaFinderService(
	repo repositories.CinemaRepository,
	geocoder providers.GeolocationProvider,
	limit int,
	recorder SearchRecorder,
) *CinemaFinderService {
	if limit <= 0 {
		limit = DefaultNearestLimit
	}
	return &CinemaFinderService{
		repo:     repo,
		geocoder: geocoder,
		limit:    limit,
		recorder: recorder,
	}
}

// Dashboard returns the overview when address is blank and the nearby
// dashboard otherwise.
func (s *CinemaFinderService) Dashboard(ctx context.Context, address string) (*entities.Dashboard, error) {
	if strings.TrimSpace(address) == "" {
		overview, err := s.Overview(ctx)
		if err != nil {
			return nil, err
		}
		return &entities.Dashboard{Overview: overview}, nil
	}

	nearby, err := s.Nearby(ctx, address)
	if err != nil {
		return nil, err
	}
	return &entities.Dashboard{Nearby: nearby}, nil
}

// Overview summarises the whole table.
func (s *CinemaFinderService) Overview(ctx context.Context) (*entities.Overview, error) {
	_, span := otel.Tracer("github.com/cinemamap/backend/finder").Start(ctx, "CinemaFinder.Overview")
	defer span.End()

	all := s.repo.All()
	span.SetAttributes(attribute.Int("cinemas.count", len(all)))

	return &entities.Overview{
		Mode:             entities.DashboardModeOverview,
		CinemaCount:      len(all),
		DepartmentChart:  DepartmentChart(s.repo.Departments()),
		MarketShareChart: MarketShareChart(all, MarketShareTitle),
		Map:              BuildMap(all, nil),
	}, nil
}

// Nearby geocodes address and describes the closest cinemas. An address the
// geocoder cannot resolve yields Found=false rather than an error.
func (s *CinemaFinderService) Nearby(ctx context.Context, address string) (*entities.Nearby, error) {
	ctx, span := otel.Tracer("github.com/cinemamap/backend/finder").Start(ctx, "CinemaFinder.Nearby")
	defer span.End()

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperrors.NewValidationError("address is required")
	}
	span.SetAttributes(attribute.String("address", address))

	result := &entities.Nearby{
		Mode:    entities.DashboardModeNearby,
		Address: address,
		Rows:    []entities.NearbyRow{},
	}

	origin, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			observability.LoggerFromContext(ctx).Info().Str("address", address).Msg("Address not found")
			s.observe(false, 0)
			result.Message = InvalidAddressMessage
			return result, nil
		}
		observability.RecordError(span, err)
		return nil, err
	}

	subset := Nearest(*origin, s.repo.All(), s.limit)
	records := subset.Records()

	result.Found = true
	result.Origin = origin
	for _, rc := range subset.Cinemas {
		result.Rows = append(result.Rows, entities.NearbyRow{
			Name:                 rc.Name,
			Address:              rc.Address,
			Municipality:         rc.Municipality,
			DistanceKm:           rc.DistanceKm,
			AttendancePerShowing: rc.AttendancePerShowing,
			Type:                 rc.Type,
		})
	}

	if subset.Len() > 0 {
		closest := subset.Cinemas[0]
		result.Closest = &closest
		result.Headline = Headline(closest)
		s.observe(true, closest.DistanceKm)
		span.SetAttributes(
			attribute.String("closest.name", closest.Name),
			attribute.Float64("closest.distance_km", closest.DistanceKm),
		)
	}

	marketShare := MarketShareChart(records, MarketShareTitle)
	screens := ScreensChart(records)
	seats := SeatsPerScreenChart(records)
	occupancy := OccupancyChart(records)
	view := BuildMap(records, origin)

	result.MarketShareChart = &marketShare
	result.ScreensChart = &screens
	result.SeatsPerScreenChart = &seats
	result.OccupancyChart = &occupancy
	result.Map = &view

	return result, nil
}

// Geocode resolves an address without searching for cinemas.
func (s *CinemaFinderService) Geocode(ctx context.Context, address string) (*entities.GeoPoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, apperrors.NewValidationError("address is required")
	}
	return s.geocoder.Geocode(ctx, address)
}

// Departments lists the department codes with their cinema counts.
func (s *CinemaFinderService) Departments() []entities.DepartmentCount {
	return s.repo.Departments()
}

// DepartmentCinemas lists the cinemas of one department.
func (s *CinemaFinderService) DepartmentCinemas(code string) ([]entities.Cinema, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("department code is required")
	}
	cinemas := s.repo.ByDepartment(code)
	if len(cinemas) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no cinema in department %s", code))
	}
	return cinemas, nil
}

// Headline is the sentence introducing the closest cinema.
func Headline(closest entities.RankedCinema) string {
	return fmt.Sprintf("Le cinéma le plus proche est le %s, en %s, %s, au %.2f km de distance.",
		closest.Name, closest.Address, closest.Municipality, closest.DistanceKm)
}

func (s *CinemaFinderService) observe(found bool, closestKm float64) {
	if s.recorder != nil {
		s.recorder.ObserveNearest(found, closestKm)
	}
}
