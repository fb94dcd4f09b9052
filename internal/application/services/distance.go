package services

import (
	"math"
	"sort"

	"github.com/cinemamap/backend/internal/domain/entities"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(p1, p2 entities.GeoPoint) float64 {
	lat1 := toRadians(p1.Latitude)
	lat2 := toRadians(p2.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a slightly outside [0, 1] for antipodal points
	a = math.Min(1, math.Max(0, a))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Nearest returns the k cinemas closest to origin, closest first. Ties keep
// table order. The returned records are copies of the input rows.
func Nearest(origin entities.GeoPoint, cinemas []entities.Cinema, k int) entities.RankedSubset {
	result := entities.RankedSubset{Origin: origin, Cinemas: []entities.RankedCinema{}}
	if k <= 0 || len(cinemas) == 0 {
		return result
	}

	distances := make([]float64, len(cinemas))
	order := make([]int, len(cinemas))
	for i := range cinemas {
		distances[i] = DistanceKm(origin, cinemas[i].Point())
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distances[order[a]] < distances[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	result.Cinemas = make([]entities.RankedCinema, 0, k)
	for _, i := range order[:k] {
		result.Cinemas = append(result.Cinemas, entities.RankedCinema{
			Cinema:     cinemas[i].Clone(),
			DistanceKm: distances[i],
		})
	}
	return result
}
