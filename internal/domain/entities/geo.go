package entities

// GeoPoint is an immutable (longitude, latitude) pair in decimal degrees.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Valid reports whether both coordinates are within WGS 84 bounds.
func (p GeoPoint) Valid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

// RankedCinema is a cinema annotated with its distance to a query point.
type RankedCinema struct {
	Cinema
	DistanceKm float64 `json:"distance_km"`
}

// RankedSubset is the result of a nearest search, ordered by ascending distance.
type RankedSubset struct {
	Origin  GeoPoint       `json:"origin"`
	Cinemas []RankedCinema `json:"cinemas"`
}

// Len returns the number of ranked cinemas.
func (r RankedSubset) Len() int {
	return len(r.Cinemas)
}

// Records returns copies of the ranked cinemas without their distances.
func (r RankedSubset) Records() []Cinema {
	out := make([]Cinema, 0, len(r.Cinemas))
	for _, rc := range r.Cinemas {
		out = append(out, rc.Cinema.Clone())
	}
	return out
}
