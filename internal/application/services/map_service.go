package services

import (
	"math"

	"github.com/cinemamap/backend/internal/domain/entities"
)

// Map styling shared by every dashboard map.
const (
	MapStyle   = "mapbox://styles/mapbox/light-v9"
	MapTooltip = "<b>{name} <br />{type}"

	LayerCinemas    = "cinemas"
	LayerPosition   = "position"
	LayerArthouse   = "arthouse"
	LayerMainstream = "mainstream"

	maxZoom = 21
	minZoom = 1
)

// Layer colours.
var (
	ColorCinemas    = entities.RGBA{200, 30, 0, 160}
	ColorPosition   = entities.RGBA{26, 225, 53, 160}
	ColorArthouse   = entities.RGBA{146, 168, 209, 255}
	ColorMainstream = entities.RGBA{200, 30, 0, 200}
)

// franceView is used when there is nothing to frame.
var franceView = entities.ViewState{Longitude: 2.2137, Latitude: 46.2276, Zoom: 5}

// BuildMap describes a map of the cinemas. Without a highlight every cinema
// goes on one layer. With a highlight the point gets its own layer and the
// cinemas are split by type. The initial view always frames the cinemas only.
func BuildMap(cinemas []entities.Cinema, highlight *entities.GeoPoint) entities.MapView {
	view := entities.MapView{
		Style:       MapStyle,
		InitialView: ComputeView(cinemas),
		Tooltip:     MapTooltip,
	}

	if highlight == nil {
		view.Layers = []entities.MapLayer{
			newLayer(LayerCinemas, ColorCinemas, mapPoints(cinemas, nil)),
		}
		return view
	}

	arthouse := func(c *entities.Cinema) bool { return c.Type == entities.CinemaTypeArthouse }
	mainstream := func(c *entities.Cinema) bool { return c.Type != entities.CinemaTypeArthouse }
	view.Layers = []entities.MapLayer{
		newLayer(LayerPosition, ColorPosition, []entities.MapPoint{{
			Name:      "Vous-êtes ici",
			Longitude: highlight.Longitude,
			Latitude:  highlight.Latitude,
		}}),
		newLayer(LayerArthouse, ColorArthouse, mapPoints(cinemas, arthouse)),
		newLayer(LayerMainstream, ColorMainstream, mapPoints(cinemas, mainstream)),
	}
	return view
}

func newLayer(id string, color entities.RGBA, points []entities.MapPoint) entities.MapLayer {
	return entities.MapLayer{ID: id, Color: color, Pickable: true, Points: points}
}

func mapPoints(cinemas []entities.Cinema, keep func(*entities.Cinema) bool) []entities.MapPoint {
	points := make([]entities.MapPoint, 0, len(cinemas))
	for i := range cinemas {
		c := &cinemas[i]
		if keep != nil && !keep(c) {
			continue
		}
		points = append(points, entities.MapPoint{
			Name:      c.Name,
			Type:      c.Type.Label(),
			Longitude: c.Location.Longitude,
			Latitude:  c.Location.Latitude,
		})
	}
	return points
}

// ComputeView centres the camera on the centroid of the cinemas and picks
// the zoom level that fits their bounding box.
func ComputeView(cinemas []entities.Cinema) entities.ViewState {
	if len(cinemas) == 0 {
		return franceView
	}

	minLon, maxLon := math.Inf(1), math.Inf(-1)
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	var sumLon, sumLat float64
	for i := range cinemas {
		lon, lat := cinemas[i].Location.Longitude, cinemas[i].Location.Latitude
		sumLon += lon
		sumLat += lat
		minLon, maxLon = math.Min(minLon, lon), math.Max(maxLon, lon)
		minLat, maxLat = math.Min(minLat, lat), math.Max(maxLat, lat)
	}

	n := float64(len(cinemas))
	return entities.ViewState{
		Longitude: sumLon / n,
		Latitude:  sumLat / n,
		Zoom:      zoomForSpan(math.Max(maxLon-minLon, maxLat-minLat)),
	}
}

// zoomForSpan converts the largest bounding-box side, in degrees, into a
// web-mercator zoom level.
func zoomForSpan(span float64) int {
	if span < 360/math.Pow(2, 20) {
		return maxZoom
	}
	zoom := int(-(math.Log2(span) - math.Log2(360)))
	if zoom < minZoom {
		return minZoom
	}
	return zoom
}
