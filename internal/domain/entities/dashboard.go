package entities

// DashboardMode tells which of the two dashboard layouts was produced.
type DashboardMode string

const (
	DashboardModeOverview DashboardMode = "overview"
	DashboardModeNearby   DashboardMode = "nearby"
)

// Overview is the dashboard shown when no address is given.
type Overview struct {
	Mode             DashboardMode `json:"mode"`
	CinemaCount      int           `json:"cinema_count"`
	DepartmentChart  Chart         `json:"department_chart"`
	MarketShareChart Chart         `json:"market_share_chart"`
	Map              MapView       `json:"map"`
}

// NearbyRow is one line of the nearest cinemas table.
type NearbyRow struct {
	Name                 string     `json:"name"`
	Address              string     `json:"address"`
	Municipality         string     `json:"municipality"`
	DistanceKm           float64    `json:"distance_km"`
	AttendancePerShowing *int64     `json:"attendance_per_showing"`
	Type                 CinemaType `json:"cinema_type"`
}

// Nearby is the dashboard shown for an address query.
type Nearby struct {
	Mode    DashboardMode `json:"mode"`
	Address string        `json:"address"`
	Found   bool          `json:"found"`
	Message string        `json:"message,omitempty"`

	Origin   *GeoPoint     `json:"origin,omitempty"`
	Closest  *RankedCinema `json:"closest,omitempty"`
	Headline string        `json:"headline,omitempty"`
	Rows     []NearbyRow   `json:"rows"`

	MarketShareChart    *Chart   `json:"market_share_chart,omitempty"`
	ScreensChart        *Chart   `json:"screens_chart,omitempty"`
	SeatsPerScreenChart *Chart   `json:"seats_per_screen_chart,omitempty"`
	OccupancyChart      *Chart   `json:"occupancy_chart,omitempty"`
	Map                 *MapView `json:"map,omitempty"`
}

// Dashboard holds exactly one of Overview or Nearby.
type Dashboard struct {
	Overview *Overview `json:"overview,omitempty"`
	Nearby   *Nearby   `json:"nearby,omitempty"`
}
