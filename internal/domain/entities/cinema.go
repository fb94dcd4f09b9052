package entities

// CinemaType classifies a cinema by its arthouse market share.
type CinemaType string

const (
	CinemaTypeArthouse   CinemaType = "arthouse"
	CinemaTypeMainstream CinemaType = "mainstream"
)

// Label returns the French display name of the cinema type.
func (t CinemaType) Label() string {
	if t == CinemaTypeArthouse {
		return "Cinéma art et essai"
	}
	return "Cinéma classique"
}

// ArthouseThreshold is the arthouse market share, in percent, from which a
// cinema counts as arthouse. The bound is inclusive.
const ArthouseThreshold = 70.0

// ClassifyCinema returns the cinema type for an arthouse market share.
func ClassifyCinema(arthouseShare float64) CinemaType {
	if arthouseShare >= ArthouseThreshold {
		return CinemaTypeArthouse
	}
	return CinemaTypeMainstream
}

// Cinema is one establishment of the national cinema table.
type Cinema struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Municipality string `json:"municipality"`
	Department   string `json:"department"`
	Screens      int    `json:"screens"`
	Seats        int    `json:"seats"`
	Admissions   int64  `json:"admissions_2019"`
	Showings     int64  `json:"showings"`

	// MarketShares holds the non-arthouse market shares in column order.
	// Categories without a value in the source are absent.
	MarketShares  []MarketShare `json:"market_shares"`
	ArthouseShare float64       `json:"arthouse_share"`

	Location Location `json:"location"`

	// Derived at load time. Nil when the source row has zero showings or seats.
	AttendancePerShowing *int64     `json:"attendance_per_showing"`
	OccupancyRate        *float64   `json:"occupancy_rate"`
	Type                 CinemaType `json:"cinema_type"`
}

// MarketShare is the share of admissions of one film category, in percent.
// Missing marks an empty cell; Percent is then meaningless.
type MarketShare struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Missing  bool    `json:"missing,omitempty"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the cinema location as a GeoPoint.
func (c *Cinema) Point() GeoPoint {
	return GeoPoint{Longitude: c.Location.Longitude, Latitude: c.Location.Latitude}
}

// Derive fills the attendance, occupancy and type fields from the raw columns.
func (c *Cinema) Derive() {
	c.AttendancePerShowing = nil
	c.OccupancyRate = nil
	if c.Showings > 0 {
		perShowing := c.Admissions / c.Showings
		c.AttendancePerShowing = &perShowing
		if c.Seats > 0 {
			rate := 100 * float64(perShowing) * float64(c.Screens) / float64(c.Seats)
			c.OccupancyRate = &rate
		}
	}
	c.Type = ClassifyCinema(c.ArthouseShare)
}

// Clone returns a deep copy that shares no memory with c.
func (c Cinema) Clone() Cinema {
	out := c
	if c.MarketShares != nil {
		out.MarketShares = append([]MarketShare(nil), c.MarketShares...)
	}
	if c.AttendancePerShowing != nil {
		v := *c.AttendancePerShowing
		out.AttendancePerShowing = &v
	}
	if c.OccupancyRate != nil {
		v := *c.OccupancyRate
		out.OccupancyRate = &v
	}
	return out
}
