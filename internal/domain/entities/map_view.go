package entities

// RGBA is a layer colour; alpha ranges 0-255.
type RGBA [4]uint8

// MapPoint is one marker of a map layer.
type MapPoint struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// MapLayer is a scatter layer of same-coloured markers.
type MapLayer struct {
	ID       string     `json:"id"`
	Color    RGBA       `json:"color"`
	Pickable bool       `json:"pickable"`
	Points   []MapPoint `json:"points"`
}

// ViewState is the initial camera of a map widget.
type ViewState struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      int     `json:"zoom"`
}

// MapView is everything a map widget needs to draw the cinemas.
type MapView struct {
	Style       string     `json:"style"`
	InitialView ViewState  `json:"initial_view"`
	Layers      []MapLayer `json:"layers"`
	Tooltip     string     `json:"tooltip"`
}
