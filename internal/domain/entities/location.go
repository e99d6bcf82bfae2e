package entities

// Location is a ride endpoint. Coordinates are stored as given; no range
// check is applied, and (0, 0) is a valid point.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

func NewLocation(lat, long float64) Location {
	return Location{Latitude: lat, Longitude: long}
}
