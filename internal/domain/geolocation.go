package domain

import (
	"strconv"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// Origin is stored when an address cannot be geocoded.
var Origin = Point{}

func (p Point) IsOrigin() bool {
	return p == Origin
}

// GeoLocation is a postal address with its resolved coordinates.
type GeoLocation struct {
	ID       int64  `json:"id" db:"id"`
	Address  string `json:"address" db:"address"`
	Location Point  `json:"location"`
}

// Slug encodes the coordinates as "lat,lon".
func (g *GeoLocation) Slug() string {
	return strconv.FormatFloat(g.Location.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(g.Location.Lon, 'f', -1, 64)
}

func (g *GeoLocation) String() string {
	return g.Address
}

// Values is the representation stored in a place's details.
func (g *GeoLocation) Values() map[string]any {
	return map[string]any{
		"id":      float64(g.ID),
		"address": g.Address,
		"lat":     g.Location.Lat,
		"lon":     g.Location.Lon,
	}
}

// GeocodeResult is what a geocoding provider answers for an address.
type GeocodeResult struct {
	Address  string
	Location Point
}
