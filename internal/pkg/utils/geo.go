package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// latLonPattern matches "lat,lon" pairs with optional sign and spaces.
var latLonPattern = regexp.MustCompile(`^\s*(-?[0-9]+(?:\.[0-9]+)?)\s*,\s*(-?[0-9]+(?:\.[0-9]+)?)\s*$`)

// ValidateCoordinates reports whether lat/lon are within WGS84 bounds.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ParseLatLon parses a "lat,lon" string into valid coordinates.
func ParseLatLon(s string) (float64, float64, error) {
	m := latLonPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("malformed coordinates %q", s)
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}
	if !ValidateCoordinates(lat, lon) {
		return 0, 0, fmt.Errorf("coordinates out of range %q", s)
	}
	return lat, lon, nil
}
