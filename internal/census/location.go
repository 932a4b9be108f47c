package census

import (
	"regexp"
	"strconv"
	"strings"
)

// Location is a parsed household coordinate pair in decimal degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Exactly two signed decimal numbers separated by a comma, no whitespace.
var locationPattern = regexp.MustCompile(`^-?\d+(\.\d+)?,-?\d+(\.\d+)?$`)

// ParseLocation parses a "lat,lon" string. Pure; no tolerance for surrounding
// whitespace or extra components.
func ParseLocation(raw string) (Location, error) {
	if !locationPattern.MatchString(raw) {
		return Location{}, &InvalidLocationError{Raw: raw}
	}
	parts := strings.SplitN(raw, ",", 2)
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Location{}, &InvalidLocationError{Raw: raw}
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Location{}, &InvalidLocationError{Raw: raw}
	}
	return Location{Latitude: lat, Longitude: lon}, nil
}
