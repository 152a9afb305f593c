package models

import (
	"regexp"
	"strconv"
	"strings"

	olc "github.com/google/open-location-code/go"
)

// plusCodeLength gives roughly 14m x 14m precision, enough to tell storefronts apart.
const plusCodeLength = 10

var coordinatesPattern = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)`)

// Location is the structured form of a visit's free-text location.
type Location struct {
	BusinessName string   `json:"business_name"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	PlusCode     string   `json:"plus_code,omitempty"`
}

// HasCoordinates returns true when the location carried a valid "(lat, lng)" pair
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ParseLocation splits "Business - Address (lat, lng)" into its parts.
// Every part is optional; out-of-range coordinates are dropped.
func ParseLocation(raw string) Location {
	var loc Location
	text := raw

	if m := coordinatesPattern.FindStringSubmatchIndex(text); m != nil {
		lat, latErr := strconv.ParseFloat(text[m[2]:m[3]], 64)
		lng, lngErr := strconv.ParseFloat(text[m[4]:m[5]], 64)
		if latErr == nil && lngErr == nil && lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 {
			loc.Latitude = &lat
			loc.Longitude = &lng
			loc.PlusCode = olc.Encode(lat, lng, plusCodeLength)
		}
		text = text[:m[0]] + text[m[1]:]
	}

	text = strings.TrimSpace(text)
	if name, address, ok := strings.Cut(text, " - "); ok {
		loc.BusinessName = strings.TrimSpace(name)
		loc.Address = strings.TrimSpace(address)
	} else {
		loc.BusinessName = text
	}

	return loc
}
