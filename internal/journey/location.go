package journey

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/neexbeast/tourinfo/internal/places"
)

// LocationKind tags how a caller-supplied location was written.
type LocationKind int

const (
	// FreeText is a city name that needs a table lookup.
	FreeText LocationKind = iota
	// Coordinates is a literal "lat,lon" pair.
	Coordinates
)

// Location is a parsed, not yet resolved, location reference.
type Location struct {
	Kind  LocationKind
	Input string
	Point places.Point
}

var coordPattern = regexp.MustCompile(`^\s*(-?\d{1,3}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)\s*$`)

// ParseLocation classifies s as a coordinate pair or free text.
func ParseLocation(s string) Location {
	m := coordPattern.FindStringSubmatch(s)
	if m == nil {
		return Location{Kind: FreeText, Input: strings.TrimSpace(s)}
	}
	lat, errLat := strconv.ParseFloat(m[1], 64)
	lon, errLon := strconv.ParseFloat(m[2], 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Location{Kind: FreeText, Input: strings.TrimSpace(s)}
	}
	return Location{Kind: Coordinates, Input: strings.TrimSpace(s), Point: places.Point{Lat: lat, Lon: lon}}
}

// Resolve turns a parsed location into coordinates. Free text must name a city
// from the static table; nothing is guessed.
func Resolve(loc Location) (places.Point, error) {
	if loc.Kind == Coordinates {
		return loc.Point, nil
	}
	p, ok := places.CityCoordinates(loc.Input)
	if !ok {
		return places.Point{}, &UnknownLocationError{Input: loc.Input}
	}
	return p, nil
}
