package flights

import (
	"regexp"
	"strings"

	"github.com/neexbeast/tourinfo/internal/places"
)

var iataPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// AirportCode resolves a city name or IATA code. German cities are looked up
// in the static table first; an otherwise unknown three-letter token is taken
// as a literal code.
func AirportCode(input string) (string, bool) {
	if code, ok := places.GermanAirportCode(input); ok {
		return code, true
	}
	s := strings.TrimSpace(input)
	if iataPattern.MatchString(s) {
		return strings.ToUpper(s), true
	}
	return "", false
}
