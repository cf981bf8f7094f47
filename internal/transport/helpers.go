package transport

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var stationIDPattern = regexp.MustCompile(`^\d{7,8}$`)

// TokenKind tags how a caller wrote a station.
type TokenKind int

const (
	// FreeText needs a station search.
	FreeText TokenKind = iota
	// StationID is a numeric provider identifier used as-is.
	StationID
)

// StationToken is a parsed, not yet resolved, station reference.
type StationToken struct {
	Kind  TokenKind
	Value string
}

// ParseStationToken treats a 7 or 8 digit number as a station ID, anything else as a search.
func ParseStationToken(s string) StationToken {
	s = strings.TrimSpace(s)
	if stationIDPattern.MatchString(s) {
		return StationToken{Kind: StationID, Value: s}
	}
	return StationToken{Kind: FreeText, Value: s}
}

// FormatDelay renders a delay in seconds as "+2 min" or "-1 min". A missing or
// zero delay renders as "".
func FormatDelay(seconds *int) string {
	if seconds == nil || *seconds == 0 {
		return ""
	}
	minutes := int(math.Round(float64(*seconds) / 60))
	return fmt.Sprintf("%+d min", minutes)
}

// TransferCount is the number of non-walking legs minus one, never negative.
func TransferCount(legs []Leg) int {
	rides := 0
	for _, l := range legs {
		if !l.Walking {
			rides++
		}
	}
	return max(rides-1, 0)
}

// DurationMinutes is the wall-clock time from the first departure to the last arrival.
func DurationMinutes(legs []Leg) int {
	if len(legs) == 0 {
		return 0
	}
	dep := firstTime(legs[0].Departure, legs[0].PlannedDeparture)
	arr := firstTime(legs[len(legs)-1].Arrival, legs[len(legs)-1].PlannedArrival)
	if dep == nil || arr == nil {
		return 0
	}
	return int(arr.Sub(*dep).Minutes())
}

// platformChanged holds when both platforms are known and differ.
func platformChanged(actual, planned *string) bool {
	if planned == nil || *planned == "" || actual == nil || *actual == "" {
		return false
	}
	return *actual != *planned
}

// filterRemarks keeps warnings and status messages and drops hints.
func filterRemarks(in []Remark) []Remark {
	out := make([]Remark, 0, len(in))
	for _, r := range in {
		if r.Type == "warning" || r.Type == "status" {
			out = append(out, r)
		}
	}
	return out
}

func clamp(v, def, upper int) int {
	if v <= 0 {
		return def
	}
	return min(v, upper)
}

func firstTime(ts ...*time.Time) *time.Time {
	for _, t := range ts {
		if t != nil {
			return t
		}
	}
	return nil
}
