package journey

import (
	"fmt"

	"github.com/neexbeast/tourinfo/internal/locale"
)

const walkMode = "WALK"

var modeLabels = map[string]string{
	"WALK":               "Fußweg",
	"BIKE":               "Fahrrad",
	"CAR":                "Auto",
	"BUS":                "Bus",
	"COACH":              "Fernbus",
	"TRAM":               "Straßenbahn",
	"SUBWAY":             "U-Bahn",
	"METRO":              "U-Bahn",
	"SUBURBAN":           "S-Bahn",
	"RAIL":               "Zug",
	"REGIONAL_RAIL":      "Regionalzug",
	"REGIONAL_FAST_RAIL": "Regionalexpress",
	"LONG_DISTANCE":      "Fernzug",
	"HIGHSPEED_RAIL":     "Fernzug",
	"NIGHT_RAIL":         "Nachtzug",
	"FERRY":              "Fähre",
	"AIRPLANE":           "Flugzeug",
	"FUNICULAR":          "Standseilbahn",
	"AERIAL_LIFT":        "Seilbahn",
}

// ModeLabel returns the German display name of a planner mode.
func ModeLabel(mode string) string {
	if l, ok := modeLabels[mode]; ok {
		return l
	}
	return mode
}

// FormatDuration renders seconds as "1 Std. 5 Min.", "2 Std." or "45 Min.".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := (seconds + 30) / 60
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d Std. %d Min.", h, m)
	case h > 0:
		return fmt.Sprintf("%d Std.", h)
	default:
		return fmt.Sprintf("%d Min.", m)
	}
}

// TransitModes lists the distinct non-walking modes of legs in order of first use.
func TransitModes(legs []Leg) []string {
	seen := make(map[string]bool)
	modes := []string{}
	for _, l := range legs {
		if l.Mode == walkMode {
			continue
		}
		label := ModeLabel(l.Mode)
		if seen[label] {
			continue
		}
		seen[label] = true
		modes = append(modes, label)
	}
	return modes
}

// Summarize converts at most the first five itineraries to Connections.
func Summarize(itineraries []Itinerary) []Connection {
	n := min(len(itineraries), maxConnections)
	out := make([]Connection, 0, n)
	for _, it := range itineraries[:n] {
		sections := make([]Section, 0, len(it.Legs))
		for _, l := range it.Legs {
			sections = append(sections, Section{
				Von:            l.From.Name,
				Nach:           l.To.Name,
				Verkehrsmittel: ModeLabel(l.Mode),
				Linie:          l.RouteShortName,
				Richtung:       l.Headsign,
				Abfahrt:        locale.Clock(l.StartTime),
				Ankunft:        locale.Clock(l.EndTime),
			})
		}
		out = append(out, Connection{
			Dauer:          FormatDuration(it.Duration),
			DauerMinuten:   (it.Duration + 30) / 60,
			Abfahrt:        locale.Clock(it.StartTime),
			Ankunft:        locale.Clock(it.EndTime),
			Umstiege:       max(it.Transfers, 0),
			Verkehrsmittel: TransitModes(it.Legs),
			Abschnitte:     sections,
		})
	}
	return out
}
