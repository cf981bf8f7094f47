package journey

import (
	"fmt"
	"time"
)

// Itinerary is one journey-planner suggestion as delivered by the provider.
type Itinerary struct {
	Duration  int       `json:"duration"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Transfers int       `json:"transfers"`
	Legs      []Leg     `json:"legs"`
}

// Leg is one ride or walk within an itinerary.
type Leg struct {
	Mode           string    `json:"mode"`
	From           Place     `json:"from"`
	To             Place     `json:"to"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	RouteShortName string    `json:"routeShortName,omitempty"`
	Headsign       string    `json:"headsign,omitempty"`
}

// Place is a named stop or coordinate on a leg.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type planResponse struct {
	Itineraries []Itinerary `json:"itineraries"`
}

// Result is the /api/connections response body.
type Result struct {
	Von          string       `json:"von"`
	Nach         string       `json:"nach"`
	Datum        string       `json:"datum"`
	Anzahl       int          `json:"anzahl"`
	Verbindungen []Connection `json:"verbindungen"`
}

// Connection is the simplified form of an Itinerary.
type Connection struct {
	Dauer          string    `json:"dauer"`
	DauerMinuten   int       `json:"dauerMinuten"`
	Abfahrt        string    `json:"abfahrt"`
	Ankunft        string    `json:"ankunft"`
	Umstiege       int       `json:"umstiege"`
	Verkehrsmittel []string  `json:"verkehrsmittel"`
	Abschnitte     []Section `json:"abschnitte"`
}

// Section is the simplified form of a Leg.
type Section struct {
	Von            string `json:"von"`
	Nach           string `json:"nach"`
	Verkehrsmittel string `json:"verkehrsmittel"`
	Linie          string `json:"linie,omitempty"`
	Richtung       string `json:"richtung,omitempty"`
	Abfahrt        string `json:"abfahrt"`
	Ankunft        string `json:"ankunft"`
}

// UnknownLocationError reports a place name that is neither a coordinate
// pair nor a known city.
type UnknownLocationError struct {
	Input string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location %q: use a supported German city or \"lat,lon\"", e.Input)
}
