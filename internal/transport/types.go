package transport

import (
	"fmt"
	"time"
)

// Products flags which service classes call at a stop. Flags are independent.
type Products struct {
	NationalExpress bool `json:"nationalExpress"`
	National        bool `json:"national"`
	RegionalExpress bool `json:"regionalExpress"`
	Regional        bool `json:"regional"`
	Suburban        bool `json:"suburban"`
	Bus             bool `json:"bus"`
	Ferry           bool `json:"ferry"`
	Subway          bool `json:"subway"`
	Tram            bool `json:"tram"`
	Taxi            bool `json:"taxi"`
}

// Stop is a station search hit.
type Stop struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Products Products `json:"products"`
}

// Station identifies the station a departure board belongs to.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Line is the service operating a departure or leg.
type Line struct {
	Name        string `json:"name"`
	Product     string `json:"product,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

// Remark is a provider message attached to a departure or leg.
type Remark struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Summary string `json:"summary,omitempty"`
	Text    string `json:"text"`
}

// Departure is one entry of a departure board.
type Departure struct {
	TripID          string     `json:"tripId"`
	Line            *Line      `json:"line"`
	Direction       string     `json:"direction"`
	PlannedWhen     *time.Time `json:"plannedWhen"`
	When            *time.Time `json:"when"`
	Delay           *int       `json:"delay"`
	DelayFormatted  string     `json:"delayFormatted"`
	Platform        *string    `json:"platform"`
	PlannedPlatform *string    `json:"plannedPlatform"`
	PlatformChanged bool       `json:"platformChanged"`
	Cancelled       bool       `json:"cancelled"`
	Remarks         []Remark   `json:"remarks"`
}

// Board is the /api/transport/departures response body.
type Board struct {
	Station    Station     `json:"station"`
	Departures []Departure `json:"departures"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Leg is one section of a rail journey.
type Leg struct {
	Origin                   Station    `json:"origin"`
	Destination              Station    `json:"destination"`
	Departure                *time.Time `json:"departure"`
	PlannedDeparture         *time.Time `json:"plannedDeparture"`
	DepartureDelay           *int       `json:"departureDelay"`
	DepartureDelayFormatted  string     `json:"departureDelayFormatted"`
	DeparturePlatform        *string    `json:"departurePlatform"`
	PlannedDeparturePlatform *string    `json:"plannedDeparturePlatform"`
	Arrival                  *time.Time `json:"arrival"`
	PlannedArrival           *time.Time `json:"plannedArrival"`
	ArrivalDelay             *int       `json:"arrivalDelay"`
	ArrivalDelayFormatted    string     `json:"arrivalDelayFormatted"`
	ArrivalPlatform          *string    `json:"arrivalPlatform"`
	PlannedArrivalPlatform   *string    `json:"plannedArrivalPlatform"`
	Line                     *Line      `json:"line,omitempty"`
	Direction                string     `json:"direction,omitempty"`
	Walking                  bool       `json:"walking"`
	Cancelled                bool       `json:"cancelled"`
}

// Journey is one connection between two stations.
type Journey struct {
	Departure     *time.Time `json:"departure"`
	Arrival       *time.Time `json:"arrival"`
	DepartureTime string     `json:"departureTime"`
	ArrivalTime   string     `json:"arrivalTime"`
	Duration      int        `json:"duration"`
	Transfers     int        `json:"transfers"`
	RefreshToken  string     `json:"refreshToken,omitempty"`
	Legs          []Leg      `json:"legs"`
}

// JourneyList is the /api/transport/journeys response body.
type JourneyList struct {
	Journeys   []Journey `json:"journeys"`
	EarlierRef string    `json:"earlierRef,omitempty"`
	LaterRef   string    `json:"laterRef,omitempty"`
}

// JourneyOptions narrows a journey search.
type JourneyOptions struct {
	Departure    *time.Time
	Results      int
	MaxTransfers *int
}

// wire formats

type rawLocation struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Products *Products `json:"products"`
}

type rawDeparture struct {
	TripID          string     `json:"tripId"`
	Stop            *Station   `json:"stop"`
	When            *time.Time `json:"when"`
	PlannedWhen     *time.Time `json:"plannedWhen"`
	Delay           *int       `json:"delay"`
	Platform        *string    `json:"platform"`
	PlannedPlatform *string    `json:"plannedPlatform"`
	Direction       string     `json:"direction"`
	Line            *Line      `json:"line"`
	Remarks         []Remark   `json:"remarks"`
	Cancelled       bool       `json:"cancelled"`
}

type rawDepartures struct {
	Departures            []rawDeparture `json:"departures"`
	RealtimeDataUpdatedAt *int64         `json:"realtimeDataUpdatedAt"`
}

type rawLeg struct {
	Origin                   Station    `json:"origin"`
	Destination              Station    `json:"destination"`
	Departure                *time.Time `json:"departure"`
	PlannedDeparture         *time.Time `json:"plannedDeparture"`
	DepartureDelay           *int       `json:"departureDelay"`
	DeparturePlatform        *string    `json:"departurePlatform"`
	PlannedDeparturePlatform *string    `json:"plannedDeparturePlatform"`
	Arrival                  *time.Time `json:"arrival"`
	PlannedArrival           *time.Time `json:"plannedArrival"`
	ArrivalDelay             *int       `json:"arrivalDelay"`
	ArrivalPlatform          *string    `json:"arrivalPlatform"`
	PlannedArrivalPlatform   *string    `json:"plannedArrivalPlatform"`
	Line                     *Line      `json:"line"`
	Direction                string     `json:"direction"`
	Walking                  bool       `json:"walking"`
	Cancelled                bool       `json:"cancelled"`
}

type rawJourney struct {
	Legs         []rawLeg `json:"legs"`
	RefreshToken string   `json:"refreshToken"`
}

type rawJourneys struct {
	Journeys   []rawJourney `json:"journeys"`
	EarlierRef string       `json:"earlierRef"`
	LaterRef   string       `json:"laterRef"`
}

// StationNotFoundError reports a station token the provider could not match.
type StationNotFoundError struct {
	Token string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("station not found: %q", e.Token)
}
