package flights

import (
	"errors"
	"fmt"
)

// ErrCredentials marks failures caused by missing or rejected API credentials.
// Callers degrade to sample data when they see it.
var ErrCredentials = errors.New("flight provider credentials rejected")

// UnresolvedAirportError reports an origin or destination without an IATA code.
type UnresolvedAirportError struct {
	Side  string
	Input string
}

func (e *UnresolvedAirportError) Error() string {
	return fmt.Sprintf("no airport found for %s %q", e.Side, e.Input)
}

// OfferRequest is a flight search as typed by the caller.
type OfferRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   string
	MaxResults    int
}

// Price of an offer for all passengers.
type Price struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// Endpoint is one end of a flight or segment.
type Endpoint struct {
	Airport  string `json:"airport"`
	Terminal string `json:"terminal,omitempty"`
	Time     string `json:"time"`
	Clock    string `json:"clock"`
}

// Segment is a single non-stop flight.
type Segment struct {
	CarrierCode     string   `json:"carrierCode"`
	Carrier         string   `json:"carrier"`
	FlightNumber    string   `json:"flightNumber"`
	Departure       Endpoint `json:"departure"`
	Arrival         Endpoint `json:"arrival"`
	Duration        string   `json:"duration"`
	DurationMinutes int      `json:"durationMinutes"`
}

// Offer is the simplified outbound itinerary of a flight offer.
type Offer struct {
	ID              string    `json:"id"`
	Price           Price     `json:"price"`
	Airline         string    `json:"airline"`
	AirlineCode     string    `json:"airlineCode"`
	Departure       Endpoint  `json:"departure"`
	Arrival         Endpoint  `json:"arrival"`
	Duration        string    `json:"duration"`
	DurationMinutes int       `json:"durationMinutes"`
	Stops           int       `json:"stops"`
	SeatsLeft       int       `json:"seatsLeft,omitempty"`
	Segments        []Segment `json:"segments"`
}

// OfferResult is the /api/flights/search response body.
type OfferResult struct {
	Flights []Offer `json:"flights"`
	Mock    bool    `json:"mock,omitempty"`
	Message string  `json:"message,omitempty"`
}

// wire formats

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type rawPoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type rawSegment struct {
	Departure   rawPoint `json:"departure"`
	Arrival     rawPoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Duration    string   `json:"duration"`
}

type rawItinerary struct {
	Duration string       `json:"duration"`
	Segments []rawSegment `json:"segments"`
}

type rawOffer struct {
	ID    string `json:"id"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	NumberOfBookableSeats int            `json:"numberOfBookableSeats"`
	Itineraries           []rawItinerary `json:"itineraries"`
}

type offersResponse struct {
	Data         []rawOffer `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

type locationsResponse struct {
	Data []struct {
		SubType  string `json:"subType"`
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryName string `json:"countryName"`
		} `json:"address"`
	} `json:"data"`
}
