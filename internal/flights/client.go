// Package flights adapts the Amadeus flight-offer and airport reference APIs.
// Without credentials it serves local airport data and sample offers.
package flights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/neexbeast/tourinfo/internal/places"
	"github.com/neexbeast/tourinfo/internal/upstream"
)

// DefaultBaseURL is the Amadeus self-service test environment.
const DefaultBaseURL = "https://test.api.amadeus.com"

const (
	maxAirportResults  = 10
	defaultOfferCount  = 10
	maxOfferCount      = 50
	defaultTravelClass = "ECONOMY"
	atLayout           = "2006-01-02T15:04:05"
)

// TTLs configures how long provider answers stay cached.
type TTLs struct {
	Offers   time.Duration
	Airports time.Duration
}

// DefaultTTLs caches offers for five minutes and airport lookups for an hour.
var DefaultTTLs = TTLs{Offers: 5 * time.Minute, Airports: time.Hour}

// Client searches airports and flight offers.
type Client struct {
	baseURL string
	creds   Credentials
	up      *upstream.Client
	tokens  *tokenHolder
	ttl     TTLs
	log     *slog.Logger
}

// NewClient constructs a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, creds Credentials, up *upstream.Client, ttl TTLs, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if ttl.Offers <= 0 {
		ttl.Offers = DefaultTTLs.Offers
	}
	if ttl.Airports <= 0 {
		ttl.Airports = DefaultTTLs.Airports
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		up:      up,
		tokens: &tokenHolder{
			endpoint: baseURL + "/v1/security/oauth2/token",
			creds:    creds,
			up:       up,
			now:      time.Now,
		},
		ttl: ttl,
		log: log,
	}
}

// Configured reports whether live provider calls are possible.
func (c *Client) Configured() bool {
	return c.creds.Configured()
}

// SearchAirports looks up airports by name, city or code. Any provider
// problem falls back to the local tables.
func (c *Client) SearchAirports(ctx context.Context, query string) []places.Airport {
	if !c.Configured() {
		return places.SearchLocalAirports(query, maxAirportResults)
	}
	airports, err := c.searchRemoteAirports(ctx, query)
	if err != nil {
		c.log.Warn("airport lookup failed, using local table", "query", query, "err", err)
		return places.SearchLocalAirports(query, maxAirportResults)
	}
	return airports
}

func (c *Client) searchRemoteAirports(ctx context.Context, query string) ([]places.Airport, error) {
	q := url.Values{}
	q.Set("subType", "AIRPORT,CITY")
	q.Set("keyword", strings.ToUpper(strings.TrimSpace(query)))
	q.Set("page[limit]", strconv.Itoa(maxAirportResults))

	var raw locationsResponse
	if err := c.authorizedGet(ctx, c.baseURL+"/v1/reference-data/locations?"+q.Encode(), c.ttl.Airports, &raw); err != nil {
		return nil, err
	}

	title := cases.Title(language.German)
	out := make([]places.Airport, 0, len(raw.Data))
	seen := make(map[string]bool)
	for _, d := range raw.Data {
		if d.IATACode == "" || seen[d.IATACode] || len(out) >= maxAirportResults {
			continue
		}
		seen[d.IATACode] = true
		out = append(out, places.Airport{
			Name:     title.String(d.Name),
			IATACode: d.IATACode,
			City:     title.String(d.Address.CityName),
			Country:  title.String(d.Address.CountryName),
		})
	}
	return out, nil
}

// SearchOffers resolves both airports and returns offers for the outbound
// itinerary. Missing or rejected credentials produce sample offers.
func (c *Client) SearchOffers(ctx context.Context, req OfferRequest) (*OfferResult, error) {
	origin, ok := AirportCode(req.Origin)
	if !ok {
		return nil, &UnresolvedAirportError{Side: "origin", Input: req.Origin}
	}
	destination, ok := AirportCode(req.Destination)
	if !ok {
		return nil, &UnresolvedAirportError{Side: "destination", Input: req.Destination}
	}

	if !c.Configured() {
		return &OfferResult{Flights: mockOffers(origin, destination, req.DepartureDate), Mock: true, Message: mockMessage}, nil
	}

	offers, err := c.searchRemoteOffers(ctx, origin, destination, req)
	if errors.Is(err, ErrCredentials) {
		c.log.Warn("flight provider rejected credentials, serving sample offers", "err", err)
		return &OfferResult{Flights: mockOffers(origin, destination, req.DepartureDate), Mock: true, Message: mockMessage}, nil
	}
	if err != nil {
		return nil, err
	}
	return &OfferResult{Flights: offers}, nil
}

func (c *Client) searchRemoteOffers(ctx context.Context, origin, destination string, req OfferRequest) ([]Offer, error) {
	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", req.DepartureDate)
	if req.ReturnDate != "" {
		q.Set("returnDate", req.ReturnDate)
	}
	q.Set("adults", strconv.Itoa(max(req.Adults, 1)))
	travelClass := strings.ToUpper(req.TravelClass)
	if travelClass == "" {
		travelClass = defaultTravelClass
	}
	q.Set("travelClass", travelClass)
	q.Set("currencyCode", "EUR")
	n := req.MaxResults
	if n <= 0 {
		n = defaultOfferCount
	}
	q.Set("max", strconv.Itoa(min(n, maxOfferCount)))

	var raw offersResponse
	if err := c.authorizedGet(ctx, c.baseURL+"/v2/shopping/flight-offers?"+q.Encode(), c.ttl.Offers, &raw); err != nil {
		return nil, fmt.Errorf("flight offers %s -> %s: %w", origin, destination, err)
	}

	offers := make([]Offer, 0, len(raw.Data))
	for _, ro := range raw.Data {
		o, err := toOffer(ro, raw.Dictionaries.Carriers)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", ro.ID, err)
		}
		offers = append(offers, o)
	}
	return offers, nil
}

// authorizedGet attaches the bearer token. A 401 invalidates the cached token
// and is reported as ErrCredentials.
func (c *Client) authorizedGet(ctx context.Context, rawURL string, ttl time.Duration, dst any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	err = c.up.Do(req, ttl, dst)
	var se *upstream.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		c.tokens.invalidate()
		return fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	return err
}

func toOffer(ro rawOffer, carriers map[string]string) (Offer, error) {
	if len(ro.Itineraries) == 0 || len(ro.Itineraries[0].Segments) == 0 {
		return Offer{}, errors.New("offer has no outbound segments")
	}
	outbound := ro.Itineraries[0]

	total, err := strconv.ParseFloat(ro.Price.Total, 64)
	if err != nil {
		return Offer{}, fmt.Errorf("parsing price %q: %w", ro.Price.Total, err)
	}

	segs := make([]Segment, 0, len(outbound.Segments))
	minutes := 0
	for _, s := range outbound.Segments {
		d, err := ParseDuration(s.Duration)
		if err != nil {
			return Offer{}, err
		}
		dep, err := toEndpoint(s.Departure)
		if err != nil {
			return Offer{}, err
		}
		arr, err := toEndpoint(s.Arrival)
		if err != nil {
			return Offer{}, err
		}
		minutes += d
		segs = append(segs, Segment{
			CarrierCode:     s.CarrierCode,
			Carrier:         carrierName(carriers, s.CarrierCode),
			FlightNumber:    s.CarrierCode + " " + s.Number,
			Departure:       dep,
			Arrival:         arr,
			Duration:        FormatDuration(d),
			DurationMinutes: d,
		})
	}

	primary := outbound.Segments[0].CarrierCode
	return Offer{
		ID:              ro.ID,
		Price:           Price{Total: total, Currency: ro.Price.Currency},
		Airline:         carrierName(carriers, primary),
		AirlineCode:     primary,
		Departure:       segs[0].Departure,
		Arrival:         segs[len(segs)-1].Arrival,
		Duration:        FormatDuration(minutes),
		DurationMinutes: minutes,
		Stops:           len(segs) - 1,
		SeatsLeft:       ro.NumberOfBookableSeats,
		Segments:        segs,
	}, nil
}

// toEndpoint keeps the provider's local airport time and adds its clock reading.
func toEndpoint(p rawPoint) (Endpoint, error) {
	at, err := time.Parse(atLayout, p.At)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parsing time %q at %s: %w", p.At, p.IATACode, err)
	}
	return Endpoint{Airport: p.IATACode, Terminal: p.Terminal, Time: p.At, Clock: at.Format("15:04")}, nil
}

func carrierName(carriers map[string]string, code string) string {
	if name, ok := carriers[code]; ok && name != "" {
		return cases.Title(language.German).String(name)
	}
	return code
}
