// Package transport adapts the FPTF-style rail transport REST API.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/tourinfo/internal/locale"
	"github.com/neexbeast/tourinfo/internal/upstream"
)

// DefaultBaseURL is the public db-rest instance.
const DefaultBaseURL = "https://v6.db.transport.rest"

// Limits applied to caller-supplied values.
const (
	MaxSearchResults    = 20
	MaxDepartureWindow  = 720
	MaxDepartureResults = 50
	MaxJourneyResults   = 10

	defaultSearchResults    = 10
	defaultDepartureWindow  = 60
	defaultDepartureResults = 20
	defaultJourneyResults   = 5
)

// TTLs configures how long each kind of response stays cached.
type TTLs struct {
	Stations   time.Duration
	Departures time.Duration
	Journeys   time.Duration
}

// DefaultTTLs balances staleness against the provider's rate limit.
var DefaultTTLs = TTLs{
	Stations:   60 * time.Second,
	Departures: 30 * time.Second,
	Journeys:   60 * time.Second,
}

// Client queries the rail transport API.
type Client struct {
	baseURL string
	up      *upstream.Client
	ttl     TTLs
	now     func() time.Time
}

// NewClient constructs a Client. An empty baseURL selects DefaultBaseURL and
// zero TTL fields fall back to DefaultTTLs.
func NewClient(baseURL string, up *upstream.Client, ttl TTLs) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if ttl.Stations <= 0 {
		ttl.Stations = DefaultTTLs.Stations
	}
	if ttl.Departures <= 0 {
		ttl.Departures = DefaultTTLs.Departures
	}
	if ttl.Journeys <= 0 {
		ttl.Journeys = DefaultTTLs.Journeys
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), up: up, ttl: ttl, now: time.Now}
}

// SearchStations runs a free-text stop search.
func (c *Client) SearchStations(ctx context.Context, query string, limit int) ([]Stop, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("results", strconv.Itoa(clamp(limit, defaultSearchResults, MaxSearchResults)))
	q.Set("stops", "true")
	q.Set("addresses", "false")
	q.Set("poi", "false")

	var raw []rawLocation
	if err := c.up.GetJSON(ctx, c.baseURL+"/locations?"+q.Encode(), c.ttl.Stations, &raw); err != nil {
		return nil, fmt.Errorf("station search for %q: %w", query, err)
	}

	stops := make([]Stop, 0, len(raw))
	for _, r := range raw {
		if r.Type != "stop" && r.Type != "station" {
			continue
		}
		s := Stop{ID: r.ID, Name: r.Name}
		if r.Location != nil {
			lat, lng := r.Location.Latitude, r.Location.Longitude
			s.Lat, s.Lng = &lat, &lng
		}
		if r.Products != nil {
			s.Products = *r.Products
		}
		stops = append(stops, s)
	}
	return stops, nil
}

// ResolveStation maps a station token to a provider station. Free text takes
// the top search hit.
func (c *Client) ResolveStation(ctx context.Context, token string) (Station, error) {
	t := ParseStationToken(token)
	if t.Kind == StationID {
		return Station{ID: t.Value}, nil
	}
	stops, err := c.SearchStations(ctx, t.Value, 1)
	if err != nil {
		return Station{}, err
	}
	if len(stops) == 0 {
		return Station{}, &StationNotFoundError{Token: token}
	}
	return Station{ID: stops[0].ID, Name: stops[0].Name}, nil
}

// Departures returns the departure board of a station for the next windowMinutes.
func (c *Client) Departures(ctx context.Context, token string, windowMinutes, maxResults int) (*Board, error) {
	station, err := c.ResolveStation(ctx, token)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("duration", strconv.Itoa(clamp(windowMinutes, defaultDepartureWindow, MaxDepartureWindow)))
	q.Set("results", strconv.Itoa(clamp(maxResults, defaultDepartureResults, MaxDepartureResults)))
	q.Set("remarks", "true")
	endpoint := c.baseURL + "/stops/" + url.PathEscape(station.ID) + "/departures?" + q.Encode()

	var raw rawDepartures
	if err := c.up.GetJSON(ctx, endpoint, c.ttl.Departures, &raw); err != nil {
		return nil, fmt.Errorf("departures for station %s: %w", station.ID, err)
	}

	board := &Board{
		Station:    station,
		Departures: make([]Departure, 0, len(raw.Departures)),
		UpdatedAt:  c.now().UTC(),
	}
	if raw.RealtimeDataUpdatedAt != nil {
		board.UpdatedAt = time.Unix(*raw.RealtimeDataUpdatedAt, 0).UTC()
	}

	for _, d := range raw.Departures {
		if board.Station.Name == "" && d.Stop != nil {
			board.Station.Name = d.Stop.Name
		}
		board.Departures = append(board.Departures, Departure{
			TripID:          d.TripID,
			Line:            d.Line,
			Direction:       d.Direction,
			PlannedWhen:     d.PlannedWhen,
			When:            d.When,
			Delay:           d.Delay,
			DelayFormatted:  FormatDelay(d.Delay),
			Platform:        d.Platform,
			PlannedPlatform: d.PlannedPlatform,
			PlatformChanged: platformChanged(d.Platform, d.PlannedPlatform),
			Cancelled:       d.Cancelled || d.When == nil,
			Remarks:         filterRemarks(d.Remarks),
		})
	}
	return board, nil
}

// Journeys searches connections between two station tokens. Both tokens are
// resolved independently; when both fail the origin's error is reported.
func (c *Client) Journeys(ctx context.Context, fromToken, toToken string, opts JourneyOptions) (*JourneyList, error) {
	var (
		from, to       Station
		fromErr, toErr error
		g              errgroup.Group
	)
	g.Go(func() error {
		from, fromErr = c.ResolveStation(ctx, fromToken)
		return fromErr
	})
	g.Go(func() error {
		to, toErr = c.ResolveStation(ctx, toToken)
		return toErr
	})
	_ = g.Wait()
	if fromErr != nil {
		return nil, fromErr
	}
	if toErr != nil {
		return nil, toErr
	}

	q := url.Values{}
	q.Set("from", from.ID)
	q.Set("to", to.ID)
	q.Set("results", strconv.Itoa(clamp(opts.Results, defaultJourneyResults, MaxJourneyResults)))
	q.Set("stopovers", "false")
	if opts.Departure != nil {
		q.Set("departure", opts.Departure.UTC().Format(time.RFC3339))
	}
	if opts.MaxTransfers != nil {
		q.Set("transfers", strconv.Itoa(max(*opts.MaxTransfers, 0)))
	}

	var raw rawJourneys
	if err := c.up.GetJSON(ctx, c.baseURL+"/journeys?"+q.Encode(), c.ttl.Journeys, &raw); err != nil {
		return nil, fmt.Errorf("journeys %s -> %s: %w", from.ID, to.ID, err)
	}

	list := &JourneyList{
		Journeys:   make([]Journey, 0, len(raw.Journeys)),
		EarlierRef: raw.EarlierRef,
		LaterRef:   raw.LaterRef,
	}
	for _, rj := range raw.Journeys {
		list.Journeys = append(list.Journeys, toJourney(rj))
	}
	return list, nil
}

func toJourney(rj rawJourney) Journey {
	legs := make([]Leg, 0, len(rj.Legs))
	for _, l := range rj.Legs {
		legs = append(legs, Leg{
			Origin:                   l.Origin,
			Destination:              l.Destination,
			Departure:                l.Departure,
			PlannedDeparture:         l.PlannedDeparture,
			DepartureDelay:           l.DepartureDelay,
			DepartureDelayFormatted:  FormatDelay(l.DepartureDelay),
			DeparturePlatform:        l.DeparturePlatform,
			PlannedDeparturePlatform: l.PlannedDeparturePlatform,
			Arrival:                  l.Arrival,
			PlannedArrival:           l.PlannedArrival,
			ArrivalDelay:             l.ArrivalDelay,
			ArrivalDelayFormatted:    FormatDelay(l.ArrivalDelay),
			ArrivalPlatform:          l.ArrivalPlatform,
			PlannedArrivalPlatform:   l.PlannedArrivalPlatform,
			Line:                     l.Line,
			Direction:                l.Direction,
			Walking:                  l.Walking,
			Cancelled:                l.Cancelled,
		})
	}

	j := Journey{
		Duration:     DurationMinutes(legs),
		Transfers:    TransferCount(legs),
		RefreshToken: rj.RefreshToken,
		Legs:         legs,
	}
	if len(legs) > 0 {
		j.Departure = firstTime(legs[0].Departure, legs[0].PlannedDeparture)
		j.Arrival = firstTime(legs[len(legs)-1].Arrival, legs[len(legs)-1].PlannedArrival)
	}
	if j.Departure != nil {
		j.DepartureTime = locale.Clock(*j.Departure)
	}
	if j.Arrival != nil {
		j.ArrivalTime = locale.Clock(*j.Arrival)
	}
	return j
}
