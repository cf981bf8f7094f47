// Package journey adapts the multimodal journey planner to the /api/connections endpoint.
package journey

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/neexbeast/tourinfo/internal/locale"
	"github.com/neexbeast/tourinfo/internal/places"
	"github.com/neexbeast/tourinfo/internal/upstream"
)

// DefaultBaseURL is the public Transitous instance of the MOTIS planner.
const DefaultBaseURL = "https://api.transitous.org"

// maxConnections is how many itineraries are returned to the caller.
const maxConnections = 5

// Planner queries the journey planner.
type Planner struct {
	baseURL string
	up      *upstream.Client
}

// NewPlanner constructs a Planner. An empty baseURL selects DefaultBaseURL.
func NewPlanner(baseURL string, up *upstream.Client) *Planner {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Planner{baseURL: strings.TrimRight(baseURL, "/"), up: up}
}

// PlanTrip asks the planner for itineraries between two points. Results are not cached.
func (p *Planner) PlanTrip(ctx context.Context, from, to places.Point, departure time.Time) ([]Itinerary, error) {
	q := url.Values{}
	q.Set("fromPlace", formatPoint(from))
	q.Set("toPlace", formatPoint(to))
	q.Set("time", departure.UTC().Format(time.RFC3339))

	var raw planResponse
	if err := p.up.GetJSON(ctx, p.baseURL+"/api/v1/plan?"+q.Encode(), 0, &raw); err != nil {
		return nil, fmt.Errorf("journey planner request: %w", err)
	}
	return raw.Itineraries, nil
}

// Connections resolves both inputs, plans the trip and summarizes the answer.
func (p *Planner) Connections(ctx context.Context, from, to string, departure time.Time) (*Result, error) {
	fromLoc, toLoc := ParseLocation(from), ParseLocation(to)

	fromPoint, err := Resolve(fromLoc)
	if err != nil {
		return nil, err
	}
	toPoint, err := Resolve(toLoc)
	if err != nil {
		return nil, err
	}

	itineraries, err := p.PlanTrip(ctx, fromPoint, toPoint, departure)
	if err != nil {
		return nil, err
	}

	conns := Summarize(itineraries)
	return &Result{
		Von:          fromLoc.Input,
		Nach:         toLoc.Input,
		Datum:        locale.Date(departure),
		Anzahl:       len(conns),
		Verbindungen: conns,
	}, nil
}

func formatPoint(p places.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
