package api

import (
	"context"
	"time"

	"github.com/neexbeast/tourinfo/internal/flights"
	"github.com/neexbeast/tourinfo/internal/journey"
	"github.com/neexbeast/tourinfo/internal/places"
	"github.com/neexbeast/tourinfo/internal/transport"
)

// ConnectionPlanner defines the journey planner operations needed by handlers.
type ConnectionPlanner interface {
	Connections(ctx context.Context, from, to string, departure time.Time) (*journey.Result, error)
}

// RailClient defines the rail transport operations needed by handlers.
type RailClient interface {
	SearchStations(ctx context.Context, query string, limit int) ([]transport.Stop, error)
	Departures(ctx context.Context, station string, windowMinutes, maxResults int) (*transport.Board, error)
	Journeys(ctx context.Context, from, to string, opts transport.JourneyOptions) (*transport.JourneyList, error)
}

// FlightClient defines the flight search operations needed by handlers.
type FlightClient interface {
	SearchAirports(ctx context.Context, query string) []places.Airport
	SearchOffers(ctx context.Context, req flights.OfferRequest) (*flights.OfferResult, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
