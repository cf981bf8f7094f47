package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/neexbeast/tourinfo/internal/flights"
	"github.com/neexbeast/tourinfo/internal/journey"
	"github.com/neexbeast/tourinfo/internal/locale"
	"github.com/neexbeast/tourinfo/internal/places"
	"github.com/neexbeast/tourinfo/internal/transport"
)

// minQueryLength is the shortest accepted free-text search.
const minQueryLength = 2

const maxAdults = 9

// Downstream cache lifetimes in seconds.
const (
	maxAgeSearch     = 3600
	maxAgeDepartures = 30
	maxAgeJourneys   = 60
	maxAgeFlights    = 300
)

var travelClasses = map[string]bool{
	"ECONOMY":         true,
	"PREMIUM_ECONOMY": true,
	"BUSINESS":        true,
	"FIRST":           true,
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	planner ConnectionPlanner
	rail    RailClient
	flights FlightClient
	log     *slog.Logger
	now     func() time.Time
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(planner ConnectionPlanner, rail RailClient, flights FlightClient, log *slog.Logger) *Handlers {
	return &Handlers{
		planner: planner,
		rail:    rail,
		flights: flights,
		log:     log,
		now:     time.Now,
	}
}

// StationSearch is the /api/transport/search response body.
type StationSearch struct {
	Query    string           `json:"query"`
	Stations []transport.Stop `json:"stations"`
}

// AirportSearch is the /api/flights/airports response body.
type AirportSearch struct {
	Query    string           `json:"query"`
	Airports []places.Airport `json:"airports"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeCacheable writes a 200 response that downstream caches may keep for maxAge seconds.
func writeCacheable(w http.ResponseWriter, maxAge int, v any) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	writeJSON(w, http.StatusOK, v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// writeError maps resolution failures onto 400/404 and everything else onto 500.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unknownLocation *journey.UnknownLocationError
		unknownAirport  *flights.UnresolvedAirportError
		unknownStation  *transport.StationNotFoundError
	)
	switch {
	case errors.As(err, &unknownLocation), errors.As(err, &unknownAirport):
		badRequest(w, err.Error())
	case errors.As(err, &unknownStation):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		h.log.Error("upstream request failed", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "upstream request failed"})
	}
}

// Connections handles GET /api/connections.
func (h *Handlers) Connections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		badRequest(w, "parameters from and to are required")
		return
	}

	departure, err := h.departureTime(q.Get("date"), q.Get("time"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	res, err := h.planner.Connections(r.Context(), from, to, departure)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// departureTime reads date (YYYY-MM-DD) and time (HH:mm) as Berlin wall clock.
// Missing parts default to the current Berlin date and time.
func (h *Handlers) departureTime(date, clock string) (time.Time, error) {
	now := h.now().In(locale.Berlin)
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	if clock == "" {
		clock = now.Format("15:04")
	}
	t, err := time.ParseInLocation(time.DateOnly+" 15:04", date+" "+clock, locale.Berlin)
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD and time HH:mm")
	}
	return t, nil
}

// SearchStations handles GET /api/transport/search.
func (h *Handlers) SearchStations(w http.ResponseWriter, r *http.Request) {
	query, ok := searchQuery(w, r)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	stops, err := h.rail.SearchStations(r.Context(), query, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeCacheable(w, maxAgeSearch, StationSearch{Query: query, Stations: stops})
}

// Departures handles GET /api/transport/departures.
func (h *Handlers) Departures(w http.ResponseWriter, r *http.Request) {
	station := strings.TrimSpace(r.URL.Query().Get("station"))
	if station == "" {
		badRequest(w, "parameter station is required")
		return
	}
	window, err := intParam(r, "duration")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	results, err := intParam(r, "results")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	board, err := h.rail.Departures(r.Context(), station, window, results)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeCacheable(w, maxAgeDepartures, board)
}

// Journeys handles GET /api/transport/journeys.
func (h *Handlers) Journeys(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		badRequest(w, "parameters from and to are required")
		return
	}

	var opts transport.JourneyOptions
	if v := q.Get("when"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(w, "parameter when must be an RFC 3339 timestamp")
			return
		}
		opts.Departure = &t
	}
	var err error
	if opts.Results, err = intParam(r, "results"); err != nil {
		badRequest(w, err.Error())
		return
	}
	if q.Has("transfers") {
		n, err := intParam(r, "transfers")
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		opts.MaxTransfers = &n
	}

	list, err := h.rail.Journeys(r.Context(), from, to, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeCacheable(w, maxAgeJourneys, list)
}

// SearchAirports handles GET /api/flights/airports.
func (h *Handlers) SearchAirports(w http.ResponseWriter, r *http.Request) {
	query, ok := searchQuery(w, r)
	if !ok {
		return
	}
	writeCacheable(w, maxAgeSearch, AirportSearch{Query: query, Airports: h.flights.SearchAirports(r.Context(), query)})
}

// SearchFlights handles GET /api/flights/search.
func (h *Handlers) SearchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := flights.OfferRequest{
		Origin:        strings.TrimSpace(q.Get("from")),
		Destination:   strings.TrimSpace(q.Get("to")),
		DepartureDate: q.Get("date"),
		ReturnDate:    q.Get("return"),
		Adults:        1,
		TravelClass:   "ECONOMY",
	}
	if req.Origin == "" || req.Destination == "" || req.DepartureDate == "" {
		badRequest(w, "parameters from, to and date are required")
		return
	}
	if !validDate(req.DepartureDate) {
		badRequest(w, "parameter date must be YYYY-MM-DD")
		return
	}
	if req.ReturnDate != "" && !validDate(req.ReturnDate) {
		badRequest(w, "parameter return must be YYYY-MM-DD")
		return
	}
	if q.Has("adults") {
		n, err := intParam(r, "adults")
		if err != nil || n < 1 || n > maxAdults {
			badRequest(w, fmt.Sprintf("parameter adults must be between 1 and %d", maxAdults))
			return
		}
		req.Adults = n
	}
	if v := q.Get("class"); v != "" {
		req.TravelClass = strings.ToUpper(v)
		if !travelClasses[req.TravelClass] {
			badRequest(w, "parameter class must be ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST")
			return
		}
	}

	res, err := h.flights.SearchOffers(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeCacheable(w, maxAgeFlights, res)
}

// searchQuery extracts q and enforces minQueryLength.
func searchQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(query) < minQueryLength {
		badRequest(w, fmt.Sprintf("parameter q must be at least %d characters long", minQueryLength))
		return "", false
	}
	return query, true
}

// intParam returns 0 for an absent parameter and an error for anything but
// a non-negative integer.
func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("parameter %s must be a non-negative integer", name)
	}
	return n, nil
}

func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// HealthHandlerFunc returns an http.HandlerFunc reporting service health.
// cache is nil when the in-process cache is used.
func HealthHandlerFunc(cache Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache == nil {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "cache": "memory"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := cache.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "cache": "redis", "redis": "error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "cache": "redis", "redis": "ok"})
	}
}
