package journey_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourinfo/internal/journey"
	"github.com/neexbeast/tourinfo/internal/places"
	"github.com/neexbeast/tourinfo/internal/upstream"
)

func newPlanner(baseURL string) *journey.Planner {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return journey.NewPlanner(baseURL, upstream.NewClient(time.Second, nil, log))
}

func itinerary(start time.Time, legs ...journey.Leg) map[string]any {
	end := legs[len(legs)-1].EndTime
	rawLegs := make([]map[string]any, 0, len(legs))
	for _, l := range legs {
		rawLegs = append(rawLegs, map[string]any{
			"mode":           l.Mode,
			"from":           map[string]any{"name": l.From.Name},
			"to":             map[string]any{"name": l.To.Name},
			"startTime":      l.StartTime.Format(time.RFC3339),
			"endTime":        l.EndTime.Format(time.RFC3339),
			"routeShortName": l.RouteShortName,
		})
	}
	return map[string]any{
		"duration":  int(end.Sub(start).Seconds()),
		"startTime": start.Format(time.RFC3339),
		"endTime":   end.Format(time.RFC3339),
		"transfers": 1,
		"legs":      rawLegs,
	}
}

func sampleLegs(start time.Time) []journey.Leg {
	return []journey.Leg{
		{Mode: "WALK", From: journey.Place{Name: "Start"}, To: journey.Place{Name: "Berlin Hbf"}, StartTime: start, EndTime: start.Add(5 * time.Minute)},
		{Mode: "HIGHSPEED_RAIL", From: journey.Place{Name: "Berlin Hbf"}, To: journey.Place{Name: "Leipzig Hbf"}, StartTime: start.Add(10 * time.Minute), EndTime: start.Add(75 * time.Minute), RouteShortName: "ICE 1601"},
		{Mode: "SUBURBAN", From: journey.Place{Name: "Leipzig Hbf"}, To: journey.Place{Name: "Markt"}, StartTime: start.Add(80 * time.Minute), EndTime: start.Add(85 * time.Minute), RouteShortName: "S1"},
		{Mode: "HIGHSPEED_RAIL", From: journey.Place{Name: "Markt"}, To: journey.Place{Name: "München Hbf"}, StartTime: start.Add(90 * time.Minute), EndTime: start.Add(245 * time.Minute), RouteShortName: "ICE 1603"},
	}
}

func TestParseLocation(t *testing.T) {
	loc := journey.ParseLocation(" 52.52, 13.405 ")
	assert.Equal(t, journey.Coordinates, loc.Kind)
	assert.Equal(t, places.Point{Lat: 52.52, Lon: 13.405}, loc.Point)

	loc = journey.ParseLocation("-33.9,151")
	assert.Equal(t, journey.Coordinates, loc.Kind)

	loc = journey.ParseLocation("Berlin")
	assert.Equal(t, journey.FreeText, loc.Kind)
	assert.Equal(t, "Berlin", loc.Input)

	// out of range is not a coordinate
	loc = journey.ParseLocation("95.0,13.4")
	assert.Equal(t, journey.FreeText, loc.Kind)
}

func TestResolve(t *testing.T) {
	p, err := journey.Resolve(journey.ParseLocation("Muenchen"))
	require.NoError(t, err)
	want, _ := places.CityCoordinates("München")
	assert.Equal(t, want, p)

	_, err = journey.Resolve(journey.ParseLocation("Gotham"))
	var ule *journey.UnknownLocationError
	require.True(t, errors.As(err, &ule))
	assert.Equal(t, "Gotham", ule.Input)
	assert.Contains(t, err.Error(), "Gotham")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 Min.", journey.FormatDuration(45*60))
	assert.Equal(t, "2 Std.", journey.FormatDuration(2*3600))
	assert.Equal(t, "1 Std. 5 Min.", journey.FormatDuration(3900))
	assert.Equal(t, "0 Min.", journey.FormatDuration(-5))
}

func TestTransitModes(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"Fernzug", "S-Bahn"}, journey.TransitModes(sampleLegs(start)))
	assert.Empty(t, journey.TransitModes([]journey.Leg{{Mode: "WALK"}}))
}

func TestSummarize_LimitsToFive(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	its := make([]journey.Itinerary, 7)
	for i := range its {
		its[i] = journey.Itinerary{Duration: 3600, StartTime: start, EndTime: start.Add(time.Hour)}
	}
	got := journey.Summarize(its)
	require.Len(t, got, 5)
	// 08:00 UTC is 09:00 in Berlin during winter time
	assert.Equal(t, "09:00", got[0].Abfahrt)
	assert.Equal(t, "10:00", got[0].Ankunft)
	assert.Equal(t, "1 Std.", got[0].Dauer)
}

func TestConnections(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/plan", r.URL.Path)
		gotQuery = map[string]string{
			"fromPlace": r.URL.Query().Get("fromPlace"),
			"toPlace":   r.URL.Query().Get("toPlace"),
			"time":      r.URL.Query().Get("time"),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"itineraries": []any{itinerary(start, sampleLegs(start)...)},
		})
	}))
	defer srv.Close()

	res, err := newPlanner(srv.URL).Connections(context.Background(), "Berlin", "48.1351,11.582", start)
	require.NoError(t, err)

	assert.Equal(t, "52.52,13.405", gotQuery["fromPlace"])
	assert.Equal(t, "48.1351,11.582", gotQuery["toPlace"])
	assert.Equal(t, "2026-03-01T08:00:00Z", gotQuery["time"])

	assert.Equal(t, "Berlin", res.Von)
	assert.Equal(t, "01.03.2026", res.Datum)
	require.Equal(t, 1, res.Anzahl)
	c := res.Verbindungen[0]
	assert.Equal(t, "4 Std. 5 Min.", c.Dauer)
	assert.Equal(t, 245, c.DauerMinuten)
	assert.Equal(t, 1, c.Umstiege)
	assert.Equal(t, []string{"Fernzug", "S-Bahn"}, c.Verkehrsmittel)
	require.Len(t, c.Abschnitte, 4)
	assert.Equal(t, "Fußweg", c.Abschnitte[0].Verkehrsmittel)
	assert.Equal(t, "ICE 1601", c.Abschnitte[1].Linie)
	assert.Equal(t, "09:10", c.Abschnitte[1].Abfahrt)
}

func TestConnections_UnknownCityNoRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("planner should not be called for an unknown city")
		http.Error(w, "unexpected", http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newPlanner(srv.URL).Connections(context.Background(), "Berlin", "Nowhere", time.Now())
	var ule *journey.UnknownLocationError
	require.True(t, errors.As(err, &ule))
	assert.Equal(t, "Nowhere", ule.Input)
}

func TestConnections_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newPlanner(srv.URL).Connections(context.Background(), "Berlin", "Hamburg", time.Now())
	require.Error(t, err)
	var se *upstream.StatusError
	assert.True(t, errors.As(err, &se))
}
