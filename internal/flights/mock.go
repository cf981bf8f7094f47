package flights

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

const mockMessage = "Beispieldaten: Der Flugdienst ist nicht konfiguriert."

type mockLeg struct {
	carrier, name, number string
	dep, arr              string // HH:MM, local
}

// mockOffers builds three sample offers. Prices vary per route and date but
// repeat for identical requests.
func mockOffers(origin, destination, date string) []Offer {
	h := fnv.New64a()
	_, _ = h.Write([]byte(origin + "|" + destination + "|" + date))
	seed := h.Sum64()
	r := rand.New(rand.NewPCG(seed, seed>>1|1))

	hub := "FRA"
	if origin == hub || destination == hub {
		hub = "MUC"
	}
	if origin == hub || destination == hub {
		hub = "DUS"
	}

	plans := [][]mockLeg{
		{{"LH", "Lufthansa", "LH 100", "07:15", "08:25"}},
		{{"EW", "Eurowings", "EW 9042", "10:05", "11:10"}, {"EW", "Eurowings", "EW 9517", "12:20", "13:30"}},
		{{"LH", "Lufthansa", "LH 108", "18:40", "19:50"}},
	}

	offers := make([]Offer, 0, len(plans))
	for i, legs := range plans {
		route := []string{origin, destination}
		if len(legs) > 1 {
			route = []string{origin, hub, destination}
		}
		segs := make([]Segment, 0, len(legs))
		total := 0
		for j, l := range legs {
			mins := clockMinutes(l.arr) - clockMinutes(l.dep)
			total += mins
			segs = append(segs, Segment{
				CarrierCode:     l.carrier,
				Carrier:         l.name,
				FlightNumber:    l.number,
				Departure:       mockEndpoint(route[j], date, l.dep),
				Arrival:         mockEndpoint(route[j+1], date, l.arr),
				Duration:        FormatDuration(mins),
				DurationMinutes: mins,
			})
		}
		price := math.Round((69+r.Float64()*180)*100) / 100
		offers = append(offers, Offer{
			ID:              uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("mock:%s:%s:%s:%d", origin, destination, date, i))).String(),
			Price:           Price{Total: price, Currency: "EUR"},
			Airline:         legs[0].name,
			AirlineCode:     legs[0].carrier,
			Departure:       segs[0].Departure,
			Arrival:         segs[len(segs)-1].Arrival,
			Duration:        FormatDuration(total),
			DurationMinutes: total,
			Stops:           len(segs) - 1,
			SeatsLeft:       1 + r.IntN(9),
			Segments:        segs,
		})
	}
	return offers
}

func mockEndpoint(airport, date, clock string) Endpoint {
	return Endpoint{Airport: airport, Time: date + "T" + clock + ":00", Clock: clock}
}

func clockMinutes(hhmm string) int {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}
