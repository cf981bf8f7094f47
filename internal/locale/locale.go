// Package locale formats timestamps the way German travellers read them.
package locale

import (
	"time"
	_ "time/tzdata"
)

// Berlin is the display zone for every clock time the service emits.
var Berlin = loadBerlin()

func loadBerlin() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return time.FixedZone("CET", 60*60)
	}
	return loc
}

// Clock renders t as "15:04" in Berlin time.
func Clock(t time.Time) string {
	return t.In(Berlin).Format("15:04")
}

// Date renders t as "02.01.2006" in Berlin time.
func Date(t time.Time) string {
	return t.In(Berlin).Format("02.01.2006")
}
