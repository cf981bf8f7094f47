package places

import "strings"

// Airport describes one airport as returned by the airport search endpoint.
type Airport struct {
	Name     string `json:"name"`
	IATACode string `json:"iataCode"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

var germanAirports = []Airport{
	{"Berlin Brandenburg", "BER", "Berlin", "Deutschland"},
	{"Hamburg", "HAM", "Hamburg", "Deutschland"},
	{"München", "MUC", "München", "Deutschland"},
	{"Frankfurt am Main", "FRA", "Frankfurt", "Deutschland"},
	{"Köln/Bonn", "CGN", "Köln", "Deutschland"},
	{"Düsseldorf", "DUS", "Düsseldorf", "Deutschland"},
	{"Stuttgart", "STR", "Stuttgart", "Deutschland"},
	{"Hannover", "HAJ", "Hannover", "Deutschland"},
	{"Nürnberg", "NUE", "Nürnberg", "Deutschland"},
	{"Leipzig/Halle", "LEJ", "Leipzig", "Deutschland"},
	{"Dresden", "DRS", "Dresden", "Deutschland"},
	{"Bremen", "BRE", "Bremen", "Deutschland"},
	{"Dortmund", "DTM", "Dortmund", "Deutschland"},
	{"Münster/Osnabrück", "FMO", "Münster", "Deutschland"},
	{"Karlsruhe/Baden-Baden", "FKB", "Karlsruhe", "Deutschland"},
	{"Paderborn/Lippstadt", "PAD", "Paderborn", "Deutschland"},
	{"Friedrichshafen", "FDH", "Friedrichshafen", "Deutschland"},
	{"Memmingen", "FMM", "Memmingen", "Deutschland"},
	{"Saarbrücken", "SCN", "Saarbrücken", "Deutschland"},
	{"Erfurt-Weimar", "ERF", "Erfurt", "Deutschland"},
	{"Rostock-Laage", "RLG", "Rostock", "Deutschland"},
}

// extra city names that map onto an airport of another city
var airportAliases = []struct {
	city string
	code string
}{
	{"Bonn", "CGN"},
	{"Frankfurt am Main", "FRA"},
	{"Halle", "LEJ"},
	{"Osnabrück", "FMO"},
	{"Baden-Baden", "FKB"},
	{"Potsdam", "BER"},
}

var majorAirports = []Airport{
	{"London Heathrow", "LHR", "London", "Vereinigtes Königreich"},
	{"Paris Charles de Gaulle", "CDG", "Paris", "Frankreich"},
	{"Amsterdam Schiphol", "AMS", "Amsterdam", "Niederlande"},
	{"Madrid Barajas", "MAD", "Madrid", "Spanien"},
	{"Barcelona El Prat", "BCN", "Barcelona", "Spanien"},
	{"Palma de Mallorca", "PMI", "Palma", "Spanien"},
	{"Rom Fiumicino", "FCO", "Rom", "Italien"},
	{"Mailand Malpensa", "MXP", "Mailand", "Italien"},
	{"Wien Schwechat", "VIE", "Wien", "Österreich"},
	{"Zürich", "ZRH", "Zürich", "Schweiz"},
	{"Kopenhagen Kastrup", "CPH", "Kopenhagen", "Dänemark"},
	{"Prag Václav Havel", "PRG", "Prag", "Tschechien"},
	{"Warschau Chopin", "WAW", "Warschau", "Polen"},
	{"Istanbul", "IST", "Istanbul", "Türkei"},
	{"Lissabon Humberto Delgado", "LIS", "Lissabon", "Portugal"},
	{"Dublin", "DUB", "Dublin", "Irland"},
	{"Brüssel", "BRU", "Brüssel", "Belgien"},
	{"Athen Eleftherios Venizelos", "ATH", "Athen", "Griechenland"},
}

type airportKey struct {
	key  string
	code string
}

// airportKeys keeps table order so substring matching is deterministic.
var airportKeys = buildAirportKeys()

func buildAirportKeys() []airportKey {
	var keys []airportKey
	seen := make(map[string]bool)
	add := func(name, code string) {
		for _, k := range keyVariants(name) {
			if seen[k] {
				continue
			}
			seen[k] = true
			keys = append(keys, airportKey{key: k, code: code})
		}
	}
	for _, a := range germanAirports {
		add(a.City, a.IATACode)
	}
	for _, a := range airportAliases {
		add(a.city, a.code)
	}
	return keys
}

// GermanAirportCode resolves a German city name to its airport code. An exact
// key match wins; otherwise the first table key that contains the input, or
// is contained in it, is used.
func GermanAirportCode(name string) (string, bool) {
	in := Normalize(name)
	if in == "" {
		return "", false
	}
	for _, k := range airportKeys {
		if k.key == in {
			return k.code, true
		}
	}
	for _, k := range airportKeys {
		if strings.Contains(k.key, in) || strings.Contains(in, k.key) {
			return k.code, true
		}
	}
	return "", false
}

// SearchLocalAirports filters the German and major European airports by a
// case-insensitive substring of name, code or city.
func SearchLocalAirports(query string, limit int) []Airport {
	q := Normalize(query)
	out := make([]Airport, 0, limit)
	if q == "" {
		return out
	}
	seen := make(map[string]bool)
	for _, list := range [][]Airport{germanAirports, majorAirports} {
		for _, a := range list {
			if len(out) >= limit {
				return out
			}
			if seen[a.IATACode] {
				continue
			}
			if strings.Contains(Normalize(a.Name), q) ||
				strings.Contains(strings.ToLower(a.IATACode), q) ||
				strings.Contains(Normalize(a.City), q) {
				seen[a.IATACode] = true
				out = append(out, a)
			}
		}
	}
	return out
}
