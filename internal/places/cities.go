package places

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type city struct {
	name  string
	point Point
}

var germanCities = []city{
	{"Berlin", Point{52.5200, 13.4050}},
	{"Hamburg", Point{53.5511, 9.9937}},
	{"München", Point{48.1351, 11.5820}},
	{"Köln", Point{50.9375, 6.9603}},
	{"Frankfurt", Point{50.1109, 8.6821}},
	{"Frankfurt am Main", Point{50.1109, 8.6821}},
	{"Stuttgart", Point{48.7758, 9.1829}},
	{"Düsseldorf", Point{51.2277, 6.7735}},
	{"Dortmund", Point{51.5136, 7.4653}},
	{"Essen", Point{51.4556, 7.0116}},
	{"Leipzig", Point{51.3397, 12.3731}},
	{"Bremen", Point{53.0793, 8.8017}},
	{"Dresden", Point{51.0504, 13.7373}},
	{"Hannover", Point{52.3759, 9.7320}},
	{"Nürnberg", Point{49.4521, 11.0767}},
	{"Duisburg", Point{51.4344, 6.7623}},
	{"Bochum", Point{51.4818, 7.2162}},
	{"Wuppertal", Point{51.2562, 7.1508}},
	{"Bielefeld", Point{52.0302, 8.5325}},
	{"Bonn", Point{50.7374, 7.0982}},
	{"Münster", Point{51.9607, 7.6261}},
	{"Karlsruhe", Point{49.0069, 8.4037}},
	{"Mannheim", Point{49.4875, 8.4660}},
	{"Augsburg", Point{48.3705, 10.8978}},
	{"Wiesbaden", Point{50.0782, 8.2398}},
	{"Freiburg", Point{47.9990, 7.8421}},
	{"Heidelberg", Point{49.3988, 8.6724}},
	{"Potsdam", Point{52.3906, 13.0645}},
	{"Rostock", Point{54.0924, 12.0991}},
	{"Lübeck", Point{53.8655, 10.6866}},
	{"Kiel", Point{54.3233, 10.1228}},
	{"Erfurt", Point{50.9848, 11.0299}},
	{"Mainz", Point{49.9929, 8.2473}},
	{"Regensburg", Point{49.0134, 12.1016}},
	{"Saarbrücken", Point{49.2402, 6.9969}},
	{"Würzburg", Point{49.7913, 9.9534}},
}

var cityIndex = buildCityIndex()

func buildCityIndex() map[string]Point {
	idx := make(map[string]Point, len(germanCities)*2)
	for _, c := range germanCities {
		for _, k := range keyVariants(c.name) {
			idx[k] = c.point
		}
	}
	return idx
}

// CityCoordinates looks up a German city by name. Matching ignores case and
// surrounding whitespace and accepts "ue"/"u" spellings for umlauts.
func CityCoordinates(name string) (Point, bool) {
	p, ok := cityIndex[Normalize(name)]
	return p, ok
}
