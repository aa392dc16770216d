package courses

import "strings"

// cityKey identifies a city in the altitude table. Country defaults to "us"
// because the table currently only covers US metros.
type cityKey struct {
	city    string
	state   string
	country string
}

// cityAltitudes maps cities to elevation in feet above sea level.
// Used for the location endpoints; WeatherAPI does not report elevation.
var cityAltitudes = map[cityKey]float64{
	{"phoenix", "az", "us"}:        1086,
	{"denver", "co", "us"}:         5280,
	{"scottsdale", "az", "us"}:     1257,
	{"las vegas", "nv", "us"}:      2001,
	{"los angeles", "ca", "us"}:    285,
	{"miami", "fl", "us"}:          6,
	{"new york", "ny", "us"}:       33,
	{"chicago", "il", "us"}:        594,
	{"atlanta", "ga", "us"}:        1050,
	{"dallas", "tx", "us"}:         430,
	{"seattle", "wa", "us"}:        175,
	{"boston", "ma", "us"}:         141,
	{"san francisco", "ca", "us"}:  52,
	{"austin", "tx", "us"}:         489,
	{"portland", "or", "us"}:       50,
	{"salt lake city", "ut", "us"}: 4226,
	{"albuquerque", "nm", "us"}:    5312,
	{"tucson", "az", "us"}:         2389,
	{"san diego", "ca", "us"}:      62,
	{"orlando", "fl", "us"}:        82,
	{"houston", "tx", "us"}:        80,
	{"nashville", "tn", "us"}:      597,
	{"charlotte", "nc", "us"}:      751,
	{"minneapolis", "mn", "us"}:    830,
	{"detroit", "mi", "us"}:        600,
	{"philadelphia", "pa", "us"}:   39,
	{"washington", "dc", "us"}:     125,
	{"tampa", "fl", "us"}:          48,
	{"raleigh", "nc", "us"}:        315,
	{"indianapolis", "in", "us"}:   715,
}

// CityAltitude returns a city's elevation in feet, or 0 (sea level) when the
// city is not in the table. Unknown cities simulating at sea level is the
// documented behavior, not an error.
func CityAltitude(city, state, country string) float64 {
	if country == "" {
		country = "us"
	}
	key := cityKey{
		city:    normalize(city),
		state:   normalize(state),
		country: strings.ToLower(strings.TrimSpace(country)),
	}
	return cityAltitudes[key]
}
