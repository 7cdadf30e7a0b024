package adapter

// WMO weather codes as reported by open-meteo:
// https://open-meteo.com/en/docs#weathervariables
var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Fog",
	51: "Light rain",
	53: "Light rain",
	55: "Light rain",
	61: "Rain",
	63: "Rain",
	65: "Rain",
	71: "Snow",
	73: "Snow",
	75: "Snow",
	95: "Thunderstorm",
}

// DescribeWeatherCode maps a WMO weather code to a human-readable sky
// condition. The mapping is total: unknown codes fall back to
// "Unknown weather" rather than failing.
func DescribeWeatherCode(code int) string {
	if desc, ok := weatherCodeDescriptions[code]; ok {
		return desc
	}
	return "Unknown weather"
}
