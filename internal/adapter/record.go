// Package adapter contains the upstream API adapters. Each adapter owns
// one upstream call chain and is the sole recovery boundary for it: every
// failure is collapsed into a fully-populated sentinel record at the
// adapter's exit, so callers never see an error, a nil, or a partial value.
package adapter

import "context"

// WeatherRecord is the normalized current-weather view for one place.
type WeatherRecord struct {
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature_celsius"`
	WindSpeed   string  `json:"wind_speed"`
}

// QuoteRecord holds one quote and its author. Both fields are always
// non-empty.
type QuoteRecord struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// CountryRecord is the normalized country-facts view.
type CountryRecord struct {
	Name       string   `json:"name"`
	Capital    string   `json:"capital"`
	Population int64    `json:"population"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Currencies []string `json:"currencies"`
	Languages  []string `json:"languages"`
	FlagURL    string   `json:"flag_url"`
}

// MetricsRecorder receives upstream call outcomes for the metrics endpoint.
type MetricsRecorder interface {
	RecordUpstreamCall(ctx context.Context, upstream string, success bool)
}
