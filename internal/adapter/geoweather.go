package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/config"
	"github.com/citydash/dashboard-app/pkg/telemetry"
)

// errCityNotFound marks the distinguished "geocoding returned no match"
// case, which produces its own sentinel instead of the generic one.
var errCityNotFound = errors.New("no geocoding match")

// GeoWeather resolves a place name to coordinates via the geocoding API,
// then fetches current conditions for those coordinates.
type GeoWeather struct {
	geocodingURL string
	weatherURL   string
	client       *http.Client
	logger       *zap.Logger
	tele         *telemetry.Telemetry
	metrics      MetricsRecorder
}

func NewGeoWeather(cfg config.UpstreamsConfig, client *http.Client, logger *zap.Logger, tele *telemetry.Telemetry) *GeoWeather {
	return &GeoWeather{
		geocodingURL: cfg.GeocodingBaseURL,
		weatherURL:   cfg.WeatherBaseURL,
		client:       client,
		logger:       logger,
		tele:         tele,
	}
}

func (g *GeoWeather) SetMetricsRecorder(metrics MetricsRecorder) {
	g.metrics = metrics
}

// CurrentWeather returns the weather record for a place name. It never
// returns an error: the two failure stages collapse to their documented
// sentinels at this single exit point.
func (g *GeoWeather) CurrentWeather(ctx context.Context, city string) WeatherRecord {
	ctx, span := g.tele.GetTracer().Start(ctx, "adapter.CurrentWeather")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	rec, err := g.fetch(ctx, city)

	if g.metrics != nil {
		g.metrics.RecordUpstreamCall(ctx, "open-meteo", err == nil)
	}

	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("success", true))
		return rec
	case errors.Is(err, errCityNotFound):
		g.logger.Warn("No geocoding match for city", zap.String("city", city))
		span.SetAttributes(attribute.Bool("success", false), attribute.String("error", err.Error()))
		return WeatherRecord{
			Location:    "City not found",
			Description: "N/A",
			Temperature: 0.0,
			WindSpeed:   "N/A",
		}
	default:
		g.logger.Warn("Failed to fetch weather", zap.String("city", city), zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false), attribute.String("error", err.Error()))
		return WeatherRecord{
			Location:    "Error loading weather",
			Description: "Unable to fetch data",
			Temperature: 0.0,
			WindSpeed:   "N/A",
		}
	}
}

type geocodingResponse struct {
	Results []struct {
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		CountryCode string  `json:"country_code"`
	} `json:"results"`
}

type currentConditions struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

type forecastResponse struct {
	CurrentWeather *currentConditions `json:"current_weather"`
}

func (g *GeoWeather) fetch(ctx context.Context, city string) (WeatherRecord, error) {
	geo, err := g.geocode(ctx, city)
	if err != nil {
		return WeatherRecord{}, err
	}

	current, err := g.fetchCurrent(ctx, geo.lat, geo.lon)
	if err != nil {
		return WeatherRecord{}, err
	}

	return WeatherRecord{
		Location:    fmt.Sprintf("%s, %s", city, strings.ToUpper(geo.countryCode)),
		Description: DescribeWeatherCode(current.WeatherCode),
		Temperature: current.Temperature,
		WindSpeed:   fmt.Sprintf("%.1f km/h", current.WindSpeed),
	}, nil
}

type geoMatch struct {
	lat         float64
	lon         float64
	countryCode string
}

func (g *GeoWeather) geocode(ctx context.Context, city string) (geoMatch, error) {
	u, err := url.Parse(fmt.Sprintf("%s/search", g.geocodingURL))
	if err != nil {
		return geoMatch{}, err
	}

	q := u.Query()
	q.Set("name", city)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	var decoded geocodingResponse
	if err := g.getJSON(ctx, u.String(), &decoded); err != nil {
		return geoMatch{}, err
	}

	if len(decoded.Results) == 0 {
		return geoMatch{}, errCityNotFound
	}

	first := decoded.Results[0]
	return geoMatch{
		lat:         first.Latitude,
		lon:         first.Longitude,
		countryCode: first.CountryCode,
	}, nil
}

func (g *GeoWeather) fetchCurrent(ctx context.Context, lat, lon float64) (currentConditions, error) {
	u, err := url.Parse(fmt.Sprintf("%s/forecast", g.weatherURL))
	if err != nil {
		return currentConditions{}, err
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("current_weather", "true")
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	var decoded forecastResponse
	if err := g.getJSON(ctx, u.String(), &decoded); err != nil {
		return currentConditions{}, err
	}

	if decoded.CurrentWeather == nil {
		return currentConditions{}, errors.New("response missing current_weather")
	}

	return *decoded.CurrentWeather, nil
}

func (g *GeoWeather) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
