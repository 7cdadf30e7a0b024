package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/config"
)

var (
	cityNotFoundSentinel = WeatherRecord{
		Location:    "City not found",
		Description: "N/A",
		Temperature: 0.0,
		WindSpeed:   "N/A",
	}
	weatherErrorSentinel = WeatherRecord{
		Location:    "Error loading weather",
		Description: "Unable to fetch data",
		Temperature: 0.0,
		WindSpeed:   "N/A",
	}
)

func newTestGeoWeather(geocodingURL, weatherURL string) *GeoWeather {
	cfg := config.UpstreamsConfig{
		GeocodingBaseURL: geocodingURL,
		WeatherBaseURL:   weatherURL,
	}
	return NewGeoWeather(cfg, &http.Client{}, zap.NewNop(), nil)
}

func TestCurrentWeatherSuccess(t *testing.T) {
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("name"); got != "London" {
			t.Errorf("expected name=London, got %s", got)
		}
		if got := q.Get("count"); got != "1" {
			t.Errorf("expected count=1, got %s", got)
		}
		if got := q.Get("language"); got != "en" {
			t.Errorf("expected language=en, got %s", got)
		}
		if got := q.Get("format"); got != "json" {
			t.Errorf("expected format=json, got %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"latitude":51.50853,"longitude":-0.12574,"country_code":"gb"}]}`))
	}))
	defer geoSrv.Close()

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("current_weather"); got != "true" {
			t.Errorf("expected current_weather=true, got %s", got)
		}
		if got := q.Get("timezone"); got != "auto" {
			t.Errorf("expected timezone=auto, got %s", got)
		}
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Error("expected latitude and longitude to be set")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_weather":{"temperature":15.2,"windspeed":12.53,"weathercode":2}}`))
	}))
	defer weatherSrv.Close()

	got := newTestGeoWeather(geoSrv.URL, weatherSrv.URL).CurrentWeather(context.Background(), "London")

	want := WeatherRecord{
		Location:    "London, GB",
		Description: "Partly cloudy",
		Temperature: 15.2,
		WindSpeed:   "12.5 km/h",
	}
	if got != want {
		t.Errorf("CurrentWeather() = %+v, want %+v", got, want)
	}
}

func TestCurrentWeatherCityNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty results array", `{"results":[]}`},
		{"missing results field", `{"generationtime_ms":0.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer geoSrv.Close()

			got := newTestGeoWeather(geoSrv.URL, geoSrv.URL).CurrentWeather(context.Background(), "Atlantis")
			if got != cityNotFoundSentinel {
				t.Errorf("CurrentWeather() = %+v, want %+v", got, cityNotFoundSentinel)
			}
		})
	}
}

func TestCurrentWeatherForecastFailure(t *testing.T) {
	// Geocoding succeeds, so a weather failure must produce the generic
	// error sentinel, not the "City not found" one.
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"latitude":51.5,"longitude":-0.12,"country_code":"gb"}]}`))
	}))
	defer geoSrv.Close()

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer weatherSrv.Close()

	got := newTestGeoWeather(geoSrv.URL, weatherSrv.URL).CurrentWeather(context.Background(), "London")
	if got != weatherErrorSentinel {
		t.Errorf("CurrentWeather() = %+v, want %+v", got, weatherErrorSentinel)
	}
}

func TestCurrentWeatherMissingCurrentWeatherField(t *testing.T) {
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"latitude":51.5,"longitude":-0.12,"country_code":"gb"}]}`))
	}))
	defer geoSrv.Close()

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":51.5}`))
	}))
	defer weatherSrv.Close()

	got := newTestGeoWeather(geoSrv.URL, weatherSrv.URL).CurrentWeather(context.Background(), "London")
	if got != weatherErrorSentinel {
		t.Errorf("CurrentWeather() = %+v, want %+v", got, weatherErrorSentinel)
	}
}

func TestCurrentWeatherMalformedGeocodingJSON(t *testing.T) {
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer geoSrv.Close()

	got := newTestGeoWeather(geoSrv.URL, geoSrv.URL).CurrentWeather(context.Background(), "London")
	if got != weatherErrorSentinel {
		t.Errorf("CurrentWeather() = %+v, want %+v", got, weatherErrorSentinel)
	}
}

func TestCurrentWeatherUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	got := newTestGeoWeather(srv.URL, srv.URL).CurrentWeather(context.Background(), "London")
	if got != weatherErrorSentinel {
		t.Errorf("CurrentWeather() = %+v, want %+v", got, weatherErrorSentinel)
	}
}

func TestCurrentWeatherUppercasesCountryCode(t *testing.T) {
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"latitude":48.85,"longitude":2.35,"country_code":"fr"}]}`))
	}))
	defer geoSrv.Close()

	weatherSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current_weather":{"temperature":20.0,"windspeed":5.0,"weathercode":0}}`))
	}))
	defer weatherSrv.Close()

	got := newTestGeoWeather(geoSrv.URL, weatherSrv.URL).CurrentWeather(context.Background(), "Paris")
	if got.Location != "Paris, FR" {
		t.Errorf("expected location %q, got %q", "Paris, FR", got.Location)
	}
}
