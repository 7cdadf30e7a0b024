package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Dashboard   DashboardConfig `mapstructure:"dashboard"`
	Upstreams   UpstreamsConfig `mapstructure:"upstreams"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// DashboardConfig holds the form defaults used when a request carries no
// city or country parameter.
type DashboardConfig struct {
	DefaultCity    string `mapstructure:"default_city"`
	DefaultCountry string `mapstructure:"default_country"`
}

// UpstreamsConfig carries the base URLs of the third-party APIs the
// adapters call. Timeout is shared by the single HTTP client, in seconds.
type UpstreamsConfig struct {
	GeocodingBaseURL string `mapstructure:"geocoding_base_url"`
	WeatherBaseURL   string `mapstructure:"weather_base_url"`
	QuoteBaseURL     string `mapstructure:"quote_base_url"`
	CountryBaseURL   string `mapstructure:"country_base_url"`
	Timeout          int    `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Dashboard: DashboardConfig{
			DefaultCity:    "London",
			DefaultCountry: "United Kingdom",
		},
		Upstreams: UpstreamsConfig{
			GeocodingBaseURL: "https://geocoding-api.open-meteo.com/v1",
			WeatherBaseURL:   "https://api.open-meteo.com/v1",
			QuoteBaseURL:     "https://api.quotable.io",
			CountryBaseURL:   "https://restcountries.com/v3.1",
			Timeout:          10,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
