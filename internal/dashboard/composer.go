// Package dashboard assembles the adapter records into the single view
// model the presentation layer renders.
package dashboard

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/adapter"
	"github.com/citydash/dashboard-app/pkg/telemetry"
)

// WeatherProvider yields a weather record for a place name.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) adapter.WeatherRecord
}

// QuoteProvider yields one random quote.
type QuoteProvider interface {
	RandomQuote(ctx context.Context) adapter.QuoteRecord
}

// CountryProvider yields a country record for a country name.
type CountryProvider interface {
	CountryInfo(ctx context.Context, name string) adapter.CountryRecord
}

// View is the composed page model. City and Country echo the inputs so
// the form can redisplay them as defaults.
type View struct {
	Weather     adapter.WeatherRecord `json:"weather"`
	Quote       adapter.QuoteRecord   `json:"quote"`
	Country     adapter.CountryRecord `json:"country"`
	City        string                `json:"city"`
	CountryName string                `json:"country_name"`
}

// Composer invokes the three adapters for one request and merges their
// records. It does no error handling of its own: every provider
// guarantees a fully-populated record under every failure mode, which is
// what keeps this layer trivial.
type Composer struct {
	weather   WeatherProvider
	quotes    QuoteProvider
	countries CountryProvider
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

func NewComposer(weather WeatherProvider, quotes QuoteProvider, countries CountryProvider, logger *zap.Logger, tele *telemetry.Telemetry) *Composer {
	return &Composer{
		weather:   weather,
		quotes:    quotes,
		countries: countries,
		logger:    logger,
		tele:      tele,
	}
}

// Compose builds the view model for one city/country pair. The three
// adapter calls are independent but run sequentially.
func (c *Composer) Compose(ctx context.Context, city, country string) View {
	ctx, span := c.tele.GetTracer().Start(ctx, "dashboard.Compose")
	defer span.End()

	span.SetAttributes(
		attribute.String("city", city),
		attribute.String("country", country),
	)

	view := View{
		Weather:     c.weather.CurrentWeather(ctx, city),
		Quote:       c.quotes.RandomQuote(ctx),
		Country:     c.countries.CountryInfo(ctx, country),
		City:        city,
		CountryName: country,
	}

	c.logger.Debug("Dashboard composed",
		zap.String("city", city),
		zap.String("country", country),
		zap.String("weather_location", view.Weather.Location))

	return view
}
