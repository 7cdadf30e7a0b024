package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/adapter"
	"github.com/citydash/dashboard-app/internal/config"
	"github.com/citydash/dashboard-app/internal/dashboard"
)

type recordingWeather struct {
	lastCity string
}

func (r *recordingWeather) CurrentWeather(ctx context.Context, city string) adapter.WeatherRecord {
	r.lastCity = city
	return adapter.WeatherRecord{Location: city + ", GB", Description: "Clear sky", Temperature: 18.0, WindSpeed: "4.0 km/h"}
}

type fixedQuote struct{}

func (fixedQuote) RandomQuote(ctx context.Context) adapter.QuoteRecord {
	return adapter.QuoteRecord{Content: "Make it work, make it right, make it fast.", Author: "Kent Beck"}
}

type recordingCountry struct {
	lastCountry string
}

func (r *recordingCountry) CountryInfo(ctx context.Context, name string) adapter.CountryRecord {
	r.lastCountry = name
	return adapter.CountryRecord{Name: name, Capital: "London", Population: 67215293, Region: "Europe", Subregion: "Northern Europe", Currencies: []string{"British pound (GBP)"}, Languages: []string{"English"}}
}

func newTestRouter(t *testing.T) (*gin.Engine, *recordingWeather, *recordingCountry) {
	t.Helper()

	config.SetConfig(config.NewDefaultConfig())

	weather := &recordingWeather{}
	country := &recordingCountry{}
	composer := dashboard.NewComposer(weather, fixedQuote{}, country, zap.NewNop(), nil)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/dashboard", NewDashboardHandler(composer, zap.NewNop()).GetDashboard)

	return engine, weather, country
}

func TestGetDashboard(t *testing.T) {
	engine, weather, country := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?city=Paris&country=France", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view dashboard.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	assert.Equal(t, "Paris", view.City)
	assert.Equal(t, "France", view.CountryName)
	assert.Equal(t, "Paris, GB", view.Weather.Location)
	assert.Equal(t, "Paris", weather.lastCity)
	assert.Equal(t, "France", country.lastCountry)
}

func TestGetDashboardAppliesDefaults(t *testing.T) {
	engine, weather, country := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "London", weather.lastCity)
	assert.Equal(t, "United Kingdom", country.lastCountry)
}

func TestGetDashboardRejectsInvalidPlaceName(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?city=%3Cscript%3E", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PARAMS", resp.Code)
}
