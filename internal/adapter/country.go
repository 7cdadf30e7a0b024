package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/config"
	"github.com/citydash/dashboard-app/pkg/telemetry"
)

// Country fetches country facts from the REST Countries API.
type Country struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics MetricsRecorder
}

func NewCountry(cfg config.UpstreamsConfig, client *http.Client, logger *zap.Logger, tele *telemetry.Telemetry) *Country {
	return &Country{
		baseURL: cfg.CountryBaseURL,
		client:  client,
		logger:  logger,
		tele:    tele,
	}
}

func (c *Country) SetMetricsRecorder(metrics MetricsRecorder) {
	c.metrics = metrics
}

// CountryInfo returns the country record for a name. Partial records are
// never returned: any failure, including an empty upstream result set,
// collapses to the full sentinel here.
func (c *Country) CountryInfo(ctx context.Context, name string) CountryRecord {
	ctx, span := c.tele.GetTracer().Start(ctx, "adapter.CountryInfo")
	defer span.End()

	span.SetAttributes(attribute.String("country", name))

	rec, err := c.fetch(ctx, name)

	if c.metrics != nil {
		c.metrics.RecordUpstreamCall(ctx, "restcountries", err == nil)
	}

	if err != nil {
		c.logger.Warn("Failed to fetch country info", zap.String("country", name), zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false), attribute.String("error", err.Error()))
		return CountryRecord{
			Name:       "Country not found",
			Capital:    "N/A",
			Population: 0,
			Region:     "N/A",
			Subregion:  "N/A",
			Currencies: []string{"N/A"},
			Languages:  []string{"N/A"},
			FlagURL:    "",
		}
	}

	span.SetAttributes(attribute.Bool("success", true))
	return rec
}

// countryResponse models one element of the upstream array. Optional
// fields are pointers or nilable collections so every presence case is
// an explicit branch rather than a probe into untyped JSON.
type countryResponse struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Population *int64   `json:"population"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
	Languages map[string]string `json:"languages"`
	Flags     *struct {
		PNG string `json:"png"`
	} `json:"flags"`
}

func (c *Country) fetch(ctx context.Context, name string) (CountryRecord, error) {
	u, err := url.Parse(fmt.Sprintf("%s/name/%s", c.baseURL, url.PathEscape(name)))
	if err != nil {
		return CountryRecord{}, err
	}

	q := u.Query()
	q.Set("fullText", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return CountryRecord{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return CountryRecord{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CountryRecord{}, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var matches []countryResponse
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return CountryRecord{}, err
	}

	if len(matches) == 0 {
		return CountryRecord{}, errors.New("no country match")
	}

	// Upstream orders matches by its own relevance; the first element is
	// taken as the match with no further disambiguation.
	return normalizeCountry(matches[0])
}

func normalizeCountry(match countryResponse) (CountryRecord, error) {
	if match.Population == nil {
		// Population is part of the upstream contract; its absence means
		// the payload cannot be trusted.
		return CountryRecord{}, errors.New("response missing population")
	}

	capital := "N/A"
	if len(match.Capital) > 0 {
		capital = match.Capital[0]
	}

	region := match.Region
	if region == "" {
		region = "N/A"
	}

	subregion := match.Subregion
	if subregion == "" {
		subregion = "N/A"
	}

	currencies := make([]string, 0, len(match.Currencies))
	for _, code := range sortedKeys(match.Currencies) {
		currencies = append(currencies, fmt.Sprintf("%s (%s)", match.Currencies[code].Name, code))
	}

	languages := make([]string, 0, len(match.Languages))
	for _, code := range sortedStringKeys(match.Languages) {
		languages = append(languages, match.Languages[code])
	}

	flagURL := ""
	if match.Flags != nil {
		flagURL = match.Flags.PNG
	}

	return CountryRecord{
		Name:       match.Name.Common,
		Capital:    capital,
		Population: *match.Population,
		Region:     region,
		Subregion:  subregion,
		Currencies: currencies,
		Languages:  languages,
		FlagURL:    flagURL,
	}, nil
}

// JSON objects decode into maps with no defined order, so the entries
// are emitted sorted by code for stable output.
func sortedKeys(m map[string]struct {
	Name string `json:"name"`
}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
