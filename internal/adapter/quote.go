package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/config"
	"github.com/citydash/dashboard-app/pkg/telemetry"
)

// quoteTags filters the random endpoint to motivational content.
const quoteTags = "inspirational|motivational|wisdom|success"

const (
	fallbackQuoteContent = "The only way to do great work is to love what you do."
	fallbackQuoteAuthor  = "Steve Jobs"
)

// Quote fetches one random quote from the quotable API.
type Quote struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics MetricsRecorder
}

func NewQuote(cfg config.UpstreamsConfig, client *http.Client, logger *zap.Logger, tele *telemetry.Telemetry) *Quote {
	return &Quote{
		baseURL: cfg.QuoteBaseURL,
		client:  client,
		logger:  logger,
		tele:    tele,
	}
}

func (q *Quote) SetMetricsRecorder(metrics MetricsRecorder) {
	q.metrics = metrics
}

// RandomQuote returns one random quote. On any failure it returns the
// fixed fallback quote so the dashboard always has content.
func (q *Quote) RandomQuote(ctx context.Context) QuoteRecord {
	ctx, span := q.tele.GetTracer().Start(ctx, "adapter.RandomQuote")
	defer span.End()

	rec, err := q.fetch(ctx)

	if q.metrics != nil {
		q.metrics.RecordUpstreamCall(ctx, "quotable", err == nil)
	}

	if err != nil {
		q.logger.Warn("Failed to fetch quote", zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false), attribute.String("error", err.Error()))
		return QuoteRecord{
			Content: fallbackQuoteContent,
			Author:  fallbackQuoteAuthor,
		}
	}

	span.SetAttributes(attribute.Bool("success", true))
	return rec
}

type quoteResponse struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func (q *Quote) fetch(ctx context.Context) (QuoteRecord, error) {
	u, err := url.Parse(fmt.Sprintf("%s/random", q.baseURL))
	if err != nil {
		return QuoteRecord{}, err
	}

	query := u.Query()
	query.Set("tags", quoteTags)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return QuoteRecord{}, err
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return QuoteRecord{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return QuoteRecord{}, fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return QuoteRecord{}, err
	}

	if decoded.Content == "" || decoded.Author == "" {
		return QuoteRecord{}, errors.New("response missing content or author")
	}

	return QuoteRecord{
		Content: decoded.Content,
		Author:  decoded.Author,
	}, nil
}
