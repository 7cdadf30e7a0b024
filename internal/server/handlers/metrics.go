package handlers

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/server/middlewares"
)

// upstreamMetrics counts adapter calls against the third-party APIs.
type upstreamMetrics struct {
	mu     sync.RWMutex
	calls  map[string]int64
	errors map[string]int64
}

type MetricsHandler struct {
	logger      *zap.Logger
	upstream    *upstreamMetrics
	httpMetrics *middlewares.HTTPMetrics
}

func NewMetricsHandler(logger *zap.Logger, httpMetrics *middlewares.HTTPMetrics) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		upstream: &upstreamMetrics{
			calls:  make(map[string]int64),
			errors: make(map[string]int64),
		},
		httpMetrics: httpMetrics,
	}
}

// RecordUpstreamCall implements the adapters' metrics recorder.
func (h *MetricsHandler) RecordUpstreamCall(ctx context.Context, upstream string, success bool) {
	h.upstream.mu.Lock()
	h.upstream.calls[upstream]++
	if !success {
		h.upstream.errors[upstream]++
	}
	h.upstream.mu.Unlock()
}

// ServeMetrics exposes the counters in Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.httpMetrics != nil {
		totals, avgDuration, active := h.httpMetrics.Snapshot()

		b.WriteString("# HELP http_requests_total Total number of HTTP requests\n")
		b.WriteString("# TYPE http_requests_total counter\n")
		for key, count := range totals {
			b.WriteString("http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(count, 10) + "\n")
		}

		b.WriteString("\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n")
		b.WriteString("# TYPE http_request_duration_seconds_avg gauge\n")
		b.WriteString("http_request_duration_seconds_avg " + strconv.FormatFloat(avgDuration, 'f', 6, 64) + "\n")

		b.WriteString("\n# HELP http_active_requests Number of active HTTP requests\n")
		b.WriteString("# TYPE http_active_requests gauge\n")
		b.WriteString("http_active_requests " + strconv.FormatInt(active, 10) + "\n")
	}

	h.upstream.mu.RLock()
	b.WriteString("\n# HELP upstream_calls_total Total upstream API calls\n")
	b.WriteString("# TYPE upstream_calls_total counter\n")
	for upstream, count := range h.upstream.calls {
		b.WriteString("upstream_calls_total{upstream=\"" + upstream + "\"} " + strconv.FormatInt(count, 10) + "\n")
	}

	b.WriteString("\n# HELP upstream_errors_total Total upstream API failures\n")
	b.WriteString("# TYPE upstream_errors_total counter\n")
	for upstream, count := range h.upstream.errors {
		b.WriteString("upstream_errors_total{upstream=\"" + upstream + "\"} " + strconv.FormatInt(count, 10) + "\n")
	}
	h.upstream.mu.RUnlock()

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, b.String())
}
