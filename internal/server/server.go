package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/adapter"
	"github.com/citydash/dashboard-app/internal/config"
	"github.com/citydash/dashboard-app/internal/dashboard"
	"github.com/citydash/dashboard-app/internal/server/handlers"
	"github.com/citydash/dashboard-app/internal/server/middlewares"
	"github.com/citydash/dashboard-app/pkg/telemetry"
)

type Server struct {
	engine   *gin.Engine
	server   *http.Server
	composer *dashboard.Composer
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

var (
	instance *Server
	once     sync.Once
)

func NewServer(logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	once.Do(func() {
		cfg := config.GetConfig()

		// One HTTP client shared by all adapters; adapters hold no
		// per-request state, so concurrent reuse is safe.
		client := &http.Client{
			Timeout: time.Duration(cfg.Upstreams.Timeout) * time.Second,
		}

		weather := adapter.NewGeoWeather(cfg.Upstreams, client, logger, tele)
		quotes := adapter.NewQuote(cfg.Upstreams, client, logger, tele)
		countries := adapter.NewCountry(cfg.Upstreams, client, logger, tele)

		composer := dashboard.NewComposer(weather, quotes, countries, logger, tele)

		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()

		metricsMiddleware := middlewares.NewMetricsMiddleware()
		metricsHandler := handlers.NewMetricsHandler(logger, metricsMiddleware.GetHTTPMetrics())

		weather.SetMetricsRecorder(metricsHandler)
		quotes.SetMetricsRecorder(metricsHandler)
		countries.SetMetricsRecorder(metricsHandler)

		engine.Use(middlewares.RequestIDMiddleware())
		engine.Use(middlewares.LoggingMiddleware(logger))
		engine.Use(middlewares.RecoveryMiddleware(logger, true))
		engine.Use(middlewares.TelemetryMiddleware(logger, tele))
		engine.Use(metricsMiddleware.Handler())

		instance = &Server{
			engine:   engine,
			composer: composer,
			logger:   logger,
			tele:     tele,
		}

		instance.setupRoutes(metricsHandler)
	})

	return instance
}

func (s *Server) setupRoutes(metricsHandler *handlers.MetricsHandler) {
	// Business endpoints
	s.engine.GET("/dashboard", handlers.NewDashboardHandler(s.composer, s.logger).GetDashboard)

	// Health endpoints (Kubernetes friendly)
	healthHandler := handlers.NewHealthHandler(s.logger)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/health/live", healthHandler.Liveness)
	s.engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", metricsHandler.ServeMetrics)
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
