package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/citydash/dashboard-app/internal/config"
	"github.com/citydash/dashboard-app/internal/dashboard"
	"github.com/citydash/dashboard-app/internal/server/utils"
)

type DashboardHandler struct {
	composer *dashboard.Composer
	logger   *zap.Logger
}

func NewDashboardHandler(composer *dashboard.Composer, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		composer: composer,
		logger:   logger,
	}
}

// GetDashboard renders the composed view model. The composer guarantees a
// fully-populated model under every upstream failure, so this handler has
// no degraded-response branch.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	requestID := utils.GetRequestIDFromGinContext(c)

	reqLogger := h.logger.With(zap.String("request_id", requestID))

	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	defaults := config.GetConfig().Dashboard
	if req.City == "" {
		req.City = defaults.DefaultCity
	}
	if req.Country == "" {
		req.Country = defaults.DefaultCountry
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		reqLogger.Warn("Invalid request parameters", zap.Any("validation_errors", errs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: errs[0].Message,
		})
		return
	}

	reqLogger.Info("Processing dashboard request",
		zap.String("city", req.City),
		zap.String("country", req.Country))

	view := h.composer.Compose(ctx, req.City, req.Country)

	reqLogger.Info("Dashboard request completed",
		zap.String("city", req.City),
		zap.String("weather_location", view.Weather.Location))

	c.JSON(http.StatusOK, view)
}
