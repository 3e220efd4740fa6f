package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

// GetAnalytics assembles the requested analytics sections.
func GetAnalytics(as *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		timeframe := c.DefaultQuery("timeframe", "30d")
		reportType := c.DefaultQuery("type", services.AnalyticsOverview)

		report, err := as.Report(c.Request.Context(), timeframe, reportType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(report, "Analytics retrieved successfully"))
	}
}
