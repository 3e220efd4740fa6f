package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

// parseBounds reads a "north,south,east,west" viewport string.
func parseBounds(raw string) (*models.MapBounds, bool) {
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, false
	}
	values := make([]float64, 4)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, false
		}
		values[i] = value
	}
	return &models.MapBounds{North: values[0], South: values[1], East: values[2], West: values[3]}, true
}

func GetMap(ms *services.MapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bounds, ok := parseBounds(c.Query("bounds"))
		if !ok {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("bounds must be north,south,east,west"))
			return
		}
		filter := models.DestinationFilter{
			Region:         c.Query("region"),
			SafetyGradient: models.SafetyGradient(c.Query("safetyLevel")),
		}

		mapData, err := ms.MapView(c.Request.Context(), filter, bounds, models.FacilityType(c.Query("facilityType")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(mapData, "Map data retrieved successfully"))
	}
}
