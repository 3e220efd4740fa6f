package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

func ListDestinations(ds *services.DestinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.DestinationFilter{
			Region:         c.Query("region"),
			SafetyGradient: models.SafetyGradient(c.Query("safetyLevel")),
			Search:         c.Query("search"),
		}
		offset := intQuery(c, "offset", 0)
		limit := intQuery(c, "limit", 20)

		page, err := ds.ListDestinations(c.Request.Context(), filter, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(page, "Destinations retrieved successfully"))
	}
}

func GetDestination(ds *services.DestinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		destination, err := ds.GetDestination(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if destination == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("Destination not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(destination, "Destination retrieved successfully"))
	}
}

func CreateDestination(ds *services.DestinationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var destination models.Destination
		if err := c.ShouldBindJSON(&destination); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		if destination.Name == "" || destination.Region == "" || destination.State == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("Name, geoCoords, region, and state are required"))
			return
		}

		created, err := ds.CreateDestination(c.Request.Context(), &destination)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{
			"destinationId": created.ID.Hex(),
			"destination":   created,
		}, "Destination created successfully"))
	}
}
