package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

func ListFacilities(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.FacilityFilter{
			DestinationID: c.Query("destinationId"),
			Type:          models.FacilityType(c.Query("type")),
			Verified:      boolQuery(c, "verified"),
		}
		limit := intQuery(c, "limit", 50)

		facilities, err := fs.ListFacilities(c.Request.Context(), filter, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"facilities": facilities}, "Facilities retrieved successfully"))
	}
}

func CreateFacility(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var facility models.Facility
		if err := c.ShouldBindJSON(&facility); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		if facility.Type == "" || facility.Name == "" || facility.DestinationID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("Type, name, destinationId, and coordinates are required"))
			return
		}

		created, err := fs.CreateFacility(c.Request.Context(), &facility)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{
			"facilityId": created.ID.Hex(),
			"facility":   created,
		}, "Facility created successfully"))
	}
}
