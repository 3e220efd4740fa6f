package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

func ListReviews(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		facilityID := c.Query("facilityId")
		destinationID := c.Query("destinationId")
		limit := intQuery(c, "limit", 20)

		reviews, err := fs.ListReviews(c.Request.Context(), facilityID, destinationID, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"reviews": reviews}, "Reviews retrieved successfully"))
	}
}

func CreateReview(fs *services.FacilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FacilityID string `json:"facilityId"`
			UserID     string `json:"userId"`
			Rating     int    `json:"rating"`
			Comment    string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		if req.FacilityID == "" || req.UserID == "" || req.Rating == 0 {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("FacilityId, userId, and rating are required"))
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("Rating must be between 1 and 5"))
			return
		}

		result, err := fs.AddReview(c.Request.Context(), req.FacilityID, models.Review{
			UserID:  req.UserID,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if result == nil {
			c.JSON(http.StatusNotFound, helpers.ErrorResponse("Facility not found"))
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, "Review added successfully"))
	}
}
