package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

func UpdatePreferences(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID      string                  `json:"userId"`
			Preferences *models.UserPreferences `json:"preferences"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		result, err := us.UpdatePreferences(c.Request.Context(), req.UserID, req.Preferences)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, "Preferences updated successfully"))
	}
}

func GetPreferences(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		prefs, err := us.GetPreferences(c.Request.Context(), c.Query("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(prefs, "Preferences retrieved successfully"))
	}
}
