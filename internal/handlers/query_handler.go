package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

// ProcessQuery routes an incoming query through the typed processing
// branches.
func ProcessQuery(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.ProcessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		// Required-field checks live in the service so the 400 message has a
		// single source of truth.
		response, err := qs.Process(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(response, "Query processed successfully"))
	}
}

// GetHistory returns the caller's processed queries, newest first.
func GetHistory(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("UserId is required"))
			return
		}
		offset := intQuery(c, "offset", 0)
		limit := intQuery(c, "limit", 50)

		page, err := qs.History(c.Request.Context(), userID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(page, "Query history retrieved successfully"))
	}
}
