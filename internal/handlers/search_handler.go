package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

// Search ranks destinations and facilities against a free-text query.
func Search(ss *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		response, err := ss.Search(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(response, "Semantic search completed successfully"))
	}
}
