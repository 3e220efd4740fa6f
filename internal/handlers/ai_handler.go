package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

func GetModels(as *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalog := as.ModelCatalog(c.Query("task"), boolQuery(c, "active"))
		c.JSON(http.StatusOK, helpers.SuccessResponse(catalog, "AI models retrieved successfully"))
	}
}

func Generate(as *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		result, err := as.Generate(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, "AI generation completed successfully"))
	}
}
