package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

// ModelCallback ingests async model pipeline results.
func ModelCallback(ws *services.WebhookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.ModelCallbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		result, err := ws.ProcessCallback(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, "Model callback processed successfully"))
	}
}
