package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

func WalletOperation(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.WalletRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		if req.Action == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("Action is required"))
			return
		}

		result, err := us.Wallet(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, fmt.Sprintf("Wallet %s completed successfully", req.Action)))
	}
}

func GetWalletInfo(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := us.WalletInfo(c.Request.Context(), c.Query("walletAddress"), c.Query("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(result, "Wallet information retrieved successfully"))
	}
}
