// Package handlers adapts HTTP requests to the service layer.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

// respondError maps service failures to the response taxonomy: explicit
// request errors keep their status and message, everything else is a generic
// 500 with the cause attached to the context for the logger.
func respondError(c *gin.Context, err error) {
	var reqErr *services.RequestError
	if errors.As(err, &reqErr) {
		c.JSON(reqErr.Status, helpers.ErrorResponse(reqErr.Message))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("Internal server error"))
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func boolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value := raw == "true"
	return &value
}

// authContext pulls the authenticated user id and raw access token placed by
// the auth middleware.
func authContext(c *gin.Context) (userID, accessToken string, ok bool) {
	claims, exists := c.Get("user")
	if !exists {
		return "", "", false
	}
	enhanced, isClaims := claims.(*helpers.EnhancedClaims)
	if !isClaims || enhanced.UserID == "" {
		return "", "", false
	}
	token, _ := c.Get("access_token")
	accessToken, _ = token.(string)
	return enhanced.UserID, accessToken, true
}
