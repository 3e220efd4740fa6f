package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

type credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func SignUp(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		result, err := us.SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(result, "User created successfully"))
	}
}

func SignIn(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		authResponse, err := us.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("invalid email or password"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "release"

		if tokenRes, ok := authResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
			c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)
			c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"user": tokenRes.User}, "Signed in successfully"))
			return
		}

		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid token response"))
	}
}

func RefreshToken(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil || refreshToken == "" {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("refresh token is required"))
			return
		}

		authResponse, err := us.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("failed to refresh session"))
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "release"

		if tokenRes, ok := authResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
			c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)
			c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"user": tokenRes.User}, "Session refreshed successfully"))
			return
		}

		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid token response"))
	}
}
