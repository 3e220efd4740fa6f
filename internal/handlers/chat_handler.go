package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/services"
)

// SendChat appends the user's message and returns the assistant's reply.
func SendChat(cs *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		var req struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		reply, err := cs.Send(c.Request.Context(), userID, req.Message, accessToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(reply, "Chat reply generated successfully"))
	}
}

func GetChatHistory(cs *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		history, err := cs.History(c.Request.Context(), userID, accessToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"messages": history}, "Chat history retrieved successfully"))
	}
}
