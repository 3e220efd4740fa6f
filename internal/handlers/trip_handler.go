package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/models"
	"github.com/tripmitra/api/internal/services"
)

func CreateTrip(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		var trip models.Trip
		if err := c.ShouldBindJSON(&trip); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		trip.ProfileID = userID

		created, err := ts.CreateTrip(c.Request.Context(), &trip, accessToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "Trip created successfully"))
	}
}

func ListTrips(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		trips, err := ts.ListTrips(c.Request.Context(), userID, accessToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"trips": trips}, "Trips retrieved successfully"))
	}
}

func DeleteTrip(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		if err := ts.DeleteTrip(c.Request.Context(), c.Param("id"), userID, accessToken); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Trip deleted successfully"))
	}
}

func LogTripLocation(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		var location models.TripLocation
		if err := c.ShouldBindJSON(&location); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}
		location.TripID = c.Param("id")

		if err := ts.LogLocation(c.Request.Context(), &location, accessToken); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(location, "Trip location logged successfully"))
	}
}

func ListTripLocations(ts *services.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, accessToken, ok := authContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		locations, err := ts.ListLocations(c.Request.Context(), c.Param("id"), intQuery(c, "limit", 50), accessToken)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"locations": locations}, "Trip locations retrieved successfully"))
	}
}
