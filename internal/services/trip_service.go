package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tripmitra/api/internal/models"
)

const tripDateLayout = "2006-01-02"

type TripService struct {
	tripRepo models.TripRepo
}

func NewTripService(tripRepo models.TripRepo) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// CreateTrip validates the date range and stores the trip for the
// authenticated profile.
func (ts *TripService) CreateTrip(ctx context.Context, trip *models.Trip, accessToken string) (*models.Trip, error) {
	if trip.TripName == "" || trip.Destination == "" || trip.StartDate == "" || trip.EndDate == "" {
		return nil, BadRequest("trip_name, destination, start_date, and end_date are required")
	}
	if trip.ProfileID == "" {
		return nil, BadRequest("profile is required")
	}

	start, err := time.Parse(tripDateLayout, trip.StartDate)
	if err != nil {
		return nil, BadRequest(fmt.Sprintf("invalid start_date: %s", trip.StartDate))
	}
	end, err := time.Parse(tripDateLayout, trip.EndDate)
	if err != nil {
		return nil, BadRequest(fmt.Sprintf("invalid end_date: %s", trip.EndDate))
	}
	if end.Before(start) {
		return nil, BadRequest("end_date must not be before start_date")
	}

	return ts.tripRepo.CreateTrip(ctx, trip, accessToken)
}

// ListTrips returns the profile's trips, latest start date first.
func (ts *TripService) ListTrips(ctx context.Context, profileID, accessToken string) ([]*models.Trip, error) {
	if profileID == "" {
		return nil, BadRequest("profile is required")
	}
	trips, err := ts.tripRepo.ListTripsByProfile(ctx, profileID, accessToken)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []*models.Trip{}
	}
	return trips, nil
}

func (ts *TripService) DeleteTrip(ctx context.Context, tripID, profileID, accessToken string) error {
	if tripID == "" {
		return BadRequest("trip id is required")
	}
	if profileID == "" {
		return BadRequest("profile is required")
	}
	if err := ts.tripRepo.DeleteTrip(ctx, tripID, profileID, accessToken); err != nil {
		if err.Error() == "trip not found" {
			return NotFound("Trip not found")
		}
		return err
	}
	return nil
}

// LogLocation appends one tracked point to a trip.
func (ts *TripService) LogLocation(ctx context.Context, location *models.TripLocation, accessToken string) error {
	if location.TripID == "" {
		return BadRequest("trip_id is required")
	}
	if location.Latitude < -90 || location.Latitude > 90 || location.Longitude < -180 || location.Longitude > 180 {
		return BadRequest("latitude/longitude out of range")
	}
	if location.RecordedAt.IsZero() {
		location.RecordedAt = time.Now().UTC()
	}
	return ts.tripRepo.LogLocation(ctx, location, accessToken)
}

func (ts *TripService) ListLocations(ctx context.Context, tripID string, limit int, accessToken string) ([]*models.TripLocation, error) {
	if tripID == "" {
		return nil, BadRequest("trip id is required")
	}
	if limit <= 0 {
		limit = 50
	}
	locations, err := ts.tripRepo.ListTripLocations(ctx, tripID, limit, accessToken)
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []*models.TripLocation{}
	}
	return locations, nil
}
