package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

type TripRepo interface {
	CreateTrip(ctx context.Context, trip *Trip, accessToken string) (*Trip, error)
	ListTripsByProfile(ctx context.Context, profileID string, accessToken string) ([]*Trip, error)
	DeleteTrip(ctx context.Context, tripID, profileID string, accessToken string) error
	LogLocation(ctx context.Context, location *TripLocation, accessToken string) error
	ListTripLocations(ctx context.Context, tripID string, limit int, accessToken string) ([]*TripLocation, error)
}

func (su *SupabaseRepo) client(accessToken string) (*supabase.Client, error) {
	if accessToken == "" {
		return su.supabaseClient, nil
	}
	authClient, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %v", err)
	}
	return authClient, nil
}

func (su *SupabaseRepo) CreateTrip(ctx context.Context, trip *Trip, accessToken string) (*Trip, error) {
	c, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	data, _, err := c.From(TripsTable).
		Insert(trip, false, "", "representation", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert trip: %v", err)
	}

	var created []Trip
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created trip: %v", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("no trip returned after insert")
	}
	return &created[0], nil
}

func (su *SupabaseRepo) ListTripsByProfile(ctx context.Context, profileID string, accessToken string) ([]*Trip, error) {
	c, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	data, _, err := c.From(TripsTable).
		Select("*", "exact", false).
		Eq("profile_id", profileID).
		Order("start_date", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %v", err)
	}

	var trips []*Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trips: %v", err)
	}
	return trips, nil
}

// DeleteTrip removes the trip's locations first, then the trip itself; the
// profile filter keeps users from deleting trips they do not own.
func (su *SupabaseRepo) DeleteTrip(ctx context.Context, tripID, profileID string, accessToken string) error {
	c, err := su.client(accessToken)
	if err != nil {
		return err
	}

	if _, _, err := c.From(TripLocationsTable).
		Delete("", "").
		Eq("trip_id", tripID).
		Execute(); err != nil {
		return fmt.Errorf("failed to delete trip locations: %v", err)
	}

	_, count, err := c.From(TripsTable).
		Delete("", "exact").
		Eq("id", tripID).
		Eq("profile_id", profileID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete trip: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("trip not found")
	}
	return nil
}

func (su *SupabaseRepo) LogLocation(ctx context.Context, location *TripLocation, accessToken string) error {
	c, err := su.client(accessToken)
	if err != nil {
		return err
	}

	if _, _, err := c.From(TripLocationsTable).
		Insert(location, false, "", "", "").
		Execute(); err != nil {
		return fmt.Errorf("failed to insert trip location: %v", err)
	}
	return nil
}

func (su *SupabaseRepo) ListTripLocations(ctx context.Context, tripID string, limit int, accessToken string) ([]*TripLocation, error) {
	c, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	data, _, err := c.From(TripLocationsTable).
		Select("*", "exact", false).
		Eq("trip_id", tripID).
		Order("recorded_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list trip locations: %v", err)
	}

	var locations []*TripLocation
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trip locations: %v", err)
	}
	return locations, nil
}
