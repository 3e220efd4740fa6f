package models

import "time"

// Trip rows live in the Supabase trips table, keyed to the authenticated
// profile.
type Trip struct {
	ID          string    `json:"id,omitempty"`
	ProfileID   string    `json:"profile_id"`
	TripName    string    `json:"trip_name"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"` // YYYY-MM-DD
	EndDate     string    `json:"end_date"`   // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type TripLocation struct {
	ID             string    `json:"id,omitempty"`
	TripID         string    `json:"trip_id"`
	DeviceID       string    `json:"device_id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Speed          *float64  `json:"speed,omitempty"`
	LocationName   string    `json:"location_name"`
	SafetyResponse int       `json:"safety_response"`
	RecordedAt     time.Time `json:"recorded_at"`
}
