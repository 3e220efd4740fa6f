package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SafetyGradient is the categorical bucket loosely derived from a
// destination's numeric safety score. The score is the source of truth; the
// gradient is set by the safety-assessment callback, not recomputed locally.
type SafetyGradient string

const (
	SafetyHigh   SafetyGradient = "high"
	SafetyMedium SafetyGradient = "medium"
	SafetyLow    SafetyGradient = "low"
)

func (g SafetyGradient) IsValid() bool {
	switch g {
	case SafetyHigh, SafetyMedium, SafetyLow:
		return true
	}
	return false
}

type GeoCoords struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"min=-180,max=180"`
}

type Destination struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name" validate:"required"`
	Description    string             `bson:"description" json:"description"`
	GeoCoords      GeoCoords          `bson:"geoCoords" json:"geoCoords" validate:"required"`
	Region         string             `bson:"region" json:"region" validate:"required"`
	State          string             `bson:"state" json:"state" validate:"required"`
	SafetyScore    float64            `bson:"safetyScore" json:"safetyScore"`
	SafetyGradient SafetyGradient     `bson:"safetyGradient" json:"safetyGradient"`
	Facilities     []string           `bson:"facilities" json:"facilities"`
	VerifiedHashes []string           `bson:"verifiedHashes" json:"verifiedHashes"`
	Images         []string           `bson:"images" json:"images"`
	Tags           []string           `bson:"tags" json:"tags"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DestinationFilter narrows list/search queries. Zero values mean "no
// constraint".
type DestinationFilter struct {
	Region         string
	SafetyGradient SafetyGradient
	Search         string
}

// MapBounds is a lat/lng viewport rectangle.
type MapBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}
