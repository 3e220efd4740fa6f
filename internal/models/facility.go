package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FacilityType string

const (
	FacilityHospital    FacilityType = "hospital"
	FacilityATM         FacilityType = "atm"
	FacilityRestaurant  FacilityType = "restaurant"
	FacilityHotel       FacilityType = "hotel"
	FacilityTransport   FacilityType = "transport"
	FacilityWifi        FacilityType = "wifi"
	FacilityPolice      FacilityType = "police"
	FacilityTouristInfo FacilityType = "tourist_info"
	FacilityFuelStation FacilityType = "fuel_station"
	FacilityPharmacy    FacilityType = "pharmacy"
)

func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityHospital, FacilityATM, FacilityRestaurant, FacilityHotel,
		FacilityTransport, FacilityWifi, FacilityPolice, FacilityTouristInfo,
		FacilityFuelStation, FacilityPharmacy:
		return true
	}
	return false
}

type FacilityStatus string

const (
	FacilityActive      FacilityStatus = "active"
	FacilityInactive    FacilityStatus = "inactive"
	FacilityMaintenance FacilityStatus = "maintenance"
)

type Contact struct {
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`
}

type Facility struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type           FacilityType       `bson:"type" json:"type" validate:"required"`
	Name           string             `bson:"name" json:"name" validate:"required"`
	DestinationID  string             `bson:"destinationId" json:"destinationId" validate:"required"`
	Verified       bool               `bson:"verified" json:"verified"`
	ProofHash      string             `bson:"proofHash,omitempty" json:"proofHash,omitempty"`
	VerifiedHashes []string           `bson:"verifiedHashes" json:"verifiedHashes"`
	Status         FacilityStatus     `bson:"status" json:"status"`
	Contact        *Contact           `bson:"contact,omitempty" json:"contact,omitempty"`
	Rating         float64            `bson:"rating" json:"rating"`
	Reviews        []Review           `bson:"reviews" json:"reviews"`
	Coordinates    GeoCoords          `bson:"coordinates" json:"coordinates" validate:"required"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
	LastVerified   *time.Time         `bson:"lastVerified,omitempty" json:"lastVerified,omitempty"`
}

type FacilityFilter struct {
	DestinationID string
	Type          FacilityType
	Verified      *bool
	Search        string
}

// AverageRating is the arithmetic mean of the review ratings rounded to one
// decimal place. Zero reviews yield a zero rating. The $avg/$round stage in
// AppendReview computes the same value inside Mongo and must stay in step.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
