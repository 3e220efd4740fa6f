package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/tripmitra/api/internal/helpers"
	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

// destinationTagLabels is the candidate set used to auto-tag new
// destinations from their description.
var destinationTagLabels = []string{"adventure", "cultural", "family", "budget", "luxury", "scenic", "historical", "beach", "mountain"}

type DestinationService struct {
	destinationRepo models.DestinationRepo
	engine          inference.Engine
	cld             *cloudinary.Cloudinary
}

func NewDestinationService(destinationRepo models.DestinationRepo, engine inference.Engine, cld *cloudinary.Cloudinary) *DestinationService {
	return &DestinationService{
		destinationRepo: destinationRepo,
		engine:          engine,
		cld:             cld,
	}
}

type DestinationPage struct {
	Destinations []*models.Destination `json:"destinations"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	HasMore      bool                  `json:"hasMore"`
}

func (ds *DestinationService) ListDestinations(ctx context.Context, filter models.DestinationFilter, offset, limit int) (*DestinationPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	destinations, total, err := ds.destinationRepo.ListDestinations(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	if destinations == nil {
		destinations = []*models.Destination{}
	}

	return &DestinationPage{
		Destinations: destinations,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
		HasMore:      offset+limit < total,
	}, nil
}

func (ds *DestinationService) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	return ds.destinationRepo.GetDestinationByID(ctx, id)
}

// CreateDestination stores a new destination with the default safety
// assessment. The description is zero-shot tagged and the top three labels
// merged into the submitted tags; image references are uploaded and replaced
// with hosted URLs.
func (ds *DestinationService) CreateDestination(ctx context.Context, destination *models.Destination) (*models.Destination, error) {
	if err := models.Validate.Struct(destination); err != nil {
		return nil, BadRequest(err.Error())
	}

	if destination.Description != "" {
		aiTags, err := ds.engine.ClassifyText(ctx, destination.Description, destinationTagLabels, "")
		if err != nil {
			return nil, fmt.Errorf("failed to tag description: %v", err)
		}
		labels := aiTags.Labels
		if len(labels) > 3 {
			labels = labels[:3]
		}
		destination.Tags = append(destination.Tags, labels...)
	}

	if len(destination.Images) > 0 && ds.cld != nil {
		urls, err := helpers.UploadImages(ctx, ds.cld, destination.Images, helpers.DestinationFolder)
		if err != nil {
			return nil, err
		}
		destination.Images = urls
	}

	destination.SafetyScore = 5.0
	destination.SafetyGradient = models.SafetyMedium
	if destination.Facilities == nil {
		destination.Facilities = []string{}
	}
	if destination.VerifiedHashes == nil {
		destination.VerifiedHashes = []string{}
	}
	if destination.Images == nil {
		destination.Images = []string{}
	}
	if destination.Tags == nil {
		destination.Tags = []string{}
	}
	now := time.Now().UTC()
	destination.CreatedAt = now
	destination.UpdatedAt = now

	return ds.destinationRepo.CreateDestination(ctx, destination)
}

// AssessSafety is the only path that mutates a destination's safety score
// and gradient; it is driven by the model callback webhook.
func (ds *DestinationService) AssessSafety(ctx context.Context, destinationID string, score float64, gradient models.SafetyGradient) error {
	if destinationID == "" {
		return BadRequest("DestinationId is required")
	}
	if !gradient.IsValid() {
		return BadRequest(fmt.Sprintf("invalid safety gradient: %s", gradient))
	}
	return ds.destinationRepo.UpdateSafetyAssessment(ctx, destinationID, score, gradient)
}
