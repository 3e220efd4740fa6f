package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

type FacilityService struct {
	facilityRepo models.FacilityRepo
	engine       inference.Engine
}

func NewFacilityService(facilityRepo models.FacilityRepo, engine inference.Engine) *FacilityService {
	return &FacilityService{
		facilityRepo: facilityRepo,
		engine:       engine,
	}
}

func (fs *FacilityService) ListFacilities(ctx context.Context, filter models.FacilityFilter, limit int) ([]*models.Facility, error) {
	if limit <= 0 {
		limit = 50
	}
	facilities, err := fs.facilityRepo.ListFacilities(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	if facilities == nil {
		facilities = []*models.Facility{}
	}
	return facilities, nil
}

func (fs *FacilityService) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	return fs.facilityRepo.GetFacilityByID(ctx, id)
}

// CreateFacility stores an unverified facility with rating 0.
func (fs *FacilityService) CreateFacility(ctx context.Context, facility *models.Facility) (*models.Facility, error) {
	if err := models.Validate.Struct(facility); err != nil {
		return nil, BadRequest(err.Error())
	}
	if !facility.Type.IsValid() {
		return nil, BadRequest(fmt.Sprintf("invalid facility type: %s", facility.Type))
	}

	facility.Verified = false
	facility.Rating = 0
	if facility.Status == "" {
		facility.Status = models.FacilityActive
	}
	if facility.Reviews == nil {
		facility.Reviews = []models.Review{}
	}
	if facility.VerifiedHashes == nil {
		facility.VerifiedHashes = []string{}
	}
	now := time.Now().UTC()
	facility.CreatedAt = now
	facility.UpdatedAt = now

	return fs.facilityRepo.CreateFacility(ctx, facility)
}

// ReviewResult is the add-review response payload.
type ReviewResult struct {
	Review            models.Review   `json:"review"`
	SentimentAnalysis json.RawMessage `json:"sentimentAnalysis"`
	NewAverageRating  float64         `json:"newAverageRating"`
}

// AddReview appends the review to the facility and recomputes the average
// rating atomically. A nil result means the facility does not exist.
func (fs *FacilityService) AddReview(ctx context.Context, facilityID string, review models.Review) (*ReviewResult, error) {
	if facilityID == "" {
		return nil, BadRequest("FacilityId is required")
	}
	if err := review.Validate(); err != nil {
		return nil, BadRequest(err.Error())
	}

	var sentiment json.RawMessage
	if review.Comment != "" {
		analyzed, err := fs.engine.Sentiment(ctx, review.Comment, "")
		if err != nil {
			return nil, fmt.Errorf("failed to analyze review sentiment: %v", err)
		}
		sentiment = analyzed
	}

	if review.ID == "" {
		review.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	review.Verified = false
	review.CreatedAt = time.Now().UTC()

	facility, err := fs.facilityRepo.AppendReview(ctx, facilityID, review)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, nil
	}

	return &ReviewResult{
		Review:            review,
		SentimentAnalysis: sentiment,
		NewAverageRating:  facility.Rating,
	}, nil
}

// ListReviews flattens reviews for a facility or across a destination's
// facilities, newest first, truncated to limit.
func (fs *FacilityService) ListReviews(ctx context.Context, facilityID, destinationID string, limit int) ([]models.Review, error) {
	if facilityID == "" && destinationID == "" {
		return nil, BadRequest("FacilityId or destinationId is required")
	}
	if limit <= 0 {
		limit = 20
	}

	if facilityID != "" {
		facility, err := fs.facilityRepo.GetFacilityByID(ctx, facilityID)
		if err != nil {
			return nil, err
		}
		if facility == nil || facility.Reviews == nil {
			return []models.Review{}, nil
		}
		return facility.Reviews, nil
	}

	facilities, err := fs.facilityRepo.ListFacilities(ctx, models.FacilityFilter{DestinationID: destinationID}, 0)
	if err != nil {
		return nil, err
	}

	reviews := []models.Review{}
	for _, facility := range facilities {
		reviews = append(reviews, facility.Reviews...)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}
