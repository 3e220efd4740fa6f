package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

// QueryType selects the processing branch for an incoming query.
type QueryType string

const (
	QueryRecommendation     QueryType = "recommendation"
	QueryFacilitySubmission QueryType = "facility_submission"
	QuerySafety             QueryType = "safety_query"
	QueryGeneral            QueryType = "general"
)

// recommendationLabels is the fixed candidate set for intent classification.
var recommendationLabels = []string{"safety", "adventure", "cultural", "family", "budget", "luxury"}

const historyModelID = "multiple"

type ProcessRequest struct {
	Query       string                  `json:"query"`
	UserID      string                  `json:"userId"`
	Type        QueryType               `json:"type"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
	Location    *models.GeoCoords       `json:"location,omitempty"`
	Facility    *models.Facility        `json:"facility,omitempty"`
}

type QueryService struct {
	destinationRepo models.DestinationRepo
	facilityRepo    models.FacilityRepo
	historyRepo     models.QueryHistoryRepo
	engine          inference.Engine
}

func NewQueryService(destinationRepo models.DestinationRepo, facilityRepo models.FacilityRepo, historyRepo models.QueryHistoryRepo, engine inference.Engine) *QueryService {
	return &QueryService{
		destinationRepo: destinationRepo,
		facilityRepo:    facilityRepo,
		historyRepo:     historyRepo,
		engine:          engine,
	}
}

// Process dispatches on the query type, then appends exactly one history row
// for the call. Unknown types fall through to the general branch.
func (qs *QueryService) Process(ctx context.Context, req *ProcessRequest) (map[string]interface{}, error) {
	if req.Query == "" || req.UserID == "" {
		return nil, BadRequest("Query and userId are required")
	}

	var (
		response map[string]interface{}
		err      error
	)
	switch req.Type {
	case QueryRecommendation:
		response, err = qs.recommend(ctx, req)
	case QueryFacilitySubmission:
		response, err = qs.submitFacility(ctx, req)
	case QuerySafety:
		response, err = qs.safetyQuery(ctx, req)
	default:
		response, err = qs.general(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	serialized, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response: %v", err)
	}
	record := &models.QueryRecord{
		UserID:    req.UserID,
		Query:     req.Query,
		Response:  string(serialized),
		ModelID:   historyModelID,
		Timestamp: time.Now().UTC(),
	}
	if err := qs.historyRepo.AppendQueryRecord(ctx, record); err != nil {
		return nil, err
	}
	return response, nil
}

type HistoryPage struct {
	Queries []*models.QueryRecord `json:"queries"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
	HasMore bool                  `json:"hasMore"`
}

// History returns the user's processed queries, newest first.
func (qs *QueryService) History(ctx context.Context, userID string, offset, limit int) (*HistoryPage, error) {
	if userID == "" {
		return nil, BadRequest("UserId is required")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := qs.historyRepo.ListQueryHistory(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.QueryRecord{}
	}

	return &HistoryPage{
		Queries: records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

func (qs *QueryService) recommend(ctx context.Context, req *ProcessRequest) (map[string]interface{}, error) {
	classification, err := qs.engine.ClassifyText(ctx, req.Query, recommendationLabels, "")
	if err != nil {
		return nil, fmt.Errorf("failed to classify query: %v", err)
	}

	embeddings, err := qs.engine.Embeddings(ctx, req.Query, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch embeddings: %v", err)
	}

	topLabels := classification.Labels
	if len(topLabels) > 3 {
		topLabels = topLabels[:3]
	}

	var (
		region   string
		gradient models.SafetyGradient
	)
	if req.Preferences != nil {
		if len(req.Preferences.Regions) > 0 {
			region = req.Preferences.Regions[0]
		}
		gradient = req.Preferences.SafetyLevel
	}

	destinations, err := qs.destinationRepo.RecommendDestinations(ctx, topLabels, region, gradient, 10)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"type":             string(QueryRecommendation),
		"recommendations":  destinations,
		"reasoning":        classification,
		"query_embeddings": embeddings,
	}, nil
}

func (qs *QueryService) submitFacility(ctx context.Context, req *ProcessRequest) (map[string]interface{}, error) {
	if req.Facility == nil {
		return nil, BadRequest("Facility payload is required")
	}

	facility := *req.Facility
	facility.Verified = false
	if facility.Status == "" {
		facility.Status = models.FacilityActive
	}
	now := time.Now().UTC()
	facility.CreatedAt = now
	facility.UpdatedAt = now

	created, err := qs.facilityRepo.CreateFacility(ctx, &facility)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"type":       string(QueryFacilitySubmission),
		"facilityId": created.ID.Hex(),
		"status":     "pending_verification",
	}, nil
}

func (qs *QueryService) safetyQuery(ctx context.Context, req *ProcessRequest) (map[string]interface{}, error) {
	sentiment, err := qs.engine.Sentiment(ctx, req.Query, "")
	if err != nil {
		return nil, fmt.Errorf("failed to analyze sentiment: %v", err)
	}

	entities, err := qs.engine.ExtractEntities(ctx, req.Query, "")
	if err != nil {
		return nil, fmt.Errorf("failed to extract entities: %v", err)
	}

	return map[string]interface{}{
		"type":                   string(QuerySafety),
		"sentiment_analysis":     sentiment,
		"extracted_entities":     entities,
		"safety_recommendations": []string{},
	}, nil
}

func (qs *QueryService) general(ctx context.Context, req *ProcessRequest) (map[string]interface{}, error) {
	summary, err := qs.engine.Summarize(ctx, req.Query, "")
	if err != nil {
		return nil, fmt.Errorf("failed to summarize query: %v", err)
	}

	return map[string]interface{}{
		"type":            string(QueryGeneral),
		"summary":         summary,
		"processed_query": req.Query,
	}, nil
}
