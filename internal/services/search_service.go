package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

// searchLabels extends the recommendation set with the two search-only
// intents.
var searchLabels = []string{"safety", "adventure", "cultural", "family", "budget", "luxury", "food", "accommodation"}

const (
	SearchDestinations = "destinations"
	SearchFacilities   = "facilities"
	SearchAll          = "all"
)

type SearchFilters struct {
	Region       string                `json:"region,omitempty"`
	SafetyLevel  models.SafetyGradient `json:"safetyLevel,omitempty"`
	FacilityType models.FacilityType   `json:"facilityType,omitempty"`
	Verified     *bool                 `json:"verified,omitempty"`
}

type SearchRequest struct {
	Query   string         `json:"query"`
	Type    string         `json:"type"`
	Limit   int            `json:"limit"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

// RankedResult is one scored search hit. Exactly one of Destination and
// Facility is set, matching Kind.
type RankedResult struct {
	Kind           string              `json:"type"`
	ID             string              `json:"id"`
	RelevanceScore float64             `json:"relevanceScore"`
	Destination    *models.Destination `json:"destination,omitempty"`
	Facility       *models.Facility    `json:"facility,omitempty"`
}

type SearchResponse struct {
	Query           string                    `json:"query"`
	Results         []RankedResult            `json:"results"`
	QueryEmbeddings json.RawMessage           `json:"queryEmbeddings"`
	Classification  *inference.Classification `json:"classification"`
	TotalResults    int                       `json:"totalResults"`
}

type SearchService struct {
	destinationRepo models.DestinationRepo
	facilityRepo    models.FacilityRepo
	engine          inference.Engine
}

func NewSearchService(destinationRepo models.DestinationRepo, facilityRepo models.FacilityRepo, engine inference.Engine) *SearchService {
	return &SearchService{
		destinationRepo: destinationRepo,
		facilityRepo:    facilityRepo,
		engine:          engine,
	}
}

// Search text-matches the requested collections, scores every candidate
// against the query and its classification, and returns the top hits sorted
// by score descending with id ascending as the tie-break.
func (ss *SearchService) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req.Query == "" {
		return nil, BadRequest("Query is required")
	}

	searchType := req.Type
	if searchType == "" {
		searchType = SearchDestinations
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	embeddings, err := ss.engine.Embeddings(ctx, req.Query, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch embeddings: %v", err)
	}

	var results []RankedResult

	if searchType == SearchDestinations || searchType == SearchAll {
		filter := models.DestinationFilter{}
		if req.Filters != nil {
			filter.Region = req.Filters.Region
			filter.SafetyGradient = req.Filters.SafetyLevel
		}
		destinations, err := ss.destinationRepo.SearchDestinations(ctx, req.Query, filter, limit)
		if err != nil {
			return nil, err
		}
		for _, d := range destinations {
			results = append(results, RankedResult{
				Kind:        "destination",
				ID:          d.ID.Hex(),
				Destination: d,
			})
		}
	}

	if searchType == SearchFacilities || searchType == SearchAll {
		filter := models.FacilityFilter{}
		if req.Filters != nil {
			filter.Type = req.Filters.FacilityType
			filter.Verified = req.Filters.Verified
		}
		facilities, err := ss.facilityRepo.SearchFacilities(ctx, req.Query, filter, limit)
		if err != nil {
			return nil, err
		}
		for _, f := range facilities {
			results = append(results, RankedResult{
				Kind:     "facility",
				ID:       f.ID.Hex(),
				Facility: f,
			})
		}
	}

	classification, err := ss.engine.ClassifyText(ctx, req.Query, searchLabels, "")
	if err != nil {
		return nil, fmt.Errorf("failed to classify query: %v", err)
	}

	for i := range results {
		r := &results[i]
		if r.Destination != nil {
			r.RelevanceScore = RelevanceScore(req.Query, classification.Labels,
				r.Destination.Name, r.Destination.Description, r.Destination.Tags,
				r.Destination.SafetyScore, false)
		} else {
			r.RelevanceScore = RelevanceScore(req.Query, classification.Labels,
				r.Facility.Name, "", nil, 0, r.Facility.Verified)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []RankedResult{}
	}

	return &SearchResponse{
		Query:           req.Query,
		Results:         results,
		QueryEmbeddings: embeddings,
		Classification:  classification,
		TotalResults:    len(results),
	}, nil
}

// RelevanceScore is the additive ranking heuristic: +10 for a case-insensitive
// query substring in name+description+tags, +5 per tag whose lower-cased form
// equals a predicted label verbatim, plus the raw safety score, +3 when
// verified. Labels are compared as produced, so a mixed-case label never
// matches.
func RelevanceScore(query string, labels []string, name, description string, tags []string, safetyScore float64, verified bool) float64 {
	score := 0.0

	text := strings.ToLower(name + " " + description + " " + strings.Join(tags, " "))
	if strings.Contains(text, strings.ToLower(query)) {
		score += 10
	}

	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, label := range labels {
			if lowered == label {
				score += 5
				break
			}
		}
	}

	score += safetyScore
	if verified {
		score += 3
	}
	return score
}
