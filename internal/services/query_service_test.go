package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

func newQueryService(engine *fakeEngine, history *fakeHistoryRepo) (*QueryService, *fakeDestinationRepo, *fakeFacilityRepo) {
	destinations := &fakeDestinationRepo{}
	facilities := &fakeFacilityRepo{}
	return NewQueryService(destinations, facilities, history, engine), destinations, facilities
}

func TestProcessRequiresQueryAndUser(t *testing.T) {
	qs, _, _ := newQueryService(&fakeEngine{}, &fakeHistoryRepo{})

	_, err := qs.Process(context.Background(), &ProcessRequest{Query: "hello"})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}

func TestProcessGeneralAppendsOneHistoryRow(t *testing.T) {
	engine := &fakeEngine{}
	history := &fakeHistoryRepo{}
	qs, _, _ := newQueryService(engine, history)

	resp, err := qs.Process(context.Background(), &ProcessRequest{
		Query:  "tell me about kerala",
		UserID: "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "general", resp["type"])
	assert.Equal(t, "tell me about kerala", resp["processed_query"])
	assert.Contains(t, engine.calls, "summarize")

	require.Len(t, history.records, 1)
	assert.Equal(t, "user-1", history.records[0].UserID)
	assert.Equal(t, "multiple", history.records[0].ModelID)
}

func TestProcessUnknownTypeFallsThroughToGeneral(t *testing.T) {
	qs, _, _ := newQueryService(&fakeEngine{}, &fakeHistoryRepo{})

	resp, err := qs.Process(context.Background(), &ProcessRequest{
		Query:  "anything",
		UserID: "user-1",
		Type:   QueryType("bogus"),
	})
	require.NoError(t, err)
	assert.Equal(t, "general", resp["type"])
}

func TestProcessRecommendationUsesTopThreeLabels(t *testing.T) {
	engine := &fakeEngine{
		classification: &inference.Classification{
			Sequence: "q",
			Labels:   []string{"adventure", "budget", "family", "luxury", "safety"},
			Scores:   []float64{0.5, 0.2, 0.1, 0.1, 0.1},
		},
	}
	history := &fakeHistoryRepo{}
	qs, destinations, _ := newQueryService(engine, history)

	prefs := &models.UserPreferences{
		Regions:     []string{"north", "south"},
		SafetyLevel: models.SafetyHigh,
	}
	resp, err := qs.Process(context.Background(), &ProcessRequest{
		Query:       "cheap adventure trip",
		UserID:      "user-1",
		Type:        QueryRecommendation,
		Preferences: prefs,
	})
	require.NoError(t, err)

	assert.Equal(t, "recommendation", resp["type"])
	assert.Equal(t, []string{"adventure", "budget", "family"}, destinations.recommendLabels)
	require.Len(t, history.records, 1)
}

func TestProcessFacilitySubmission(t *testing.T) {
	history := &fakeHistoryRepo{}
	qs, _, facilities := newQueryService(&fakeEngine{}, history)

	resp, err := qs.Process(context.Background(), &ProcessRequest{
		Query:  "new hospital in panaji",
		UserID: "user-1",
		Type:   QueryFacilitySubmission,
		Facility: &models.Facility{
			Type:          models.FacilityHospital,
			Name:          "Panaji General",
			DestinationID: "dest-1",
			Verified:      true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "pending_verification", resp["status"])
	require.NotNil(t, facilities.created)
	assert.False(t, facilities.created.Verified, "submitted facilities start unverified")
	assert.Equal(t, models.FacilityActive, facilities.created.Status)
}

func TestProcessFacilitySubmissionRequiresPayload(t *testing.T) {
	qs, _, _ := newQueryService(&fakeEngine{}, &fakeHistoryRepo{})

	_, err := qs.Process(context.Background(), &ProcessRequest{
		Query:  "submit",
		UserID: "user-1",
		Type:   QueryFacilitySubmission,
	})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}

func TestHistoryPagination(t *testing.T) {
	history := &fakeHistoryRepo{records: []*models.QueryRecord{{UserID: "user-1"}}}
	qs, _, _ := newQueryService(&fakeEngine{}, history)

	page, err := qs.History(context.Background(), "user-1", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 50, page.Limit, "limit defaults to 50")
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasMore)

	_, err = qs.History(context.Background(), "", 0, 10)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}
