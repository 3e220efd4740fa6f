package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/models"
)

func newWebhookService() (*WebhookService, *fakeFacilityRepo, *fakeDestinationRepo, *fakeProofRepo) {
	facilities := &fakeFacilityRepo{}
	destinations := &fakeDestinationRepo{}
	proofs := newFakeProofRepo()
	return NewWebhookService(facilities, destinations, proofs), facilities, destinations, proofs
}

func TestProcessCallbackRequiresFields(t *testing.T) {
	ws, _, _, _ := newWebhookService()

	_, err := ws.ProcessCallback(context.Background(), &ModelCallbackRequest{ModelID: "m1"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}

func TestProcessCallbackFacilityVerification(t *testing.T) {
	ws, facilities, _, proofs := newWebhookService()

	result, err := ws.ProcessCallback(context.Background(), &ModelCallbackRequest{
		ModelID:    "verifier-v2",
		FacilityID: "fac-1",
		TxHash:     "0xtx",
		Result: &ModelCallbackResult{
			Type:      "facility_verification",
			Verified:  true,
			Score:     0.93,
			ProofHash: "0xproof",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, true, result["processed"])
	assert.Equal(t, "fac-1", facilities.verifiedID)
	assert.True(t, facilities.verifiedFlag)

	// a tx hash plus proof hash records the proof with the default type
	proof := proofs.proofs["0xproof"]
	require.NotNil(t, proof)
	assert.Equal(t, models.ProofVerification, proof.ProofType)
	assert.Equal(t, "0xtx", proof.TxHash)
}

func TestProcessCallbackSafetyAssessment(t *testing.T) {
	ws, _, destinations, _ := newWebhookService()

	_, err := ws.ProcessCallback(context.Background(), &ModelCallbackRequest{
		ModelID:    "safety-v1",
		FacilityID: "fac-1",
		Result: &ModelCallbackResult{
			Type:           "safety_assessment",
			DestinationID:  "dest-1",
			SafetyScore:    8.2,
			SafetyGradient: models.SafetyHigh,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "dest-1", destinations.assessedID)
	assert.Equal(t, 8.2, destinations.assessedScore)
	assert.Equal(t, models.SafetyHigh, destinations.assessedGradient)
}

func TestProcessCallbackReviewAnalysis(t *testing.T) {
	ws, facilities, _, _ := newWebhookService()

	_, err := ws.ProcessCallback(context.Background(), &ModelCallbackRequest{
		ModelID:    "sentiment-v1",
		FacilityID: "fac-1",
		Result: &ModelCallbackResult{
			Type:      "review_analysis",
			ReviewID:  "rev-1",
			Sentiment: &SentimentResult{Score: 0.7, Label: "positive"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "rev-1", facilities.analyzedReviewID)
	assert.Equal(t, "positive", facilities.analyzedLabel)
}

func TestProcessCallbackUnknownTypeAcknowledged(t *testing.T) {
	ws, _, _, _ := newWebhookService()

	result, err := ws.ProcessCallback(context.Background(), &ModelCallbackRequest{
		ModelID:    "mystery",
		FacilityID: "fac-1",
		Result:     &ModelCallbackResult{Type: "telemetry"},
	})
	require.NoError(t, err)
	assert.Equal(t, true, result["processed"])
}
