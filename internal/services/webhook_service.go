package services

import (
	"context"
	"time"

	"github.com/tripmitra/api/internal/models"
)

// ModelCallbackResult is the payload posted back by async model pipelines.
type ModelCallbackResult struct {
	Type           string                `json:"type"`
	Verified       bool                  `json:"verified"`
	Score          float64               `json:"score"`
	ProofHash      string                `json:"proofHash"`
	DestinationID  string                `json:"destinationId"`
	SafetyScore    float64               `json:"safetyScore"`
	SafetyGradient models.SafetyGradient `json:"safetyGradient"`
	ReviewID       string                `json:"reviewId"`
	Sentiment      *SentimentResult      `json:"sentiment"`
}

type SentimentResult struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

type ModelCallbackRequest struct {
	ModelID    string               `json:"modelId"`
	FacilityID string               `json:"facilityId"`
	Result     *ModelCallbackResult `json:"result"`
	TxHash     string               `json:"txHash"`
	ProofType  models.ProofType     `json:"proofType"`
}

type WebhookService struct {
	facilityRepo    models.FacilityRepo
	destinationRepo models.DestinationRepo
	proofRepo       models.ProofRepo
}

func NewWebhookService(facilityRepo models.FacilityRepo, destinationRepo models.DestinationRepo, proofRepo models.ProofRepo) *WebhookService {
	return &WebhookService{
		facilityRepo:    facilityRepo,
		destinationRepo: destinationRepo,
		proofRepo:       proofRepo,
	}
}

// ProcessCallback applies an async model result. Unknown result types are
// acknowledged without effect, matching the source pipeline.
func (ws *WebhookService) ProcessCallback(ctx context.Context, req *ModelCallbackRequest) (map[string]interface{}, error) {
	if req.ModelID == "" || req.FacilityID == "" || req.Result == nil {
		return nil, BadRequest("ModelId, facilityId, and result are required")
	}

	switch req.Result.Type {
	case "facility_verification":
		if err := ws.facilityRepo.UpdateVerification(ctx, req.FacilityID, req.Result.Verified, req.Result.Score, req.Result.ProofHash); err != nil {
			return nil, err
		}
		if req.TxHash != "" && req.Result.ProofHash != "" {
			proofType := req.ProofType
			if proofType == "" {
				proofType = models.ProofVerification
			}
			proof := &models.BlockchainProof{
				Hash:       req.Result.ProofHash,
				FacilityID: req.FacilityID,
				ProofType:  proofType,
				Timestamp:  time.Now().UTC(),
				TxHash:     req.TxHash,
				Verified:   req.Result.Verified,
			}
			if _, err := ws.proofRepo.CreateProof(ctx, proof); err != nil {
				return nil, err
			}
		}

	case "safety_assessment":
		if err := ws.destinationRepo.UpdateSafetyAssessment(ctx, req.Result.DestinationID, req.Result.SafetyScore, req.Result.SafetyGradient); err != nil {
			return nil, err
		}

	case "review_analysis":
		if req.Result.Sentiment != nil {
			if err := ws.facilityRepo.RecordReviewAnalysis(ctx, req.Result.ReviewID, req.Result.Sentiment.Score, req.Result.Sentiment.Label); err != nil {
				return nil, err
			}
		}
	}

	return map[string]interface{}{
		"modelId":    req.ModelID,
		"facilityId": req.FacilityID,
		"processed":  true,
		"result":     req.Result,
	}, nil
}
