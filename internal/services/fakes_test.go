package services

import (
	"context"
	"encoding/json"

	"github.com/tripmitra/api/internal/chain"
	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEngine returns canned payloads and records which calls ran.
type fakeEngine struct {
	classification *inference.Classification
	calls          []string
}

func (f *fakeEngine) record(call string) json.RawMessage {
	f.calls = append(f.calls, call)
	return json.RawMessage(`{"ok":true}`)
}

func (f *fakeEngine) GenerateText(ctx context.Context, prompt, modelID string) (json.RawMessage, error) {
	return f.record("generate"), nil
}

func (f *fakeEngine) Embeddings(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	f.calls = append(f.calls, "embeddings")
	return json.RawMessage(`[0.1,0.2,0.3]`), nil
}

func (f *fakeEngine) ClassifyText(ctx context.Context, text string, labels []string, modelID string) (*inference.Classification, error) {
	f.calls = append(f.calls, "classify")
	if f.classification != nil {
		return f.classification, nil
	}
	return &inference.Classification{
		Sequence: text,
		Labels:   labels,
		Scores:   make([]float64, len(labels)),
	}, nil
}

func (f *fakeEngine) Sentiment(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	return f.record("sentiment"), nil
}

func (f *fakeEngine) AnswerQuestion(ctx context.Context, question, contextText, modelID string) (json.RawMessage, error) {
	return f.record("answer"), nil
}

func (f *fakeEngine) Summarize(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	return f.record("summarize"), nil
}

func (f *fakeEngine) Translate(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	return f.record("translate"), nil
}

func (f *fakeEngine) ExtractEntities(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	return f.record("entities"), nil
}

// The repo fakes embed their interface so only the methods a test exercises
// need implementations; calling anything else panics the test.

type fakeHistoryRepo struct {
	models.QueryHistoryRepo
	records []*models.QueryRecord
}

func (f *fakeHistoryRepo) AppendQueryRecord(ctx context.Context, record *models.QueryRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeHistoryRepo) ListQueryHistory(ctx context.Context, userID string, offset, limit int) ([]*models.QueryRecord, int, error) {
	return f.records, len(f.records), nil
}

type fakeDestinationRepo struct {
	models.DestinationRepo
	destinations     []*models.Destination
	recommendLabels  []string
	assessedID       string
	assessedScore    float64
	assessedGradient models.SafetyGradient
}

func (f *fakeDestinationRepo) RecommendDestinations(ctx context.Context, labels []string, region string, gradient models.SafetyGradient, limit int) ([]*models.Destination, error) {
	f.recommendLabels = labels
	return f.destinations, nil
}

func (f *fakeDestinationRepo) SearchDestinations(ctx context.Context, query string, filter models.DestinationFilter, limit int) ([]*models.Destination, error) {
	return f.destinations, nil
}

func (f *fakeDestinationRepo) MapDestinations(ctx context.Context, filter models.DestinationFilter, bounds *models.MapBounds) ([]*models.Destination, error) {
	return f.destinations, nil
}

func (f *fakeDestinationRepo) UpdateSafetyAssessment(ctx context.Context, id string, score float64, gradient models.SafetyGradient) error {
	f.assessedID = id
	f.assessedScore = score
	f.assessedGradient = gradient
	return nil
}

type fakeFacilityRepo struct {
	models.FacilityRepo
	facilities       []*models.Facility
	created          *models.Facility
	proofHashes      []string
	verifiedID       string
	verifiedFlag     bool
	analyzedReviewID string
	analyzedLabel    string
}

func (f *fakeFacilityRepo) CreateFacility(ctx context.Context, facility *models.Facility) (*models.Facility, error) {
	if facility.ID.IsZero() {
		facility.ID = primitive.NewObjectID()
	}
	f.created = facility
	return facility, nil
}

func (f *fakeFacilityRepo) ListFacilities(ctx context.Context, filter models.FacilityFilter, limit int) ([]*models.Facility, error) {
	return f.facilities, nil
}

func (f *fakeFacilityRepo) SearchFacilities(ctx context.Context, query string, filter models.FacilityFilter, limit int) ([]*models.Facility, error) {
	return f.facilities, nil
}

func (f *fakeFacilityRepo) AddProofHash(ctx context.Context, id string, hash string) error {
	f.proofHashes = append(f.proofHashes, hash)
	return nil
}

func (f *fakeFacilityRepo) UpdateVerification(ctx context.Context, id string, verified bool, score float64, proofHash string) error {
	f.verifiedID = id
	f.verifiedFlag = verified
	return nil
}

func (f *fakeFacilityRepo) RecordReviewAnalysis(ctx context.Context, reviewID string, score float64, label string) error {
	f.analyzedReviewID = reviewID
	f.analyzedLabel = label
	return nil
}

func (f *fakeFacilityRepo) AppendReview(ctx context.Context, facilityID string, review models.Review) (*models.Facility, error) {
	if len(f.facilities) == 0 {
		return nil, nil
	}
	facility := f.facilities[0]
	facility.Reviews = append(facility.Reviews, review)
	facility.Rating = models.AverageRating(facility.Reviews)
	return facility, nil
}

type fakeProofRepo struct {
	proofs   map[string]*models.BlockchainProof
	verified map[string]bool
}

func newFakeProofRepo() *fakeProofRepo {
	return &fakeProofRepo{
		proofs:   map[string]*models.BlockchainProof{},
		verified: map[string]bool{},
	}
}

func (f *fakeProofRepo) CreateProof(ctx context.Context, proof *models.BlockchainProof) (*models.BlockchainProof, error) {
	if proof.ID.IsZero() {
		proof.ID = primitive.NewObjectID()
	}
	f.proofs[proof.Hash] = proof
	return proof, nil
}

func (f *fakeProofRepo) GetProofByHash(ctx context.Context, hash string) (*models.BlockchainProof, error) {
	return f.proofs[hash], nil
}

func (f *fakeProofRepo) ListProofs(ctx context.Context, filter models.ProofFilter) ([]*models.BlockchainProof, error) {
	out := []*models.BlockchainProof{}
	for _, p := range f.proofs {
		if filter.FacilityID != "" && p.FacilityID != filter.FacilityID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProofRepo) MarkProofVerified(ctx context.Context, hash string, verified bool) error {
	f.verified[hash] = verified
	if p, ok := f.proofs[hash]; ok {
		p.Verified = verified
	}
	return nil
}

type fakeVerifier struct {
	receipt *chain.Receipt
}

func (f *fakeVerifier) TransactionReceipt(ctx context.Context, txHash string) (*chain.Receipt, error) {
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &chain.Receipt{Found: false, TxHash: txHash}, nil
}

func (f *fakeVerifier) VerifyTransaction(ctx context.Context, txHash string) (bool, error) {
	receipt, err := f.TransactionReceipt(ctx, txHash)
	if err != nil {
		return false, err
	}
	return receipt.Confirmed(), nil
}
