package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tripmitra/api/internal/chain"
	"github.com/tripmitra/api/internal/models"
)

// BlockchainAction selects the proof operation.
type BlockchainAction string

const (
	ActionCreateProof BlockchainAction = "create_proof"
	ActionVerifyProof BlockchainAction = "verify_proof"
	ActionGetProofs   BlockchainAction = "get_proofs"
	ActionBatchVerify BlockchainAction = "batch_verify"
)

type BlockchainRequest struct {
	Action        BlockchainAction `json:"action"`
	FacilityID    string           `json:"facilityId"`
	ProofType     models.ProofType `json:"proofType"`
	Data          json.RawMessage  `json:"data"`
	ProofHash     string           `json:"proofHash"`
	ProofHashes   []string         `json:"proofHashes"`
	WalletAddress string           `json:"walletAddress"`
}

type ProofService struct {
	proofRepo    models.ProofRepo
	facilityRepo models.FacilityRepo
	verifier     chain.Verifier
}

func NewProofService(proofRepo models.ProofRepo, facilityRepo models.FacilityRepo, verifier chain.Verifier) *ProofService {
	return &ProofService{
		proofRepo:    proofRepo,
		facilityRepo: facilityRepo,
		verifier:     verifier,
	}
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Execute dispatches one blockchain action.
func (ps *ProofService) Execute(ctx context.Context, req *BlockchainRequest) (map[string]interface{}, error) {
	switch req.Action {
	case ActionCreateProof:
		return ps.createProof(ctx, req)
	case ActionVerifyProof:
		return ps.verifyProof(ctx, req)
	case ActionGetProofs:
		return ps.getProofs(ctx, req)
	case ActionBatchVerify:
		return ps.batchVerify(ctx, req)
	default:
		return nil, BadRequest(fmt.Sprintf("Unsupported action: %s", req.Action))
	}
}

// createProof writes the proof, then pushes its hash onto the facility. The
// two writes are independent; a failure in between leaves the proof without
// a facility back-reference.
func (ps *ProofService) createProof(ctx context.Context, req *BlockchainRequest) (map[string]interface{}, error) {
	if req.FacilityID == "" || req.ProofType == "" || len(req.Data) == 0 {
		return nil, BadRequest("FacilityId, proofType, and data are required")
	}
	if !req.ProofType.IsValid() {
		return nil, BadRequest(fmt.Sprintf("invalid proof type: %s", req.ProofType))
	}

	proofHash := "0x" + strconv.FormatInt(time.Now().UnixMilli(), 16) + randomHex(4)
	txHash := "0x" + randomHex(32)

	proof := &models.BlockchainProof{
		Hash:       proofHash,
		FacilityID: req.FacilityID,
		ProofType:  req.ProofType,
		Timestamp:  time.Now().UTC(),
		TxHash:     txHash,
		Verified:   false,
	}
	created, err := ps.proofRepo.CreateProof(ctx, proof)
	if err != nil {
		return nil, err
	}

	if err := ps.facilityRepo.AddProofHash(ctx, req.FacilityID, proofHash); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"action":    string(ActionCreateProof),
		"proofId":   created.ID.Hex(),
		"proofHash": proofHash,
		"txHash":    txHash,
		"status":    "pending",
	}, nil
}

func (ps *ProofService) verifyProof(ctx context.Context, req *BlockchainRequest) (map[string]interface{}, error) {
	if req.ProofHash == "" {
		return nil, BadRequest("ProofHash is required")
	}

	proof, err := ps.proofRepo.GetProofByHash(ctx, req.ProofHash)
	if err != nil {
		return nil, err
	}
	if proof == nil {
		return nil, NotFound("Proof not found")
	}

	receipt, err := ps.verifier.TransactionReceipt(ctx, proof.TxHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify transaction: %v", err)
	}
	verified := receipt.Confirmed()

	if err := ps.proofRepo.MarkProofVerified(ctx, req.ProofHash, verified); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"action":    string(ActionVerifyProof),
		"proofHash": req.ProofHash,
		"verified":  verified,
		"receipt":   receipt,
	}, nil
}

func (ps *ProofService) getProofs(ctx context.Context, req *BlockchainRequest) (map[string]interface{}, error) {
	if req.FacilityID == "" {
		return nil, BadRequest("FacilityId is required")
	}

	proofs, err := ps.proofRepo.ListProofs(ctx, models.ProofFilter{FacilityID: req.FacilityID})
	if err != nil {
		return nil, err
	}
	if proofs == nil {
		proofs = []*models.BlockchainProof{}
	}

	verifiedCount := 0
	for _, p := range proofs {
		if p.Verified {
			verifiedCount++
		}
	}

	return map[string]interface{}{
		"action":         string(ActionGetProofs),
		"facilityId":     req.FacilityID,
		"proofs":         proofs,
		"totalProofs":    len(proofs),
		"verifiedProofs": verifiedCount,
	}, nil
}

type BatchVerifyResult struct {
	Hash     string `json:"hash"`
	Verified bool   `json:"verified"`
	Found    bool   `json:"found"`
}

func (ps *ProofService) batchVerify(ctx context.Context, req *BlockchainRequest) (map[string]interface{}, error) {
	if len(req.ProofHashes) == 0 {
		return nil, BadRequest("ProofHashes array is required")
	}

	results := make([]BatchVerifyResult, 0, len(req.ProofHashes))
	successful := 0
	for _, hash := range req.ProofHashes {
		proof, err := ps.proofRepo.GetProofByHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		if proof == nil {
			results = append(results, BatchVerifyResult{Hash: hash})
			continue
		}

		verified, err := ps.verifier.VerifyTransaction(ctx, proof.TxHash)
		if err != nil {
			return nil, fmt.Errorf("failed to verify transaction: %v", err)
		}
		if err := ps.proofRepo.MarkProofVerified(ctx, hash, verified); err != nil {
			return nil, err
		}
		if verified {
			successful++
		}
		results = append(results, BatchVerifyResult{Hash: hash, Verified: verified, Found: true})
	}

	return map[string]interface{}{
		"action":                  string(ActionBatchVerify),
		"results":                 results,
		"totalProcessed":          len(results),
		"successfulVerifications": successful,
	}, nil
}

type ProofStatistics struct {
	TotalProofs    int            `json:"totalProofs"`
	VerifiedProofs int            `json:"verifiedProofs"`
	PendingProofs  int            `json:"pendingProofs"`
	ProofTypes     map[string]int `json:"proofTypes"`
}

// ListProofs returns the filtered proofs plus aggregate statistics over the
// returned set.
func (ps *ProofService) ListProofs(ctx context.Context, filter models.ProofFilter) ([]*models.BlockchainProof, *ProofStatistics, error) {
	proofs, err := ps.proofRepo.ListProofs(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if proofs == nil {
		proofs = []*models.BlockchainProof{}
	}

	stats := &ProofStatistics{
		TotalProofs: len(proofs),
		ProofTypes:  map[string]int{},
	}
	for _, p := range proofs {
		if p.Verified {
			stats.VerifiedProofs++
		} else {
			stats.PendingProofs++
		}
		stats.ProofTypes[string(p.ProofType)]++
	}
	return proofs, stats, nil
}

// VerifyByHash backs the public proof-check endpoint: the stored proof plus
// its live receipt.
func (ps *ProofService) VerifyByHash(ctx context.Context, hash string) (map[string]interface{}, error) {
	if hash == "" {
		return nil, BadRequest("Hash is required")
	}

	proof, err := ps.proofRepo.GetProofByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if proof == nil {
		return nil, NotFound("Proof not found")
	}

	receipt, err := ps.verifier.TransactionReceipt(ctx, proof.TxHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction receipt: %v", err)
	}

	return map[string]interface{}{
		"proof":            proof,
		"blockchain":       receipt,
		"verified":         proof.Verified && receipt.Confirmed(),
		"verificationTime": time.Now().UTC(),
	}, nil
}
