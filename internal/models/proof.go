package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProofType string

const (
	ProofVerification ProofType = "verification"
	ProofIncident     ProofType = "incident"
	ProofReview       ProofType = "review"
)

func (t ProofType) IsValid() bool {
	switch t {
	case ProofVerification, ProofIncident, ProofReview:
		return true
	}
	return false
}

type BlockchainProof struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Hash       string             `bson:"hash" json:"hash"`
	FacilityID string             `bson:"facilityId" json:"facilityId"`
	ProofType  ProofType          `bson:"proofType" json:"proofType"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	TxHash     string             `bson:"txHash" json:"txHash"`
	Verified   bool               `bson:"verified" json:"verified"`
	VerifiedAt *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
}

type ProofFilter struct {
	Hash       string
	FacilityID string
	Verified   *bool
}

type Transaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	WalletAddress   string             `bson:"walletAddress" json:"walletAddress"`
	TransactionHash string             `bson:"transactionHash" json:"transactionHash"`
	Type            string             `bson:"type" json:"type"`
	Amount          string             `bson:"amount" json:"amount"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
