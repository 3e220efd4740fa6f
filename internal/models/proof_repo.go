package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProofRepo interface {
	CreateProof(ctx context.Context, proof *BlockchainProof) (*BlockchainProof, error)
	GetProofByHash(ctx context.Context, hash string) (*BlockchainProof, error)
	ListProofs(ctx context.Context, filter ProofFilter) ([]*BlockchainProof, error)
	MarkProofVerified(ctx context.Context, hash string, verified bool) error
}

func (mdb *MongodbRepo) CreateProof(ctx context.Context, proof *BlockchainProof) (*BlockchainProof, error) {
	col, err := mdb.GetCollection(ctx, DBName, BlockchainProofsCol)
	if err != nil {
		return nil, err
	}

	if proof.ID.IsZero() {
		proof.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, proof); err != nil {
		return nil, fmt.Errorf("failed to insert proof: %v", err)
	}
	return proof, nil
}

func (mdb *MongodbRepo) GetProofByHash(ctx context.Context, hash string) (*BlockchainProof, error) {
	col, err := mdb.GetCollection(ctx, DBName, BlockchainProofsCol)
	if err != nil {
		return nil, err
	}

	var proof BlockchainProof
	if err := col.FindOne(ctx, bson.M{"hash": hash}).Decode(&proof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proof: %v", err)
	}
	return &proof, nil
}

func (mdb *MongodbRepo) ListProofs(ctx context.Context, filter ProofFilter) ([]*BlockchainProof, error) {
	col, err := mdb.GetCollection(ctx, DBName, BlockchainProofsCol)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.Hash != "" {
		query["hash"] = filter.Hash
	}
	if filter.FacilityID != "" {
		query["facilityId"] = filter.FacilityID
	}
	if filter.Verified != nil {
		query["verified"] = *filter.Verified
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list proofs: %v", err)
	}
	defer cursor.Close(ctx)

	var proofs []*BlockchainProof
	if err := cursor.All(ctx, &proofs); err != nil {
		return nil, fmt.Errorf("failed to decode proofs: %v", err)
	}
	return proofs, nil
}

func (mdb *MongodbRepo) MarkProofVerified(ctx context.Context, hash string, verified bool) error {
	col, err := mdb.GetCollection(ctx, DBName, BlockchainProofsCol)
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx, bson.M{"hash": hash}, bson.M{
		"$set": bson.M{
			"verified":   verified,
			"verifiedAt": time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to mark proof verified: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("proof not found")
	}
	return nil
}
