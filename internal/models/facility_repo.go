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

type FacilityRepo interface {
	CreateFacility(ctx context.Context, facility *Facility) (*Facility, error)
	GetFacilityByID(ctx context.Context, id string) (*Facility, error)
	ListFacilities(ctx context.Context, filter FacilityFilter, limit int) ([]*Facility, error)
	SearchFacilities(ctx context.Context, query string, filter FacilityFilter, limit int) ([]*Facility, error)
	AppendReview(ctx context.Context, facilityID string, review Review) (*Facility, error)
	UpdateVerification(ctx context.Context, id string, verified bool, score float64, proofHash string) error
	AddProofHash(ctx context.Context, id string, hash string) error
	RecordReviewAnalysis(ctx context.Context, reviewID string, score float64, label string) error
	CountFacilities(ctx context.Context) (int64, error)
	CountFacilitiesByType(ctx context.Context) ([]GroupCount, error)
	CountFacilitiesByVerified(ctx context.Context) ([]GroupCount, error)
	TopVerifiedFacilitiesByRating(ctx context.Context, limit int) ([]*Facility, error)
}

func facilityFilterQuery(filter FacilityFilter) bson.M {
	query := bson.M{}
	if filter.DestinationID != "" {
		query["destinationId"] = filter.DestinationID
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Verified != nil {
		query["verified"] = *filter.Verified
	}
	return query
}

func (mdb *MongodbRepo) CreateFacility(ctx context.Context, facility *Facility) (*Facility, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	if facility.ID.IsZero() {
		facility.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, facility); err != nil {
		return nil, fmt.Errorf("failed to insert facility: %v", err)
	}
	return facility, nil
}

func (mdb *MongodbRepo) GetFacilityByID(ctx context.Context, id string) (*Facility, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid facility ID format: %v", err)
	}

	var facility Facility
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&facility); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get facility: %v", err)
	}
	return &facility, nil
}

func (mdb *MongodbRepo) ListFacilities(ctx context.Context, filter FacilityFilter, limit int) ([]*Facility, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, facilityFilterQuery(filter), options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %v", err)
	}
	defer cursor.Close(ctx)

	var facilities []*Facility
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %v", err)
	}
	return facilities, nil
}

func (mdb *MongodbRepo) SearchFacilities(ctx context.Context, query string, filter FacilityFilter, limit int) ([]*Facility, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	match := facilityFilterQuery(filter)
	match["$or"] = bson.A{
		bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"type": bson.M{"$regex": query, "$options": "i"}},
	}

	cursor, err := col.Find(ctx, match, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to search facilities: %v", err)
	}
	defer cursor.Close(ctx)

	var facilities []*Facility
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %v", err)
	}
	return facilities, nil
}

// AppendReview pushes the review and recomputes the mean rating in one
// pipeline update, so two concurrent reviews cannot drop each other. The
// $avg/$round stage mirrors AverageRating; change them together.
func (mdb *MongodbRepo) AppendReview(ctx context.Context, facilityID string, review Review) (*Facility, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(facilityID)
	if err != nil {
		return nil, fmt.Errorf("invalid facility ID format: %v", err)
	}

	update := bson.A{
		bson.M{"$set": bson.M{
			"reviews":   bson.M{"$concatArrays": bson.A{bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}}, bson.A{review}}},
			"updatedAt": time.Now().UTC(),
		}},
		bson.M{"$set": bson.M{
			"rating": bson.M{"$round": bson.A{bson.M{"$avg": "$reviews.rating"}, 1}},
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var facility Facility
	if err := col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&facility); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to append review: %v", err)
	}
	return &facility, nil
}

func (mdb *MongodbRepo) UpdateVerification(ctx context.Context, id string, verified bool, score float64, proofHash string) error {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid facility ID format: %v", err)
	}

	now := time.Now().UTC()
	set := bson.M{
		"verified":          verified,
		"verificationScore": score,
		"updatedAt":         now,
		"lastVerified":      now,
	}
	if proofHash != "" {
		set["proofHash"] = proofHash
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update verification: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("facility not found")
	}
	return nil
}

func (mdb *MongodbRepo) AddProofHash(ctx context.Context, id string, hash string) error {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid facility ID format: %v", err)
	}

	// The proof stands on its own; a missing facility row is not an error.
	_, err = col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"verifiedHashes": hash},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to add proof hash: %v", err)
	}
	return nil
}

// RecordReviewAnalysis stores async sentiment results for a review in the
// standalone reviews collection used by the model callback pipeline.
func (mdb *MongodbRepo) RecordReviewAnalysis(ctx context.Context, reviewID string, score float64, label string) error {
	col, err := mdb.GetCollection(ctx, DBName, ReviewsCol)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": reviewID}, bson.M{
		"$set": bson.M{
			"sentimentScore": score,
			"sentimentLabel": label,
			"processed":      true,
			"processedAt":    time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to record review analysis: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) CountFacilities(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountFacilitiesByType(ctx context.Context) ([]GroupCount, error) {
	return mdb.groupCount(ctx, FacilitiesCol, "$type")
}

func (mdb *MongodbRepo) CountFacilitiesByVerified(ctx context.Context) ([]GroupCount, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	// _id is stringified so verified buckets decode like every other group
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$toString": "$verified"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate facilities by verified: %v", err)
	}
	defer cursor.Close(ctx)

	var counts []GroupCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode verification counts: %v", err)
	}
	return counts, nil
}

func (mdb *MongodbRepo) TopVerifiedFacilitiesByRating(ctx context.Context, limit int) ([]*Facility, error) {
	col, err := mdb.GetCollection(ctx, DBName, FacilitiesCol)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}}).SetLimit(int64(limit))
	cursor, err := col.Find(ctx, bson.M{"verified": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find top facilities: %v", err)
	}
	defer cursor.Close(ctx)

	var facilities []*Facility
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode top facilities: %v", err)
	}
	return facilities, nil
}
