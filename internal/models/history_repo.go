package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QueryHistoryRepo interface {
	AppendQueryRecord(ctx context.Context, record *QueryRecord) error
	ListQueryHistory(ctx context.Context, userID string, offset, limit int) ([]*QueryRecord, int, error)
	CountQueriesSince(ctx context.Context, since time.Time) (int64, error)
	MostActiveUsersSince(ctx context.Context, since time.Time, limit int) ([]UserActivity, error)
	PopularQueriesSince(ctx context.Context, since time.Time, limit int) ([]GroupCount, error)
}

func (mdb *MongodbRepo) AppendQueryRecord(ctx context.Context, record *QueryRecord) error {
	col, err := mdb.GetCollection(ctx, DBName, QueryHistoryCol)
	if err != nil {
		return err
	}
	if _, err := col.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert query record: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListQueryHistory(ctx context.Context, userID string, offset, limit int) ([]*QueryRecord, int, error) {
	col, err := mdb.GetCollection(ctx, DBName, QueryHistoryCol)
	if err != nil {
		return nil, 0, err
	}

	filter := bson.M{"userId": userID}
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count query history: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list query history: %v", err)
	}
	defer cursor.Close(ctx)

	var records []*QueryRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode query history: %v", err)
	}
	return records, int(total), nil
}

func (mdb *MongodbRepo) CountQueriesSince(ctx context.Context, since time.Time) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, QueryHistoryCol)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
}

func (mdb *MongodbRepo) MostActiveUsersSince(ctx context.Context, since time.Time, limit int) ([]UserActivity, error) {
	col, err := mdb.GetCollection(ctx, DBName, QueryHistoryCol)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$userId", "queryCount": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"queryCount": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate active users: %v", err)
	}
	defer cursor.Close(ctx)

	var activity []UserActivity
	if err := cursor.All(ctx, &activity); err != nil {
		return nil, fmt.Errorf("failed to decode active users: %v", err)
	}
	return activity, nil
}

// PopularQueriesSince groups by the exact raw query string; there is no
// normalization or stemming.
func (mdb *MongodbRepo) PopularQueriesSince(ctx context.Context, since time.Time, limit int) ([]GroupCount, error) {
	col, err := mdb.GetCollection(ctx, DBName, QueryHistoryCol)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since}}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$query", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate popular queries: %v", err)
	}
	defer cursor.Close(ctx)

	var counts []GroupCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode popular queries: %v", err)
	}
	return counts, nil
}
