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

type UserRepo interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	GetUserByWallet(ctx context.Context, wallet string) (*User, error)
	UpsertPreferences(ctx context.Context, userID string, prefs UserPreferences) (bool, error)
	ConnectWallet(ctx context.Context, userID, wallet string) error
	DisconnectWallet(ctx context.Context, userID string) error
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByPreferenceRegion(ctx context.Context) ([]GroupCount, error)
}

type TransactionRepo interface {
	CreateTransaction(ctx context.Context, tx *Transaction) (*Transaction, error)
	ListTransactionsByWallet(ctx context.Context, wallet string, limit int) ([]*Transaction, error)
}

func (mdb *MongodbRepo) GetUser(ctx context.Context, userID string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return nil, err
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByWallet(ctx context.Context, wallet string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return nil, err
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"wallet": wallet}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by wallet: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpsertPreferences(ctx context.Context, userID string, prefs UserPreferences) (bool, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	res, err := col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"preferences": prefs,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert preferences: %v", err)
	}
	return res.ModifiedCount > 0 || res.UpsertedCount > 0, nil
}

func (mdb *MongodbRepo) ConnectWallet(ctx context.Context, userID, wallet string) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"wallet":            wallet,
			"walletConnectedAt": now,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to connect wallet: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) DisconnectWallet(ctx context.Context, userID string) error {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return err
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$unset": bson.M{"wallet": "", "walletConnectedAt": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to disconnect wallet: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) CountUsers(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{})
}

// CountUsersByPreferenceRegion unwinds preferences.regions first, so a user
// listing three regions contributes one count to each bucket.
func (mdb *MongodbRepo) CountUsersByPreferenceRegion(ctx context.Context) ([]GroupCount, error) {
	col, err := mdb.GetCollection(ctx, DBName, UsersCol)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$preferences.regions"}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$preferences.regions", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate users by region: %v", err)
	}
	defer cursor.Close(ctx)

	var counts []GroupCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode user region counts: %v", err)
	}
	return counts, nil
}

func (mdb *MongodbRepo) CreateTransaction(ctx context.Context, tx *Transaction) (*Transaction, error) {
	col, err := mdb.GetCollection(ctx, DBName, TransactionsCol)
	if err != nil {
		return nil, err
	}
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %v", err)
	}
	return tx, nil
}

func (mdb *MongodbRepo) ListTransactionsByWallet(ctx context.Context, wallet string, limit int) ([]*Transaction, error) {
	col, err := mdb.GetCollection(ctx, DBName, TransactionsCol)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cursor, err := col.Find(ctx, bson.M{"walletAddress": wallet}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %v", err)
	}
	defer cursor.Close(ctx)

	var txs []*Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %v", err)
	}
	return txs, nil
}
