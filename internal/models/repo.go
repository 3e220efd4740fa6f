package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	DBName              = "tourism_platform"
	UsersCol            = "users"
	DestinationsCol     = "destinations"
	FacilitiesCol       = "facilities"
	QueryHistoryCol     = "query_history"
	ReviewsCol          = "reviews"
	BlockchainProofsCol = "blockchain_proofs"
	TransactionsCol     = "transactions"

	ChatsTable         = "chats"
	TripsTable         = "trips"
	TripLocationsTable = "trip_locations"
)

type SupabaseRepo struct {
	supabaseClient *supabase.Client
	url            string
	key            string
}

func SupabaseNewRepo(supabaseClient *supabase.Client, url, key string) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
		url:            url,
		key:            key,
	}
}

// GetAuthenticatedClient returns a Supabase client acting as the given user
func (su *SupabaseRepo) GetAuthenticatedClient(accessToken string) (*supabase.Client, error) {
	if su.url == "" || su.key == "" {
		return su.supabaseClient, nil
	}

	options := &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supabase.NewClient(su.url, su.key, options)
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}

// GroupCount is one bucket of a grouped count aggregation.
type GroupCount struct {
	Key   string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// UserActivity is one bucket of the most-active-users aggregation.
type UserActivity struct {
	UserID     string `bson:"_id" json:"_id"`
	QueryCount int64  `bson:"queryCount" json:"queryCount"`
}
