package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryRecord is the append-only log row written once per processed query.
type QueryRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Query     string             `bson:"query" json:"query"`
	Response  string             `bson:"response" json:"response"`
	ModelID   string             `bson:"modelId" json:"modelId"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
