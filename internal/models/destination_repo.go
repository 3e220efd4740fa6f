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

type DestinationRepo interface {
	CreateDestination(ctx context.Context, destination *Destination) (*Destination, error)
	GetDestinationByID(ctx context.Context, id string) (*Destination, error)
	ListDestinations(ctx context.Context, filter DestinationFilter, offset, limit int) ([]*Destination, int, error)
	SearchDestinations(ctx context.Context, query string, filter DestinationFilter, limit int) ([]*Destination, error)
	RecommendDestinations(ctx context.Context, labels []string, region string, gradient SafetyGradient, limit int) ([]*Destination, error)
	MapDestinations(ctx context.Context, filter DestinationFilter, bounds *MapBounds) ([]*Destination, error)
	UpdateSafetyAssessment(ctx context.Context, id string, score float64, gradient SafetyGradient) error
	CountDestinations(ctx context.Context) (int64, error)
	CountDestinationsByRegion(ctx context.Context) ([]GroupCount, error)
	CountDestinationsByGradient(ctx context.Context) ([]GroupCount, error)
	TopDestinationsBySafety(ctx context.Context, limit int) ([]*Destination, error)
}

func destinationFilterQuery(filter DestinationFilter) bson.M {
	query := bson.M{}
	if filter.Region != "" {
		query["region"] = filter.Region
	}
	if filter.SafetyGradient != "" {
		query["safetyGradient"] = filter.SafetyGradient
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"tags": bson.M{"$in": bson.A{primitive.Regex{Pattern: filter.Search, Options: "i"}}}},
		}
	}
	return query
}

func (mdb *MongodbRepo) CreateDestination(ctx context.Context, destination *Destination) (*Destination, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, err
	}

	if destination.ID.IsZero() {
		destination.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, destination); err != nil {
		return nil, fmt.Errorf("failed to insert destination: %v", err)
	}
	return destination, nil
}

func (mdb *MongodbRepo) GetDestinationByID(ctx context.Context, id string) (*Destination, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid destination ID format: %v", err)
	}

	var destination Destination
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&destination); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get destination: %v", err)
	}
	return &destination, nil
}

func (mdb *MongodbRepo) ListDestinations(ctx context.Context, filter DestinationFilter, offset, limit int) ([]*Destination, int, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, 0, err
	}

	query := destinationFilterQuery(filter)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count destinations: %v", err)
	}

	opts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list destinations: %v", err)
	}
	defer cursor.Close(ctx)

	var destinations []*Destination
	if err := cursor.All(ctx, &destinations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode destinations: %v", err)
	}
	return destinations, int(total), nil
}

func (mdb *MongodbRepo) SearchDestinations(ctx context.Context, query string, filter DestinationFilter, limit int) ([]*Destination, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, err
	}

	match := destinationFilterQuery(filter)
	match["$or"] = bson.A{
		bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"description": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"tags": bson.M{"$in": bson.A{primitive.Regex{Pattern: query, Options: "i"}}}},
		bson.M{"state": bson.M{"$regex": query, "$options": "i"}},
	}

	cursor, err := col.Find(ctx, match, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to search destinations: %v", err)
	}
	defer cursor.Close(ctx)

	var destinations []*Destination
	if err := cursor.All(ctx, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %v", err)
	}
	return destinations, nil
}

// RecommendDestinations matches any of: tag overlap with the predicted
// labels, region preference, or safety-gradient preference. Store order,
// no ranking.
func (mdb *MongodbRepo) RecommendDestinations(ctx context.Context, labels []string, region string, gradient SafetyGradient, limit int) ([]*Destination, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, err
	}

	clauses := bson.A{bson.M{"tags": bson.M{"$in": labels}}}
	if region != "" {
		clauses = append(clauses, bson.M{"region": region})
	}
	if gradient != "" {
		clauses = append(clauses, bson.M{"safetyGradient": gradient})
	}

	cursor, err := col.Find(ctx, bson.M{"$or": clauses}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %v", err)
	}
	defer cursor.Close(ctx)

	var destinations []*Destination
	if err := cursor.All(ctx, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %v", err)
	}
	return destinations, nil
}

// MapDestinations returns every destination in the viewport, unpaginated.
func (mdb *MongodbRepo) MapDestinations(ctx context.Context, filter DestinationFilter, bounds *MapBounds) ([]*Destination, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, err
	}

	query := destinationFilterQuery(filter)
	if bounds != nil {
		query["geoCoords.latitude"] = bson.M{"$gte": bounds.South, "$lte": bounds.North}
		query["geoCoords.longitude"] = bson.M{"$gte": bounds.West, "$lte": bounds.East}
	}

	cursor, err := col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find map destinations: %v", err)
	}
	defer cursor.Close(ctx)

	var destinations []*Destination
	if err := cursor.All(ctx, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode map destinations: %v", err)
	}
	return destinations, nil
}

func (mdb *MongodbRepo) UpdateSafetyAssessment(ctx context.Context, id string, score float64, gradient SafetyGradient) error {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid destination ID format: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"safetyScore":    score,
			"safetyGradient": gradient,
			"lastAssessment": time.Now().UTC(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update safety assessment: %v", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("destination not found")
	}
	return nil
}

func (mdb *MongodbRepo) CountDestinations(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return 0, err
	}
	return col.CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountDestinationsByRegion(ctx context.Context) ([]GroupCount, error) {
	return mdb.groupCount(ctx, DestinationsCol, "$region")
}

func (mdb *MongodbRepo) CountDestinationsByGradient(ctx context.Context) ([]GroupCount, error) {
	return mdb.groupCount(ctx, DestinationsCol, "$safetyGradient")
}

func (mdb *MongodbRepo) TopDestinationsBySafety(ctx context.Context, limit int) ([]*Destination, error) {
	col, err := mdb.GetCollection(ctx, DBName, DestinationsCol)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "safetyScore", Value: -1}}).SetLimit(int64(limit))
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find top destinations: %v", err)
	}
	defer cursor.Close(ctx)

	var destinations []*Destination
	if err := cursor.All(ctx, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode top destinations: %v", err)
	}
	return destinations, nil
}

// groupCount runs a single-field $group count over a collection.
func (mdb *MongodbRepo) groupCount(ctx context.Context, colName, field string) ([]GroupCount, error) {
	col, err := mdb.GetCollection(ctx, DBName, colName)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s by %s: %v", colName, field, err)
	}
	defer cursor.Close(ctx)

	var counts []GroupCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode group counts: %v", err)
	}
	return counts, nil
}
