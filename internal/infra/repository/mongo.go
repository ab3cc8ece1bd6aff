package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	repo "github.com/raythmediarepos/Ai-Azure-VoiceAgent/internal/domain/interfaces/repository"
)

type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

func (r *MongoRepository[T]) Create(ctx context.Context, collectionName string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	_, err := collection.InsertOne(ctx, entity)
	return entity, err
}

// Upsert replaces the document matching filter, creating it when absent.
func (r *MongoRepository[T]) Upsert(ctx context.Context, collectionName string, filter repo.Filter, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)

	update := bson.M{
		"$set": entity,
	}

	_, err := collection.UpdateOne(ctx, toBSON(filter), update, options.Update().SetUpsert(true))
	return entity, err
}

func (r *MongoRepository[T]) FindOne(ctx context.Context, collectionName string, filter repo.Filter) (T, error) {
	var entity T
	collection := r.mongo.Collection(collectionName)
	err := collection.FindOne(ctx, toBSON(filter)).Decode(&entity)
	return entity, err
}

// FindRecent returns up to limit documents matching filter, newest first by
// sortField.
func (r *MongoRepository[T]) FindRecent(ctx context.Context, collectionName string, filter repo.Filter, sortField string, limit int64) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, cursor.Err()
}

// EnsureTTLIndex creates the retention index on a time field. Conversation
// messages keep for about a year, leads for about two.
func (r *MongoRepository[T]) EnsureTTLIndex(ctx context.Context, collectionName, field string, ttl time.Duration) error {
	collection := r.mongo.Collection(collectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	return err
}

func toBSON(filter repo.Filter) bson.M {
	out := bson.M{}
	for k, v := range filter {
		out[k] = v
	}
	return out
}
