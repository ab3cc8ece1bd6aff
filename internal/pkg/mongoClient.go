package client

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient connects and pings with a short deadline. A timeout here is
// treated upstream as "store unavailable, use the in-memory fallback", never
// as a startup failure.
func MongoClient(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	conn, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return conn, nil
}
