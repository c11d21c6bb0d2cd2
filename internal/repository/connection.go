package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoConnectTimeout = 10 * time.Second
	mongoSelectTimeout  = 5 * time.Second
	mongoMaxPool        = 50
)

// ConnectMongoDB opens a client and returns the cart database once the
// server has answered a ping.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	opts := options.Client().ApplyURI(uri)
	opts.SetConnectTimeout(mongoConnectTimeout)
	opts.SetServerSelectionTimeout(mongoSelectTimeout)
	opts.SetMaxPoolSize(mongoMaxPool)
	opts.SetAppName("storefront")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client.Database(database), nil
}
