package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/georgemunganga/bandiwala-backend/internal/config"
)

// Collection names shared by the mongo repositories.
const (
	VendorsCollection  = "vendors"
	ProductsCollection = "products"
)

// NewMongo connects to MongoDB, pings the primary and returns the configured database.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureMongoIndexes creates the lookup indexes used by the city and
// vendor-products queries.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(VendorsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "profile.location.city", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("vendors index: %w", err)
	}
	_, err = db.Collection(ProductsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "vendorId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("products index: %w", err)
	}
	return nil
}
