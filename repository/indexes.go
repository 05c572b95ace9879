package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var productIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "category", Value: 1}}},
	{Keys: bson.D{{Key: "brand", Value: 1}}},
	{Keys: bson.D{{Key: "price", Value: 1}}},
	{Keys: bson.D{{Key: "availability_status", Value: 1}}},
}

var wishlistIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "user", Value: 1}, {Key: "product", Value: 1}}},
}

// EnsureIndexes creates the query indexes for catalog collections.
// Creating an index that already exists is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(ProductsCollection).Indexes().CreateMany(ctx, productIndexes); err != nil {
		return fmt.Errorf("create product indexes: %w", err)
	}
	if _, err := db.Collection(WishlistsCollection).Indexes().CreateMany(ctx, wishlistIndexes); err != nil {
		return fmt.Errorf("create wishlist indexes: %w", err)
	}
	return nil
}
