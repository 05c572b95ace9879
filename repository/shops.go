package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raushankrgupta/storefront/models"
)

// ShopStore reads and writes partner shops
type ShopStore struct {
	coll *mongo.Collection
}

func NewShopStore(coll *mongo.Collection) *ShopStore {
	return &ShopStore{coll: coll}
}

func (s *ShopStore) Insert(ctx context.Context, shop *models.Shop) error {
	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	shop.CreatedAt = now()
	shop.UpdatedAt = shop.CreatedAt

	if _, err := s.coll.InsertOne(ctx, shop); err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

func (s *ShopStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&shop); err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

// FindByIDs loads every shop whose id is in ids with a single query.
// Missing ids are simply absent from the result.
func (s *ShopStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Shop, error) {
	shops := []models.Shop{}
	if len(ids) == 0 {
		return shops, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find shops: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("decode shops: %w", err)
	}
	return shops, nil
}
