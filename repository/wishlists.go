package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raushankrgupta/storefront/models"
)

// WishlistStore persists wishlist items. Duplicate (user, product) pairs are
// accepted; no unique index backs the pair.
type WishlistStore struct {
	coll *mongo.Collection
}

func NewWishlistStore(coll *mongo.Collection) *WishlistStore {
	return &WishlistStore{coll: coll}
}

func (s *WishlistStore) Insert(ctx context.Context, item *models.WishlistItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt

	if _, err := s.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (s *WishlistStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *WishlistStore) FindOne(ctx context.Context, filter models.WishlistFilter) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := s.coll.FindOne(ctx, filter.ToBSON()).Decode(&item); err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *WishlistStore) Find(ctx context.Context, filter models.WishlistFilter, page models.Page) ([]models.WishlistItem, error) {
	cursor, err := s.coll.Find(ctx, filter.ToBSON(), findOptions(page))
	if err != nil {
		return nil, fmt.Errorf("find wishlist items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.WishlistItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode wishlist items: %w", err)
	}
	return items, nil
}

func (s *WishlistStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete wishlist item %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
