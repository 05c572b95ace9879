package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raushankrgupta/storefront/models"
)

// ProductStore persists products in MongoDB
type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(coll *mongo.Collection) *ProductStore {
	return &ProductStore{coll: coll}
}

// Insert assigns an id and timestamps and writes the product.
func (s *ProductStore) Insert(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Replace overwrites an existing product, refreshing updatedAt.
func (s *ProductStore) Replace(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = now()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("replace product %s: %w", p.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *ProductStore) FindOne(ctx context.Context, filter models.ProductFilter) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, filter.ToBSON()).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Find lists products matching filter, newest first.
func (s *ProductStore) Find(ctx context.Context, filter models.ProductFilter, page models.Page) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter.ToBSON(), findOptions(page))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
