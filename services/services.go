// Package services orchestrates catalog writes and reads: validation,
// availability rules, stock notifications and reference population.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
)

// FindOptions tunes a read. The zero value populates references.
type FindOptions struct {
	// DisablePopulate leaves references unresolved.
	DisablePopulate bool
	Page            models.Page
}

// ProductStore is the persistence used by ProductManager.
type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	Replace(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindOne(ctx context.Context, filter models.ProductFilter) (*models.Product, error)
	Find(ctx context.Context, filter models.ProductFilter, page models.Page) ([]models.Product, error)
}

// ShopStore resolves shops referenced by products.
type ShopStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Shop, error)
}

// StockNotifier delivers out-of-stock alerts.
type StockNotifier interface {
	NotifyShopOutOfStock(ctx context.Context, product models.Product, shop models.Shop) error
	NotifyAdminOutOfStock(ctx context.Context, product models.Product) error
}

// WishlistStore is the persistence used by WishlistManager.
type WishlistStore interface {
	Insert(ctx context.Context, item *models.WishlistItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WishlistItem, error)
	FindOne(ctx context.Context, filter models.WishlistFilter) (*models.WishlistItem, error)
	Find(ctx context.Context, filter models.WishlistFilter, page models.Page) ([]models.WishlistItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductLookup resolves products referenced by wishlist items.
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID, opts FindOptions) ([]models.ProductView, error)
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
