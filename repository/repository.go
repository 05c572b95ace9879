// Package repository holds the document stores for catalog records.
package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raushankrgupta/storefront/models"
)

const (
	ProductsCollection  = "products"
	ShopsCollection     = "shops"
	WishlistsCollection = "wishlists"
	UsersCollection     = "users"
)

// ErrNotFound is returned when no document matches.
var ErrNotFound = errors.New("document not found")

// Stores bundles the Mongo-backed stores of one database.
type Stores struct {
	Products  *ProductStore
	Shops     *ShopStore
	Wishlists *WishlistStore
	Users     *UserStore
}

// NewStores binds every store to its collection in db.
func NewStores(db *mongo.Database) *Stores {
	return &Stores{
		Products:  NewProductStore(db.Collection(ProductsCollection)),
		Shops:     NewShopStore(db.Collection(ShopsCollection)),
		Wishlists: NewWishlistStore(db.Collection(WishlistsCollection)),
		Users:     NewUserStore(db.Collection(UsersCollection)),
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func findOptions(page models.Page) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}
	if page.Skip > 0 {
		opts.SetSkip(page.Skip)
	}
	return opts
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
