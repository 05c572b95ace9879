package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/repository"
)

func ptr[T any](v T) *T { return &v }

type shopCall struct {
	product models.Product
	shop    models.Shop
}

type recordingNotifier struct {
	mu         sync.Mutex
	shopCalls  []shopCall
	adminCalls []models.Product
	err        error
}

func (n *recordingNotifier) NotifyShopOutOfStock(_ context.Context, product models.Product, shop models.Shop) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shopCalls = append(n.shopCalls, shopCall{product, shop})
	return n.err
}

func (n *recordingNotifier) NotifyAdminOutOfStock(_ context.Context, product models.Product) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adminCalls = append(n.adminCalls, product)
	return n.err
}

// countingShops records how many batched lookups reach the store.
type countingShops struct {
	*repository.MemoryShopStore
	batches atomic.Int32
}

func (c *countingShops) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Shop, error) {
	c.batches.Add(1)
	return c.MemoryShopStore.FindByIDs(ctx, ids)
}

func errorEntries(entries []*logrus.Entry) int {
	n := 0
	for _, e := range entries {
		if e.Level == logrus.ErrorLevel {
			n++
		}
	}
	return n
}

func draft(stock int) models.ProductDraft {
	return models.ProductDraft{
		Name:          "Walnut Desk",
		Description:   "Solid walnut writing desk",
		Category:      models.CategoryHome,
		Brand:         "Grain",
		Price:         ptr(420.0),
		StockQuantity: ptr(stock),
		Images:        []string{"https://cdn.example.com/desk.jpg"},
		Material:      "Walnut",
	}
}

func shopDraft(stock int, shopID primitive.ObjectID) models.ProductDraft {
	d := draft(stock)
	d.SourceType = ptr(models.SourceShop)
	d.ShopID = &shopID
	return d
}
