package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
)

// WishlistManager stores wishlist entries and resolves their products.
type WishlistManager struct {
	items    WishlistStore
	products ProductLookup
	logger   logrus.FieldLogger
}

func NewWishlistManager(items WishlistStore, products ProductLookup, logger logrus.FieldLogger) *WishlistManager {
	return &WishlistManager{
		items:    items,
		products: products,
		logger:   logger.WithField("component", "wishlist"),
	}
}

// Save stores a (user, product) pair. Both references are required;
// the same pair may be saved more than once.
func (m *WishlistManager) Save(ctx context.Context, draft models.WishlistDraft) (*models.WishlistItem, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	item := draft.Build()
	if err := m.items.Insert(ctx, &item); err != nil {
		return nil, fmt.Errorf("save wishlist item: %w", err)
	}
	m.logger.WithFields(logrus.Fields{"user": item.User.Hex(), "product": item.Product.Hex()}).Debug("wishlist item saved")
	return &item, nil
}

func (m *WishlistManager) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.items.Delete(ctx, id)
}

// Find lists wishlist items with their products joined unless
// opts.DisablePopulate is set.
func (m *WishlistManager) Find(ctx context.Context, filter models.WishlistFilter, opts FindOptions) ([]models.WishlistView, error) {
	items, err := m.items.Find(ctx, filter, opts.Page)
	if err != nil {
		return nil, err
	}

	views := make([]models.WishlistView, len(items))
	for i := range items {
		views[i] = models.NewWishlistView(items[i])
	}
	if err := m.populate(ctx, views, opts); err != nil {
		return nil, err
	}
	return views, nil
}

func (m *WishlistManager) FindOne(ctx context.Context, filter models.WishlistFilter, opts FindOptions) (*models.WishlistView, error) {
	item, err := m.items.FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	return m.single(ctx, *item, opts)
}

func (m *WishlistManager) FindByID(ctx context.Context, id primitive.ObjectID, opts FindOptions) (*models.WishlistView, error) {
	item, err := m.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.single(ctx, *item, opts)
}

func (m *WishlistManager) single(ctx context.Context, item models.WishlistItem, opts FindOptions) (*models.WishlistView, error) {
	views := []models.WishlistView{models.NewWishlistView(item)}
	if err := m.populate(ctx, views, opts); err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (m *WishlistManager) populate(ctx context.Context, views []models.WishlistView, opts FindOptions) error {
	if opts.DisablePopulate {
		return nil
	}
	return m.PopulateProducts(ctx, views)
}

// PopulateProducts resolves the product of every view not resolved yet.
// Products come back with their shops joined. Calling it again does no work.
func (m *WishlistManager) PopulateProducts(ctx context.Context, views []models.WishlistView) error {
	var pending []int
	var ids []primitive.ObjectID
	for i := range views {
		if views[i].Product.Resolved() {
			continue
		}
		pending = append(pending, i)
		ids = append(ids, views[i].Product.ID)
	}
	if len(pending) == 0 {
		return nil
	}

	products, err := m.products.FindByIDs(ctx, ids, FindOptions{})
	if err != nil {
		return fmt.Errorf("populate products: %w", err)
	}
	byID := make(map[primitive.ObjectID]models.ProductView, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, i := range pending {
		if p, ok := byID[views[i].Product.ID]; ok {
			views[i].Product.Resolve(&p)
		} else {
			views[i].Product.Resolve(nil)
		}
	}
	return nil
}
