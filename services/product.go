package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/repository"
)

// ProductManager owns the product write path and product queries.
type ProductManager struct {
	products ProductStore
	shops    ShopStore
	notifier StockNotifier
	logger   logrus.FieldLogger

	inflight sync.WaitGroup
}

func NewProductManager(products ProductStore, shops ShopStore, notifier StockNotifier, logger logrus.FieldLogger) *ProductManager {
	return &ProductManager{
		products: products,
		shops:    shops,
		notifier: notifier,
		logger:   logger.WithField("component", "products"),
	}
}

// Save validates and stores a new product. Depleted stock marks the product
// Unavailable before the write and triggers an out-of-stock alert after it.
// The alert runs in the background and never affects the result.
func (m *ProductManager) Save(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	p := draft.Build()
	p.ApplyAvailabilityRule()
	if err := m.products.Insert(ctx, &p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	m.afterSave(ctx, p)
	return &p, nil
}

// Update replaces every field of an existing product with the draft,
// keeping its id and creation time.
func (m *ProductManager) Update(ctx context.Context, id primitive.ObjectID, draft models.ProductDraft) (*models.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	existing, err := m.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := draft.Build()
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	return m.replace(ctx, p)
}

// SetStock overwrites the stock level and reruns the save rules.
func (m *ProductManager) SetStock(ctx context.Context, id primitive.ObjectID, quantity int) (*models.Product, error) {
	p, err := m.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.StockQuantity = quantity
	return m.replace(ctx, *p)
}

func (m *ProductManager) replace(ctx context.Context, p models.Product) (*models.Product, error) {
	p.ApplyAvailabilityRule()
	if err := m.products.Replace(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("save product: %w", err)
	}

	m.afterSave(ctx, p)
	return &p, nil
}

func (m *ProductManager) afterSave(ctx context.Context, p models.Product) {
	if !p.IsOutOfStock() {
		return
	}

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		m.notifyOutOfStock(context.WithoutCancel(ctx), p)
	}()
}

// notifyOutOfStock alerts the owning shop or the admins. Every failure is
// logged and dropped.
func (m *ProductManager) notifyOutOfStock(ctx context.Context, p models.Product) {
	log := m.logger.WithField("product", p.ID.Hex())

	switch p.SourceType {
	case models.SourceShop:
		if p.ShopID == nil {
			log.Error("shop product has no shopId, skipping out of stock email")
			return
		}
		log = log.WithField("shop", p.ShopID.Hex())

		shop, err := m.shops.FindByID(ctx, *p.ShopID)
		if errors.Is(err, repository.ErrNotFound) {
			log.Errorf("Shop with ID %s not found", p.ShopID.Hex())
			return
		}
		if err != nil {
			log.WithError(err).Error("Error sending product out of stock email")
			return
		}
		if err := m.notifier.NotifyShopOutOfStock(ctx, p, *shop); err != nil {
			log.WithError(err).Error("Error sending product out of stock email")
		}

	case models.SourceWebsite:
		if err := m.notifier.NotifyAdminOutOfStock(ctx, p); err != nil {
			log.WithError(err).Error("Error sending product out of stock email to admin")
		}
	}
}

// Drain blocks until every pending out-of-stock alert has finished.
func (m *ProductManager) Drain() {
	m.inflight.Wait()
}

// Find lists products matching filter with their shops joined unless
// opts.DisablePopulate is set.
func (m *ProductManager) Find(ctx context.Context, filter models.ProductFilter, opts FindOptions) ([]models.ProductView, error) {
	products, err := m.products.Find(ctx, filter, opts.Page)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProductView, len(products))
	for i := range products {
		views[i] = models.ProductView{Product: products[i]}
	}
	if err := m.populate(ctx, views, opts); err != nil {
		return nil, err
	}
	return views, nil
}

func (m *ProductManager) FindOne(ctx context.Context, filter models.ProductFilter, opts FindOptions) (*models.ProductView, error) {
	p, err := m.products.FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	return m.single(ctx, *p, opts)
}

func (m *ProductManager) FindByID(ctx context.Context, id primitive.ObjectID, opts FindOptions) (*models.ProductView, error) {
	p, err := m.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.single(ctx, *p, opts)
}

// FindByIDs loads the given products. Unknown ids are skipped.
func (m *ProductManager) FindByIDs(ctx context.Context, ids []primitive.ObjectID, opts FindOptions) ([]models.ProductView, error) {
	if len(ids) == 0 {
		return []models.ProductView{}, nil
	}
	return m.Find(ctx, models.ProductFilter{IDs: uniqueIDs(ids)}, FindOptions{DisablePopulate: opts.DisablePopulate})
}

func (m *ProductManager) single(ctx context.Context, p models.Product, opts FindOptions) (*models.ProductView, error) {
	views := []models.ProductView{{Product: p}}
	if err := m.populate(ctx, views, opts); err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (m *ProductManager) populate(ctx context.Context, views []models.ProductView, opts FindOptions) error {
	if opts.DisablePopulate {
		return nil
	}
	return m.PopulateShops(ctx, views)
}

// PopulateShops joins the owning shop onto every view that has not been
// joined yet, using one batched lookup. Already joined views are left alone,
// so calling it again does no work.
func (m *ProductManager) PopulateShops(ctx context.Context, views []models.ProductView) error {
	var pending []int
	var ids []primitive.ObjectID
	for i := range views {
		if views[i].ShopJoined() {
			continue
		}
		if views[i].ShopID == nil {
			views[i].AttachShop(nil)
			continue
		}
		pending = append(pending, i)
		ids = append(ids, *views[i].ShopID)
	}
	if len(pending) == 0 {
		return nil
	}

	shops, err := m.shops.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return fmt.Errorf("populate shops: %w", err)
	}
	byID := make(map[primitive.ObjectID]models.Shop, len(shops))
	for _, s := range shops {
		byID[s.ID] = s
	}

	for _, i := range pending {
		if shop, ok := byID[*views[i].ShopID]; ok {
			views[i].AttachShop(&shop)
		} else {
			views[i].AttachShop(nil)
		}
	}
	return nil
}
