package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
)

// MemoryProductStore is an in-process ProductStore for tests and local runs.
type MemoryProductStore struct {
	mu   sync.RWMutex
	docs []models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{}
}

func (s *MemoryProductStore) Insert(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	s.docs = append(s.docs, *p)
	return nil
}

func (s *MemoryProductStore) Replace(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if s.docs[i].ID == p.ID {
			p.UpdatedAt = now()
			s.docs[i] = *p
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.docs {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryProductStore) FindOne(ctx context.Context, filter models.ProductFilter) (*models.Product, error) {
	found, err := s.Find(ctx, filter, models.Page{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

func (s *MemoryProductStore) Find(_ context.Context, filter models.ProductFilter, page models.Page) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Product{}
	for _, p := range s.docs {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, page), nil
}

// MemoryShopStore is an in-process ShopStore.
type MemoryShopStore struct {
	mu    sync.RWMutex
	shops map[primitive.ObjectID]models.Shop
}

func NewMemoryShopStore(shops ...models.Shop) *MemoryShopStore {
	s := &MemoryShopStore{shops: make(map[primitive.ObjectID]models.Shop)}
	for i := range shops {
		_ = s.Insert(context.Background(), &shops[i])
	}
	return s
}

func (s *MemoryShopStore) Insert(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	shop.CreatedAt = now()
	shop.UpdatedAt = shop.CreatedAt
	s.shops[shop.ID] = *shop
	return nil
}

func (s *MemoryShopStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shop, ok := s.shops[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &shop, nil
}

func (s *MemoryShopStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shops := []models.Shop{}
	for _, id := range ids {
		if shop, ok := s.shops[id]; ok {
			shops = append(shops, shop)
		}
	}
	return shops, nil
}

// MemoryWishlistStore is an in-process WishlistStore.
type MemoryWishlistStore struct {
	mu    sync.RWMutex
	items []models.WishlistItem
}

func NewMemoryWishlistStore() *MemoryWishlistStore {
	return &MemoryWishlistStore{}
}

func (s *MemoryWishlistStore) Insert(_ context.Context, item *models.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	s.items = append(s.items, *item)
	return nil
}

func (s *MemoryWishlistStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryWishlistStore) FindOne(ctx context.Context, filter models.WishlistFilter) (*models.WishlistItem, error) {
	found, err := s.Find(ctx, filter, models.Page{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

func (s *MemoryWishlistStore) Find(_ context.Context, filter models.WishlistFilter, page models.Page) ([]models.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.WishlistItem{}
	for _, item := range s.items {
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, page), nil
}

func (s *MemoryWishlistStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func paginate[T any](docs []T, page models.Page) []T {
	if page.Skip > 0 {
		if page.Skip >= int64(len(docs)) {
			return docs[:0]
		}
		docs = docs[page.Skip:]
	}
	if page.Limit > 0 && page.Limit < int64(len(docs)) {
		docs = docs[:page.Limit]
	}
	return docs
}
