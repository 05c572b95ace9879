package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/repository"
)

type productFixture struct {
	manager  *ProductManager
	products *repository.MemoryProductStore
	shops    *countingShops
	notifier *recordingNotifier
	logs     *test.Hook
	shop     models.Shop
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	shop := models.Shop{Name: "Grain Studio", OwnerName: "Ada", Email: "ada@grain.test"}
	shops := &countingShops{MemoryShopStore: repository.NewMemoryShopStore()}
	require.NoError(t, shops.Insert(context.Background(), &shop))

	f := &productFixture{
		products: repository.NewMemoryProductStore(),
		shops:    shops,
		notifier: &recordingNotifier{},
		logs:     hook,
		shop:     shop,
	}
	f.manager = NewProductManager(f.products, f.shops, f.notifier, logger)
	return f
}

func TestSaveDepletedStockForcesUnavailable(t *testing.T) {
	for _, supplied := range []*models.AvailabilityStatus{nil, ptr(models.Available), ptr(models.PreOrder)} {
		for _, stock := range []int{0, -2} {
			f := newProductFixture(t)
			d := draft(stock)
			d.AvailabilityStatus = supplied

			p, err := f.manager.Save(context.Background(), d)
			require.NoError(t, err)
			f.manager.Drain()

			assert.Equal(t, models.Unavailable, p.AvailabilityStatus)
			stored, err := f.products.FindByID(context.Background(), p.ID)
			require.NoError(t, err)
			assert.Equal(t, models.Unavailable, stored.AvailabilityStatus)
		}
	}
}

func TestSavePositiveStockKeepsStatus(t *testing.T) {
	cases := map[string]struct {
		supplied *models.AvailabilityStatus
		want     models.AvailabilityStatus
	}{
		"default":     {nil, models.Available},
		"unavailable": {ptr(models.Unavailable), models.Unavailable},
		"preorder":    {ptr(models.PreOrder), models.PreOrder},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newProductFixture(t)
			d := draft(7)
			d.AvailabilityStatus = tc.supplied

			p, err := f.manager.Save(context.Background(), d)
			require.NoError(t, err)
			f.manager.Drain()

			assert.Equal(t, tc.want, p.AvailabilityStatus)
			assert.Empty(t, f.notifier.shopCalls)
			assert.Empty(t, f.notifier.adminCalls)
		})
	}
}

func TestSaveShopProductNotifiesShop(t *testing.T) {
	f := newProductFixture(t)

	p, err := f.manager.Save(context.Background(), shopDraft(0, f.shop.ID))
	require.NoError(t, err)
	f.manager.Drain()

	require.Len(t, f.notifier.shopCalls, 1)
	assert.Equal(t, p.ID, f.notifier.shopCalls[0].product.ID)
	assert.Equal(t, f.shop.ID, f.notifier.shopCalls[0].shop.ID)
	assert.Equal(t, "ada@grain.test", f.notifier.shopCalls[0].shop.Email)
	assert.Empty(t, f.notifier.adminCalls)
}

func TestSaveShopProductMissingShop(t *testing.T) {
	f := newProductFixture(t)

	p, err := f.manager.Save(context.Background(), shopDraft(0, primitive.NewObjectID()))
	require.NoError(t, err, "a missing shop must not fail the save")
	f.manager.Drain()

	assert.NotNil(t, p)
	assert.Empty(t, f.notifier.shopCalls)
	assert.Empty(t, f.notifier.adminCalls)
	assert.Equal(t, 1, errorEntries(f.logs.AllEntries()))
	assert.Contains(t, f.logs.LastEntry().Message, "not found")
}

func TestSaveWebsiteProductNotifiesAdmins(t *testing.T) {
	f := newProductFixture(t)

	p, err := f.manager.Save(context.Background(), draft(0))
	require.NoError(t, err)
	f.manager.Drain()

	require.Len(t, f.notifier.adminCalls, 1)
	assert.Equal(t, p.ID, f.notifier.adminCalls[0].ID)
	assert.Empty(t, f.notifier.shopCalls)
}

func TestSaveNotificationFailureIsLogged(t *testing.T) {
	f := newProductFixture(t)
	f.notifier.err = errors.New("sendgrid unavailable")

	p, err := f.manager.Save(context.Background(), draft(0))
	require.NoError(t, err)
	f.manager.Drain()

	assert.NotNil(t, p)
	assert.Equal(t, 1, errorEntries(f.logs.AllEntries()))
}

func TestSaveValidationError(t *testing.T) {
	f := newProductFixture(t)
	d := draft(0)
	d.Name = ""

	_, err := f.manager.Save(context.Background(), d)
	f.manager.Drain()

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("name"))

	all, err := f.products.Find(context.Background(), models.ProductFilter{}, models.Page{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.notifier.adminCalls)
}

func TestSetStockRerunsSaveRules(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.manager.Save(ctx, shopDraft(3, f.shop.ID))
	require.NoError(t, err)

	depleted, err := f.manager.SetStock(ctx, p.ID, 0)
	require.NoError(t, err)
	f.manager.Drain()
	assert.Equal(t, models.Unavailable, depleted.AvailabilityStatus)
	assert.Len(t, f.notifier.shopCalls, 1)

	restocked, err := f.manager.SetStock(ctx, p.ID, 5)
	require.NoError(t, err)
	f.manager.Drain()
	assert.Equal(t, models.Unavailable, restocked.AvailabilityStatus, "restocking does not flip the status back")
	assert.Len(t, f.notifier.shopCalls, 1)

	_, err = f.manager.SetStock(ctx, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateKeepsIdentity(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.manager.Save(ctx, draft(4))
	require.NoError(t, err)

	d := draft(4)
	d.Name = "Walnut Desk II"
	updated, err := f.manager.Update(ctx, p.ID, d)
	require.NoError(t, err)

	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Walnut Desk II", updated.Name)

	_, err = f.manager.Update(ctx, primitive.NewObjectID(), d)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindPopulatesShopByDefault(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	_, err := f.manager.Save(ctx, shopDraft(5, f.shop.ID))
	require.NoError(t, err)
	_, err = f.manager.Save(ctx, draft(5))
	require.NoError(t, err)

	views, err := f.manager.Find(ctx, models.ProductFilter{}, FindOptions{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	var withShop int
	for _, v := range views {
		assert.True(t, v.ShopJoined())
		if v.Shop != nil {
			withShop++
			assert.Equal(t, f.shop.Name, v.Shop.Name)
		}
	}
	assert.Equal(t, 1, withShop)

	bare, err := f.manager.Find(ctx, models.ProductFilter{}, FindOptions{DisablePopulate: true})
	require.NoError(t, err)
	require.Len(t, bare, 2)
	for i := range bare {
		assert.Nil(t, bare[i].Shop)
		assert.False(t, bare[i].ShopJoined())
		assert.Equal(t, views[i].Product, bare[i].Product)
	}
}

func TestFindByIDAndFindOne(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.manager.Save(ctx, shopDraft(5, f.shop.ID))
	require.NoError(t, err)

	view, err := f.manager.FindByID(ctx, p.ID, FindOptions{})
	require.NoError(t, err)
	require.NotNil(t, view.Shop)
	assert.Equal(t, f.shop.ID, view.Shop.ID)

	one, err := f.manager.FindOne(ctx, models.ProductFilter{ShopID: &f.shop.ID}, FindOptions{DisablePopulate: true})
	require.NoError(t, err)
	assert.Nil(t, one.Shop)

	_, err = f.manager.FindByID(ctx, primitive.NewObjectID(), FindOptions{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPopulateShopsIsIdempotent(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	_, err := f.manager.Save(ctx, shopDraft(5, f.shop.ID))
	require.NoError(t, err)
	_, err = f.manager.Save(ctx, shopDraft(5, primitive.NewObjectID()))
	require.NoError(t, err)

	views, err := f.manager.Find(ctx, models.ProductFilter{}, FindOptions{})
	require.NoError(t, err)
	require.Equal(t, int32(1), f.shops.batches.Load())

	before := make([]models.ProductView, len(views))
	copy(before, views)

	require.NoError(t, f.manager.PopulateShops(ctx, views))
	require.NoError(t, f.manager.PopulateShops(ctx, views))
	assert.Equal(t, int32(1), f.shops.batches.Load(), "joined views must not be looked up again")
	assert.Equal(t, before, views)
}
