package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/raushankrgupta/storefront/models"
)

func productDoc(id primitive.ObjectID, name string, stock int32) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "sourceType", Value: "Website"},
		{Key: "name", Value: name},
		{Key: "category", Value: "Home"},
		{Key: "price", Value: 25.5},
		{Key: "stock_quantity", Value: stock},
		{Key: "images", Value: bson.A{"desk.jpg"}},
		{Key: "availability_status", Value: "Available"},
	}
}

func TestProductStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert assigns id and timestamps", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Product{Name: "Desk"}
		require.NoError(mt, store.Insert(context.Background(), p))
		assert.False(mt, p.ID.IsZero())
		assert.False(mt, p.CreatedAt.IsZero())
		assert.Equal(mt, p.CreatedAt, p.UpdatedAt)
	})

	mt.Run("insert surfaces write errors", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := store.Insert(context.Background(), &models.Product{Name: "Desk"})
		assert.Error(mt, err)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch, productDoc(id, "Desk", 3)))

		p, err := store.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "Desk", p.Name)
		assert.Equal(mt, 3, p.StockQuantity)
		assert.Equal(mt, models.CategoryHome, p.Category)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch))

		_, err := store.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find lists every document", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch,
			productDoc(primitive.NewObjectID(), "Desk", 3),
			productDoc(primitive.NewObjectID(), "Chair", 0),
		))

		products, err := store.Find(context.Background(), models.ProductFilter{Category: models.CategoryHome}, models.Page{Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "Chair", products[1].Name)
	})

	mt.Run("replace unmatched is not found", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := store.Replace(context.Background(), &models.Product{ID: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("replace matched", func(mt *mtest.T) {
		store := NewProductStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		p := &models.Product{ID: primitive.NewObjectID()}
		require.NoError(mt, store.Replace(context.Background(), p))
		assert.False(mt, p.UpdatedAt.IsZero())
	})
}

func TestShopStoreFindByIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty ids skip the query", func(mt *mtest.T) {
		store := NewShopStore(mt.Coll)

		shops, err := store.FindByIDs(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, shops)
	})

	mt.Run("batched lookup", func(mt *mtest.T) {
		store := NewShopStore(mt.Coll)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.shops", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: a}, {Key: "name", Value: "North"}, {Key: "email", Value: "north@example.com"}},
			bson.D{{Key: "_id", Value: b}, {Key: "name", Value: "South"}, {Key: "email", Value: "south@example.com"}},
		))

		shops, err := store.FindByIDs(context.Background(), []primitive.ObjectID{a, b, primitive.NewObjectID()})
		require.NoError(mt, err)
		require.Len(mt, shops, 2)
		assert.Equal(mt, "north@example.com", shops[0].Email)
	})
}

func TestWishlistStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by user", func(mt *mtest.T) {
		store := NewWishlistStore(mt.Coll)
		user, product := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.wishlists", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user", Value: user}, {Key: "product", Value: product}},
		))

		items, err := store.Find(context.Background(), models.WishlistFilter{User: &user}, models.Page{})
		require.NoError(mt, err)
		require.Len(mt, items, 1)
		assert.Equal(mt, product, items[0].Product)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		store := NewWishlistStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := store.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete existing", func(mt *mtest.T) {
		store := NewWishlistStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, store.Delete(context.Background(), primitive.NewObjectID()))
	})
}

func TestUserStoreFindAdmins(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("admins", func(mt *mtest.T) {
		store := NewUserStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Ops"}, {Key: "email", Value: "ops@example.com"}, {Key: "role", Value: "admin"}},
		))

		admins, err := store.FindAdmins(context.Background())
		require.NoError(mt, err)
		require.Len(mt, admins, 1)
		assert.Equal(mt, models.RoleAdmin, admins[0].Role)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates product and wishlist indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}
