package api

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/services"
	"github.com/raushankrgupta/storefront/utils"
)

// ImageStorage mirrors and signs product media.
type ImageStorage interface {
	MirrorImages(ctx context.Context, urls []string, folderPrefix string) []string
	PresignImageURLs(ctx context.Context, images []string) []string
}

// ShopReader loads a single shop.
type ShopReader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error)
}

// Handler serves the catalog HTTP API
type Handler struct {
	Products  *services.ProductManager
	Wishlists *services.WishlistManager
	Shops     ShopReader

	// Images is optional; without it image fields pass through untouched.
	Images       ImageStorage
	MirrorImages bool

	JWTSecret string
}

// Routes registers every endpoint and wraps them in the shared middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /products", h.CreateProductHandler)
	mux.HandleFunc("GET /products", h.ListProductsHandler)
	mux.HandleFunc("GET /products/{id}", h.GetProductHandler)
	mux.HandleFunc("PUT /products/{id}", h.UpdateProductHandler)
	mux.HandleFunc("PATCH /products/{id}/stock", h.SetStockHandler)

	mux.HandleFunc("GET /shops/{id}", h.GetShopHandler)

	mux.Handle("POST /wishlist", h.authMiddleware(http.HandlerFunc(h.AddWishlistHandler)))
	mux.Handle("GET /wishlist", h.authMiddleware(http.HandlerFunc(h.ListWishlistHandler)))
	mux.Handle("GET /wishlist/{id}", h.authMiddleware(http.HandlerFunc(h.GetWishlistItemHandler)))
	mux.Handle("DELETE /wishlist/{id}", h.authMiddleware(http.HandlerFunc(h.DeleteWishlistItemHandler)))

	return utils.LatencyMiddleware(corsMiddleware(mux))
}
