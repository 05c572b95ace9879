package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/repository"
	"github.com/raushankrgupta/storefront/services"
	"github.com/raushankrgupta/storefront/utils"
)

// WishlistRequest represents the payload for adding a product to the wishlist
type WishlistRequest struct {
	ProductID string `json:"product_id"`
}

// AddWishlistHandler saves a product to the caller's wishlist
func (h *Handler) AddWishlistHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Add Wishlist API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req WishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// An empty product_id stays the zero id and is rejected by validation.
	var productID primitive.ObjectID
	if req.ProductID != "" {
		productID, err = primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid product ID", http.StatusBadRequest)
			return
		}
	}

	item, err := h.Wishlists.Save(r.Context(), models.WishlistDraft{User: userID, Product: productID})
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Wishlist item %s saved", item.ID.Hex()))
	utils.RespondJSON(w, http.StatusCreated, item)
}

// ListWishlistHandler returns the caller's wishlist
func (h *Handler) ListWishlistHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[List Wishlist API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	views, err := h.Wishlists.Find(r.Context(), models.WishlistFilter{User: &userID}, findOptions(r))
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	for i := range views {
		if doc := views[i].Product.Doc; doc != nil {
			h.presign(r, doc)
		}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"items": views})
}

// GetWishlistItemHandler returns one of the caller's wishlist items
func (h *Handler) GetWishlistItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Wishlist Item API]")

	view, ok := h.ownedWishlistItem(w, r, &logMessageBuilder, findOptions(r))
	if !ok {
		return
	}

	if doc := view.Product.Doc; doc != nil {
		h.presign(r, doc)
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// DeleteWishlistItemHandler removes one of the caller's wishlist items
func (h *Handler) DeleteWishlistItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Wishlist Item API]")

	view, ok := h.ownedWishlistItem(w, r, &logMessageBuilder, services.FindOptions{DisablePopulate: true})
	if !ok {
		return
	}

	if err := h.Wishlists.Delete(r.Context(), view.ID); err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Wishlist item removed"})
}

// ownedWishlistItem loads the item named in the path and checks that it
// belongs to the caller. Items of other users answer 404.
func (h *Handler) ownedWishlistItem(w http.ResponseWriter, r *http.Request, logger *strings.Builder, opts services.FindOptions) (*models.WishlistView, bool) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, logger, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, logger, "Invalid wishlist item ID", http.StatusBadRequest)
		return nil, false
	}

	view, err := h.Wishlists.FindByID(r.Context(), id, opts)
	if err == nil && view.User != userID {
		err = repository.ErrNotFound
	}
	if err != nil {
		respondServiceError(w, logger, err)
		return nil, false
	}
	return view, true
}
