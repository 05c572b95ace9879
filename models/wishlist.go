package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem pairs a user with a product they saved
type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WishlistDraft is the write shape of a wishlist entry
type WishlistDraft struct {
	User    primitive.ObjectID `json:"user" validate:"required"`
	Product primitive.ObjectID `json:"product" validate:"required"`
}

// Build converts the draft into a storable item.
func (d *WishlistDraft) Build() WishlistItem {
	return WishlistItem{User: d.User, Product: d.Product}
}

// WishlistView is a wishlist item whose product reference may be resolved.
type WishlistView struct {
	ID        primitive.ObjectID `json:"id"`
	User      primitive.ObjectID `json:"user"`
	Product   Ref[ProductView]   `json:"product"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewWishlistView wraps a stored item with an unresolved product ref.
func NewWishlistView(item WishlistItem) WishlistView {
	return WishlistView{
		ID:        item.ID,
		User:      item.User,
		Product:   NewRef[ProductView](item.Product),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
