package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page bounds a listing. Zero values mean no limit and no offset.
type Page struct {
	Limit int64
	Skip  int64
}

// ProductFilter selects products. Zero-valued fields do not constrain.
type ProductFilter struct {
	IDs                []primitive.ObjectID
	SourceType         SourceType
	ShopID             *primitive.ObjectID
	Category           Category
	Brand              string
	AvailabilityStatus AvailabilityStatus
	MinPrice           *float64
	MaxPrice           *float64
	Freezed            *bool
}

// ToBSON renders the filter as a Mongo query document.
func (f ProductFilter) ToBSON() bson.M {
	q := bson.M{}
	if len(f.IDs) > 0 {
		q["_id"] = bson.M{"$in": f.IDs}
	}
	if f.SourceType != "" {
		q["sourceType"] = f.SourceType
	}
	if f.ShopID != nil {
		q["shopId"] = *f.ShopID
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Brand != "" {
		q["brand"] = f.Brand
	}
	if f.AvailabilityStatus != "" {
		q["availability_status"] = f.AvailabilityStatus
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	if f.Freezed != nil {
		q["freezed"] = *f.Freezed
	}
	return q
}

// Matches evaluates the filter against a product in memory.
func (f ProductFilter) Matches(p Product) bool {
	if len(f.IDs) > 0 && !containsID(f.IDs, p.ID) {
		return false
	}
	if f.SourceType != "" && p.SourceType != f.SourceType {
		return false
	}
	if f.ShopID != nil && (p.ShopID == nil || *p.ShopID != *f.ShopID) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.AvailabilityStatus != "" && p.AvailabilityStatus != f.AvailabilityStatus {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Freezed != nil && p.Freezed != *f.Freezed {
		return false
	}
	return true
}

// WishlistFilter selects wishlist items.
type WishlistFilter struct {
	User    *primitive.ObjectID
	Product *primitive.ObjectID
}

func (f WishlistFilter) ToBSON() bson.M {
	q := bson.M{}
	if f.User != nil {
		q["user"] = *f.User
	}
	if f.Product != nil {
		q["product"] = *f.Product
	}
	return q
}

func (f WishlistFilter) Matches(item WishlistItem) bool {
	if f.User != nil && item.User != *f.User {
		return false
	}
	if f.Product != nil && item.Product != *f.Product {
		return false
	}
	return true
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
