package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SourceType tells whether a product belongs to the platform catalog or to a partner shop.
type SourceType string

const (
	SourceWebsite SourceType = "Website"
	SourceShop    SourceType = "Shop"
)

// Category is the fixed product taxonomy.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home"
	CategoryBeauty      Category = "Beauty"
	CategorySports      Category = "Sports"
	CategoryToys        Category = "Toys"
	CategoryBooks       Category = "Books"
	CategoryGrocery     Category = "Grocery"
	CategoryAutomotive  Category = "Automotive"
	CategoryHealth      Category = "Health"
	CategoryJewelry     Category = "Jewelry"
	CategoryOther       Category = "Other"
)

// AvailabilityStatus reflects whether a product can currently be ordered.
type AvailabilityStatus string

const (
	Available    AvailabilityStatus = "Available"
	Unavailable  AvailabilityStatus = "Unavailable"
	PreOrder     AvailabilityStatus = "PreOrder"
	Discontinued AvailabilityStatus = "Discontinued"
)

// Defaults applied to fields a draft leaves out.
const (
	DefaultAverageRating  = 4.5
	DefaultShippingMethod = "standard"
	DefaultReturnPolicy   = "30-days return policy"
)

// Product is the stored catalog document
type Product struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SourceType         SourceType          `bson:"sourceType" json:"sourceType"`
	ShopID             *primitive.ObjectID `bson:"shopId,omitempty" json:"shopId,omitempty"`
	Name               string              `bson:"name" json:"name"`
	Description        string              `bson:"description" json:"description"`
	Category           Category            `bson:"category" json:"category"`
	Brand              string              `bson:"brand" json:"brand"`
	Price              float64             `bson:"price" json:"price"`
	Discount           float64             `bson:"discount" json:"discount"`
	DiscountCodes      []string            `bson:"discountCodes" json:"discountCodes"`
	StockQuantity      int                 `bson:"stock_quantity" json:"stock_quantity"`
	Images             []string            `bson:"images" json:"images"`
	Videos             []string            `bson:"videos,omitempty" json:"videos,omitempty"`
	Color              string              `bson:"color,omitempty" json:"color,omitempty"`
	Material           string              `bson:"material" json:"material"`
	AverageRating      float64             `bson:"averageRating" json:"averageRating"`
	TotalReviews       int                 `bson:"totalReviews" json:"totalReviews"`
	ShippingCost       *float64            `bson:"shipping_cost,omitempty" json:"shipping_cost,omitempty"`
	ShippingMethods    []string            `bson:"shipping_methods" json:"shipping_methods"`
	AvailabilityStatus AvailabilityStatus  `bson:"availability_status" json:"availability_status"`
	Manufacturer       string              `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Supplier           string              `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Freezed            bool                `bson:"freezed" json:"freezed"`
	ReturnPolicy       string              `bson:"return_policy" json:"return_policy"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsOutOfStock reports whether the stock is depleted.
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}

// ApplyAvailabilityRule forces Unavailable when stock is depleted. A positive
// stock leaves the status untouched.
func (p *Product) ApplyAvailabilityRule() {
	if p.IsOutOfStock() {
		p.AvailabilityStatus = Unavailable
	}
}

// ProductDraft is the write shape of a product. Pointer fields separate
// "not supplied" (default applies) from an explicit zero value.
type ProductDraft struct {
	SourceType         *SourceType         `json:"sourceType" validate:"omitempty,oneof=Website Shop"`
	ShopID             *primitive.ObjectID `json:"shopId"`
	Name               string              `json:"name" validate:"required,not_blank"`
	Description        string              `json:"description" validate:"required,not_blank"`
	Category           Category            `json:"category" validate:"required,oneof=Electronics Fashion Home Beauty Sports Toys Books Grocery Automotive Health Jewelry Other"`
	Brand              string              `json:"brand" validate:"required,not_blank"`
	Price              *float64            `json:"price" validate:"required,gte=0"`
	Discount           *float64            `json:"discount" validate:"omitempty,gte=0"`
	DiscountCodes      []string            `json:"discountCodes" validate:"omitempty,dive,not_blank"`
	StockQuantity      *int                `json:"stock_quantity" validate:"required"`
	Images             []string            `json:"images" validate:"required,min=1,dive,not_blank"`
	Videos             []string            `json:"videos"`
	Color              string              `json:"color"`
	Material           string              `json:"material" validate:"required,not_blank"`
	AverageRating      *float64            `json:"averageRating" validate:"omitempty,gte=0,lte=5"`
	TotalReviews       *int                `json:"totalReviews" validate:"omitempty,gte=0"`
	ShippingCost       *float64            `json:"shipping_cost" validate:"omitempty,gte=0"`
	ShippingMethods    []string            `json:"shipping_methods" validate:"omitempty,dive,not_blank"`
	AvailabilityStatus *AvailabilityStatus `json:"availability_status" validate:"omitempty,oneof=Available Unavailable PreOrder Discontinued"`
	Manufacturer       string              `json:"manufacturer"`
	Supplier           string              `json:"supplier"`
	Freezed            *bool               `json:"freezed"`
	ReturnPolicy       *string             `json:"return_policy" validate:"omitempty,not_blank"`
}

// Build turns a validated draft into a product with every default filled in.
// Identity and timestamps are left to the store.
func (d *ProductDraft) Build() Product {
	p := Product{
		SourceType:         SourceWebsite,
		Name:               d.Name,
		Description:        d.Description,
		Category:           d.Category,
		Brand:              d.Brand,
		DiscountCodes:      []string{},
		Images:             d.Images,
		Videos:             d.Videos,
		Color:              d.Color,
		Material:           d.Material,
		AverageRating:      DefaultAverageRating,
		ShippingCost:       d.ShippingCost,
		ShippingMethods:    []string{DefaultShippingMethod},
		AvailabilityStatus: Available,
		Manufacturer:       d.Manufacturer,
		Supplier:           d.Supplier,
		ReturnPolicy:       DefaultReturnPolicy,
	}
	if d.SourceType != nil {
		p.SourceType = *d.SourceType
	}
	if d.ShopID != nil && !d.ShopID.IsZero() {
		p.ShopID = d.ShopID
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Discount != nil {
		p.Discount = *d.Discount
	}
	if d.DiscountCodes != nil {
		p.DiscountCodes = d.DiscountCodes
	}
	if d.StockQuantity != nil {
		p.StockQuantity = *d.StockQuantity
	}
	if d.AverageRating != nil {
		p.AverageRating = *d.AverageRating
	}
	if d.TotalReviews != nil {
		p.TotalReviews = *d.TotalReviews
	}
	if d.ShippingMethods != nil {
		p.ShippingMethods = d.ShippingMethods
	}
	if d.AvailabilityStatus != nil {
		p.AvailabilityStatus = *d.AvailabilityStatus
	}
	if d.Freezed != nil {
		p.Freezed = *d.Freezed
	}
	if d.ReturnPolicy != nil {
		p.ReturnPolicy = *d.ReturnPolicy
	}
	return p
}

// ProductView is a product as returned by queries, with the owning shop
// attached when the join was requested and the shop exists.
type ProductView struct {
	Product
	Shop *Shop `json:"shop,omitempty"`

	shopJoined bool
}

// AttachShop records the outcome of the shop join. A nil shop means the
// referenced shop does not exist; the join still counts as done.
func (v *ProductView) AttachShop(shop *Shop) {
	v.Shop = shop
	v.shopJoined = true
}

// ShopJoined reports whether the shop join already ran for this product.
func (v *ProductView) ShopJoined() bool {
	return v.shopJoined || v.Shop != nil
}
