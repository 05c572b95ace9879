package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raushankrgupta/storefront/utils"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when a draft does not satisfy the schema.
// Nothing is written when it occurs.
type ValidationError struct {
	Entity string       `json:"entity"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, "; "))
}

// HasField reports whether the named field was rejected.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

// Validate checks the draft against the product schema.
func (d *ProductDraft) Validate() error {
	verr := &ValidationError{Entity: "product"}
	collect(verr, utils.Validator().Struct(d))

	sourceType := SourceWebsite
	if d.SourceType != nil {
		sourceType = *d.SourceType
	}
	hasShop := d.ShopID != nil && !d.ShopID.IsZero()
	switch {
	case sourceType == SourceShop && !hasShop:
		verr.Fields = append(verr.Fields, FieldError{
			Field:   "shopId",
			Rule:    "required_if",
			Message: "shopId is required when sourceType is Shop",
		})
	case sourceType != SourceShop && hasShop:
		verr.Fields = append(verr.Fields, FieldError{
			Field:   "shopId",
			Rule:    "excluded_unless",
			Message: "shopId is only allowed when sourceType is Shop",
		})
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Validate checks that both references are present.
func (d *WishlistDraft) Validate() error {
	verr := &ValidationError{Entity: "wishlist"}
	collect(verr, utils.Validator().Struct(d))
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func collect(verr *ValidationError, err error) {
	if err == nil {
		return
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		verr.Fields = append(verr.Fields, FieldError{Rule: "invalid", Message: err.Error()})
		return
	}
	for _, fe := range ves {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
