package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/utils"
)

// StockRequest represents the payload for a stock update
type StockRequest struct {
	StockQuantity *int `json:"stock_quantity"`
}

// CreateProductHandler validates and stores a new product
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Product API]")

	var draft models.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if h.Images != nil && h.MirrorImages && len(draft.Images) > 0 {
		draft.Images = h.Images.MirrorImages(r.Context(), draft.Images, "product_images")
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Mirrored %d images", len(draft.Images)))
	}

	product, err := h.Products.Save(r.Context(), draft)
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Product %s saved", product.ID.Hex()))
	view := models.ProductView{Product: *product}
	h.presign(r, &view)
	utils.RespondJSON(w, http.StatusCreated, view)
}

// ListProductsHandler lists products matching the query filters
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[List Products API]")

	filter, err := productFilter(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	views, err := h.Products.Find(r.Context(), filter, findOptions(r))
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	for i := range views {
		h.presign(r, &views[i])
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returned %d products", len(views)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"products": views})
}

// GetProductHandler returns a single product
func (h *Handler) GetProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Product API]")

	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid product ID", http.StatusBadRequest)
		return
	}

	view, err := h.Products.FindByID(r.Context(), id, findOptions(r))
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	h.presign(r, view)
	utils.RespondJSON(w, http.StatusOK, view)
}

// UpdateProductHandler replaces a product with the request body
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Update Product API]")

	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid product ID", http.StatusBadRequest)
		return
	}

	var draft models.ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	product, err := h.Products.Update(r.Context(), id, draft)
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	view := models.ProductView{Product: *product}
	h.presign(r, &view)
	utils.RespondJSON(w, http.StatusOK, view)
}

// SetStockHandler overwrites the stock level of a product
func (h *Handler) SetStockHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Set Stock API]")

	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid product ID", http.StatusBadRequest)
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StockQuantity == nil {
		utils.RespondError(w, &logMessageBuilder, "stock_quantity is required", http.StatusBadRequest)
		return
	}

	product, err := h.Products.SetStock(r.Context(), id, *req.StockQuantity)
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Stock of %s set to %d (%s)", id.Hex(), product.StockQuantity, product.AvailabilityStatus))
	view := models.ProductView{Product: *product}
	h.presign(r, &view)
	utils.RespondJSON(w, http.StatusOK, view)
}

// presign swaps stored image keys for short-lived URLs in a response.
func (h *Handler) presign(r *http.Request, view *models.ProductView) {
	if h.Images == nil {
		return
	}
	view.Images = h.Images.PresignImageURLs(r.Context(), view.Images)
}

func productFilter(r *http.Request) (models.ProductFilter, error) {
	q := r.URL.Query()
	filter := models.ProductFilter{
		SourceType:         models.SourceType(q.Get("sourceType")),
		Category:           models.Category(q.Get("category")),
		Brand:              q.Get("brand"),
		AvailabilityStatus: models.AvailabilityStatus(q.Get("availability_status")),
	}

	if raw := q.Get("shopId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid shopId")
		}
		filter.ShopID = &id
	}
	for key, dst := range map[string]**float64{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid %s", key)
		}
		*dst = &v
	}
	return filter, nil
}
