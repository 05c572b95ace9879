package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/storefront/utils"
)

// GetShopHandler returns a shop by id
func (h *Handler) GetShopHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Shop API]")

	id, err := pathID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid shop ID", http.StatusBadRequest)
		return
	}

	shop, err := h.Shops.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, shop)
}
