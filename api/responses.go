package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/storefront/models"
	"github.com/raushankrgupta/storefront/repository"
	"github.com/raushankrgupta/storefront/services"
	"github.com/raushankrgupta/storefront/utils"
)

// respondServiceError maps manager errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, logger *strings.Builder, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.AddToLogMessage(logger, verr.Error())
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondError(w, logger, "Not found", http.StatusNotFound)
	default:
		utils.AddToLogMessage(logger, err.Error())
		utils.RespondError(w, logger, "Internal server error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(r.PathValue("id"))
}

const (
	defaultLimit = 10
	maxLimit     = 100
	maxPage      = math.MaxInt32
)

// findOptions reads autoPopulate and the page/limit pagination parameters.
func findOptions(r *http.Request) services.FindOptions {
	q := r.URL.Query()

	page := 1
	limit := defaultLimit
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = min(p, maxPage)
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		limit = min(l, maxLimit)
	}

	return services.FindOptions{
		DisablePopulate: q.Get("autoPopulate") == "false",
		Page: models.Page{
			Limit: int64(limit),
			Skip:  int64(page-1) * int64(limit),
		},
	}
}
