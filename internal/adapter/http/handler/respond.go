package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// writeError maps domain failures onto HTTP statuses. Anything unrecognized
// is an opaque 500: upstream details never leak to callers.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		writeJSON(w, logger, http.StatusNotFound, errorResponse{Message: "Product not found"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, logger, http.StatusForbidden, errorResponse{Message: "You do not own this product"})
	case errors.Is(err, domain.ErrDuplicateWishlistEntry):
		writeJSON(w, logger, http.StatusConflict, errorResponse{Message: "Product already in wishlist"})
	case errors.Is(err, domain.ErrPaymentFailed):
		writeJSON(w, logger, http.StatusPaymentRequired, errorResponse{Message: "Payment could not be confirmed"})
	case errors.Is(err, domain.ErrInvalidListingData):
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Message: "Category and subcategory are required"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Message: "Server Error"})
	}
}
