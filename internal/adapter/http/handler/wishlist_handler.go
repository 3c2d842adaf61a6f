package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/adapter/http/middleware"
	"github.com/fuisonguest/retrand/internal/listing/usecase"
)

type WishlistHandler struct {
	wishlist *usecase.WishlistUsecase
	logger   *zap.Logger
}

func NewWishlistHandler(wishlist *usecase.WishlistUsecase, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

type wishlistAddRequest struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req wishlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "Product ID is required"})
		return
	}

	if err := h.wishlist.Add(r.Context(), requester, req.ProductID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Added to wishlist successfully"})
}

// HandleList returns the requester's wishlist joined against the listing
// store; the badge count in the UI is the length of this array.
func (h *WishlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	listings, err := h.wishlist.ListForUser(r.Context(), requester)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponses(listings))
}

func (h *WishlistHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	inWishlist, err := h.wishlist.Contains(r.Context(), requester, chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]bool{"inWishlist": inWishlist})
}

func (h *WishlistHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.wishlist.Remove(r.Context(), requester, chi.URLParam(r, "productId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Removed from wishlist successfully"})
}
