package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/adapter/http/middleware"
	"github.com/fuisonguest/retrand/internal/listing/domain"
	"github.com/fuisonguest/retrand/internal/listing/usecase"
)

type PromotionHandler struct {
	promotions *usecase.PromotionUsecase
	logger     *zap.Logger
}

func NewPromotionHandler(promotions *usecase.PromotionUsecase, logger *zap.Logger) *PromotionHandler {
	return &PromotionHandler{promotions: promotions, logger: logger}
}

type updatePromotionRequest struct {
	ProductID string `json:"productId"`
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
}

type updatePromotionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product listingResponse `json:"product"`
}

// HandleUpdatePromotionStatus commits a paid promotion for one of the
// requester's listings.
func (h *PromotionHandler) HandleUpdatePromotionStatus(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "Product ID is required"})
		return
	}

	listing, err := h.promotions.ConfirmPromotion(r.Context(), req.ProductID, requester, domain.PaymentConfirmation{
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, updatePromotionResponse{
		Success: true,
		Message: "Product promotion status updated successfully",
		Product: toListingResponse(listing),
	})
}
