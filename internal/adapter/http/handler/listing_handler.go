package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/adapter/http/middleware"
	"github.com/fuisonguest/retrand/internal/listing/domain"
	"github.com/fuisonguest/retrand/internal/listing/usecase"
)

// ListingHandler serves the listing CRUD surface and the browse feed.
type ListingHandler struct {
	listings *usecase.ListingUsecase
	feed     *usecase.FeedUsecase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, feed *usecase.FeedUsecase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		feed:     feed,
		validate: validator.New(),
		logger:   logger,
	}
}

type vehiclePayload struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     string `json:"year"`
	FuelType string `json:"fuelType"`
}

type extrasPayload struct {
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      string `json:"year"`
	Condition string `json:"condition"`
}

type addProductRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Address       []string        `json:"address"`
	Price         string          `json:"price"`
	Name          string          `json:"name"`
	Image         string          `json:"image"`
	Category      string          `json:"catagory" validate:"required"`
	Subcategory   string          `json:"subcatagory" validate:"required"`
	VehicleData   *vehiclePayload `json:"vehicleData"`
	CategoryData  *extrasPayload  `json:"categoryData"`
	UploadedFiles []string        `json:"uploadedFiles"`
}

type listingResponse struct {
	ID                 string          `json:"_id"`
	UserEmail          string          `json:"useremail"`
	Title              string          `json:"title,omitempty"`
	Description        string          `json:"description,omitempty"`
	Address            []string        `json:"address,omitempty"`
	Price              string          `json:"price,omitempty"`
	Owner              string          `json:"owner,omitempty"`
	OwnerPicture       string          `json:"ownerpicture,omitempty"`
	Category           string          `json:"catagory"`
	Subcategory        string          `json:"subcatagory"`
	Photos             []string        `json:"photos,omitempty"`
	VehicleData        *vehiclePayload `json:"vehicleData,omitempty"`
	CategoryData       *extrasPayload  `json:"categoryData,omitempty"`
	IsPromoted         bool            `json:"isPromoted"`
	PromotionStartDate *time.Time      `json:"promotionStartDate,omitempty"`
	PromotionEndDate   *time.Time      `json:"promotionEndDate,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	resp := listingResponse{
		ID:                 l.ID,
		UserEmail:          l.OwnerEmail,
		Title:              l.Title,
		Description:        l.Description,
		Address:            l.Address,
		Price:              l.Price,
		Owner:              l.OwnerName,
		OwnerPicture:       l.OwnerPicture,
		Category:           l.Category,
		Subcategory:        l.Subcategory,
		Photos:             l.Photos,
		IsPromoted:         l.IsPromoted,
		PromotionStartDate: l.PromotionStart,
		PromotionEndDate:   l.PromotionEnd,
		CreatedAt:          l.CreatedAt,
	}
	if l.Vehicle != nil {
		resp.VehicleData = &vehiclePayload{
			Brand:    l.Vehicle.Brand,
			Model:    l.Vehicle.Model,
			Year:     l.Vehicle.Year,
			FuelType: l.Vehicle.FuelType,
		}
	}
	if l.Extras != nil {
		resp.CategoryData = &extrasPayload{
			Brand:     l.Extras.Brand,
			Model:     l.Extras.Model,
			Year:      l.Extras.Year,
			Condition: l.Extras.Condition,
		}
	}
	return resp
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	resp := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, toListingResponse(l))
	}
	return resp
}

// HandleAddProduct creates a listing owned by the authenticated requester.
func (h *ListingHandler) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Message: "Category and subcategory are required"})
		return
	}

	in := usecase.CreateListingInput{
		OwnerEmail:   requester,
		OwnerName:    req.Name,
		OwnerPicture: req.Image,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Address:      req.Address,
		Photos:       req.UploadedFiles,
	}
	if req.VehicleData != nil {
		in.Vehicle = &domain.VehicleDetails{
			Brand:    req.VehicleData.Brand,
			Model:    req.VehicleData.Model,
			Year:     req.VehicleData.Year,
			FuelType: req.VehicleData.FuelType,
		}
	}
	if req.CategoryData != nil {
		in.Extras = &domain.CategoryExtras{
			Brand:     req.CategoryData.Brand,
			Model:     req.CategoryData.Model,
			Year:      req.CategoryData.Year,
			Condition: req.CategoryData.Condition,
		}
	}

	if _, err := h.listings.CreateListing(r.Context(), in); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "The product has been saved successfully.",
	})
}

// HandleMyAds lists the authenticated requester's own listings.
func (h *ListingHandler) HandleMyAds(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	listings, err := h.listings.ListByOwner(r.Context(), requester)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponses(listings))
}

// HandleDeleteAd deletes one of the requester's listings and echoes the
// removed document, matching the historical contract.
func (h *ListingHandler) HandleDeleteAd(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	listing, err := h.listings.DeleteListing(r.Context(), chi.URLParam(r, "id"), requester)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponse(listing))
}

type previewResponse struct {
	Product listingResponse `json:"product"`
	Own     *bool           `json:"own,omitempty"`
}

// HandlePreviewAd fetches a listing plus an ownership flag for the viewer.
func (h *ListingHandler) HandlePreviewAd(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.RequesterEmail(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	listing, err := h.listings.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	own := listing.OwnerEmail == requester
	writeJSON(w, h.logger, http.StatusOK, previewResponse{Product: toListingResponse(listing), Own: &own})
}

// HandlePreviewAdPublic is the unauthenticated preview.
func (h *ListingHandler) HandlePreviewAdPublic(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, previewResponse{Product: toListingResponse(listing)})
}

// HandleGetProducts serves the ranked feed; the expiry sweep runs first.
func (h *ListingHandler) HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	listings, err := h.feed.RankedFeed(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponses(listings))
}

// HandleGetProductsByCategory matches both category and subcategory.
func (h *ListingHandler) HandleGetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponses(listings))
}

// HandleSearch is a case-insensitive title substring search.
func (h *ListingHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.SearchByTitle(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponses(listings))
}

// HandleGetProductsByEmail lists a seller's listings for their public profile.
func (h *ListingHandler) HandleGetProductsByEmail(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.ListByOwner(r.Context(), r.URL.Query().Get("useremail"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toListingResponses(listings))
}
