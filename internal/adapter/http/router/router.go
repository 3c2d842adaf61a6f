package router

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/adapter/http/handler"
	"github.com/fuisonguest/retrand/internal/adapter/http/middleware"
)

// New assembles the full route table. Paths are kept compatible with the
// historical frontend.
func New(
	listings *handler.ListingHandler,
	promotions *handler.PromotionHandler,
	wishlist *handler.WishlistHandler,
	moderationH *handler.ModerationHandler,
	jwtSecret string,
	logger *zap.Logger,
) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Tracing)
	mux.Use(middleware.Logger(logger))

	// Routes that require a signed-in requester.
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, logger))

		r.Post("/add_product", listings.HandleAddProduct)
		r.Get("/myads_view", listings.HandleMyAds)
		r.Delete("/myads_delete/{id}", listings.HandleDeleteAd)
		r.Post("/previewad/{id}", listings.HandlePreviewAd)

		r.Post("/update-promotion-status", promotions.HandleUpdatePromotionStatus)

		r.Post("/wishlist/add", wishlist.HandleAdd)
		r.Get("/wishlist", wishlist.HandleList)
		r.Get("/wishlist/check/{productId}", wishlist.HandleCheck)
		r.Delete("/wishlist/remove/{productId}", wishlist.HandleRemove)
	})

	// Public routes.
	mux.Post("/previewad/notloggedin/{id}", listings.HandlePreviewAdPublic)
	mux.Get("/getProducts", listings.HandleGetProducts)
	mux.Get("/getProductsbyCategory/{category}", listings.HandleGetProductsByCategory)
	mux.Get("/search", listings.HandleSearch)
	mux.Get("/getProductsbyemail", listings.HandleGetProductsByEmail)
	mux.Post("/moderate-image", moderationH.HandleModerateImage)

	return mux
}
