package domain

import (
	"context"
	"time"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	// FindByCategory matches category against both the category and the
	// subcategory field.
	FindByCategory(ctx context.Context, category string) ([]*Listing, error)
	FindByOwner(ctx context.Context, ownerEmail string) ([]*Listing, error)
	SearchByTitle(ctx context.Context, query string) ([]*Listing, error)
	// SetPromotion opens a promotion window on the listing. It reports
	// whether a document was matched: a promote racing a delete matches
	// nothing and is not an error.
	SetPromotion(ctx context.Context, id string, start, end time.Time, paymentID, orderID string) (bool, error)
	// ExpirePromotions clears IsPromoted on every listing whose window
	// elapsed before now, in one batch write. Returns the number of
	// listings rewritten.
	ExpirePromotions(ctx context.Context, now time.Time) (int64, error)
}

type WishlistRepository interface {
	// Add fails with ErrDuplicateWishlistEntry when the (user, listing)
	// pair already exists.
	Add(ctx context.Context, entry *WishlistEntry) error
	// Remove is idempotent: removing an absent entry is not an error.
	Remove(ctx context.Context, userEmail, listingID string) error
	RemoveByListing(ctx context.Context, listingID string) error
	Exists(ctx context.Context, userEmail, listingID string) (bool, error)
	FindByUser(ctx context.Context, userEmail string) ([]*WishlistEntry, error)
}

// MediaStorage is the media CDN collaborator. Release failures during listing
// deletion are logged, never propagated.
type MediaStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	Release(ctx context.Context, fileURL string) error
}
