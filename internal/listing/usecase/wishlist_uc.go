package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

type WishlistUsecase struct {
	entries  domain.WishlistRepository
	listings domain.ListingRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewWishlistUsecase(entries domain.WishlistRepository, listings domain.ListingRepository, logger *zap.Logger) *WishlistUsecase {
	return &WishlistUsecase{entries: entries, listings: listings, logger: logger, now: time.Now}
}

// Add saves a listing to the user's wishlist. The listing must exist, and a
// second add for the same pair fails with ErrDuplicateWishlistEntry.
func (uc *WishlistUsecase) Add(ctx context.Context, userEmail, listingID string) error {
	if _, err := uc.listings.FindByID(ctx, listingID); err != nil {
		return err
	}

	entry := &domain.WishlistEntry{
		UserEmail: userEmail,
		ListingID: listingID,
		CreatedAt: uc.now(),
	}
	if err := uc.entries.Add(ctx, entry); err != nil {
		if !errors.Is(err, domain.ErrDuplicateWishlistEntry) {
			uc.logger.Error("failed to add wishlist entry",
				zap.String("user", userEmail),
				zap.String("listing_id", listingID),
				zap.Error(err))
		}
		return err
	}
	uc.logger.Info("wishlist entry added", zap.String("user", userEmail), zap.String("listing_id", listingID))
	return nil
}

// Remove is idempotent: removing a listing that is not wishlisted succeeds.
func (uc *WishlistUsecase) Remove(ctx context.Context, userEmail, listingID string) error {
	if err := uc.entries.Remove(ctx, userEmail, listingID); err != nil {
		uc.logger.Error("failed to remove wishlist entry",
			zap.String("user", userEmail),
			zap.String("listing_id", listingID),
			zap.Error(err))
		return err
	}
	return nil
}

func (uc *WishlistUsecase) Contains(ctx context.Context, userEmail, listingID string) (bool, error) {
	return uc.entries.Exists(ctx, userEmail, listingID)
}

// ListForUser resolves the user's wishlist against the listing store.
// Entries whose listing has since been deleted are skipped; deletion also
// cascades, so these only appear in a narrow race window.
func (uc *WishlistUsecase) ListForUser(ctx context.Context, userEmail string) ([]*domain.Listing, error) {
	entries, err := uc.entries.FindByUser(ctx, userEmail)
	if err != nil {
		uc.logger.Error("failed to load wishlist", zap.String("user", userEmail), zap.Error(err))
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(entries))
	for _, entry := range entries {
		listing, err := uc.listings.FindByID(ctx, entry.ListingID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				uc.logger.Warn("wishlist entry references a deleted listing",
					zap.String("user", userEmail),
					zap.String("listing_id", entry.ListingID))
				continue
			}
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
