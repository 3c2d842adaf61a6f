package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

// Event subjects published on the message bus.
const (
	SubjectListingCreated  = "listing.created"
	SubjectListingDeleted  = "listing.deleted"
	SubjectListingPromoted = "listing.promoted"
)

// Cache is the read cache for single listings. A nil-safe no-op
// implementation is acceptable.
type Cache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// Publisher emits domain events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer sends best-effort notification mail to listing owners.
type Mailer interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
	SendPromotionReceiptEmail(toEmail, listingTitle string, promotedUntil time.Time) error
}

// CreateListingInput carries the sell-form payload. Category and Subcategory
// are the only required fields.
type CreateListingInput struct {
	OwnerEmail   string
	OwnerName    string
	OwnerPicture string
	Title        string
	Description  string
	Price        string
	Category     string
	Subcategory  string
	Address      []string
	Photos       []string
	Vehicle      *domain.VehicleDetails
	Extras       *domain.CategoryExtras
}

type ListingUsecase struct {
	repo      domain.ListingRepository
	wishlists domain.WishlistRepository
	storage   domain.MediaStorage
	cache     Cache
	events    Publisher
	mailer    Mailer
	logger    *zap.Logger
	now       func() time.Time
}

func NewListingUsecase(
	repo domain.ListingRepository,
	wishlists domain.WishlistRepository,
	storage domain.MediaStorage,
	cache Cache,
	events Publisher,
	mailer Mailer,
	logger *zap.Logger,
) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		wishlists: wishlists,
		storage:   storage,
		cache:     cache,
		events:    events,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *ListingUsecase) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if in.Category == "" || in.Subcategory == "" {
		return nil, domain.ErrInvalidListingData
	}

	photos := in.Photos
	if len(photos) > domain.MaxPhotos {
		photos = photos[:domain.MaxPhotos]
	}

	listing := &domain.Listing{
		OwnerEmail:   in.OwnerEmail,
		OwnerName:    in.OwnerName,
		OwnerPicture: in.OwnerPicture,
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Subcategory:  in.Subcategory,
		Address:      in.Address,
		Photos:       photos,
		Vehicle:      in.Vehicle,
		Extras:       in.Extras,
		CreatedAt:    uc.now(),
		UpdatedAt:    uc.now(),
	}
	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("failed to create listing", zap.String("owner", in.OwnerEmail), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("listing created",
		zap.String("listing_id", listing.ID),
		zap.String("owner", listing.OwnerEmail),
		zap.String("category", listing.Category))

	if err := uc.events.Publish(ctx, SubjectListingCreated, listing); err != nil {
		uc.logger.Warn("failed to publish listing.created", zap.String("listing_id", listing.ID), zap.Error(err))
	}
	if err := uc.mailer.SendListingCreatedEmail(listing.OwnerEmail, listing.Title); err != nil {
		uc.logger.Warn("failed to send listing-created mail", zap.String("listing_id", listing.ID), zap.Error(err))
	}
	return listing, nil
}

func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	if cached, err := uc.cache.GetListing(ctx, id); err != nil {
		uc.logger.Warn("listing cache read failed", zap.String("listing_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Error("failed to fetch listing", zap.String("listing_id", id), zap.Error(err))
		}
		return nil, err
	}

	if err := uc.cache.SetListing(ctx, listing); err != nil {
		uc.logger.Warn("listing cache write failed", zap.String("listing_id", id), zap.Error(err))
	}
	return listing, nil
}

// DeleteListing removes a listing after an ownership check. Media release and
// wishlist cleanup are best effort: the record's removal is the success
// criterion, everything else is logged on failure.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id, requesterEmail string) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerEmail != requesterEmail {
		uc.logger.Warn("delete refused: requester is not the owner",
			zap.String("listing_id", id),
			zap.String("owner", listing.OwnerEmail),
			zap.String("requester", requesterEmail))
		return nil, domain.ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("listing deleted", zap.String("listing_id", id), zap.String("owner", requesterEmail))

	uc.releaseMedia(ctx, listing)

	if err := uc.wishlists.RemoveByListing(ctx, id); err != nil {
		uc.logger.Warn("failed to cascade wishlist entries", zap.String("listing_id", id), zap.Error(err))
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("failed to invalidate listing cache", zap.String("listing_id", id), zap.Error(err))
	}
	if err := uc.events.Publish(ctx, SubjectListingDeleted, listing); err != nil {
		uc.logger.Warn("failed to publish listing.deleted", zap.String("listing_id", id), zap.Error(err))
	}
	return listing, nil
}

func (uc *ListingUsecase) releaseMedia(ctx context.Context, listing *domain.Listing) {
	urls := make([]string, 0, len(listing.Photos)+1)
	if listing.OwnerPicture != "" {
		urls = append(urls, listing.OwnerPicture)
	}
	urls = append(urls, listing.Photos...)
	for _, u := range urls {
		if err := uc.storage.Release(ctx, u); err != nil {
			uc.logger.Warn("failed to release media",
				zap.String("listing_id", listing.ID),
				zap.String("url", u),
				zap.Error(err))
		}
	}
}

func (uc *ListingUsecase) ListByOwner(ctx context.Context, ownerEmail string) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		uc.logger.Error("failed to list by owner", zap.String("owner", ownerEmail), zap.Error(err))
		return nil, err
	}
	return listings, nil
}

func (uc *ListingUsecase) ListByCategory(ctx context.Context, category string) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByCategory(ctx, category)
	if err != nil {
		uc.logger.Error("failed to list by category", zap.String("category", category), zap.Error(err))
		return nil, err
	}
	return listings, nil
}

// SearchByTitle performs a case-insensitive substring match on titles.
func (uc *ListingUsecase) SearchByTitle(ctx context.Context, query string) ([]*domain.Listing, error) {
	listings, err := uc.repo.SearchByTitle(ctx, query)
	if err != nil {
		uc.logger.Error("title search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return listings, nil
}
