package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

// PaymentVerifier checks the checkout provider's signed confirmation.
// A failed check must wrap domain.ErrPaymentFailed.
type PaymentVerifier interface {
	Verify(conf domain.PaymentConfirmation) error
}

// PromotionUsecase drives the NotPromoted -> Promoted -> Expired state of a
// listing. Expiry is handled lazily by FeedUsecase's sweep, not here.
type PromotionUsecase struct {
	repo     domain.ListingRepository
	verifier PaymentVerifier
	cache    Cache
	events   Publisher
	mailer   Mailer
	logger   *zap.Logger
	now      func() time.Time

	// allowUnverified keeps the legacy client-asserted payment path alive
	// for local and test setups. Deprecated; every use is logged.
	allowUnverified bool
}

func NewPromotionUsecase(
	repo domain.ListingRepository,
	verifier PaymentVerifier,
	cache Cache,
	events Publisher,
	mailer Mailer,
	allowUnverified bool,
	logger *zap.Logger,
) *PromotionUsecase {
	return &PromotionUsecase{
		repo:            repo,
		verifier:        verifier,
		cache:           cache,
		events:          events,
		mailer:          mailer,
		allowUnverified: allowUnverified,
		logger:          logger,
		now:             time.Now,
	}
}

// ConfirmPromotion opens a 30-day promotion window on the listing after an
// ownership check and payment verification. Re-confirming an already promoted
// listing resets the window; there is no stacking. A persistence failure after
// a verified payment is reported as success and logged for reconciliation,
// because the charge cannot be undone from here.
func (uc *PromotionUsecase) ConfirmPromotion(ctx context.Context, listingID, requesterEmail string, conf domain.PaymentConfirmation) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerEmail != requesterEmail {
		uc.logger.Warn("promotion refused: requester is not the owner",
			zap.String("listing_id", listingID),
			zap.String("owner", listing.OwnerEmail),
			zap.String("requester", requesterEmail))
		return nil, domain.ErrForbidden
	}

	if err := uc.checkPayment(listingID, conf); err != nil {
		return nil, err
	}

	start := uc.now()
	end := start.Add(domain.PromotionDuration)

	matched, err := uc.repo.SetPromotion(ctx, listingID, start, end, conf.PaymentID, conf.OrderID)
	switch {
	case err != nil:
		// The charge already went through; do not fail the owner's
		// request over our own persistence. Needs manual reconciliation.
		uc.logger.Error("promotion write failed after confirmed payment; reconciliation required",
			zap.String("listing_id", listingID),
			zap.String("payment_id", conf.PaymentID),
			zap.String("order_id", conf.OrderID),
			zap.Error(err))
	case !matched:
		uc.logger.Error("listing vanished during promotion; payment requires reconciliation",
			zap.String("listing_id", listingID),
			zap.String("payment_id", conf.PaymentID),
			zap.String("order_id", conf.OrderID))
	default:
		uc.logger.Info("listing promoted",
			zap.String("listing_id", listingID),
			zap.Time("promotion_end", end))
	}

	listing.IsPromoted = true
	listing.PromotionStart = &start
	listing.PromotionEnd = &end
	listing.PromotionPaymentID = conf.PaymentID
	listing.PromotionOrderID = conf.OrderID

	if err := uc.cache.DeleteListing(ctx, listingID); err != nil {
		uc.logger.Warn("failed to invalidate listing cache", zap.String("listing_id", listingID), zap.Error(err))
	}
	if err := uc.events.Publish(ctx, SubjectListingPromoted, listing); err != nil {
		uc.logger.Warn("failed to publish listing.promoted", zap.String("listing_id", listingID), zap.Error(err))
	}
	if err := uc.mailer.SendPromotionReceiptEmail(listing.OwnerEmail, listing.Title, end); err != nil {
		uc.logger.Warn("failed to send promotion receipt mail", zap.String("listing_id", listingID), zap.Error(err))
	}
	return listing, nil
}

func (uc *PromotionUsecase) checkPayment(listingID string, conf domain.PaymentConfirmation) error {
	if conf.Signature == "" && uc.allowUnverified {
		uc.logger.Warn("accepting client-asserted payment without signature (deprecated path)",
			zap.String("listing_id", listingID),
			zap.String("payment_id", conf.PaymentID))
		return nil
	}
	if err := uc.verifier.Verify(conf); err != nil {
		uc.logger.Warn("payment verification failed",
			zap.String("listing_id", listingID),
			zap.String("payment_id", conf.PaymentID),
			zap.String("order_id", conf.OrderID),
			zap.Error(err))
		return fmt.Errorf("confirm promotion: %w", err)
	}
	return nil
}
