package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

// FeedUsecase produces the ordered browse feed: promoted-and-current listings
// first, then everything else newest-first.
type FeedUsecase struct {
	repo   domain.ListingRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewFeedUsecase(repo domain.ListingRepository, logger *zap.Logger) *FeedUsecase {
	return &FeedUsecase{repo: repo, logger: logger, now: time.Now}
}

// RankedFeed sweeps expired promotions, then returns all listings ordered by
// (promoted desc, createdAt desc). After the sweep no returned listing is
// flagged promoted with an elapsed window.
func (uc *FeedUsecase) RankedFeed(ctx context.Context) ([]*domain.Listing, error) {
	expired, err := uc.repo.ExpirePromotions(ctx, uc.now())
	if err != nil {
		uc.logger.Error("promotion expiry sweep failed", zap.Error(err))
		return nil, err
	}
	if expired > 0 {
		uc.logger.Info("expired promotions cleared", zap.Int64("count", expired))
	}

	listings, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to load feed", zap.Error(err))
		return nil, err
	}
	rankListings(listings)
	return listings, nil
}

func rankListings(listings []*domain.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].IsPromoted != listings[j].IsPromoted {
			return listings[i].IsPromoted
		}
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}
