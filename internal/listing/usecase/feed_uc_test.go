package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

func promotedUntil(end time.Time) (bool, *time.Time) {
	return true, &end
}

func TestRankedFeed_PromotedFirstThenRecency(t *testing.T) {
	f := newFixture()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	f.setClock(now)

	t1 := now.Add(-72 * time.Hour)
	t2 := now.Add(-48 * time.Hour)
	t3 := now.Add(-24 * time.Hour)

	activeEnd := now.Add(10 * 24 * time.Hour)
	expiredEnd := now.Add(-1 * time.Hour)

	a := &domain.Listing{ID: "a", Title: "A", CreatedAt: t1}
	a.IsPromoted, a.PromotionEnd = promotedUntil(activeEnd)
	b := &domain.Listing{ID: "b", Title: "B", CreatedAt: t2}
	c := &domain.Listing{ID: "c", Title: "C", CreatedAt: t3}
	c.IsPromoted, c.PromotionEnd = promotedUntil(expiredEnd)

	f.repo.add(a)
	f.repo.add(b)
	f.repo.add(c)

	feed, err := f.feed.RankedFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// A keeps its boost; C's promotion expired, so it drops back into the
	// recency ordering where it is newest.
	assert.Equal(t, []string{"a", "c", "b"}, []string{feed[0].ID, feed[1].ID, feed[2].ID})
	assert.False(t, feed[1].IsPromoted)
}

func TestRankedFeed_SweepInvariant(t *testing.T) {
	f := newFixture()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	f.setClock(now)

	expired := &domain.Listing{ID: "x", CreatedAt: now.Add(-time.Hour)}
	expired.IsPromoted, expired.PromotionEnd = promotedUntil(now.Add(-time.Minute))
	f.repo.add(expired)

	feed, err := f.feed.RankedFeed(context.Background())
	require.NoError(t, err)

	for _, l := range feed {
		if l.IsPromoted {
			require.NotNil(t, l.PromotionEnd)
			assert.False(t, l.PromotionEnd.Before(now))
		}
	}
	// The window itself is kept as a historical record.
	assert.NotNil(t, feed[0].PromotionEnd)
}

func TestRankedFeed_SweepIsIdempotent(t *testing.T) {
	f := newFixture()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	f.setClock(now)

	expired := &domain.Listing{ID: "x", CreatedAt: now.Add(-time.Hour)}
	expired.IsPromoted, expired.PromotionEnd = promotedUntil(now.Add(-time.Minute))
	f.repo.add(expired)

	first, err := f.repo.ExpirePromotions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := f.repo.ExpirePromotions(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, second)

	stored, err := f.repo.FindByID(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, stored.IsPromoted)
}

// Full promotion lifecycle: create, promote, rank first, expire, rank by
// recency again.
func TestPromotionLifecycle(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	f.setClock(start)

	car, err := f.listings.CreateListing(context.Background(), CreateListingInput{
		OwnerEmail:  "seller@example.com",
		Title:       "Family Sedan",
		Category:    "Cars",
		Subcategory: "Sedan",
	})
	require.NoError(t, err)

	byCategory, err := f.listings.ListByCategory(context.Background(), "Sedan")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	// A fresher, unpromoted listing to compete against.
	f.setClock(start.Add(time.Hour))
	_, err = f.listings.CreateListing(context.Background(), CreateListingInput{
		OwnerEmail:  "other@example.com",
		Title:       "Mountain Bike",
		Category:    "Bikes",
		Subcategory: "MTB",
	})
	require.NoError(t, err)

	_, err = f.promotions.ConfirmPromotion(context.Background(), car.ID, "seller@example.com", validConfirmation)
	require.NoError(t, err)

	feed, err := f.feed.RankedFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, car.ID, feed[0].ID)

	// 31 days later the promotion has lapsed; recency alone decides.
	f.setClock(start.Add(31 * 24 * time.Hour))
	feed, err = f.feed.RankedFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, car.ID, feed[1].ID)
	assert.False(t, feed[1].IsPromoted)
}
