package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

type fakeListingRepo struct {
	listings map[string]*domain.Listing
	nextID   int

	setPromotionErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*domain.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	r.nextID++
	listing.ID = fmt.Sprintf("listing-%d", r.nextID)
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return listing, nil
}

func (r *fakeListingRepo) FindAll(_ context.Context) ([]*domain.Listing, error) {
	all := make([]*domain.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		all = append(all, l)
	}
	return all, nil
}

func (r *fakeListingRepo) FindByCategory(_ context.Context, category string) ([]*domain.Listing, error) {
	var matched []*domain.Listing
	for _, l := range r.listings {
		if l.Category == category || l.Subcategory == category {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (r *fakeListingRepo) FindByOwner(_ context.Context, ownerEmail string) ([]*domain.Listing, error) {
	var matched []*domain.Listing
	for _, l := range r.listings {
		if l.OwnerEmail == ownerEmail {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (r *fakeListingRepo) SearchByTitle(_ context.Context, query string) ([]*domain.Listing, error) {
	var matched []*domain.Listing
	for _, l := range r.listings {
		if strings.Contains(strings.ToLower(l.Title), strings.ToLower(query)) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (r *fakeListingRepo) SetPromotion(_ context.Context, id string, start, end time.Time, paymentID, orderID string) (bool, error) {
	if r.setPromotionErr != nil {
		return false, r.setPromotionErr
	}
	listing, ok := r.listings[id]
	if !ok {
		return false, nil
	}
	listing.IsPromoted = true
	listing.PromotionStart = &start
	listing.PromotionEnd = &end
	listing.PromotionPaymentID = paymentID
	listing.PromotionOrderID = orderID
	return true, nil
}

func (r *fakeListingRepo) ExpirePromotions(_ context.Context, now time.Time) (int64, error) {
	var expired int64
	for _, l := range r.listings {
		if l.IsPromoted && l.PromotionEnd != nil && l.PromotionEnd.Before(now) {
			l.IsPromoted = false
			expired++
		}
	}
	return expired, nil
}

func (r *fakeListingRepo) add(listing *domain.Listing) *domain.Listing {
	r.nextID++
	if listing.ID == "" {
		listing.ID = fmt.Sprintf("listing-%d", r.nextID)
	}
	r.listings[listing.ID] = listing
	return listing
}

type fakeWishlistRepo struct {
	entries map[string]*domain.WishlistEntry
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{entries: make(map[string]*domain.WishlistEntry)}
}

func wishlistKey(userEmail, listingID string) string {
	return userEmail + "|" + listingID
}

func (r *fakeWishlistRepo) Add(_ context.Context, entry *domain.WishlistEntry) error {
	key := wishlistKey(entry.UserEmail, entry.ListingID)
	if _, ok := r.entries[key]; ok {
		return domain.ErrDuplicateWishlistEntry
	}
	entry.ID = key
	r.entries[key] = entry
	return nil
}

func (r *fakeWishlistRepo) Remove(_ context.Context, userEmail, listingID string) error {
	delete(r.entries, wishlistKey(userEmail, listingID))
	return nil
}

func (r *fakeWishlistRepo) RemoveByListing(_ context.Context, listingID string) error {
	for key, entry := range r.entries {
		if entry.ListingID == listingID {
			delete(r.entries, key)
		}
	}
	return nil
}

func (r *fakeWishlistRepo) Exists(_ context.Context, userEmail, listingID string) (bool, error) {
	_, ok := r.entries[wishlistKey(userEmail, listingID)]
	return ok, nil
}

func (r *fakeWishlistRepo) FindByUser(_ context.Context, userEmail string) ([]*domain.WishlistEntry, error) {
	var matched []*domain.WishlistEntry
	for _, entry := range r.entries {
		if entry.UserEmail == userEmail {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) GetListing(context.Context, string) (*domain.Listing, error) { return nil, nil }
func (c *fakeCache) SetListing(context.Context, *domain.Listing) error           { return nil }
func (c *fakeCache) DeleteListing(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

type fakePublisher struct {
	subjects []string
}

func (p *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

type fakeStorage struct {
	released   []string
	releaseErr error
}

func (s *fakeStorage) Upload(_ context.Context, fileName string, _ []byte) (string, error) {
	return "https://media.local/bucket/" + fileName, nil
}

func (s *fakeStorage) Release(_ context.Context, fileURL string) error {
	s.released = append(s.released, fileURL)
	return s.releaseErr
}

type fakeMailer struct {
	created  []string
	receipts []string
}

func (m *fakeMailer) SendListingCreatedEmail(toEmail, _ string) error {
	m.created = append(m.created, toEmail)
	return nil
}

func (m *fakeMailer) SendPromotionReceiptEmail(toEmail, _ string, _ time.Time) error {
	m.receipts = append(m.receipts, toEmail)
	return nil
}

type fakeVerifier struct {
	err   error
	calls int
}

func (v *fakeVerifier) Verify(domain.PaymentConfirmation) error {
	v.calls++
	return v.err
}

type fixture struct {
	repo      *fakeListingRepo
	wishlists *fakeWishlistRepo
	storage   *fakeStorage
	cache     *fakeCache
	events    *fakePublisher
	mailer    *fakeMailer
	verifier  *fakeVerifier

	listings   *ListingUsecase
	promotions *PromotionUsecase
	feed       *FeedUsecase
	wishlist   *WishlistUsecase
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newFakeListingRepo(),
		wishlists: newFakeWishlistRepo(),
		storage:   &fakeStorage{},
		cache:     &fakeCache{},
		events:    &fakePublisher{},
		mailer:    &fakeMailer{},
		verifier:  &fakeVerifier{},
	}
	logger := zap.NewNop()
	f.listings = NewListingUsecase(f.repo, f.wishlists, f.storage, f.cache, f.events, f.mailer, logger)
	f.promotions = NewPromotionUsecase(f.repo, f.verifier, f.cache, f.events, f.mailer, false, logger)
	f.feed = NewFeedUsecase(f.repo, logger)
	f.wishlist = NewWishlistUsecase(f.wishlists, f.repo, logger)
	return f
}

// setClock pins every usecase to the same instant.
func (f *fixture) setClock(t time.Time) {
	now := func() time.Time { return t }
	f.listings.now = now
	f.promotions.now = now
	f.feed.now = now
	f.wishlist.now = now
}
