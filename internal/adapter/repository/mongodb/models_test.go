package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

func TestListingDocument_PhotoSlots(t *testing.T) {
	doc := &listingDocument{}
	doc.setPhotos([]string{"u1", "u2", "u3"})

	assert.Equal(t, "u1", doc.ProductPic1)
	assert.Equal(t, "u3", doc.ProductPic3)
	assert.Empty(t, doc.ProductPic4)
	assert.Equal(t, []string{"u1", "u2", "u3"}, doc.photos())
}

func TestListingDocument_PhotoSlotsIgnoreOverflow(t *testing.T) {
	photos := make([]string, 14)
	for i := range photos {
		photos[i] = "url"
	}

	doc := &listingDocument{}
	doc.setPhotos(photos)

	assert.Len(t, doc.photos(), domain.MaxPhotos)
	assert.Equal(t, "url", doc.ProductPic12)
}

func TestListingConversion_RoundTrip(t *testing.T) {
	created := time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)
	end := created.Add(domain.PromotionDuration)

	listing := &domain.Listing{
		ID:           primitive.NewObjectID().Hex(),
		OwnerEmail:   "seller@example.com",
		OwnerName:    "Sam Seller",
		OwnerPicture: "https://media.local/bucket/owner.jpg",
		Title:        "Family Sedan",
		Price:        "350000",
		Category:     "Cars",
		Subcategory:  "Sedan",
		Address:      []string{"MG Road", "Bengaluru"},
		Photos:       []string{"https://media.local/bucket/p1.jpg"},
		Vehicle: &domain.VehicleDetails{
			Brand:    "Honda",
			Model:    "City",
			Year:     "2018",
			FuelType: "Petrol",
		},
		IsPromoted:         true,
		PromotionStart:     &created,
		PromotionEnd:       &end,
		PromotionPaymentID: "pay_abc",
		PromotionOrderID:   "order_xyz",
		CreatedAt:          created,
	}

	doc, err := toListingDocument(listing)
	require.NoError(t, err)
	assert.Equal(t, "seller@example.com", doc.UserEmail)
	assert.Equal(t, "Cars", doc.Category)
	assert.Equal(t, "https://media.local/bucket/p1.jpg", doc.ProductPic1)
	require.NotNil(t, doc.Vehicle)
	assert.Equal(t, "Honda", doc.Vehicle.Brand)

	back := toDomainListing(doc)
	assert.Equal(t, listing, back)
}

func TestListingConversion_RejectsBadID(t *testing.T) {
	_, err := toListingDocument(&domain.Listing{ID: "not-an-object-id"})
	assert.Error(t, err)
}

func TestWishlistConversion(t *testing.T) {
	entry := &domain.WishlistEntry{
		UserEmail: "fan@example.com",
		ListingID: "listing-1",
		CreatedAt: time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC),
	}

	doc, err := toWishlistDocument(entry)
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", doc.UserEmail)
	assert.Equal(t, "listing-1", doc.ProductID)
	assert.True(t, doc.ID.IsZero())
}
