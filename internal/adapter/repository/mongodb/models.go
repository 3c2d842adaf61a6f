package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

// listingDocument mirrors the historical product schema: the original field
// spellings ("catagory", "subcatagory") and the twelve fixed picture slots are
// kept so existing databases stay readable.
type listingDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail    string             `bson:"useremail"`
	Title        string             `bson:"title,omitempty"`
	Description  string             `bson:"description,omitempty"`
	Address      []string           `bson:"address,omitempty"`
	Price        string             `bson:"price,omitempty"`
	Owner        string             `bson:"owner,omitempty"`
	OwnerPicture string             `bson:"ownerpicture,omitempty"`
	Category     string             `bson:"catagory"`
	Subcategory  string             `bson:"subcatagory"`

	ProductPic1  string `bson:"productpic1,omitempty"`
	ProductPic2  string `bson:"productpic2,omitempty"`
	ProductPic3  string `bson:"productpic3,omitempty"`
	ProductPic4  string `bson:"productpic4,omitempty"`
	ProductPic5  string `bson:"productpic5,omitempty"`
	ProductPic6  string `bson:"productpic6,omitempty"`
	ProductPic7  string `bson:"productpic7,omitempty"`
	ProductPic8  string `bson:"productpic8,omitempty"`
	ProductPic9  string `bson:"productpic9,omitempty"`
	ProductPic10 string `bson:"productpic10,omitempty"`
	ProductPic11 string `bson:"productpic11,omitempty"`
	ProductPic12 string `bson:"productpic12,omitempty"`

	Vehicle *vehicleDocument `bson:"vehicleData,omitempty"`
	Extras  *extrasDocument  `bson:"categoryData,omitempty"`

	IsPromoted         bool       `bson:"isPromoted"`
	PromotionStart     *time.Time `bson:"promotionStartDate,omitempty"`
	PromotionEnd       *time.Time `bson:"promotionEndDate,omitempty"`
	PromotionPaymentID string     `bson:"promotionPaymentId,omitempty"`
	PromotionOrderID   string     `bson:"promotionOrderId,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`
}

type vehicleDocument struct {
	Brand    string `bson:"brand,omitempty"`
	Model    string `bson:"model,omitempty"`
	Year     string `bson:"year,omitempty"`
	FuelType string `bson:"fuelType,omitempty"`
}

type extrasDocument struct {
	Brand     string `bson:"brand,omitempty"`
	Model     string `bson:"model,omitempty"`
	Year      string `bson:"year,omitempty"`
	Condition string `bson:"condition,omitempty"`
}

type wishlistDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"useremail"`
	ProductID string             `bson:"productId"`
	CreatedAt time.Time          `bson:"created_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	docID := primitive.NilObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing id %q: %w", l.ID, err)
		}
	}

	doc := &listingDocument{
		ID:                 docID,
		UserEmail:          l.OwnerEmail,
		Title:              l.Title,
		Description:        l.Description,
		Address:            l.Address,
		Price:              l.Price,
		Owner:              l.OwnerName,
		OwnerPicture:       l.OwnerPicture,
		Category:           l.Category,
		Subcategory:        l.Subcategory,
		IsPromoted:         l.IsPromoted,
		PromotionStart:     l.PromotionStart,
		PromotionEnd:       l.PromotionEnd,
		PromotionPaymentID: l.PromotionPaymentID,
		PromotionOrderID:   l.PromotionOrderID,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
	doc.setPhotos(l.Photos)

	if l.Vehicle != nil {
		doc.Vehicle = &vehicleDocument{
			Brand:    l.Vehicle.Brand,
			Model:    l.Vehicle.Model,
			Year:     l.Vehicle.Year,
			FuelType: l.Vehicle.FuelType,
		}
	}
	if l.Extras != nil {
		doc.Extras = &extrasDocument{
			Brand:     l.Extras.Brand,
			Model:     l.Extras.Model,
			Year:      l.Extras.Year,
			Condition: l.Extras.Condition,
		}
	}
	return doc, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	listing := &domain.Listing{
		ID:                 d.ID.Hex(),
		OwnerEmail:         d.UserEmail,
		OwnerName:          d.Owner,
		OwnerPicture:       d.OwnerPicture,
		Title:              d.Title,
		Description:        d.Description,
		Price:              d.Price,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		Address:            d.Address,
		Photos:             d.photos(),
		IsPromoted:         d.IsPromoted,
		PromotionStart:     d.PromotionStart,
		PromotionEnd:       d.PromotionEnd,
		PromotionPaymentID: d.PromotionPaymentID,
		PromotionOrderID:   d.PromotionOrderID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.Vehicle != nil {
		listing.Vehicle = &domain.VehicleDetails{
			Brand:    d.Vehicle.Brand,
			Model:    d.Vehicle.Model,
			Year:     d.Vehicle.Year,
			FuelType: d.Vehicle.FuelType,
		}
	}
	if d.Extras != nil {
		listing.Extras = &domain.CategoryExtras{
			Brand:     d.Extras.Brand,
			Model:     d.Extras.Model,
			Year:      d.Extras.Year,
			Condition: d.Extras.Condition,
		}
	}
	return listing
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings
}

func (d *listingDocument) picSlots() []*string {
	return []*string{
		&d.ProductPic1, &d.ProductPic2, &d.ProductPic3, &d.ProductPic4,
		&d.ProductPic5, &d.ProductPic6, &d.ProductPic7, &d.ProductPic8,
		&d.ProductPic9, &d.ProductPic10, &d.ProductPic11, &d.ProductPic12,
	}
}

func (d *listingDocument) setPhotos(photos []string) {
	slots := d.picSlots()
	for i, url := range photos {
		if i >= len(slots) {
			break
		}
		*slots[i] = url
	}
}

func (d *listingDocument) photos() []string {
	var photos []string
	for _, slot := range d.picSlots() {
		if *slot != "" {
			photos = append(photos, *slot)
		}
	}
	return photos
}

func toWishlistDocument(e *domain.WishlistEntry) (*wishlistDocument, error) {
	if e == nil {
		return nil, nil
	}
	docID := primitive.NilObjectID
	if e.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(e.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid wishlist entry id %q: %w", e.ID, err)
		}
	}
	return &wishlistDocument{
		ID:        docID,
		UserEmail: e.UserEmail,
		ProductID: e.ListingID,
		CreatedAt: e.CreatedAt,
	}, nil
}

func toDomainWishlistEntry(d *wishlistDocument) *domain.WishlistEntry {
	if d == nil {
		return nil
	}
	return &domain.WishlistEntry{
		ID:        d.ID.Hex(),
		UserEmail: d.UserEmail,
		ListingID: d.ProductID,
		CreatedAt: d.CreatedAt,
	}
}
