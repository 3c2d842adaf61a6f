package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("products")}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return fmt.Errorf("prepare listing for insert: %w", err)
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	listing.ID = oid.Hex()
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{})
}

func (r *ListingRepository) FindByCategory(ctx context.Context, category string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"catagory": category},
		bson.M{"subcatagory": category},
	}})
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"useremail": ownerEmail})
}

func (r *ListingRepository) SearchByTitle(ctx context.Context, query string) ([]*domain.Listing, error) {
	// QuoteMeta keeps user input from being interpreted as a pattern.
	return r.find(ctx, bson.M{"title": bson.M{
		"$regex":   regexp.QuoteMeta(query),
		"$options": "i",
	}})
}

func (r *ListingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toDomainListings(docs), nil
}

// SetPromotion writes the promotion field group in one document update.
// Matching nothing (listing deleted underneath the promotion) is reported to
// the caller, not treated as an error.
func (r *ListingRepository) SetPromotion(ctx context.Context, id string, start, end time.Time, paymentID, orderID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"isPromoted":         true,
		"promotionStartDate": start,
		"promotionEndDate":   end,
		"promotionPaymentId": paymentID,
		"promotionOrderId":   orderID,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *ListingRepository) ExpirePromotions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{
			"isPromoted":       true,
			"promotionEndDate": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{"isPromoted": false}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
