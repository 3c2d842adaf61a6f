package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

type WishlistRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewWishlistRepository ensures the unique (useremail, productId) index that
// backs the duplicate-entry guarantee.
func NewWishlistRepository(ctx context.Context, db *mongo.Database, logger *zap.Logger) (*WishlistRepository, error) {
	collection := db.Collection("wishlists")
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "useremail", Value: 1},
			{Key: "productId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create wishlist index: %w", err)
	}
	return &WishlistRepository{collection: collection, logger: logger}, nil
}

func (r *WishlistRepository) Add(ctx context.Context, entry *domain.WishlistEntry) error {
	doc, err := toWishlistDocument(entry)
	if err != nil {
		return fmt.Errorf("prepare wishlist entry for insert: %w", err)
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateWishlistEntry
		}
		r.logger.Error("wishlist insert failed",
			zap.String("user", entry.UserEmail),
			zap.String("listing_id", entry.ListingID),
			zap.Error(err))
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userEmail, listingID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{
		"useremail": userEmail,
		"productId": listingID,
	})
	return err
}

func (r *WishlistRepository) RemoveByListing(ctx context.Context, listingID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"productId": listingID})
	return err
}

func (r *WishlistRepository) Exists(ctx context.Context, userEmail, listingID string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{
		"useremail": userEmail,
		"productId": listingID,
	}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userEmail string) ([]*domain.WishlistEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"useremail": userEmail}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*wishlistDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	entries := make([]*domain.WishlistEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, toDomainWishlistEntry(doc))
	}
	return entries, nil
}
