package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

const (
	keyPrefix = "product:"
	entryTTL  = 1 * time.Hour
)

// ListingCache keeps single listings in Redis so preview pages do not hit
// Mongo on every view. It is invalidated on delete and on promotion writes.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(ctx context.Context, addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &ListingCache{client: client}, nil
}

// GetListing returns (nil, nil) on a cache miss.
func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+listing.ID, data, entryTTL).Err()
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, keyPrefix+id).Err()
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}
