package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	models "github.com/albarakah/voyages/internal"
	"github.com/redis/go-redis/v9"
)

const tripsKey = "cache:trips"

// TripCache keeps the trip catalog listing in redis for a short TTL so
// the offers page does not hit postgres on every read.
type TripCache struct {
	client   *redis.Client
	tripsTTL time.Duration
}

func NewTripCache(addr, password string, db int, tripsTTL time.Duration) *TripCache {
	return &TripCache{
		client:   redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		tripsTTL: tripsTTL,
	}
}

// GetTrips returns (nil, nil) on a cache miss.
func (c *TripCache) GetTrips(ctx context.Context) ([]models.Trip, error) {
	data, err := c.client.Get(ctx, tripsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var trips []models.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *TripCache) SetTrips(ctx context.Context, trips []models.Trip) error {
	// store an empty catalog as [] rather than null so it reads back
	// non-nil and counts as a hit
	if trips == nil {
		trips = []models.Trip{}
	}
	payload, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tripsKey, payload, c.tripsTTL).Err()
}

func (c *TripCache) Close() error {
	return c.client.Close()
}
