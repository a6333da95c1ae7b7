// Package cache holds the optional Redis read-through cache for
// per-shop confirmed-booking snapshots. The calendar and slot flows
// re-read the snapshot on every interaction, so shielding the store
// behind a short TTL keeps month navigation cheap.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"marketbook/internal/model"
)

type BookingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a snapshot cache. A nil client disables caching; every
// method degrades to a miss or a no-op.
func New(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *BookingCache {
	return &BookingCache{rdb: rdb, ttl: ttl, logger: logger.With().Str("component", "cache").Logger()}
}

func snapshotKey(shopID string) string {
	return fmt.Sprintf("bookings:shop:%s", shopID)
}

// Get returns the cached snapshot for a shop, if present.
func (c *BookingCache) Get(ctx context.Context, shopID string) ([]model.Booking, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, snapshotKey(shopID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("shop_id", shopID).Msg("cache read failed")
		return nil, false
	}

	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		c.logger.Warn().Err(err).Str("shop_id", shopID).Msg("cache entry corrupt, dropping")
		c.Invalidate(ctx, shopID)
		return nil, false
	}
	return bookings, true
}

// Set stores a fresh snapshot under the configured TTL.
func (c *BookingCache) Set(ctx context.Context, shopID string, bookings []model.Booking) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(bookings)
	if err != nil {
		c.logger.Warn().Err(err).Str("shop_id", shopID).Msg("cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey(shopID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("shop_id", shopID).Msg("cache write failed")
	}
}

// Invalidate drops a shop's snapshot after a booking mutation.
func (c *BookingCache) Invalidate(ctx context.Context, shopID string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, snapshotKey(shopID)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("shop_id", shopID).Msg("cache invalidate failed")
	}
}
