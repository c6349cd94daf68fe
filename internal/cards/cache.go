package cards

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "cards:snapshot"

// Cache keeps a short-lived snapshot of the card list in Redis. It is a pure
// read accelerator: every miss or Redis failure falls through to PostgreSQL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache constructs a cache. A nil client disables caching entirely.
func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot, or ok=false on miss.
func (c *Cache) Get(ctx context.Context) ([]Card, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.Warn("card cache get", slog.Any("error", err))
		}
		return nil, false
	}
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, false
	}
	return cards, true
}

// Set stores a snapshot with the configured TTL.
func (c *Cache) Set(ctx context.Context, cards []Card) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("card cache set", slog.Any("error", err))
	}
}

// Invalidate drops the snapshot after any write that changes a balance or
// adds a card.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil && c.logger != nil {
		c.logger.Warn("card cache invalidate", slog.Any("error", err))
	}
}
