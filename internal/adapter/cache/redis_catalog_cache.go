package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:menu"

// RedisCatalogCache stores the active menu as one JSON snapshot.
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCatalogCache) Get(ctx context.Context) ([]domain.CatalogEntry, bool, error) {
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []domain.CatalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// corrupt snapshot: treat as a miss so the repo repopulates it
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, entries []domain.CatalogEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err()
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, catalogKey).Err()
}

var _ usecase.CatalogCache = (*RedisCatalogCache)(nil)
