package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
	"github.com/slangscope/slangscope/pkg/store"
)

const keyPrefix = "slangscope:term:"

var _ models.TermCache = &TermCache{}

// TermCache stores looked up terms as JSON strings with a TTL.
type TermCache struct {
	client *redis.Client
}

func NewTermCache(ctx context.Context, cfg *config.Config) (*TermCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.TermCache.Redis.Address,
		Password: cfg.TermCache.Redis.Password,
		DB:       cfg.TermCache.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, store.NewStorageError("failed to connect to redis", err)
	}

	return NewTermCacheWithClient(client), nil
}

func NewTermCacheWithClient(client *redis.Client) *TermCache {
	return &TermCache{client: client}
}

func (c *TermCache) Get(ctx context.Context, term string) (*models.TermInfo, error) {
	b, err := c.client.Get(ctx, keyPrefix+term).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.NewNotFoundError(fmt.Sprintf("term %q", term))
		}
		return nil, store.NewStorageError("failed to get term", err)
	}

	info := &models.TermInfo{}
	if err := json.Unmarshal(b, info); err != nil {
		return nil, store.NewStorageError("failed to decode term", err)
	}

	return info, nil
}

// Put stores info for term. A zero ttl never expires.
func (c *TermCache) Put(ctx context.Context, term string, info *models.TermInfo, ttl time.Duration) error {
	b, err := json.Marshal(info)
	if err != nil {
		return store.NewStorageError("failed to encode term", err)
	}

	if err := c.client.Set(ctx, keyPrefix+term, b, ttl).Err(); err != nil {
		return store.NewStorageError("failed to put term", err)
	}

	return nil
}

func (c *TermCache) Close() error {
	return c.client.Close()
}
