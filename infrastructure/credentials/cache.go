package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

const cacheKeyPrefix = "oauth:access"

// TokenCache mantém access tokens no Redis até pouco antes de expirarem
type TokenCache struct {
	client *redis.Client
	maxTTL time.Duration
}

func NewTokenCache(client *redis.Client, maxTTL time.Duration) *TokenCache {
	return &TokenCache{
		client: client,
		maxTTL: maxTTL,
	}
}

func cacheKey(subject string, service domain.Source) string {
	return fmt.Sprintf("%s:%s:%s", cacheKeyPrefix, service, subject)
}

func (c *TokenCache) Get(ctx context.Context, subject string, service domain.Source) (string, error) {
	token, err := c.client.Get(ctx, cacheKey(subject, service)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenCacheMiss
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Set grava o token com TTL limitado por maxTTL; ttl <= 0 não grava
func (c *TokenCache) Set(ctx context.Context, subject string, service domain.Source, token string, ttl time.Duration) error {
	if c.maxTTL > 0 && ttl > c.maxTTL {
		ttl = c.maxTTL
	}
	if ttl <= 0 || token == "" {
		return nil
	}
	return c.client.Set(ctx, cacheKey(subject, service), token, ttl).Err()
}

func (c *TokenCache) Delete(ctx context.Context, subject string, service domain.Source) error {
	return c.client.Del(ctx, cacheKey(subject, service)).Err()
}

func (c *TokenCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
