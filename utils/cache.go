// utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fundmehub/fundme_backend/config"
)

// Cache TTLs for read-heavy endpoints
const (
	FundraiserCacheTTL = 30 * time.Second
	WalletCacheTTL     = 10 * time.Second
)

// FundraiserCacheKey builds the cache key for a single fundraiser
func FundraiserCacheKey(id string) string {
	return "fundraiser:" + id
}

// PlatformWalletCacheKey is the cache key for the singleton platform wallet
const PlatformWalletCacheKey = "platform_wallet"

// CacheGet fetches a cached JSON value into dest. Returns false on miss or
// when Redis is unavailable.
func CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if config.RedisClient == nil {
		return false
	}
	data, err := config.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// CacheSet stores a value as JSON with the given TTL. Best-effort.
func CacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if config.RedisClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	config.RedisClient.Set(ctx, key, data, ttl)
}

// CacheInvalidate removes cached entries. Best-effort.
func CacheInvalidate(ctx context.Context, keys ...string) {
	if config.RedisClient == nil || len(keys) == 0 {
		return
	}
	config.RedisClient.Del(ctx, keys...)
}
